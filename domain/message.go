package domain

// PushMessage is one message of a gateway batch, serialized as-is onto the
// wire. ChannelId is set for android recipients only.
type PushMessage struct {
	To        string         `json:"to"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data"`
	Sound     string         `json:"sound,omitempty"`
	Priority  string         `json:"priority,omitempty"`
	ChannelId string         `json:"channelId,omitempty"`
	Badge     *int           `json:"badge,omitempty"`
}

const (
	PushStatusOk    = "ok"
	PushStatusError = "error"
)

// PushResult is the gateway's per-recipient outcome, ordered as the batch.
type PushResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
