package domain

type QueueStatus string

const (
	QueueStatusPending    QueueStatus = "pending"
	QueueStatusProcessing QueueStatus = "processing"
	QueueStatusSent       QueueStatus = "sent"
	QueueStatusFailed     QueueStatus = "failed"
)

// SOSPayload describes one triggered SOS event. DeviceId is the sender,
// GroupId selects the fleet that must be notified.
type SOSPayload struct {
	DeviceId    string   `bson:"deviceId" json:"device_id"`
	DisplayName string   `bson:"displayName,omitempty" json:"display_name,omitempty"`
	Latitude    *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Timestamp   int64    `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
	GroupId     string   `bson:"groupId" json:"group_id"`
}

// QueueItem is one persisted unit of fan-out work. The processor exclusively
// owns the processing->terminal transition.
type QueueItem struct {
	Id           string      `bson:"_id"`
	Payload      SOSPayload  `bson:"payload"`
	Status       QueueStatus `bson:"status"`
	ErrorMessage string      `bson:"errorMessage,omitempty"`
	CreatedAt    int64       `bson:"createdAt"`
	ProcessedAt  int64       `bson:"processedAt,omitempty"`
}
