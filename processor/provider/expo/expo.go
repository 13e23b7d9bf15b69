package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/fleetwatch/sos-server/domain"
	"github.com/fleetwatch/sos-server/processor"
)

const CName = "sos.gateway.expo"

var log = logger.NewNamed(CName)

const defaultUrl = "https://exp.host/--/api/v2/push/send"

func New() Expo {
	return new(expo)
}

type Expo interface {
	app.Component
}

type expo struct {
	url    string
	client *http.Client
}

func (e *expo) Init(a *app.App) (err error) {
	conf := a.MustComponent("config").(configSource).GetExpo()
	e.url = conf.Url
	if e.url == "" {
		e.url = defaultUrl
	}
	e.client = &http.Client{}
	a.MustComponent(processor.CName).(processor.Processor).RegisterGateway(e)
	return
}

func (e *expo) Name() (name string) {
	return CName
}

// SendBatch posts one batch to the push gateway. The per-call deadline comes
// from the caller's context; any transport error, non-2xx status or a
// response without the expected result list is a batch-level error.
func (e *expo) SendBatch(ctx context.Context, messages []domain.PushMessage) (results []domain.PushResult, err error) {
	body, err := json.Marshal(messages)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("gateway status %d", resp.StatusCode)
	}
	var parsed struct {
		Data []domain.PushResult `json:"data"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("gateway response: %w", err)
	}
	if len(parsed.Data) != len(messages) {
		return nil, fmt.Errorf("gateway returned %d results for %d messages", len(parsed.Data), len(messages))
	}
	log.Debug("batch sent", zap.Int("messages", len(messages)))
	return parsed.Data, nil
}
