//go:generate mockgen -destination mock_processor/mock_processor.go github.com/fleetwatch/sos-server/processor Processor,Gateway

package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/fleetwatch/sos-server/domain"
	"github.com/fleetwatch/sos-server/queue"
	"github.com/fleetwatch/sos-server/repo/pushtokenrepo"
	"github.com/fleetwatch/sos-server/repo/queuerepo"
)

const CName = "sos.processor"

var log = logger.NewNamed(CName)

const (
	batchSize   = 100
	sendTimeout = time.Second * 10

	alertTitle     = "Emergency SOS"
	androidChannel = "sos-alerts"
)

var pushTokenPrefixes = []string{"ExponentPushToken[", "ExpoPushToken["}

func New() Processor {
	return new(processor)
}

// Gateway delivers one batch of up to batchSize messages and returns the
// per-recipient results in batch order.
type Gateway interface {
	SendBatch(ctx context.Context, messages []domain.PushMessage) (results []domain.PushResult, err error)
}

type Processor interface {
	// ProcessDirect fans out an inline payload synchronously, bypassing the
	// queue.
	ProcessDirect(ctx context.Context, payload domain.SOSPayload) (sent int, err error)
	// ProcessQueue processes one item by id, or, with an empty id, up to the
	// pending batch limit of items oldest-first.
	ProcessQueue(ctx context.Context, queueId string, debug bool) (res QueueResult, err error)
	RegisterGateway(g Gateway)
	app.ComponentRunnable
}

type QueueResult struct {
	Processed int         `json:"processed"`
	Errors    int         `json:"errors"`
	Debug     []ItemTrace `json:"debug,omitempty"`
}

// ItemTrace records per-item outcomes for the debug mode of queue runs.
type ItemTrace struct {
	Id         string             `json:"id"`
	Skipped    bool               `json:"skipped,omitempty"`
	Recipients int                `json:"recipients"`
	Sent       int                `json:"sent"`
	Status     domain.QueueStatus `json:"status,omitempty"`
	Error      string             `json:"error,omitempty"`
}

type processor struct {
	queueRepo     queuerepo.QueueRepo
	pushTokenRepo pushtokenrepo.PushTokenRepo
	queue         queue.Queue
	gateway       Gateway
}

func (p *processor) Init(a *app.App) (err error) {
	p.queueRepo = a.MustComponent(queuerepo.CName).(queuerepo.QueueRepo)
	p.pushTokenRepo = a.MustComponent(pushtokenrepo.CName).(pushtokenrepo.PushTokenRepo)
	p.queue = a.MustComponent(queue.CName).(queue.Queue)
	return
}

func (p *processor) Name() (name string) {
	return CName
}

func (p *processor) Run(ctx context.Context) (err error) {
	return p.queue.Consume(ctx, func(itemId string) error {
		_, err := p.ProcessQueue(context.Background(), itemId, false)
		if errors.Is(err, queuerepo.ErrItemNotFound) {
			// a nudge may outlive its item; nothing to redeliver
			return nil
		}
		return err
	})
}

func (p *processor) RegisterGateway(g Gateway) {
	p.gateway = g
}

func (p *processor) ProcessDirect(ctx context.Context, payload domain.SOSPayload) (sent int, err error) {
	sent, _, errs := p.fanOut(ctx, payload)
	if len(errs) > 0 {
		return sent, errors.New(strings.Join(errs, "; "))
	}
	return sent, nil
}

func (p *processor) ProcessQueue(ctx context.Context, queueId string, debug bool) (res QueueResult, err error) {
	var items []domain.QueueItem
	if queueId != "" {
		item, err := p.queueRepo.GetById(ctx, queueId)
		if err != nil {
			return res, err
		}
		items = []domain.QueueItem{item}
	} else {
		if items, err = p.queueRepo.GetPending(ctx); err != nil {
			return res, fmt.Errorf("fetch pending items: %w", err)
		}
	}
	for _, item := range items {
		trace := p.processItem(ctx, item)
		if !trace.Skipped {
			res.Processed++
		}
		if trace.Status == domain.QueueStatusFailed {
			res.Errors++
		}
		if debug {
			res.Debug = append(res.Debug, trace)
		}
	}
	return res, nil
}

func (p *processor) processItem(ctx context.Context, item domain.QueueItem) (trace ItemTrace) {
	trace.Id = item.Id
	if err := p.queueRepo.MarkProcessing(ctx, item.Id); err != nil {
		if errors.Is(err, queuerepo.ErrNotPending) {
			// claimed by a concurrent run, leave it alone
			trace.Skipped = true
			return
		}
		trace.Status = domain.QueueStatusFailed
		trace.Error = fmt.Sprintf("mark processing: %v", err)
		log.Error("mark processing failed", zap.String("itemId", item.Id), zap.Error(err))
		p.finish(ctx, item.Id, &trace)
		return
	}

	sent, recipients, errs := p.fanOut(ctx, item.Payload)
	trace.Sent = sent
	trace.Recipients = recipients
	if len(errs) > 0 {
		trace.Status = domain.QueueStatusFailed
		trace.Error = strings.Join(errs, "; ")
	} else {
		trace.Status = domain.QueueStatusSent
	}
	p.finish(ctx, item.Id, &trace)
	return
}

func (p *processor) finish(ctx context.Context, itemId string, trace *ItemTrace) {
	itemsProcessed.WithLabelValues(string(trace.Status)).Inc()
	if err := p.queueRepo.Finish(ctx, itemId, trace.Status, trace.Error); err != nil {
		log.Error("update queue item failed", zap.String("itemId", itemId), zap.Error(err))
		if trace.Error == "" {
			trace.Error = fmt.Sprintf("update status: %v", err)
		}
	}
}

// fanOut looks up the group's recipients, filters malformed push tokens,
// builds one message per recipient and dispatches batches with per-batch
// failure isolation. Zero valid recipients is a clean no-op success.
func (p *processor) fanOut(ctx context.Context, payload domain.SOSPayload) (sent, recipients int, errs []string) {
	tokens, err := p.pushTokenRepo.GetGroupTokens(ctx, payload.GroupId, payload.DeviceId)
	if err != nil {
		return 0, 0, []string{fmt.Sprintf("fetch push tokens: %v", err)}
	}
	messages := make([]domain.PushMessage, 0, len(tokens))
	for _, t := range tokens {
		if !isValidPushToken(t.Token) {
			continue
		}
		messages = append(messages, buildMessage(payload, t))
	}
	recipients = len(messages)
	if recipients == 0 {
		return 0, 0, nil
	}

	for start := 0; start < len(messages); start += batchSize {
		batch := messages[start:min(start+batchSize, len(messages))]
		callCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		results, err := p.gateway.SendBatch(callCtx, batch)
		cancel()
		if err != nil {
			errs = append(errs, fmt.Sprintf("batch %d: %v", start/batchSize, err))
			continue
		}
		for _, res := range results {
			if res.Status == domain.PushStatusOk {
				sent++
			} else {
				errs = append(errs, res.Message)
			}
		}
	}
	messagesSent.Add(float64(sent))
	log.Info("sos fan-out",
		zap.String("groupId", payload.GroupId),
		zap.Int("recipients", recipients),
		zap.Int("sent", sent),
		zap.Int("errors", len(errs)))
	return
}

func isValidPushToken(token string) bool {
	for _, prefix := range pushTokenPrefixes {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}

func buildMessage(payload domain.SOSPayload, token domain.PushToken) domain.PushMessage {
	name := payload.DisplayName
	if name == "" {
		name = "A group member"
	}
	msg := domain.PushMessage{
		To:    token.Token,
		Title: alertTitle,
		Body:  fmt.Sprintf("%s triggered an SOS alert", name),
		Data: map[string]any{
			"type":        "sos",
			"deviceId":    payload.DeviceId,
			"displayName": payload.DisplayName,
			"latitude":    payload.Latitude,
			"longitude":   payload.Longitude,
			"timestamp":   payload.Timestamp,
			"groupId":     payload.GroupId,
		},
		Sound:    "default",
		Priority: "high",
	}
	if token.Platform == domain.PlatformAndroid {
		msg.ChannelId = androidChannel
	}
	return msg
}

func (p *processor) Close(ctx context.Context) (err error) {
	return nil
}
