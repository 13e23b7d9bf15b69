//go:generate mockgen -destination mock_queue/mock_queue.go github.com/fleetwatch/sos-server/queue Queue

package queue

import (
	"context"
	"os"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fleetwatch/sos-server/redisprovider"
)

const CName = "sos.queue"

var log = logger.NewNamed(CName)

func New() Queue {
	return new(queue)
}

// Queue is a redis-backed wake-up channel: it carries ids of freshly
// enqueued sos_notification_queue items so a consumer processes them
// promptly instead of polling. The datastore stays the source of truth; a
// lost nudge only delays an item until the next pending sweep.
type Queue interface {
	Add(ctx context.Context, itemId string) error
	Consume(ctx context.Context, handle func(itemId string) error) error
	app.ComponentRunnable
}

type queue struct {
	client       redis.UniversalClient
	rmqConn      rmq.Connection
	queue        rmq.Queue
	errCh        chan error
	tag          string
	runCtx       context.Context
	runCtxCancel context.CancelFunc
}

func (q *queue) Init(a *app.App) (err error) {
	q.client = a.MustComponent(redisprovider.CName).(redisprovider.RedisProvider).Redis()
	q.tag = connectionTag()
	q.runCtx, q.runCtxCancel = context.WithCancel(context.Background())
	return
}

func (q *queue) Name() (name string) {
	return CName
}

func (q *queue) Run(ctx context.Context) (err error) {
	q.errCh = make(chan error, 10)
	if q.rmqConn, err = rmq.OpenClusterConnection(q.tag, q.client, q.errCh); err != nil {
		return err
	}
	go q.handleRmqErrs()
	if q.queue, err = q.rmqConn.OpenQueue("sos"); err != nil {
		return err
	}
	return q.queue.StartConsuming(10, time.Millisecond*100)
}

func (q *queue) Add(ctx context.Context, itemId string) error {
	return q.queue.Publish(itemId)
}

func (q *queue) Consume(ctx context.Context, handle func(itemId string) error) error {
	cons := func(delivery rmq.Delivery) {
		select {
		case <-q.runCtx.Done():
			_ = delivery.Reject()
			return
		case <-ctx.Done():
			_ = delivery.Reject()
			return
		default:
		}
		if err := handle(delivery.Payload()); err != nil {
			_ = delivery.Reject()
		} else {
			_ = delivery.Ack()
		}
	}
	_, err := q.queue.AddConsumerFunc(q.tag, cons)
	return err
}

func (q *queue) handleRmqErrs() {
	for {
		select {
		case <-q.runCtx.Done():
			return
		case err := <-q.errCh:
			log.Warn("rmq error", zap.Error(err))
		}
	}
}

func (q *queue) Close(ctx context.Context) (err error) {
	if q.runCtxCancel != nil {
		q.runCtxCancel()
	}
	if q.queue != nil {
		done := q.queue.StopConsuming()
		<-done
	}
	return nil
}

func connectionTag() string {
	host, err := os.Hostname()
	if err != nil {
		return uuid.NewString()
	}
	return host + "-" + uuid.NewString()[:8]
}
