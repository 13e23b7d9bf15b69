package processor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fleetwatch/sos-server/domain"
	"github.com/fleetwatch/sos-server/queue"
	"github.com/fleetwatch/sos-server/queue/mock_queue"
	"github.com/fleetwatch/sos-server/repo/pushtokenrepo"
	"github.com/fleetwatch/sos-server/repo/pushtokenrepo/mock_pushtokenrepo"
	"github.com/fleetwatch/sos-server/repo/queuerepo"
	"github.com/fleetwatch/sos-server/repo/queuerepo/mock_queuerepo"
)

var ctx = context.Background()

func TestProcessor_ProcessDirect(t *testing.T) {
	t.Run("zero valid recipients is a clean no-op", func(t *testing.T) {
		fx := newFixture(t)
		payload := newPayload()
		fx.pushTokenRepo.EXPECT().GetGroupTokens(ctx, "g1", "d1").Return([]domain.PushToken{
			{DeviceId: "d3", GroupId: "g1", Token: "not-a-push-token", Platform: domain.PlatformIOS},
		}, nil)
		fx.gatewayCalls(t, nil) // must never be called

		sent, err := fx.ProcessDirect(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, 0, sent)
	})
	t.Run("malformed tokens are dropped, android gets a channel", func(t *testing.T) {
		fx := newFixture(t)
		payload := newPayload()
		fx.pushTokenRepo.EXPECT().GetGroupTokens(ctx, "g1", "d1").Return([]domain.PushToken{
			{DeviceId: "d2", GroupId: "g1", Token: "ExponentPushToken[d2]", Platform: domain.PlatformAndroid},
			{DeviceId: "d3", GroupId: "g1", Token: "garbage", Platform: domain.PlatformIOS},
		}, nil)
		var batches [][]domain.PushMessage
		fx.gatewayCalls(t, func(_ context.Context, msgs []domain.PushMessage) ([]domain.PushResult, error) {
			batches = append(batches, msgs)
			return okResults(len(msgs)), nil
		})

		sent, err := fx.ProcessDirect(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		require.Len(t, batches, 1)
		require.Len(t, batches[0], 1)
		msg := batches[0][0]
		assert.Equal(t, "ExponentPushToken[d2]", msg.To)
		assert.Equal(t, alertTitle, msg.Title)
		assert.Equal(t, "Alice triggered an SOS alert", msg.Body)
		assert.Equal(t, "sos", msg.Data["type"])
		assert.Equal(t, androidChannel, msg.ChannelId)
		assert.Equal(t, "high", msg.Priority)
	})
}

func TestProcessor_ProcessQueue(t *testing.T) {
	t.Run("second batch failure leaves the item failed with partial sent", func(t *testing.T) {
		fx := newFixture(t)
		item := newItem("q1")
		tokens := make([]domain.PushToken, 150)
		for i := range tokens {
			tokens[i] = domain.PushToken{
				DeviceId: fmt.Sprintf("dev%d", i),
				GroupId:  "g1",
				Token:    fmt.Sprintf("ExpoPushToken[%d]", i),
				Platform: domain.PlatformIOS,
			}
		}
		fx.queueRepo.EXPECT().GetById(ctx, "q1").Return(item, nil)
		fx.queueRepo.EXPECT().MarkProcessing(ctx, "q1").Return(nil)
		fx.pushTokenRepo.EXPECT().GetGroupTokens(ctx, "g1", "d1").Return(tokens, nil)
		var batchSizes []int
		fx.gatewayCalls(t, func(_ context.Context, msgs []domain.PushMessage) ([]domain.PushResult, error) {
			batchSizes = append(batchSizes, len(msgs))
			if len(batchSizes) == 2 {
				return nil, errors.New("gateway unreachable")
			}
			return okResults(len(msgs)), nil
		})
		fx.queueRepo.EXPECT().Finish(ctx, "q1", domain.QueueStatusFailed, gomock.Not("")).Return(nil)

		res, err := fx.ProcessQueue(ctx, "q1", true)
		require.NoError(t, err)
		assert.Equal(t, []int{100, 50}, batchSizes)
		assert.Equal(t, 1, res.Processed)
		assert.Equal(t, 1, res.Errors)
		require.Len(t, res.Debug, 1)
		assert.Equal(t, 100, res.Debug[0].Sent)
		assert.Equal(t, domain.QueueStatusFailed, res.Debug[0].Status)
	})
	t.Run("zero valid recipients completes as sent", func(t *testing.T) {
		fx := newFixture(t)
		item := newItem("q2")
		fx.queueRepo.EXPECT().GetById(ctx, "q2").Return(item, nil)
		fx.queueRepo.EXPECT().MarkProcessing(ctx, "q2").Return(nil)
		fx.pushTokenRepo.EXPECT().GetGroupTokens(ctx, "g1", "d1").Return(nil, nil)
		fx.gatewayCalls(t, nil)
		fx.queueRepo.EXPECT().Finish(ctx, "q2", domain.QueueStatusSent, "").Return(nil)

		res, err := fx.ProcessQueue(ctx, "q2", true)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Processed)
		assert.Equal(t, 0, res.Errors)
		assert.Equal(t, 0, res.Debug[0].Sent)
	})
	t.Run("item claimed by a concurrent run is skipped", func(t *testing.T) {
		fx := newFixture(t)
		item := newItem("q3")
		fx.queueRepo.EXPECT().GetById(ctx, "q3").Return(item, nil)
		fx.queueRepo.EXPECT().MarkProcessing(ctx, "q3").Return(queuerepo.ErrNotPending)
		fx.gatewayCalls(t, nil)

		res, err := fx.ProcessQueue(ctx, "q3", true)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Processed)
		assert.Equal(t, 0, res.Errors)
		assert.True(t, res.Debug[0].Skipped)
	})
	t.Run("pending sweep processes oldest first", func(t *testing.T) {
		fx := newFixture(t)
		items := []domain.QueueItem{newItem("a"), newItem("b")}
		fx.queueRepo.EXPECT().GetPending(ctx).Return(items, nil)
		gomock.InOrder(
			fx.queueRepo.EXPECT().MarkProcessing(ctx, "a").Return(nil),
			fx.queueRepo.EXPECT().MarkProcessing(ctx, "b").Return(nil),
		)
		fx.pushTokenRepo.EXPECT().GetGroupTokens(ctx, "g1", "d1").Return(nil, nil).Times(2)
		fx.gatewayCalls(t, nil)
		fx.queueRepo.EXPECT().Finish(ctx, "a", domain.QueueStatusSent, "").Return(nil)
		fx.queueRepo.EXPECT().Finish(ctx, "b", domain.QueueStatusSent, "").Return(nil)

		res, err := fx.ProcessQueue(ctx, "", false)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Processed)
	})
	t.Run("gateway error entries are captured per recipient", func(t *testing.T) {
		fx := newFixture(t)
		item := newItem("q4")
		fx.queueRepo.EXPECT().GetById(ctx, "q4").Return(item, nil)
		fx.queueRepo.EXPECT().MarkProcessing(ctx, "q4").Return(nil)
		fx.pushTokenRepo.EXPECT().GetGroupTokens(ctx, "g1", "d1").Return([]domain.PushToken{
			{DeviceId: "d2", GroupId: "g1", Token: "ExponentPushToken[d2]", Platform: domain.PlatformIOS},
			{DeviceId: "d4", GroupId: "g1", Token: "ExponentPushToken[d4]", Platform: domain.PlatformIOS},
		}, nil)
		fx.gatewayCalls(t, func(_ context.Context, msgs []domain.PushMessage) ([]domain.PushResult, error) {
			return []domain.PushResult{
				{Status: domain.PushStatusOk},
				{Status: domain.PushStatusError, Message: "DeviceNotRegistered"},
			}, nil
		})
		fx.queueRepo.EXPECT().Finish(ctx, "q4", domain.QueueStatusFailed, "DeviceNotRegistered").Return(nil)

		res, err := fx.ProcessQueue(ctx, "q4", true)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Debug[0].Sent)
		assert.Equal(t, domain.QueueStatusFailed, res.Debug[0].Status)
	})
}

func newPayload() domain.SOSPayload {
	return domain.SOSPayload{
		DeviceId:    "d1",
		DisplayName: "Alice",
		GroupId:     "g1",
		Timestamp:   1700000000,
	}
}

func newItem(id string) domain.QueueItem {
	return domain.QueueItem{
		Id:      id,
		Payload: newPayload(),
		Status:  domain.QueueStatusPending,
	}
}

func okResults(n int) []domain.PushResult {
	results := make([]domain.PushResult, n)
	for i := range results {
		results[i] = domain.PushResult{Status: domain.PushStatusOk}
	}
	return results
}

// gatewayFunc avoids an import cycle with the generated processor mocks.
type gatewayFunc func(ctx context.Context, messages []domain.PushMessage) ([]domain.PushResult, error)

func (f gatewayFunc) SendBatch(ctx context.Context, messages []domain.PushMessage) ([]domain.PushResult, error) {
	return f(ctx, messages)
}

type fixture struct {
	Processor
	a             *app.App
	queueRepo     *mock_queuerepo.MockQueueRepo
	pushTokenRepo *mock_pushtokenrepo.MockPushTokenRepo
	queue         *mock_queue.MockQueue
}

func (fx *fixture) gatewayCalls(t *testing.T, f gatewayFunc) {
	fx.RegisterGateway(gatewayFunc(func(ctx context.Context, messages []domain.PushMessage) ([]domain.PushResult, error) {
		if f == nil {
			t.Fatal("unexpected gateway call")
		}
		return f(ctx, messages)
	}))
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	fx := &fixture{
		Processor:     New(),
		a:             new(app.App),
		queueRepo:     mock_queuerepo.NewMockQueueRepo(ctrl),
		pushTokenRepo: mock_pushtokenrepo.NewMockPushTokenRepo(ctrl),
		queue:         mock_queue.NewMockQueue(ctrl),
	}
	fx.queueRepo.EXPECT().Name().Return(queuerepo.CName).AnyTimes()
	fx.queueRepo.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.queueRepo.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.queueRepo.EXPECT().Close(gomock.Any()).AnyTimes()
	fx.pushTokenRepo.EXPECT().Name().Return(pushtokenrepo.CName).AnyTimes()
	fx.pushTokenRepo.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.pushTokenRepo.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.pushTokenRepo.EXPECT().Close(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Name().Return(queue.CName).AnyTimes()
	fx.queue.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Consume(gomock.Any(), gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Close(gomock.Any()).AnyTimes()

	fx.a.Register(fx.queueRepo).
		Register(fx.pushTokenRepo).
		Register(fx.queue).
		Register(fx.Processor)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, fx.a.Close(ctx))
		ctrl.Finish()
	})
	return fx
}
