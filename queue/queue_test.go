package queue

import (
	"context"
	"testing"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetwatch/sos-server/redisprovider/testredisprovider"
)

var ctx = context.Background()

func TestQueue_Consume(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.Add(ctx, "item-1"))
	var ids = make(chan string)
	require.NoError(t, fx.Consume(ctx, func(itemId string) error {
		ids <- itemId
		return nil
	}))

	require.NoError(t, fx.Add(ctx, "item-2"))
	var result = make([]string, 2)
	for i := range result {
		select {
		case id := <-ids:
			result[i] = id
		case <-time.After(time.Second):
			t.Fatal("timeout")
		}
	}
	assert.ElementsMatch(t, []string{"item-1", "item-2"}, result)
}

type fixture struct {
	Queue
	a *app.App
}

func newFixture(t *testing.T) *fixture {
	fx := &fixture{
		Queue: New(),
		a:     new(app.App),
	}
	fx.a.Register(testredisprovider.NewTestRedisProvider()).Register(fx.Queue)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, fx.a.Close(ctx))
	})
	return fx
}
