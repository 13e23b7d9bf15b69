package pushtokenrepo

import (
	"context"
	"testing"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetwatch/sos-server/db"
	"github.com/fleetwatch/sos-server/domain"
)

var ctx = context.Background()

func TestPushTokenRepo_GetGroupTokens(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.SetToken(ctx, domain.PushToken{
		DeviceId: "d1", GroupId: "g1", Token: "ExponentPushToken[d1]", Platform: domain.PlatformIOS,
	}))
	require.NoError(t, fx.SetToken(ctx, domain.PushToken{
		DeviceId: "d2", GroupId: "g1", Token: "ExponentPushToken[d2]", Platform: domain.PlatformAndroid,
	}))
	require.NoError(t, fx.SetToken(ctx, domain.PushToken{
		DeviceId: "d3", GroupId: "g2", Token: "ExponentPushToken[d3]", Platform: domain.PlatformIOS,
	}))

	// the sender's own device is excluded, other groups are invisible
	tokens, err := fx.GetGroupTokens(ctx, "g1", "d1")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "d2", tokens[0].DeviceId)
}

func TestPushTokenRepo_SetToken_Upsert(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.SetToken(ctx, domain.PushToken{
		DeviceId: "d1", GroupId: "g1", Token: "ExponentPushToken[old]", Platform: domain.PlatformIOS,
	}))
	require.NoError(t, fx.SetToken(ctx, domain.PushToken{
		DeviceId: "d1", GroupId: "g1", Token: "ExponentPushToken[new]", Platform: domain.PlatformIOS,
	}))
	tokens, err := fx.GetGroupTokens(ctx, "g1", "other")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "ExponentPushToken[new]", tokens[0].Token)
}

func newFixture(t testing.TB) *fixture {
	fx := &fixture{
		PushTokenRepo: New(),
		a:             new(app.App),
	}
	fx.a.Register(&testConfig{
		Mongo: db.Mongo{
			Connect:  "mongodb://localhost:27017",
			Database: "sos_unittest",
		},
	}).
		Register(db.New()).
		Register(fx.PushTokenRepo)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		fx.finish(t)
	})
	return fx
}

type fixture struct {
	PushTokenRepo
	a *app.App
}

func (fx *fixture) finish(t testing.TB) {
	_ = fx.PushTokenRepo.(*pushTokenRepo).coll.Drop(ctx)
	require.NoError(t, fx.a.Close(ctx))
}

type testConfig struct {
	Mongo db.Mongo
}

func (t testConfig) Init(a *app.App) (err error) {
	return
}

func (t testConfig) Name() (name string) {
	return "config"
}

func (t testConfig) GetMongo() db.Mongo {
	return t.Mongo
}
