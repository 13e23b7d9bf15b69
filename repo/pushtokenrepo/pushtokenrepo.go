//go:generate mockgen -destination mock_pushtokenrepo/mock_pushtokenrepo.go github.com/fleetwatch/sos-server/repo/pushtokenrepo PushTokenRepo

package pushtokenrepo

import (
	"context"
	"time"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fleetwatch/sos-server/db"
	"github.com/fleetwatch/sos-server/domain"
)

const CName = "sos.pushtokenrepo"

const collName = "push_tokens"

func New() PushTokenRepo {
	return new(pushTokenRepo)
}

type PushTokenRepo interface {
	SetToken(ctx context.Context, token domain.PushToken) (err error)
	// GetGroupTokens returns the push tokens of every device in the group
	// except excludeDeviceId: a device never notifies itself.
	GetGroupTokens(ctx context.Context, groupId, excludeDeviceId string) (tokens []domain.PushToken, err error)
	app.ComponentRunnable
}

type pushTokenRepo struct {
	coll *mongo.Collection
}

func (r *pushTokenRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *pushTokenRepo) Name() (name string) {
	return CName
}

func (r *pushTokenRepo) Run(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "groupId", Value: 1}},
	})
	return err
}

func (r *pushTokenRepo) SetToken(ctx context.Context, token domain.PushToken) (err error) {
	opts := options.Update().SetUpsert(true)
	_, err = r.coll.UpdateByID(
		ctx,
		token.DeviceId,
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "groupId", Value: token.GroupId},
			{Key: "token", Value: token.Token},
			{Key: "platform", Value: token.Platform},
			{Key: "updated", Value: time.Now().Unix()},
		}}},
		opts,
	)
	return
}

func (r *pushTokenRepo) GetGroupTokens(ctx context.Context, groupId, excludeDeviceId string) (tokens []domain.PushToken, err error) {
	cur, err := r.coll.Find(ctx, bson.D{
		{Key: "groupId", Value: groupId},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: excludeDeviceId}}},
	})
	if err != nil {
		return
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	err = cur.All(ctx, &tokens)
	return
}

func (r *pushTokenRepo) Close(ctx context.Context) error {
	return nil
}
