//go:generate mockgen -destination mock_memberrepo/mock_memberrepo.go github.com/fleetwatch/sos-server/repo/memberrepo MemberRepo

package memberrepo

import (
	"context"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fleetwatch/sos-server/db"
)

const CName = "sos.memberrepo"

const collName = "group_members"

func New() MemberRepo {
	return new(memberRepo)
}

type MemberRepo interface {
	IsMember(ctx context.Context, userId, groupId string) (ok bool, err error)
	app.ComponentRunnable
}

type memberRepo struct {
	coll *mongo.Collection
}

func (r *memberRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *memberRepo) Name() (name string) {
	return CName
}

func (r *memberRepo) Run(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "groupId", Value: 1}, {Key: "userId", Value: 1}},
	})
	return err
}

func (r *memberRepo) IsMember(ctx context.Context, userId, groupId string) (ok bool, err error) {
	count, err := r.coll.CountDocuments(ctx, bson.D{
		{Key: "groupId", Value: groupId},
		{Key: "userId", Value: userId},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *memberRepo) Close(ctx context.Context) error {
	return nil
}
