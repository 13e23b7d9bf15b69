//go:generate mockgen -destination mock_queuerepo/mock_queuerepo.go github.com/fleetwatch/sos-server/repo/queuerepo QueueRepo

package queuerepo

import (
	"context"
	"errors"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fleetwatch/sos-server/db"
	"github.com/fleetwatch/sos-server/domain"
)

const CName = "sos.queuerepo"

const collName = "sos_notification_queue"

var (
	ErrItemNotFound = errors.New("queue item not found")
	// ErrNotPending means the item was already claimed or finished by a
	// concurrent run.
	ErrNotPending = errors.New("queue item is not pending")
)

const pendingBatchLimit = 10

func New() QueueRepo {
	return new(queueRepo)
}

type QueueRepo interface {
	Enqueue(ctx context.Context, payload domain.SOSPayload) (item domain.QueueItem, err error)
	GetById(ctx context.Context, id string) (item domain.QueueItem, err error)
	// GetPending returns up to pendingBatchLimit pending items, oldest first.
	GetPending(ctx context.Context) (items []domain.QueueItem, err error)
	// MarkProcessing claims the item with a single conditional update; only
	// a still-pending item can be claimed, which is the sole double-send
	// guard under concurrent processor runs.
	MarkProcessing(ctx context.Context, id string) (err error)
	// Finish records the terminal status with the aggregated error message
	// (empty on success) and the processing timestamp.
	Finish(ctx context.Context, id string, status domain.QueueStatus, errorMessage string) (err error)
	app.ComponentRunnable
}

type queueRepo struct {
	coll *mongo.Collection
}

func (r *queueRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *queueRepo) Name() (name string) {
	return CName
}

func (r *queueRepo) Run(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	return err
}

func (r *queueRepo) Enqueue(ctx context.Context, payload domain.SOSPayload) (item domain.QueueItem, err error) {
	item = domain.QueueItem{
		Id:        uuid.NewString(),
		Payload:   payload,
		Status:    domain.QueueStatusPending,
		CreatedAt: time.Now().Unix(),
	}
	_, err = r.coll.InsertOne(ctx, item)
	return
}

func (r *queueRepo) GetById(ctx context.Context, id string) (item domain.QueueItem, err error) {
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = ErrItemNotFound
	}
	return
}

func (r *queueRepo) GetPending(ctx context.Context) (items []domain.QueueItem, err error) {
	cur, err := r.coll.Find(
		ctx,
		bson.D{{Key: "status", Value: domain.QueueStatusPending}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(pendingBatchLimit),
	)
	if err != nil {
		return
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	err = cur.All(ctx, &items)
	return
}

func (r *queueRepo) MarkProcessing(ctx context.Context, id string) (err error) {
	res, err := r.coll.UpdateOne(
		ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "status", Value: domain.QueueStatusPending}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: domain.QueueStatusProcessing}}}},
	)
	if err != nil {
		return
	}
	if res.MatchedCount == 0 {
		return ErrNotPending
	}
	return
}

func (r *queueRepo) Finish(ctx context.Context, id string, status domain.QueueStatus, errorMessage string) (err error) {
	set := bson.D{
		{Key: "status", Value: status},
		{Key: "processedAt", Value: time.Now().Unix()},
	}
	update := bson.D{{Key: "$set", Value: set}}
	if errorMessage != "" {
		set = append(set, bson.E{Key: "errorMessage", Value: errorMessage})
		update = bson.D{{Key: "$set", Value: set}}
	} else {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "errorMessage", Value: ""}}})
	}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return
	}
	if res.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return
}

func (r *queueRepo) Close(ctx context.Context) error {
	return nil
}
