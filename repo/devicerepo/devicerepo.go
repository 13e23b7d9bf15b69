//go:generate mockgen -destination mock_devicerepo/mock_devicerepo.go github.com/fleetwatch/sos-server/repo/devicerepo DeviceRepo

package devicerepo

import (
	"context"
	"errors"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fleetwatch/sos-server/db"
	"github.com/fleetwatch/sos-server/domain"
)

const CName = "sos.devicerepo"

const collName = "devices"

var (
	ErrDeviceNotFound = errors.New("device not found")
)

func New() DeviceRepo {
	return new(deviceRepo)
}

type DeviceRepo interface {
	GetDevice(ctx context.Context, deviceId string) (device domain.Device, err error)
	app.ComponentRunnable
}

type deviceRepo struct {
	coll *mongo.Collection
}

func (r *deviceRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *deviceRepo) Name() (name string) {
	return CName
}

func (r *deviceRepo) Run(ctx context.Context) error {
	return nil
}

func (r *deviceRepo) GetDevice(ctx context.Context, deviceId string) (device domain.Device, err error) {
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: deviceId}}).Decode(&device)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = ErrDeviceNotFound
	}
	return
}

func (r *deviceRepo) Close(ctx context.Context) error {
	return nil
}
