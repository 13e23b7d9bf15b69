package db

import (
	"context"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CName = "db"

type Mongo struct {
	Connect  string `yaml:"connect"`
	Database string `yaml:"database"`
}

type configGetter interface {
	GetMongo() Mongo
}

func New() Database {
	return new(database)
}

type Database interface {
	Db() *mongo.Database
	app.ComponentRunnable
}

type database struct {
	conf   Mongo
	client *mongo.Client
	db     *mongo.Database
}

func (d *database) Init(a *app.App) (err error) {
	d.conf = a.MustComponent("config").(configGetter).GetMongo()
	return
}

func (d *database) Name() (name string) {
	return CName
}

func (d *database) Run(ctx context.Context) (err error) {
	if d.client, err = mongo.Connect(ctx, options.Client().ApplyURI(d.conf.Connect)); err != nil {
		return
	}
	d.db = d.client.Database(d.conf.Database)
	return
}

func (d *database) Db() *mongo.Database {
	return d.db
}

func (d *database) Close(ctx context.Context) (err error) {
	if d.client != nil {
		return d.client.Disconnect(ctx)
	}
	return
}
