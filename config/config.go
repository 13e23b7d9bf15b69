package config

import (
	"os"

	"github.com/anyproto/any-sync/app"
	"gopkg.in/yaml.v3"

	"github.com/fleetwatch/sos-server/api"
	"github.com/fleetwatch/sos-server/db"
	"github.com/fleetwatch/sos-server/issuer"
	"github.com/fleetwatch/sos-server/processor/provider/expo"
	"github.com/fleetwatch/sos-server/redisprovider"
)

const CName = "config"

func NewFromFile(path string) (c *Config, err error) {
	c = &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return
}

type Config struct {
	Mongo db.Mongo             `yaml:"mongo"`
	Redis redisprovider.Config `yaml:"redis"`
	Rtc   issuer.Config        `yaml:"rtc"`
	Expo  expo.Config          `yaml:"expo"`
	Api   api.Config           `yaml:"api"`
}

func (c *Config) Init(a *app.App) (err error) {
	return nil
}

func (c *Config) Name() (name string) {
	return CName
}

func (c *Config) GetMongo() db.Mongo {
	return c.Mongo
}

func (c *Config) GetRedis() redisprovider.Config {
	return c.Redis
}

func (c *Config) GetRtc() issuer.Config {
	return c.Rtc
}

func (c *Config) GetExpo() expo.Config {
	return c.Expo
}

func (c *Config) GetApi() api.Config {
	return c.Api
}
