package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/fleetwatch/sos-server/api"
	"github.com/fleetwatch/sos-server/config"
	"github.com/fleetwatch/sos-server/db"
	"github.com/fleetwatch/sos-server/issuer"
	"github.com/fleetwatch/sos-server/processor"
	"github.com/fleetwatch/sos-server/processor/provider/expo"
	"github.com/fleetwatch/sos-server/queue"
	"github.com/fleetwatch/sos-server/redisprovider"
	"github.com/fleetwatch/sos-server/repo/devicerepo"
	"github.com/fleetwatch/sos-server/repo/memberrepo"
	"github.com/fleetwatch/sos-server/repo/pushtokenrepo"
	"github.com/fleetwatch/sos-server/repo/queuerepo"
)

var log = logger.NewNamed("main")

var (
	flagConfigFile = flag.String("c", "etc/sos-server.yml", "path to config file")
	flagVersion    = flag.Bool("v", false, "show version and exit")
	flagHelp       = flag.Bool("h", false, "show help and exit")
)

func main() {
	flag.Parse()
	if *flagVersion {
		fmt.Println(app.AppName, app.GitSummary)
		return
	}
	if *flagHelp {
		flag.PrintDefaults()
		return
	}

	conf, err := config.NewFromFile(*flagConfigFile)
	if err != nil {
		log.Fatal("can't open config file", zap.Error(err))
	}

	a := new(app.App)
	bootstrap(a, conf)

	ctx := context.Background()
	if err = a.Start(ctx); err != nil {
		log.Fatal("can't start app", zap.Error(err))
	}
	log.Info("app started", zap.String("version", app.GitSummary))

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGABRT, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-exit
	log.Info("received exit signal, stopping app", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err = a.Close(ctx); err != nil {
		log.Fatal("close error", zap.Error(err))
	}
	log.Info("goodbye!")
}

func bootstrap(a *app.App, conf *config.Config) {
	a.Register(conf).
		Register(db.New()).
		Register(redisprovider.New()).
		Register(devicerepo.New()).
		Register(memberrepo.New()).
		Register(pushtokenrepo.New()).
		Register(queuerepo.New()).
		Register(queue.New()).
		Register(processor.New()).
		Register(expo.New()).
		Register(issuer.New()).
		Register(api.New())
}
