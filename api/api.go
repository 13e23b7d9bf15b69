package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fleetwatch/sos-server/issuer"
	"github.com/fleetwatch/sos-server/processor"
	"github.com/fleetwatch/sos-server/queue"
	"github.com/fleetwatch/sos-server/repo/queuerepo"
)

const CName = "api"

var log = logger.NewNamed(CName)

type Config struct {
	ListenAddr string `yaml:"listenAddr"`
	JwtSecret  string `yaml:"jwtSecret"`
	// ServiceKey guards the processor and trigger endpoints when set; they
	// are called by internal schedulers, not end users.
	ServiceKey string `yaml:"serviceKey"`
}

type configSource interface {
	GetApi() Config
}

func New() Api {
	return new(api)
}

type Api interface {
	app.ComponentRunnable
}

type api struct {
	conf      Config
	issuer    issuer.Issuer
	processor processor.Processor
	queueRepo queuerepo.QueueRepo
	queue     queue.Queue
	srv       *http.Server
}

func (a *api) Init(ap *app.App) (err error) {
	a.conf = ap.MustComponent("config").(configSource).GetApi()
	a.issuer = ap.MustComponent(issuer.CName).(issuer.Issuer)
	a.processor = ap.MustComponent(processor.CName).(processor.Processor)
	a.queueRepo = ap.MustComponent(queuerepo.CName).(queuerepo.QueueRepo)
	a.queue = ap.MustComponent(queue.CName).(queue.Queue)

	a.srv = &http.Server{
		Addr:              a.conf.ListenAddr,
		Handler:           a.router(),
		ReadHeaderTimeout: time.Second * 10,
	}
	return
}

func (a *api) router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/token", a.tokenProbe).Methods(http.MethodGet)
	r.HandleFunc("/token", a.withAuth(a.issueToken)).Methods(http.MethodPost)
	r.HandleFunc("/process", a.processProbe).Methods(http.MethodGet)
	r.HandleFunc("/process", a.withServiceKey(a.process)).Methods(http.MethodPost)
	r.HandleFunc("/sos", a.withServiceKey(a.trigger)).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

func (a *api) Name() (name string) {
	return CName
}

func (a *api) Run(ctx context.Context) (err error) {
	go func() {
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", zap.Error(err))
		}
	}()
	log.Info("api listening", zap.String("addr", a.conf.ListenAddr))
	return
}

func (a *api) Close(ctx context.Context) (err error) {
	if a.srv != nil {
		return a.srv.Shutdown(ctx)
	}
	return
}
