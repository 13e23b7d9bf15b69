package issuer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var tokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sos",
	Subsystem: "issuer",
	Name:      "tokens_total",
	Help:      "issued channel tokens by role",
}, []string{"role"})
