package processor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	itemsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sos",
		Subsystem: "processor",
		Name:      "items_total",
		Help:      "queue items by terminal status",
	}, []string{"status"})
	messagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sos",
		Subsystem: "processor",
		Name:      "messages_sent_total",
		Help:      "push messages acknowledged by the gateway",
	})
)
