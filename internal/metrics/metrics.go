package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	ViewsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "post_views_total",
			Help: "Total registered post views",
		},
	)

	UpgradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "player_upgrades_total",
			Help: "Total upgrade attempts by outcome",
		},
		[]string{"outcome"}, // ok|insufficient_funds|error
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ViewsTotal)
	prometheus.MustRegister(UpgradesTotal)
	prometheus.MustRegister(WorkerQueueDepth)
}
