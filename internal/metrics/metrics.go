package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BundlesGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bundles_generated_total", Help: "Bundles produced by the engine"},
	)
	BundlesDropped = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bundles_dropped_total", Help: "Bundles dropped for slow subscribers"},
	)
	Subscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "subscribers", Help: "Currently connected stream subscribers"},
	)
	ConfigUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "config_updates_total", Help: "Accepted configuration updates"},
	)
)

func init() {
	prometheus.MustRegister(BundlesGenerated, BundlesDropped, Subscribers, ConfigUpdates)
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
