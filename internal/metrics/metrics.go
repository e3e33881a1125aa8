package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	OpensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emailtracker_opens_total",
			Help: "Email open events by tenant and outcome",
		},
		[]string{"tenant", "outcome"}, // created|updated|invalid|error
	)

	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "emailtracker_store_duration_seconds",
			Help:    "Latency of the atomic record-open store call",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver"},
	)
)

// Register adds the collectors to r. Registering twice on the same registerer is a no-op.
func Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{OpensTotal, StoreDuration} {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
