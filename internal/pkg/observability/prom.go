package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "rollodds"
)

var (
	Calculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "odds", "calculations_total"),
		Help: "Odds calculations by operation and outcome",
	}, []string{"operation", "outcome"})
	TableReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "refdata", "reloads_total"),
		Help: "Reference table reloads by result",
	}, []string{"result"})
	SimulationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "odds", "simulation_duration_seconds"),
		Help:    "Duration of Monte Carlo cross-checks in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})
)

// Outcome labels a calculation result for the Calculations counter.
func Outcome(err error) string {
	if err != nil {
		return "invalid"
	}
	return "ok"
}
