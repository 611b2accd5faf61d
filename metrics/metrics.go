// Package metrics records solver activity in a private prometheus registry so
// batch runs can dump a textfile for a node exporter collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mathieu"

type Collector struct {
	Registry      *prometheus.Registry
	Samples       *prometheus.CounterVec
	Failures      prometheus.Counter
	Ambiguities   prometheus.Counter
	Truncation    prometheus.Counter
	Continuation  prometheus.Counter
	SolveDuration prometheus.Histogram
}

func NewCollector() (c *Collector) {
	c = &Collector{
		Registry: prometheus.NewRegistry(),
		Samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_solved_total",
			Help:      "Eigen-decompositions completed, by method.",
		}, []string{"method"}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sample_failures_total",
			Help:      "Samples whose eigen-decomposition failed.",
		}),
		Ambiguities: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "branch_ambiguities_total",
			Help:      "Tracking steps where rival branches could not be separated.",
		}),
		Truncation: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "truncation_warnings_total",
			Help:      "Harmonics whose trailing coefficient exceeded the truncation tolerance.",
		}),
		Continuation: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "continuation_steps_total",
			Help:      "Eigenvalue-only solves inserted between samples for tracking.",
		}),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sample_solve_seconds",
			Help:      "Wall time of a single sample eigen-decomposition.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}
	c.Registry.MustRegister(c.Samples, c.Failures, c.Ambiguities, c.Truncation,
		c.Continuation, c.SolveDuration)
	return
}

// The Observe helpers accept a nil receiver so callers need no guard.

func (c *Collector) ObserveSolve(method string, seconds float64) {
	if c == nil {
		return
	}
	c.Samples.WithLabelValues(method).Inc()
	c.SolveDuration.Observe(seconds)
}

func (c *Collector) ObserveFailure() {
	if c == nil {
		return
	}
	c.Failures.Inc()
}

func (c *Collector) ObserveAmbiguity() {
	if c == nil {
		return
	}
	c.Ambiguities.Inc()
}

func (c *Collector) ObserveTruncation() {
	if c == nil {
		return
	}
	c.Truncation.Inc()
}

func (c *Collector) ObserveContinuation(steps int) {
	if c == nil || steps == 0 {
		return
	}
	c.Continuation.Add(float64(steps))
}

// WriteTextfile writes the registry in the text exposition format
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.Registry)
}
