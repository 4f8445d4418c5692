// SPDX-License-Identifier: MIT

// Package telemetry owns the Prometheus collectors of a CLI run.
//
// Metrics satisfies propagate.Recorder, strategy.Recorder and
// sweep.Recorder, so one instance can be handed to every engine component.
// The CLI is a batch process, so collectors are exported to a node-exporter
// textfile rather than served over HTTP.
package telemetry

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mcik"

// Metrics groups the collectors on a private registry.
type Metrics struct {
	reg              *prometheus.Registry
	derives          prometheus.Counter
	evaluations      prometheus.Counter
	sweepPoints      *prometheus.CounterVec
	propagateSeconds prometheus.Histogram
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		derives: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derive_total",
			Help:      "One-step Jacobians derived.",
		}),
		evaluations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Strategy evaluator calls.",
		}),
		sweepPoints: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_points_total",
			Help:      "Sweep grid points finished, by whether the growth metric was defined.",
		}, []string{"defined"}),
		propagateSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "propagate_seconds",
			Help:      "Wall time of one kernel propagation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
		}),
	}
}

// Registry exposes the underlying registry, for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveDerive implements propagate.Recorder.
func (m *Metrics) ObserveDerive() { m.derives.Inc() }

// ObservePropagate implements propagate.Recorder.
func (m *Metrics) ObservePropagate(elapsed time.Duration) {
	m.propagateSeconds.Observe(elapsed.Seconds())
}

// ObserveEvaluation implements strategy.Recorder.
func (m *Metrics) ObserveEvaluation() { m.evaluations.Inc() }

// ObserveSweepPoint implements sweep.Recorder.
func (m *Metrics) ObserveSweepPoint(defined bool) {
	m.sweepPoints.WithLabelValues(strconv.FormatBool(defined)).Inc()
}

// WriteTextfile writes every collector in the text exposition format to path.
// An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("telemetry: write %s: %w", path, err)
	}

	return nil
}
