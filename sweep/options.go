// SPDX-License-Identifier: MIT

package sweep

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/propagate"
)

// Recorder receives per-run and per-point observations.
// It must be safe for concurrent use.
type Recorder interface {
	propagate.Recorder

	// ObserveSweepPoint is called once per finished grid point.
	ObserveSweepPoint(defined bool)
}

// Option customizes Run.
type Option func(*options)

type options struct {
	workers  int
	logger   *slog.Logger
	recorder Recorder
	squash   lattice.Squash
}

func gatherOptions(opts ...Option) options {
	o := options{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		squash:  lattice.Tanh,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithWorkers bounds the number of concurrent points. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("sweep: WithWorkers(n < 1)")
	}

	return func(o *options) { o.workers = n }
}

// WithLogger attaches a structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("sweep: WithLogger(nil)")
	}

	return func(o *options) { o.logger = l }
}

// WithMetrics reports derive counts, run durations and points to r. Panics on nil.
func WithMetrics(r Recorder) Option {
	if r == nil {
		panic("sweep: WithMetrics(nil)")
	}

	return func(o *options) { o.recorder = r }
}

// WithSquash selects the lattice nonlinearity for every point. Panics on nil.
func WithSquash(fn lattice.Squash) Option {
	if fn == nil {
		panic("sweep: WithSquash(nil)")
	}

	return func(o *options) { o.squash = fn }
}
