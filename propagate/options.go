// SPDX-License-Identifier: MIT

package propagate

import (
	"io"
	"log/slog"
	"time"
)

// Recorder receives counters from a propagation run.
// Implementations must be safe for concurrent use when shared across runs.
type Recorder interface {
	// ObserveDerive is called once per derived one-step Jacobian.
	ObserveDerive()

	// ObservePropagate is called once per completed run.
	ObservePropagate(elapsed time.Duration)
}

// Option customizes a Propagate call.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	recorder Recorder
	keepPath bool
}

func defaultOptions() options {
	return options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		keepPath: true,
	}
}

// WithLogger attaches a structured logger; one debug record is emitted per step.
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("propagate: WithLogger(nil)")
	}

	return func(o *options) { o.logger = l }
}

// WithRecorder reports derive counts and run durations to r.
// Panics on nil.
func WithRecorder(r Recorder) Option {
	if r == nil {
		panic("propagate: WithRecorder(nil)")
	}

	return func(o *options) { o.recorder = r }
}

// WithoutTrajectory skips recording intermediate states; Result.Trajectory
// then holds only the final state.
func WithoutTrajectory() Option {
	return func(o *options) { o.keepPath = false }
}
