// SPDX-License-Identifier: MIT

package strategy

import (
	"io"
	"log/slog"
)

// Recorder counts evaluator calls.
type Recorder interface {
	ObserveEvaluation()
}

// Option customizes a strategy.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	recorder Recorder
}

func gatherOptions(opts ...Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger attaches a structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("strategy: WithLogger(nil)")
	}

	return func(o *options) { o.logger = l }
}

// WithRecorder reports every evaluation to r. Panics on nil.
func WithRecorder(r Recorder) Option {
	if r == nil {
		panic("strategy: WithRecorder(nil)")
	}

	return func(o *options) { o.recorder = r }
}
