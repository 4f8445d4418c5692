// SPDX-License-Identifier: MIT

package lattice

import (
	"io"
	"log/slog"
)

// Option customizes a Lattice at construction time.
// Option constructors panic on nil arguments (programmer error).
type Option func(*options)

type options struct {
	squash Squash
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		squash: Tanh,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSquash replaces the default tanh nonlinearity.
func WithSquash(fn Squash) Option {
	if fn == nil {
		panic("lattice: WithSquash(nil)")
	}

	return func(o *options) { o.squash = fn }
}

// WithLogger attaches a structured logger. The default discards records.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("lattice: WithLogger(nil)")
	}

	return func(o *options) { o.logger = l }
}
