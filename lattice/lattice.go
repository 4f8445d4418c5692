// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"
	"log/slog"
	"math"
)

// MinSize is the smallest ring on which every site has two distinct neighbours.
const MinSize = 3

// Lattice is a ring of N sites with fixed couplings α (self) and β (neighbours).
//
// State machine:
//
//	New/Reset → StateSet → Forward → StateSet ...
//
// Every Forward and Reset bumps Generation; kernels derived earlier become stale.
type Lattice[T Float] struct {
	size    int
	alpha   T
	beta    T
	squash  Squash
	state   []T // live state g(t)
	scratch []T // next-state buffer, swapped with state on Forward
	gen     uint64
	logger  *slog.Logger
}

// New constructs a lattice of size sites with couplings alpha and beta,
// initialized to the all-zero state.
//
// Errors:
//   - ErrInvalidArgument if size < MinSize or alpha/beta is NaN or ±Inf.
//
// Complexity: O(N).
func New[T Float](size int, alpha, beta T, opts ...Option) (*Lattice[T], error) {
	if size < MinSize {
		return nil, fmt.Errorf("New: size %d < %d: %w", size, MinSize, ErrInvalidArgument)
	}
	if !finite(float64(alpha)) || !finite(float64(beta)) {
		return nil, fmt.Errorf("New: alpha=%v beta=%v must be finite: %w", alpha, beta, ErrInvalidArgument)
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return &Lattice[T]{
		size:    size,
		alpha:   alpha,
		beta:    beta,
		squash:  o.squash,
		state:   make([]T, size),
		scratch: make([]T, size),
		logger:  o.logger,
	}, nil
}

// Size returns N.
func (l *Lattice[T]) Size() int { return l.size }

// Alpha returns the self-coupling α.
func (l *Lattice[T]) Alpha() T { return l.alpha }

// Beta returns the neighbour coupling β.
func (l *Lattice[T]) Beta() T { return l.beta }

// Generation returns the number of state mutations (Forward or Reset) so far.
func (l *Lattice[T]) Generation() uint64 { return l.gen }

// Logger returns the lattice logger so collaborators can share it.
func (l *Lattice[T]) Logger() *slog.Logger { return l.logger }

// State returns a copy of the current state.
func (l *Lattice[T]) State() []T {
	out := make([]T, l.size)
	copy(out, l.state)

	return out
}

// StateInto copies the current state into dst (len(dst) must be N).
func (l *Lattice[T]) StateInto(dst []T) error {
	if len(dst) != l.size {
		return fmt.Errorf("StateInto: len %d, want %d: %w", len(dst), l.size, ErrInvalidArgument)
	}
	copy(dst, l.state)

	return nil
}

// Reset replaces the whole state with a copy of values.
// On error the previous state is untouched.
//
// Errors:
//   - ErrInvalidArgument if len(values) != N or any entry is NaN/±Inf.
func (l *Lattice[T]) Reset(values []T) error {
	if len(values) != l.size {
		return fmt.Errorf("Reset: len %d, want %d: %w", len(values), l.size, ErrInvalidArgument)
	}
	for i, v := range values {
		if !finite(float64(v)) {
			return fmt.Errorf("Reset: site %d = %v: %w", i, v, ErrInvalidArgument)
		}
	}
	copy(l.state, values)
	l.gen++

	return nil
}

// Forward advances every site simultaneously by one step.
// The next state is computed from the pre-step state only.
// Complexity: O(N).
func (l *Lattice[T]) Forward() {
	l.apply(l.scratch, l.state)
	l.state, l.scratch = l.scratch, l.state
	l.gen++
}

// ForwardSteps applies Forward k times; k == 0 is a no-op.
//
// Errors:
//   - ErrInvalidArgument if k < 0.
//
// Complexity: O(k·N).
func (l *Lattice[T]) ForwardSteps(k int) error {
	if k < 0 {
		return fmt.Errorf("ForwardSteps(%d): %w", k, ErrInvalidArgument)
	}
	for s := 0; s < k; s++ {
		l.Forward()
	}
	l.logger.Debug("lattice advanced", "steps", k, "generation", l.gen)

	return nil
}

// Apply writes the one-step image of src into dst without touching the
// live state. dst and src must both have length N and must not alias.
//
// Errors:
//   - ErrInvalidArgument on a length mismatch.
//
// Complexity: O(N).
func (l *Lattice[T]) Apply(dst, src []T) error {
	if len(dst) != l.size || len(src) != l.size {
		return fmt.Errorf("Apply: len(dst)=%d len(src)=%d, want %d: %w", len(dst), len(src), l.size, ErrInvalidArgument)
	}
	l.apply(dst, src)

	return nil
}

// ApplySite returns the one-step image of src at site i only.
// Second-order probes need a single output row, so this avoids an O(N) pass.
//
// Errors:
//   - ErrInvalidArgument on a length mismatch or i outside [0,N).
func (l *Lattice[T]) ApplySite(i int, src []T) (T, error) {
	if len(src) != l.size {
		return 0, fmt.Errorf("ApplySite: len(src)=%d, want %d: %w", len(src), l.size, ErrInvalidArgument)
	}
	if i < 0 || i >= l.size {
		return 0, fmt.Errorf("ApplySite: site %d: %w", i, ErrInvalidArgument)
	}

	return l.site(i, src), nil
}

// apply is the unchecked update rule.
func (l *Lattice[T]) apply(dst, src []T) {
	for i := 0; i < l.size; i++ {
		dst[i] = l.site(i, src)
	}
}

// site evaluates squash(α·g_i + β·(g_{i-1}+g_{i+1})) with ring wrap-around.
func (l *Lattice[T]) site(i int, src []T) T {
	left := i - 1
	if left < 0 {
		left = l.size - 1
	}
	right := i + 1
	if right == l.size {
		right = 0
	}
	linear := l.alpha*src[i] + l.beta*(src[left]+src[right])

	return T(l.squash(float64(linear)))
}

// finite reports whether v is neither NaN nor ±Inf.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
