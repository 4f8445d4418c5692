// SPDX-License-Identifier: MIT

package seed

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mcik/lattice"
)

const tau = 2 * math.Pi

// Poke is a micro-cause: Value added to the state at Site.
type Poke struct {
	Site  int     `json:"site" yaml:"site"`
	Value float64 `json:"value" yaml:"value"`
}

// String renders the poke as "site=value", the CLI flag form.
func (p Poke) String() string { return fmt.Sprintf("%d=%g", p.Site, p.Value) }

// Zero returns n zeros.
func Zero(n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("Zero(%d): %w", n, ErrBadLength)
	}

	return make([]float64, n), nil
}

// WithPokes returns the zero state of length n with every poke added.
// Pokes at the same site accumulate.
//
// Errors:
//   - ErrBadLength, ErrSiteOutOfRange, ErrNonFinite.
func WithPokes(n int, pokes []Poke) ([]float64, error) {
	out, err := Zero(n)
	if err != nil {
		return nil, err
	}
	if err = Apply(out, pokes); err != nil {
		return nil, fmt.Errorf("WithPokes: %w", err)
	}

	return out, nil
}

// Apply adds every poke to state in place. On error state is untouched.
//
// Errors:
//   - ErrSiteOutOfRange, ErrNonFinite.
func Apply(state []float64, pokes []Poke) error {
	for _, p := range pokes {
		if p.Site < 0 || p.Site >= len(state) {
			return fmt.Errorf("poke %v on %d sites: %w", p, len(state), ErrSiteOutOfRange)
		}
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return fmt.Errorf("poke %v: %w", p, ErrNonFinite)
		}
	}
	for _, p := range pokes {
		state[p.Site] += p.Value
	}

	return nil
}

// Pulse returns a length-n pulse train.
//
//   - Rectangular (default): A when frac(i·f) < duty, 0 otherwise.
//   - Triangular: A·(1 − |2·frac(i·f) − 1|).
//
// A linear trend k·i is added when WithTrend is set.
//
// Complexity: O(n).
func Pulse(n int, opts ...Option) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("Pulse(%d): %w", n, ErrBadLength)
	}
	p := gather(opts...)
	out := make([]float64, n)

	var frac, v float64
	for i := range out {
		frac = math.Mod(float64(i)*p.freq, 1)
		switch {
		case p.triangular:
			v = p.amp * (1 - math.Abs(2*frac-1))
		case frac < p.duty:
			v = p.amp
		default:
			v = 0
		}
		out[i] = v + p.trend*float64(i)
	}

	return out, nil
}

// Chirp returns A·sin(θᵢ) where θ accumulates 2π·fᵢ and fᵢ sweeps linearly
// from f0 at i=0 to f1 at i=n−1.
//
// Complexity: O(n).
func Chirp(n int, opts ...Option) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("Chirp(%d): %w", n, ErrBadLength)
	}
	p := gather(opts...)
	out := make([]float64, n)

	var theta, t float64
	for i := range out {
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		theta += tau * (p.f0 + (p.f1-p.f0)*t)
		out[i] = p.amp*math.Sin(theta) + p.trend*float64(i)
	}

	return out, nil
}

// As converts a float64 state to the lattice scalar type.
func As[T lattice.Float](xs []float64) []T {
	out := make([]T, len(xs))
	for i, v := range xs {
		out[i] = T(v)
	}

	return out
}

// Float64 widens a lattice state to float64.
func Float64[T lattice.Float](xs []T) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = float64(v)
	}

	return out
}
