// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"

	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/matrix"
)

// Estimator derives the Jacobian of one lattice step at the lattice's
// current state and answers second-order queries at that same state.
//
// An Estimator is bound to one lattice and shares its single-owner model.
// The derived kernel stays valid until the lattice's next Forward or Reset.
type Estimator[T lattice.Float] struct {
	lat     *lattice.Lattice[T]
	k       *matrix.Dense // K[i][j] = ∂next_i/∂current_j
	base    []T           // state snapshot taken by the last Derive
	gen     uint64        // lattice generation at the last Derive
	derived bool

	// probe buffers, reused across Derive calls
	plus, minus         []T
	nextPlus, nextMinus []T
	col                 []float64
}

// NewEstimator binds an estimator to lat. No kernel exists until Derive.
//
// Errors:
//   - ErrNilLattice if lat is nil.
//
// Complexity: O(N²) memory for the kernel.
func NewEstimator[T lattice.Float](lat *lattice.Lattice[T]) (*Estimator[T], error) {
	if lat == nil {
		return nil, ErrNilLattice
	}
	n := lat.Size()
	k, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("NewEstimator: %w", err)
	}

	return &Estimator[T]{
		lat:       lat,
		k:         k,
		base:      make([]T, n),
		plus:      make([]T, n),
		minus:     make([]T, n),
		nextPlus:  make([]T, n),
		nextMinus: make([]T, n),
		col:       make([]float64, n),
	}, nil
}

// Lattice returns the bound lattice.
func (e *Estimator[T]) Lattice() *lattice.Lattice[T] { return e.lat }

// Stale reports whether reads would fail with ErrStaleKernel.
func (e *Estimator[T]) Stale() bool {
	return !e.derived || e.gen != e.lat.Generation()
}

// Derive estimates every column of K at the current lattice state.
//
// Implementation:
//   - Stage 1: snapshot the live state and its generation.
//   - Stage 2: for each j, probe g ± ε·e_j through the pure one-step map.
//   - Stage 3: column j = (next⁺ − next⁻)/(x⁺_j − x⁻_j), the realized 2ε.
//
// The live state is never mutated.
//
// Complexity: O(N²) time, O(N) scratch.
func (e *Estimator[T]) Derive() error {
	n := e.lat.Size()
	e.derived = false
	if err := e.lat.StateInto(e.base); err != nil {
		return fmt.Errorf("Derive: %w", err)
	}
	eps := T(lattice.Epsilon[T]())

	var (
		i, j  int
		delta float64
		err   error
	)
	for j = 0; j < n; j++ {
		copy(e.plus, e.base)
		copy(e.minus, e.base)
		e.plus[j] += eps
		e.minus[j] -= eps
		if err = e.lat.Apply(e.nextPlus, e.plus); err != nil {
			return fmt.Errorf("Derive: column %d: %w", j, err)
		}
		if err = e.lat.Apply(e.nextMinus, e.minus); err != nil {
			return fmt.Errorf("Derive: column %d: %w", j, err)
		}
		delta = float64(e.plus[j]) - float64(e.minus[j])
		for i = 0; i < n; i++ {
			e.col[i] = (float64(e.nextPlus[i]) - float64(e.nextMinus[i])) / delta
		}
		if err = e.k.SetCol(j, e.col); err != nil {
			return fmt.Errorf("Derive: column %d: %w", j, err)
		}
	}
	e.gen = e.lat.Generation()
	e.derived = true
	e.lat.Logger().Debug("kernel derived", "size", n, "generation", e.gen)

	return nil
}

// Column returns a copy of column j of the last derived kernel: the
// response of every site to a micro-cause at site j.
//
// Errors:
//   - ErrStaleKernel before any Derive or after the lattice moved on.
//   - ErrOutOfRange if j ∉ [0,N).
//
// Complexity: O(N).
func (e *Estimator[T]) Column(j int) ([]float64, error) {
	if e.Stale() {
		return nil, fmt.Errorf("Column(%d): %w", j, ErrStaleKernel)
	}
	if j < 0 || j >= e.lat.Size() {
		return nil, fmt.Errorf("Column(%d): %w", j, ErrOutOfRange)
	}

	return e.k.Col(j)
}

// Kernel returns a deep copy of the last derived kernel.
//
// Errors:
//   - ErrStaleKernel before any Derive or after the lattice moved on.
//
// Complexity: O(N²).
func (e *Estimator[T]) Kernel() (*matrix.Dense, error) {
	if e.Stale() {
		return nil, fmt.Errorf("Kernel: %w", ErrStaleKernel)
	}

	return e.k.CloneDense(), nil
}

// BaseState returns a copy of the state the kernel was derived at.
//
// Errors:
//   - ErrStaleKernel before any Derive or after the lattice moved on.
func (e *Estimator[T]) BaseState() ([]T, error) {
	if e.Stale() {
		return nil, fmt.Errorf("BaseState: %w", ErrStaleKernel)
	}
	out := make([]T, len(e.base))
	copy(out, e.base)

	return out, nil
}
