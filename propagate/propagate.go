// SPDX-License-Identifier: MIT

package propagate

import (
	"fmt"
	"time"

	"github.com/katalvlaran/mcik/kernel"
	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/matrix"
)

// Result is the outcome of an n-step propagation.
type Result[T lattice.Float] struct {
	// Kernel is K⁽ⁿ⁾ = J⁽ⁿ⁻¹⁾···J⁽⁰⁾; the identity when Steps == 0.
	Kernel *matrix.Dense

	// Steps is n.
	Steps int

	// Trajectory holds the states g(0)..g(n), or only g(n) under WithoutTrajectory.
	Trajectory [][]T
}

// Propagate resets lat to initial and accumulates the influence kernel over n steps.
//
// Implementation:
//   - Stage 1: Reset(initial); K ← I.
//   - Stage 2: for t in [0,n): Derive at g(t), K ← J⁽ᵗ⁾·K, Forward.
//   - Stage 3: snapshot the trajectory.
//
// Each J⁽ᵗ⁾ is taken at the state before step t, so K⁽ⁿ⁾ is the exact
// chronological product of per-step finite-difference Jacobians.
//
// Errors:
//   - ErrInvalidArgument if n < 0, or if initial is rejected by Reset.
//   - ErrNilLattice (kernel) if lat is nil.
//   - a Derive, Kernel or Mul error at step t; lat is then left at g(t) and
//     no Result is returned. Reset lat before reusing it.
//
// Complexity: O(n·N³) time (dense product per step), O(N²) memory plus O(n·N) for the trajectory.
func Propagate[T lattice.Float](lat *lattice.Lattice[T], initial []T, n int, opts ...Option) (*Result[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("Propagate: steps %d: %w", n, ErrInvalidArgument)
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	est, err := kernel.NewEstimator(lat)
	if err != nil {
		return nil, fmt.Errorf("Propagate: %w", err)
	}
	if err = lat.Reset(initial); err != nil {
		return nil, fmt.Errorf("Propagate: %w", err)
	}
	acc, err := matrix.Identity(lat.Size())
	if err != nil {
		return nil, fmt.Errorf("Propagate: %w", err)
	}

	start := time.Now()
	res := &Result[T]{Steps: n}
	if o.keepPath {
		res.Trajectory = make([][]T, 0, n+1)
		res.Trajectory = append(res.Trajectory, lat.State())
	}

	var j *matrix.Dense
	for t := 0; t < n; t++ {
		if err = est.Derive(); err != nil {
			return nil, fmt.Errorf("Propagate: step %d: %w", t, err)
		}
		if o.recorder != nil {
			o.recorder.ObserveDerive()
		}
		if j, err = est.Kernel(); err != nil {
			return nil, fmt.Errorf("Propagate: step %d: %w", t, err)
		}
		if acc, err = matrix.Mul(j, acc); err != nil {
			return nil, fmt.Errorf("Propagate: step %d: %w", t, err)
		}
		lat.Forward()
		if o.keepPath {
			res.Trajectory = append(res.Trajectory, lat.State())
		}
		o.logger.Debug("propagate step", "step", t+1, "of", n)
	}
	if !o.keepPath {
		res.Trajectory = [][]T{lat.State()}
	}
	res.Kernel = acc

	if o.recorder != nil {
		o.recorder.ObservePropagate(time.Since(start))
	}
	o.logger.Debug("propagate done", "steps", n, "size", lat.Size(), "elapsed", time.Since(start))

	return res, nil
}

// Apply returns K⁽ⁿ⁾·delta: the step-n effect of a time-0 perturbation.
//
// Errors:
//   - matrix.ErrDimensionMismatch if len(delta) != N.
func (r *Result[T]) Apply(delta []float64) ([]float64, error) {
	out, err := matrix.MatVec(r.Kernel, delta)
	if err != nil {
		return nil, fmt.Errorf("Apply: %w", err)
	}

	return out, nil
}

// Growth returns Λ for a micro-cause at origin over the propagated steps.
func (r *Result[T]) Growth(origin int) (float64, error) {
	return Growth(r.Kernel, origin, r.Steps)
}

// Final returns the state g(n).
func (r *Result[T]) Final() []T {
	return r.Trajectory[len(r.Trajectory)-1]
}
