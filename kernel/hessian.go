// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"

	"github.com/katalvlaran/mcik/lattice"
)

// Hessian estimates ∂²next_i/∂g_a∂g_b at the state of the last Derive.
//
// Stencil (central, O(h²)), with h = (machine ε)^(1/4):
//
//	H = [(f(+a,+b) + f(−a,−b)) − (f(+a,−b) + f(−a,+b))] / (Δa·Δb)
//
// where Δa, Δb are the realized probe spans (≈ 2h). The cross terms are
// summed before subtracting, so H(i;a,b) and H(i;b,a) are bit-identical.
// For a == b the probes collapse onto ±2h and the pure second difference
// is returned.
//
// Errors:
//   - ErrStaleKernel before any Derive or after the lattice moved on.
//   - ErrOutOfRange if i, a or b ∉ [0,N).
//
// Complexity: O(N) time for the probe copies; four site evaluations.
func (e *Estimator[T]) Hessian(i, a, b int) (float64, error) {
	if e.Stale() {
		return 0, fmt.Errorf("Hessian(%d;%d,%d): %w", i, a, b, ErrStaleKernel)
	}
	n := e.lat.Size()
	if i < 0 || i >= n || a < 0 || a >= n || b < 0 || b >= n {
		return 0, fmt.Errorf("Hessian(%d;%d,%d): %w", i, a, b, ErrOutOfRange)
	}
	h := T(lattice.HessianStep[T]())
	if a == b {
		return e.secondDifference(i, a, h+h)
	}

	probe := make([]T, n)
	eval := func(sa, sb T) (float64, error) {
		copy(probe, e.base)
		probe[a] += sa
		probe[b] += sb
		v, err := e.lat.ApplySite(i, probe)

		return float64(v), err
	}

	var pp, mm, pm, mp float64
	var err error
	if pp, err = eval(h, h); err != nil {
		return 0, fmt.Errorf("Hessian: %w", err)
	}
	if mm, err = eval(-h, -h); err != nil {
		return 0, fmt.Errorf("Hessian: %w", err)
	}
	if pm, err = eval(h, -h); err != nil {
		return 0, fmt.Errorf("Hessian: %w", err)
	}
	if mp, err = eval(-h, h); err != nil {
		return 0, fmt.Errorf("Hessian: %w", err)
	}
	da := float64(e.base[a]+h) - float64(e.base[a]-h)
	db := float64(e.base[b]+h) - float64(e.base[b]-h)

	return ((pp + mm) - (pm + mp)) / (da * db), nil
}

// secondDifference returns ∂²next_i/∂g_a² via the three-point formula on
// the realized (possibly uneven) spans x+s and x−s.
func (e *Estimator[T]) secondDifference(i, a int, s T) (float64, error) {
	probe := make([]T, len(e.base))
	copy(probe, e.base)

	f0, err := e.lat.ApplySite(i, probe)
	if err != nil {
		return 0, fmt.Errorf("Hessian: %w", err)
	}
	probe[a] = e.base[a] + s
	fp, err := e.lat.ApplySite(i, probe)
	if err != nil {
		return 0, fmt.Errorf("Hessian: %w", err)
	}
	probe[a] = e.base[a] - s
	fm, err := e.lat.ApplySite(i, probe)
	if err != nil {
		return 0, fmt.Errorf("Hessian: %w", err)
	}
	x := float64(e.base[a])
	dp := float64(e.base[a]+s) - x
	dm := x - float64(e.base[a]-s)

	return 2 * (dm*float64(fp) + dp*float64(fm) - (dp+dm)*float64(f0)) / (dp * dm * (dp + dm)), nil
}
