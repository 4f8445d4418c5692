// SPDX-License-Identifier: MIT

package kernel

import "math"

// Interaction classifies a second-order response.
type Interaction int

const (
	// Additive means the two micro-causes act independently (|H| ≤ tol).
	Additive Interaction = iota

	// Synergistic means the joint effect exceeds the sum of individual effects (H > tol).
	Synergistic

	// Interfering means the joint effect falls short of the sum (H < −tol).
	Interfering
)

// String implements fmt.Stringer.
func (in Interaction) String() string {
	switch in {
	case Synergistic:
		return "synergy"
	case Interfering:
		return "interference"
	default:
		return "additive"
	}
}

// Classify maps a Hessian or synergy value onto an Interaction.
// A negative tol is treated as |tol|.
func Classify(h, tol float64) Interaction {
	tol = math.Abs(tol)
	switch {
	case h > tol:
		return Synergistic
	case h < -tol:
		return Interfering
	default:
		return Additive
	}
}

// Synergy is the finite four-probe mixed difference for pokes of finite size:
//
//	(Y_ab − Y_0) − ((Y_a − Y_0) + (Y_b − Y_0))
//
// i.e. how much the joint response exceeds the sum of the single responses.
// Callers perturbing external parameters (not lattice sites) use it with
// their own evaluations.
func Synergy(base, a, b, ab float64) float64 {
	return (ab - base) - ((a - base) + (b - base))
}
