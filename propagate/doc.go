// SPDX-License-Identifier: MIT

// Package propagate composes per-step influence kernels over a trajectory.
//
// Starting from K⁽⁰⁾ = I, every step derives the one-step Jacobian J⁽ᵗ⁾ at the
// pre-step state and accumulates K⁽ᵗ⁺¹⁾ = J⁽ᵗ⁾·K⁽ᵗ⁾ before advancing the
// lattice. The result K⁽ⁿ⁾[i][j] is the sensitivity of site i at step n to a
// micro-cause at site j at step 0.
//
// Growth condenses one column of K⁽ⁿ⁾ into a per-step rate
//
//	Λ = (1/n)·log Σᵢ |K⁽ⁿ⁾[i][origin]|
//
// which is positive when a micro-cause amplifies and negative when it decays.
// The metric is undefined when the column sum underflows to zero or leaves
// the finite range; that case is reported as ErrNumericDegeneracy.
//
// Propagate drives the lattice it is given: it resets, derives and advances
// that instance, so callers must not share it with other goroutines.
package propagate
