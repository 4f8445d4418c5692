// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra primitives shared by the
// sensitivity engine.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set/Col and
//     an optional NaN/Inf guard.
//   - Mul and MatVec for composing Jacobians and pushing perturbations
//     through a propagated kernel.
//   - ColAbsSum and AllClose for growth metrics and determinism checks.
//   - Validators and sentinel errors shared by every routine.
//
// Kernels in this repository are N×N for a lattice of N sites, so dense
// O(N²) storage is the natural representation.
package matrix
