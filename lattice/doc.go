// SPDX-License-Identifier: MIT

// Package lattice implements the 1-D nonlinear ring lattice whose one-step
// update map is the subject of every sensitivity kernel in this module.
//
// 🚀 What is the lattice?
//
//	N sites g_0..g_{N-1} on a ring, advanced synchronously by
//
//	  g_i(t+1) = squash(α·g_i(t) + β·(g_{i-1}(t) + g_{i+1}(t)))
//
//	with periodic neighbours (i±1 mod N). α weights self-influence, β
//	weights neighbour influence, squash is bounded, odd, monotonic and has
//	unit slope at the origin (tanh by default).
//
// ✨ Key features:
//   - Generic scalar precision: Lattice[float32] or Lattice[float64].
//   - Forward never aliases: the next state is built in a scratch buffer
//     from the pre-step state, then swapped in.
//   - Apply exposes the pure one-step map so estimators can probe
//     perturbed copies without touching the live state.
//   - Generation counts every Forward/Reset, letting derived kernels
//     detect that they have gone stale.
//
// ⚙️ Usage:
//
//	lat, err := lattice.New[float64](9, 1.0, 0.5)
//	_ = lat.Reset(initial)
//	lat.Forward()
//
// Errors:
//   - ErrInvalidArgument: size < 3, non-finite α/β, Reset length mismatch
//     or non-finite entries, negative step counts.
//
// A Lattice is owned by one goroutine at a time; it holds no locks.
package lattice
