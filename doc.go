// SPDX-License-Identifier: MIT

// Package mcik measures how micro-causes spread through a nonlinear system.
//
// 🚀 What is mcik?
//
//	A small engine for sensitivity kernels of a 1-D ring lattice
//	g_i(t+1) = σ(α·g_i(t) + β·(g_{i-1}(t) + g_{i+1}(t))):
//		• First-order kernel K[i][j] = ∂g_i(t+1)/∂g_j(t) by central differences
//		• Second-order kernel H(i; a, b) and its synergy/interference reading
//		• Temporal propagation K⁽ⁿ⁾ = J⁽ⁿ⁻¹⁾···J⁽⁰⁾ and the growth rate Λ
//		• Finite-poke simulations, lever strategies and parallel coupling sweeps
//
// ✨ Why mcik?
//
//   - Generic over float32 and float64, with steps sized to machine precision
//   - Stale kernels are errors, never silently reused
//   - Degenerate growth is reported, not turned into NaN
//
// Packages:
//
//	lattice/    the ring, its update rule and nonlinearities
//	kernel/     Jacobian and Hessian estimators, interaction classes
//	propagate/  K⁽ⁿ⁾ accumulation and growth Λ
//	matrix/     the dense float64 matrix the kernels live in
//	seed/       initial states and pokes (zero, pulse, chirp)
//	simulate/   whole-trajectory finite-poke responses
//	strategy/   K and K+H hill-climbing over levers
//	sweep/      concurrent (α, β) grids
//
// A micro-cause at site j after n steps:
//
//	    t=0   · · · ● · · ·
//	    t=1   · · ◦ ● ◦ · ·
//	    t=2   · ◦ ◦ ● ◦ ◦ ·
//
// The mcik command (cmd/mcik) exposes every operation:
//
//	go install github.com/katalvlaran/mcik/cmd/mcik@latest
package mcik
