// SPDX-License-Identifier: MIT

// Package kernel estimates first- and second-order micro-cause influence
// kernels of one lattice step by black-box finite differences.
//
// 🚀 What is a kernel?
//
//	K[i][j] = ∂g_i(t+1)/∂g_j(t)     first order (Jacobian), dense N×N
//	H(i;a,b) = ∂²g_i(t+1)/∂g_a∂g_b  second order, queried per (i,a,b)
//
//	A positive H means two micro-causes reinforce each other (synergy),
//	negative means they interfere, near zero means they add independently.
//
// ✨ Key features:
//   - Derive uses central differences with ε = √(machine ε of T), one
//     probe pair per column: O(N) per column, O(N²) per Derive.
//   - Hessian uses the central mixed stencil with step (machine ε)^(1/4);
//     H(i;a,b) and H(i;b,a) are bit-identical.
//   - Estimates never depend on which squash function the lattice uses.
//   - Reads before any Derive, or after the lattice moved on, fail with
//     ErrStaleKernel instead of returning zero-filled storage.
//
// ⚙️ Usage:
//
//	est, _ := kernel.NewEstimator(lat)
//	_ = est.Derive()
//	col, _ := est.Column(4)
//	h, _ := est.Hessian(4, 3, 5)
//	switch kernel.Classify(h, 1e-9) { ... }
package kernel
