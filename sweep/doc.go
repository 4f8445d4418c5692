// SPDX-License-Identifier: MIT

// Package sweep evaluates the growth metric over a grid of coupling pairs.
//
// Each (α, β) point is an independent experiment: a fresh lattice is
// built, propagated for Job.Steps steps and reduced to Λ at Job.Origin.
// Points run concurrently under an errgroup with a bounded worker count;
// no lattice is ever shared between goroutines. Results come back in grid
// order (α-major), so a sweep is reproducible regardless of scheduling.
package sweep
