// SPDX-License-Identifier: MIT

// Package seed generates deterministic initial lattice states.
//
// Every generator is a pure function of its arguments: no randomness, no
// global state. Waveforms follow the sequence builders used for fixtures
// and demos:
//
//   - Zero(n): the quiet state.
//   - WithPokes(n, pokes): micro-causes added on top of the quiet state.
//   - Pulse(n, opts...): rectangular (duty-cycle) or triangular train.
//   - Chirp(n, opts...): sinusoid whose frequency sweeps linearly f0 → f1.
//
// Generators return []float64; As converts to the lattice scalar type.
package seed
