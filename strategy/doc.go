// SPDX-License-Identifier: MIT

// Package strategy tunes external parameters with first- and second-order
// finite probes.
//
// A Strategy sees only an Evaluator: a score function over a parameter
// vector, larger is better. Each parameter is a Lever with a step, bounds
// and an optional integer constraint.
//
//   - SingleLever ("K") probes ±Delta on every lever and keeps the best score.
//   - PairedLever ("K+H") runs SingleLever, then probes configured lever
//     pairs jointly. A joint move is accepted only when the pair is
//     synergistic (kernel.Synergy > 0) and its score beats the best so far.
//
// Strategies are stateless and deterministic given a deterministic Evaluator.
package strategy
