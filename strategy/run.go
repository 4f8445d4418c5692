// SPDX-License-Identifier: MIT

package strategy

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// ForMode builds a strategy by CLI name: "k" for SingleLever, "kh" or
// "k+h" for PairedLever.
//
// Errors:
//   - ErrUnknownMode, plus constructor errors.
func ForMode(mode string, levers []Lever, pairs []Pair, opts ...Option) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "k":
		return NewSingleLever(levers, opts...)
	case "kh", "k+h":
		return NewPairedLever(levers, pairs, opts...)
	default:
		return nil, fmt.Errorf("ForMode(%q): %w", mode, ErrUnknownMode)
	}
}

// Run applies s up to iterations times starting at start, feeding each
// suggestion into the next call. It stops early when a step leaves the
// parameters unchanged. The returned slice holds one entry per step taken;
// zero iterations yield an empty slice.
//
// Errors:
//   - ErrInvalidIterations if iterations < 0.
//   - any Suggest error; steps completed so far are returned alongside it.
func Run(ctx context.Context, s Strategy, start []float64, eval Evaluator, iterations int) ([]Suggestion, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("Run: iterations %d: %w", iterations, ErrInvalidIterations)
	}
	steps := make([]Suggestion, 0, iterations)
	current := clone(start)
	for k := 0; k < iterations; k++ {
		sg, err := s.Suggest(ctx, current, eval)
		if err != nil {
			return steps, fmt.Errorf("Run: iteration %d: %w", k, err)
		}
		steps = append(steps, sg)
		if slices.Equal(sg.Params, current) {
			break
		}
		current = sg.Params
	}

	return steps, nil
}
