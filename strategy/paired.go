// SPDX-License-Identifier: MIT

package strategy

import (
	"context"
	"fmt"

	"github.com/katalvlaran/mcik/kernel"
)

// PairedLever is the second-order ("K+H") strategy.
type PairedLever struct {
	single *SingleLever
	pairs  []Pair
}

// NewPairedLever validates levers and pairs and builds the strategy.
// Pair moves must reference existing levers and use Sign ±1.
//
// Errors:
//   - ErrNoLevers, ErrInvalidLever.
func NewPairedLever(levers []Lever, pairs []Pair, opts ...Option) (*PairedLever, error) {
	single, err := NewSingleLever(levers, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewPairedLever: %w", err)
	}
	for k, p := range pairs {
		for _, m := range [2]Move{p.A, p.B} {
			if m.Lever < 0 || m.Lever >= len(levers) || (m.Sign != 1 && m.Sign != -1) {
				return nil, fmt.Errorf("NewPairedLever: pair %d move %+v: %w", k, m, ErrInvalidLever)
			}
		}
	}
	cp := make([]Pair, len(pairs))
	copy(cp, pairs)

	return &PairedLever{single: single, pairs: cp}, nil
}

// Name implements Strategy.
func (s *PairedLever) Name() string { return "K+H" }

// Suggest runs the first-order pass, then for every pair evaluates
// a = current+A, b = current+B and ab = a+B, computes the synergy against
// the base score, and accepts ab when synergy > 0 and it beats the best.
//
// Errors:
//   - ErrParamMismatch, ctx.Err(), or the evaluator's error.
//
// Complexity: 1 + 2·L + 3·P evaluations; the base score is shared.
func (s *PairedLever) Suggest(ctx context.Context, current []float64, eval Evaluator) (Suggestion, error) {
	ev := &counter{eval: eval, rec: s.single.opts.recorder}
	best, bestScore, s0, err := s.single.climb(ctx, current, ev)
	if err != nil {
		return Suggestion{}, err
	}

	levers := s.single.levers
	reports := make([]PairReport, 0, len(s.pairs))
	var pa, pb, pab []float64
	var sa, sb, sab float64
	for _, p := range s.pairs {
		pa = apply(levers, current, p.A)
		pb = apply(levers, current, p.B)
		pab = apply(levers, pa, p.B)
		if sa, err = ev.call(ctx, pa); err != nil {
			return Suggestion{}, fmt.Errorf("Suggest: pair: %w", err)
		}
		if sb, err = ev.call(ctx, pb); err != nil {
			return Suggestion{}, fmt.Errorf("Suggest: pair: %w", err)
		}
		if sab, err = ev.call(ctx, pab); err != nil {
			return Suggestion{}, fmt.Errorf("Suggest: pair: %w", err)
		}
		r := PairReport{Pair: p, Synergy: kernel.Synergy(s0, sa, sb, sab), Score: sab}
		if r.Synergy > 0 && sab > bestScore {
			best, bestScore = pab, sab
			r.Accepted = true
		}
		reports = append(reports, r)
	}
	s.single.opts.logger.Debug("strategy step", "mode", s.Name(), "score", bestScore, "evaluations", ev.n, "pairs", len(reports))

	return Suggestion{Params: best, Score: bestScore, Mode: s.Name(), Evaluations: ev.n, Pairs: reports}, nil
}
