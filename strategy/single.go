// SPDX-License-Identifier: MIT

package strategy

import (
	"context"
	"fmt"
)

// SingleLever is the first-order ("K") strategy.
type SingleLever struct {
	levers []Lever
	opts   options
}

// NewSingleLever validates levers and builds the strategy.
//
// Errors:
//   - ErrNoLevers, ErrInvalidLever.
func NewSingleLever(levers []Lever, opts ...Option) (*SingleLever, error) {
	if len(levers) == 0 {
		return nil, ErrNoLevers
	}
	for _, l := range levers {
		if err := l.validate(); err != nil {
			return nil, fmt.Errorf("NewSingleLever: %w", err)
		}
	}
	cp := make([]Lever, len(levers))
	copy(cp, levers)

	return &SingleLever{levers: cp, opts: gatherOptions(opts...)}, nil
}

// Name implements Strategy.
func (s *SingleLever) Name() string { return "K" }

// Levers returns a copy of the configured levers.
func (s *SingleLever) Levers() []Lever {
	out := make([]Lever, len(s.levers))
	copy(out, s.levers)

	return out
}

// Suggest evaluates current, then current ± Delta on every lever (clamped),
// and returns the strictly best vector. Ties keep the earlier candidate.
//
// Errors:
//   - ErrParamMismatch, ctx.Err(), or the evaluator's error.
//
// Complexity: 1 + 2·L evaluations.
func (s *SingleLever) Suggest(ctx context.Context, current []float64, eval Evaluator) (Suggestion, error) {
	ev := &counter{eval: eval, rec: s.opts.recorder}
	best, score, _, err := s.climb(ctx, current, ev)
	if err != nil {
		return Suggestion{}, err
	}
	s.opts.logger.Debug("strategy step", "mode", s.Name(), "score", score, "evaluations", ev.n)

	return Suggestion{Params: best, Score: score, Mode: s.Name(), Evaluations: ev.n}, nil
}

// climb is the shared first-order pass; it returns the best vector, its
// score and the score of current.
func (s *SingleLever) climb(ctx context.Context, current []float64, ev *counter) (best []float64, bestScore, base float64, err error) {
	if len(current) != len(s.levers) {
		return nil, 0, 0, fmt.Errorf("Suggest: %d params, %d levers: %w", len(current), len(s.levers), ErrParamMismatch)
	}
	if base, err = ev.call(ctx, current); err != nil {
		return nil, 0, 0, fmt.Errorf("Suggest: base: %w", err)
	}
	best, bestScore = clone(current), base

	var cand []float64
	var sc float64
	for i := range s.levers {
		for _, sign := range [2]int{+1, -1} {
			cand = apply(s.levers, current, Move{Lever: i, Sign: sign})
			if sc, err = ev.call(ctx, cand); err != nil {
				return nil, 0, 0, fmt.Errorf("Suggest: lever %q: %w", s.levers[i].Name, err)
			}
			if sc > bestScore {
				best, bestScore = cand, sc
			}
		}
	}

	return best, bestScore, base, nil
}

// apply returns a clamped copy of p with m applied.
func apply(levers []Lever, p []float64, m Move) []float64 {
	out := clone(p)
	l := levers[m.Lever]
	out[m.Lever] = l.Clamp(out[m.Lever] + float64(m.Sign)*l.Delta)

	return out
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)

	return out
}

// counter wraps an Evaluator with cancellation checks and counting.
type counter struct {
	eval Evaluator
	rec  Recorder
	n    int
}

func (c *counter) call(ctx context.Context, p []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.n++
	if c.rec != nil {
		c.rec.ObserveEvaluation()
	}

	return c.eval(ctx, p)
}
