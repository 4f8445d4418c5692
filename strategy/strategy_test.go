// SPDX-License-Identifier: MIT
package strategy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/katalvlaran/mcik/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var xy = []strategy.Lever{
	{Name: "x", Delta: 1, Min: -10, Max: 10},
	{Name: "y", Delta: 1, Min: -10, Max: 10},
}

// score wraps a pure function as an Evaluator.
func score(f func(p []float64) float64) strategy.Evaluator {
	return func(_ context.Context, p []float64) (float64, error) { return f(p), nil }
}

// bowl peaks at (3, 1).
var bowl = score(func(p []float64) float64 {
	dx, dy := p[0]-3, p[1]-1

	return -(dx*dx + dy*dy)
})

// TestLever_Clamp covers bounds and integer rounding.
func TestLever_Clamp(t *testing.T) {
	l := strategy.Lever{Delta: 1, Min: 1, Max: 4, Integer: true}
	assert.Equal(t, 1.0, l.Clamp(-3))
	assert.Equal(t, 4.0, l.Clamp(9))
	assert.Equal(t, 3.0, l.Clamp(2.6))
	f := strategy.Lever{Delta: 0.1, Min: 0.5, Max: 3}
	assert.Equal(t, 2.25, f.Clamp(2.25))
}

// TestSingleLever_PicksImprovingLever moves x toward the peak.
func TestSingleLever_PicksImprovingLever(t *testing.T) {
	s, err := strategy.NewSingleLever(xy)
	require.NoError(t, err)
	assert.Equal(t, "K", s.Name())

	sg, err := s.Suggest(context.Background(), []float64{0, 0}, bowl)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, sg.Params)
	assert.Equal(t, -5.0, sg.Score)
	assert.Equal(t, 5, sg.Evaluations)
	assert.Equal(t, "K", sg.Mode)
}

// TestSingleLever_StaysAtOptimum keeps the current vector when nothing improves.
func TestSingleLever_StaysAtOptimum(t *testing.T) {
	s, _ := strategy.NewSingleLever(xy)
	sg, err := s.Suggest(context.Background(), []float64{3, 1}, bowl)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1}, sg.Params)
	assert.Zero(t, sg.Score)
}

// TestSingleLever_RespectsBounds never proposes a value outside a lever's range.
func TestSingleLever_RespectsBounds(t *testing.T) {
	levers := []strategy.Lever{{Name: "x", Delta: 1, Min: 0, Max: 2}}
	s, _ := strategy.NewSingleLever(levers)
	var seen []float64
	eval := func(_ context.Context, p []float64) (float64, error) {
		seen = append(seen, p[0])

		return p[0], nil
	}
	sg, err := s.Suggest(context.Background(), []float64{2}, eval)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, sg.Params)
	for _, v := range seen {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 2.0)
	}
}

// TestPairedLever_AcceptsSynergy takes the joint move on a product score.
func TestPairedLever_AcceptsSynergy(t *testing.T) {
	pairs := []strategy.Pair{{A: strategy.Move{Lever: 0, Sign: 1}, B: strategy.Move{Lever: 1, Sign: 1}}}
	s, err := strategy.NewPairedLever(xy, pairs)
	require.NoError(t, err)
	assert.Equal(t, "K+H", s.Name())

	product := score(func(p []float64) float64 { return p[0] * p[1] })
	sg, err := s.Suggest(context.Background(), []float64{1, 1}, product)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2}, sg.Params)
	assert.Equal(t, 4.0, sg.Score)
	assert.Equal(t, 1+4+3, sg.Evaluations)
	require.Len(t, sg.Pairs, 1)
	assert.True(t, sg.Pairs[0].Accepted)
	assert.Equal(t, 1.0, sg.Pairs[0].Synergy)
}

// TestPairedLever_RejectsAdditive keeps the first-order choice when the pair is additive.
func TestPairedLever_RejectsAdditive(t *testing.T) {
	pairs := []strategy.Pair{{A: strategy.Move{Lever: 0, Sign: 1}, B: strategy.Move{Lever: 1, Sign: 1}}}
	s, _ := strategy.NewPairedLever(xy, pairs)

	linear := score(func(p []float64) float64 { return p[0] + p[1] })
	sg, err := s.Suggest(context.Background(), []float64{0, 0}, linear)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, sg.Params, "joint move scores higher but has no synergy")
	require.Len(t, sg.Pairs, 1)
	assert.False(t, sg.Pairs[0].Accepted)
	assert.Zero(t, sg.Pairs[0].Synergy)
}

// TestConstructors_Validate covers lever and pair validation.
func TestConstructors_Validate(t *testing.T) {
	_, err := strategy.NewSingleLever(nil)
	assert.ErrorIs(t, err, strategy.ErrNoLevers)
	_, err = strategy.NewSingleLever([]strategy.Lever{{Name: "z", Delta: 0, Max: 1}})
	assert.ErrorIs(t, err, strategy.ErrInvalidLever)
	_, err = strategy.NewSingleLever([]strategy.Lever{{Name: "z", Delta: 1, Min: 2, Max: 1}})
	assert.ErrorIs(t, err, strategy.ErrInvalidLever)
	_, err = strategy.NewPairedLever(xy, []strategy.Pair{{A: strategy.Move{Lever: 2, Sign: 1}, B: strategy.Move{Lever: 0, Sign: 1}}})
	assert.ErrorIs(t, err, strategy.ErrInvalidLever)
	_, err = strategy.NewPairedLever(xy, []strategy.Pair{{A: strategy.Move{Lever: 0, Sign: 0}, B: strategy.Move{Lever: 1, Sign: 1}}})
	assert.ErrorIs(t, err, strategy.ErrInvalidLever)
}

// TestSuggest_Errors covers mismatch, evaluator failure and cancellation.
func TestSuggest_Errors(t *testing.T) {
	s, _ := strategy.NewSingleLever(xy)
	_, err := s.Suggest(context.Background(), []float64{0}, bowl)
	assert.ErrorIs(t, err, strategy.ErrParamMismatch)

	boom := errors.New("boom")
	_, err = s.Suggest(context.Background(), []float64{0, 0}, func(context.Context, []float64) (float64, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	cancelling := func(_ context.Context, p []float64) (float64, error) {
		calls++
		if calls == 2 {
			cancel()
		}

		return 0, nil
	}
	_, err = s.Suggest(ctx, []float64{0, 0}, cancelling)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, calls)
}

type evalCounter struct{ n int }

func (c *evalCounter) ObserveEvaluation() { c.n++ }

// TestRun_ConvergesAndStops walks to the peak and stops on a fixed point.
func TestRun_ConvergesAndStops(t *testing.T) {
	rec := &evalCounter{}
	s, err := strategy.ForMode("k", xy, nil, strategy.WithRecorder(rec))
	require.NoError(t, err)

	steps, err := strategy.Run(context.Background(), s, []float64{0, 0}, bowl, 20)
	require.NoError(t, err)
	last := steps[len(steps)-1]
	assert.Equal(t, []float64{3, 1}, last.Params)
	assert.Len(t, steps, 5, "four improving steps plus the fixed point")

	total := 0
	for _, sg := range steps {
		total += sg.Evaluations
	}
	assert.Equal(t, total, rec.n)
}

// TestRun_IterationBudget rejects a negative budget and accepts zero.
func TestRun_IterationBudget(t *testing.T) {
	s, err := strategy.NewSingleLever(xy)
	require.NoError(t, err)

	var steps []strategy.Suggestion
	assert.NotPanics(t, func() {
		steps, err = strategy.Run(context.Background(), s, []float64{0, 0}, bowl, -1)
	})
	assert.ErrorIs(t, err, strategy.ErrInvalidIterations)
	assert.Empty(t, steps)

	steps, err = strategy.Run(context.Background(), s, []float64{0, 0}, bowl, 0)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

// TestForMode resolves names.
func TestForMode(t *testing.T) {
	s, err := strategy.ForMode("KH", xy, nil)
	require.NoError(t, err)
	assert.Equal(t, "K+H", s.Name())
	_, err = strategy.ForMode("anneal", xy, nil)
	assert.ErrorIs(t, err, strategy.ErrUnknownMode)
}
