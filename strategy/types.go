// SPDX-License-Identifier: MIT

package strategy

import (
	"context"
	"fmt"
	"math"
)

// Evaluator scores a parameter vector; larger is better.
type Evaluator func(ctx context.Context, params []float64) (float64, error)

// Lever is one tunable parameter.
type Lever struct {
	Name    string  `json:"name" yaml:"name"`
	Delta   float64 `json:"delta" yaml:"delta"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Integer bool    `json:"integer" yaml:"integer"`
}

// Clamp bounds v to [Min, Max], rounding first for integer levers.
func (l Lever) Clamp(v float64) float64 {
	if l.Integer {
		v = math.Round(v)
	}

	return math.Max(l.Min, math.Min(l.Max, v))
}

func (l Lever) validate() error {
	if !(l.Delta > 0) || l.Min > l.Max || math.IsNaN(l.Min) || math.IsNaN(l.Max) {
		return fmt.Errorf("lever %q (delta=%v, [%v,%v]): %w", l.Name, l.Delta, l.Min, l.Max, ErrInvalidLever)
	}

	return nil
}

// Move nudges one lever by Sign·Delta (Sign is +1 or −1).
type Move struct {
	Lever int `json:"lever" yaml:"lever"`
	Sign  int `json:"sign" yaml:"sign"`
}

// Pair is a joint move whose interaction PairedLever measures.
type Pair struct {
	A Move `json:"a" yaml:"a"`
	B Move `json:"b" yaml:"b"`
}

// PairReport records the outcome of one pair probe.
type PairReport struct {
	Pair     Pair    `json:"pair" yaml:"pair"`
	Synergy  float64 `json:"synergy" yaml:"synergy"`
	Score    float64 `json:"score" yaml:"score"`
	Accepted bool    `json:"accepted" yaml:"accepted"`
}

// Suggestion is the result of one Suggest call.
type Suggestion struct {
	Params      []float64    `json:"params" yaml:"params"`
	Score       float64      `json:"score" yaml:"score"`
	Mode        string       `json:"mode" yaml:"mode"`
	Evaluations int          `json:"evaluations" yaml:"evaluations"`
	Pairs       []PairReport `json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

// Strategy proposes the next parameter vector.
type Strategy interface {
	// Name returns "K" or "K+H".
	Name() string

	// Suggest probes around current and returns the best vector found.
	Suggest(ctx context.Context, current []float64, eval Evaluator) (Suggestion, error)
}
