// SPDX-License-Identifier: MIT

package simulate

import (
	"fmt"

	"github.com/katalvlaran/mcik/kernel"
	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/seed"
)

// Poke is a micro-cause added to the base state at t = 0.
type Poke = seed.Poke

// Trajectory holds the states g(0)..g(steps−1) of one run.
type Trajectory[T lattice.Float] struct {
	States [][]T
}

// Len returns the number of recorded states.
func (tr *Trajectory[T]) Len() int { return len(tr.States) }

// TemporalIntegral returns Σₜ g_i(t) for every site.
func (tr *Trajectory[T]) TemporalIntegral() []float64 {
	if len(tr.States) == 0 {
		return nil
	}
	out := make([]float64, len(tr.States[0]))
	for _, s := range tr.States {
		for i, v := range s {
			out[i] += float64(v)
		}
	}

	return out
}

// Site returns the time series of site i.
//
// Errors:
//   - kernel.ErrOutOfRange if i is not a site.
func (tr *Trajectory[T]) Site(i int) ([]float64, error) {
	if len(tr.States) == 0 || i < 0 || i >= len(tr.States[0]) {
		return nil, fmt.Errorf("Site(%d): %w", i, kernel.ErrOutOfRange)
	}
	out := make([]float64, len(tr.States))
	for t, s := range tr.States {
		out[t] = float64(s[i])
	}

	return out, nil
}

// ApplyPokes returns a copy of base with every poke added.
//
// Errors:
//   - seed.ErrSiteOutOfRange, seed.ErrNonFinite.
func ApplyPokes[T lattice.Float](base []T, pokes []Poke) ([]T, error) {
	wide := seed.Float64(base)
	if err := seed.Apply(wide, pokes); err != nil {
		return nil, fmt.Errorf("ApplyPokes: %w", err)
	}

	return seed.As[T](wide), nil
}

// Run resets lat to initial and records steps states, initial included.
//
// Errors:
//   - lattice.ErrInvalidArgument if steps < 1 or initial is rejected.
//
// Complexity: O(steps·N).
func Run[T lattice.Float](lat *lattice.Lattice[T], initial []T, steps int) (*Trajectory[T], error) {
	if steps < 1 {
		return nil, fmt.Errorf("Run: steps %d: %w", steps, lattice.ErrInvalidArgument)
	}
	if err := lat.Reset(initial); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	tr := &Trajectory[T]{States: make([][]T, 0, steps)}
	tr.States = append(tr.States, lat.State())
	for t := 1; t < steps; t++ {
		lat.Forward()
		tr.States = append(tr.States, lat.State())
	}

	return tr, nil
}

// integral runs from base plus pokes and returns the temporal integral.
func integral[T lattice.Float](lat *lattice.Lattice[T], base []T, steps int, pokes ...Poke) ([]float64, error) {
	init, err := ApplyPokes(base, pokes)
	if err != nil {
		return nil, err
	}
	tr, err := Run(lat, init, steps)
	if err != nil {
		return nil, err
	}

	return tr.TemporalIntegral(), nil
}

// ResponseK returns K_a = Y_a − Y_base, the per-site temporal-integral
// response to one finite poke.
//
// Complexity: two runs, O(steps·N).
func ResponseK[T lattice.Float](lat *lattice.Lattice[T], base []T, steps int, a Poke) ([]float64, error) {
	yBase, err := integral(lat, base, steps)
	if err != nil {
		return nil, fmt.Errorf("ResponseK: %w", err)
	}
	yA, err := integral(lat, base, steps, a)
	if err != nil {
		return nil, fmt.Errorf("ResponseK: %w", err)
	}
	out := make([]float64, len(yBase))
	for i := range out {
		out[i] = yA[i] - yBase[i]
	}

	return out, nil
}

// Response holds the first- and second-order finite-poke kernels of a pair.
type Response struct {
	Ka  []float64 `json:"k_a" yaml:"k_a"`
	Kb  []float64 `json:"k_b" yaml:"k_b"`
	Hab []float64 `json:"h_ab" yaml:"h_ab"`
}

// ResponseH runs base, a, b and a+b and returns K_a, K_b and the synergy
// H_ab per site. Pokes on the same site are allowed but measure
// self-interaction rather than the interaction of two causes.
//
// Complexity: four runs, O(steps·N).
func ResponseH[T lattice.Float](lat *lattice.Lattice[T], base []T, steps int, a, b Poke) (*Response, error) {
	if a.Site == b.Site {
		lat.Logger().Warn("synergy pokes share a site", "site", a.Site)
	}
	var ys [4][]float64
	for k, pokes := range [][]Poke{nil, {a}, {b}, {a, b}} {
		y, err := integral(lat, base, steps, pokes...)
		if err != nil {
			return nil, fmt.Errorf("ResponseH: %w", err)
		}
		ys[k] = y
	}
	yBase, yA, yB, yAB := ys[0], ys[1], ys[2], ys[3]

	n := len(yBase)
	r := &Response{Ka: make([]float64, n), Kb: make([]float64, n), Hab: make([]float64, n)}
	for i := 0; i < n; i++ {
		r.Ka[i] = yA[i] - yBase[i]
		r.Kb[i] = yB[i] - yBase[i]
		r.Hab[i] = kernel.Synergy(yBase[i], yA[i], yB[i], yAB[i])
	}

	return r, nil
}
