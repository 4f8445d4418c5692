// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/seed"
)

// newLattice builds a lattice of precision T from the loaded config and
// resets it to the configured initial state.
func newLattice[T lattice.Float](rt *runtime) (*lattice.Lattice[T], []T, error) {
	cfg := rt.cfg
	sq, err := lattice.ParseSquash(cfg.Squash)
	if err != nil {
		return nil, nil, err
	}
	lat, err := lattice.New(cfg.Size, T(cfg.Alpha), T(cfg.Beta),
		lattice.WithSquash(sq), lattice.WithLogger(rt.logger))
	if err != nil {
		return nil, nil, err
	}
	initial, err := cfg.InitialState()
	if err != nil {
		return nil, nil, err
	}
	state := seed.As[T](initial)
	if err = lat.Reset(state); err != nil {
		return nil, nil, err
	}

	return lat, state, nil
}

// single reports whether the configured precision is float32.
func (rt *runtime) single() bool { return rt.cfg.Precision == lattice.Single }

// meta fills the common report header.
func (rt *runtime) meta() map[string]any {
	c := rt.cfg

	return map[string]any{
		"size":      c.Size,
		"alpha":     c.Alpha,
		"beta":      c.Beta,
		"precision": string(c.Precision),
		"squash":    c.Squash,
		"seed":      c.Seed.Kind,
	}
}

// site validates a site flag against the configured size.
func (rt *runtime) site(name string, v int) error {
	if v < 0 || v >= rt.cfg.Size {
		return fmt.Errorf("--%s %d not in [0,%d)", name, v, rt.cfg.Size)
	}

	return nil
}
