// SPDX-License-Identifier: MIT

package propagate

import (
	"errors"

	"github.com/katalvlaran/mcik/kernel"
	"github.com/katalvlaran/mcik/lattice"
)

var (
	// ErrNumericDegeneracy indicates that Σ|K[i][origin]| is zero or not
	// finite, so the growth metric is undefined.
	ErrNumericDegeneracy = errors.New("propagate: growth metric undefined (column sum is zero or non-finite)")

	// ErrInvalidArgument is lattice.ErrInvalidArgument, shared so callers
	// match one sentinel for negative step counts and bad initial states.
	ErrInvalidArgument = lattice.ErrInvalidArgument

	// ErrOutOfRange is kernel.ErrOutOfRange, returned for a bad origin.
	ErrOutOfRange = kernel.ErrOutOfRange
)
