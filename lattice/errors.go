// SPDX-License-Identifier: MIT

package lattice

import "errors"

// ErrInvalidArgument is returned for every eagerly rejected input:
// size < 3, non-finite couplings, Reset length mismatch or non-finite
// entries, negative step counts, unknown precision names.
// Inputs are never clamped.
var ErrInvalidArgument = errors.New("lattice: invalid argument")
