// SPDX-License-Identifier: MIT

package kernel

import "errors"

var (
	// ErrOutOfRange indicates a column, row or site index outside [0,N).
	ErrOutOfRange = errors.New("kernel: index out of range")

	// ErrStaleKernel indicates a read before any Derive, or after the
	// lattice was advanced or reset since the last Derive.
	ErrStaleKernel = errors.New("kernel: kernel is stale; call Derive first")

	// ErrNilLattice indicates that NewEstimator received a nil lattice.
	ErrNilLattice = errors.New("kernel: lattice is nil")
)
