// SPDX-License-Identifier: MIT

package sweep

import "errors"

var (
	// ErrEmptyGrid indicates a grid with no α or no β values.
	ErrEmptyGrid = errors.New("sweep: empty grid")

	// ErrBadJob indicates a job whose initial state does not match its size.
	ErrBadJob = errors.New("sweep: invalid job")
)
