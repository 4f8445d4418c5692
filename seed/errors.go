// SPDX-License-Identifier: MIT

package seed

import "errors"

var (
	// ErrBadLength indicates a requested state length below one site.
	ErrBadLength = errors.New("seed: length must be positive")

	// ErrSiteOutOfRange indicates a poke addressed outside [0,n).
	ErrSiteOutOfRange = errors.New("seed: poke site out of range")

	// ErrNonFinite indicates a NaN or ±Inf poke value.
	ErrNonFinite = errors.New("seed: poke value is not finite")
)
