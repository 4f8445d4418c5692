// SPDX-License-Identifier: MIT

package propagate

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/mcik/matrix"
)

// Growth computes Λ = (1/n)·log Σᵢ |k[i][origin]|.
//
// Errors:
//   - ErrInvalidArgument if n <= 0.
//   - matrix.ErrNilMatrix or matrix.ErrNonSquare if k is not a kernel.
//   - ErrOutOfRange if origin ∉ [0, k.Cols()).
//   - ErrNumericDegeneracy if the column sum is zero, NaN or ±Inf.
//
// Complexity: O(N).
func Growth(k matrix.Matrix, origin, n int) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("Growth: steps %d: %w", n, ErrInvalidArgument)
	}
	if err := matrix.ValidateNotNil(k); err != nil {
		return 0, fmt.Errorf("Growth: %w", err)
	}
	if err := matrix.ValidateSquare(k); err != nil {
		return 0, fmt.Errorf("Growth: %w", err)
	}
	sum, err := matrix.ColAbsSum(k, origin)
	if err != nil {
		if errors.Is(err, matrix.ErrOutOfRange) {
			return 0, fmt.Errorf("Growth: origin %d: %w", origin, ErrOutOfRange)
		}

		return 0, fmt.Errorf("Growth: %w", err)
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0, fmt.Errorf("Growth: origin %d sum %v: %w", origin, sum, ErrNumericDegeneracy)
	}

	return math.Log(sum) / float64(n), nil
}

// GrowthPoint is one entry of a growth profile.
// Lambda is zero when Defined is false.
type GrowthPoint struct {
	Origin  int     `json:"origin" yaml:"origin"`
	Lambda  float64 `json:"lambda" yaml:"lambda"`
	Defined bool    `json:"defined" yaml:"defined"`
}

// Profile evaluates Growth for every origin. Degenerate origins are kept
// with Defined=false; any other error aborts.
//
// Errors:
//   - ErrInvalidArgument if the result has zero steps.
func (r *Result[T]) Profile() ([]GrowthPoint, error) {
	n := r.Kernel.Cols()
	out := make([]GrowthPoint, n)
	for j := 0; j < n; j++ {
		lambda, err := r.Growth(j)
		switch {
		case err == nil:
			out[j] = GrowthPoint{Origin: j, Lambda: lambda, Defined: true}
		case errors.Is(err, ErrNumericDegeneracy):
			out[j] = GrowthPoint{Origin: j}
		default:
			return nil, fmt.Errorf("Profile: %w", err)
		}
	}

	return out, nil
}
