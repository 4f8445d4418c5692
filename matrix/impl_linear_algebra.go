// SPDX-License-Identifier: MIT

// Package matrix - linear algebra kernels used by the sensitivity engine.
//
// Purpose:
//   - Mul: chronological kernel composition K ← J·K.
//   - MatVec: push a perturbation through a (propagated) kernel.
//   - ColAbsSum: column magnitude used by the growth metric.
//   - AllClose: tolerance-based equality for determinism checks.
//
// Determinism:
//   - Fixed loop orders (i→k→j on the Dense fast path, i→j→k on the fallback).
//   - No map iteration, no goroutines.
package matrix

import (
	"fmt"
	"math"
)

// ---------- operation tags ----------
const (
	opMul       = "Mul"
	opMatVec    = "MatVec"
	opColAbsSum = "ColAbsSum"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err with an operation tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul returns the product a·b as a new Dense.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: allocate Dense(a.Rows × b.Cols).
//   - Stage 3: *Dense fast path over flat slices, generic At/Set fallback otherwise.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c). Zero entries of a are skipped.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k int
		av, bv  float64
		sum     float64
	)

	// Fast path for two Dense matrices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowA, rowB, rowR int
			for i = 0; i < aRows; i++ {
				rowA = i * aCols
				rowR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowA+k]
					if av == 0 {
						continue
					}
					rowB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowR+j] += av * db.data[rowB+j]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple loop.
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			sum = 0
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				sum += av * bv
			}
			res.data[i*bCols+j] = sum
		}
	}

	return res, nil
}

// MatVec returns m·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != m.Cols()).
//
// Complexity: O(r*c).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	r, c := m.Rows(), m.Cols()
	out := make([]float64, r)

	if d, ok := m.(*Dense); ok {
		for i := 0; i < r; i++ {
			off := i * c
			var s float64
			for j := 0; j < c; j++ {
				s += d.data[off+j] * x[j]
			}
			out[i] = s
		}

		return out, nil
	}

	for i := 0; i < r; i++ {
		var s float64
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			s += v * x[j]
		}
		out[i] = s
	}

	return out, nil
}

// ColAbsSum returns Σ_i |m[i][j]|, the L1 norm of column j.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange.
//
// Complexity: O(r).
func ColAbsSum(m Matrix, j int) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opColAbsSum, err)
	}
	if j < 0 || j >= m.Cols() {
		return 0, matrixErrorf(opColAbsSum, fmt.Errorf("col %d: %w", j, ErrOutOfRange))
	}
	var sum float64
	for i := 0; i < m.Rows(); i++ {
		v, err := m.At(i, j)
		if err != nil {
			return 0, matrixErrorf(opColAbsSum, err)
		}
		sum += math.Abs(v)
	}

	return sum, nil
}

// AllClose checks element-wise |a-b| ≤ eps + rtol*|b| for identical shapes.
// Tolerances come from opts (WithEpsilon, WithRelTolerance).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity: O(r*c), early exit on the first violation.
func AllClose(a, b Matrix, opts ...Option) (bool, error) {
	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	o := gatherOptions(opts...)

	var av, bv float64
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			if math.Abs(av-bv) > o.eps+o.rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
