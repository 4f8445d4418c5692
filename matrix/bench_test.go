// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/mcik/matrix"
)

// benchmarkMul multiplies two n×n banded matrices (ring-lattice Jacobian shape).
func benchmarkMul(b *testing.B, n int) {
	a, _ := matrix.NewDense(n, n)
	for i := 0; i < n; i++ {
		_ = a.Set(i, i, 1)
		_ = a.Set(i, (i+1)%n, 0.5)
		_ = a.Set(i, (i+n-1)%n, 0.5)
	}
	c := a.CloneDense()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := matrix.Mul(a, c); err != nil {
			b.Fatalf("Mul failed: %v", err)
		}
	}
}

// BenchmarkMul_32 benchmarks a 32×32 product.
func BenchmarkMul_32(b *testing.B) { benchmarkMul(b, 32) }

// BenchmarkMul_128 benchmarks a 128×128 product.
func BenchmarkMul_128(b *testing.B) { benchmarkMul(b, 128) }
