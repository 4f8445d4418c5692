// SPDX-License-Identifier: MIT
package kernel_test

import (
	"testing"

	"github.com/katalvlaran/mcik/kernel"
	"github.com/katalvlaran/mcik/lattice"
)

// benchmarkDerive measures one full Jacobian estimate on an n-site ring.
func benchmarkDerive(b *testing.B, n int) {
	lat, _ := lattice.New(n, 1.0, 0.5)
	g := make([]float64, n)
	for i := range g {
		g[i] = 0.01 * float64(i%7)
	}
	_ = lat.Reset(g)
	est, _ := kernel.NewEstimator(lat)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := est.Derive(); err != nil {
			b.Fatalf("Derive failed: %v", err)
		}
	}
}

// BenchmarkDerive_64 benchmarks a 64-site ring.
func BenchmarkDerive_64(b *testing.B) { benchmarkDerive(b, 64) }

// BenchmarkDerive_256 benchmarks a 256-site ring.
func BenchmarkDerive_256(b *testing.B) { benchmarkDerive(b, 256) }

// BenchmarkHessian measures one mixed second-order query.
func BenchmarkHessian(b *testing.B) {
	lat, _ := lattice.New(64, 1.0, 0.5)
	est, _ := kernel.NewEstimator(lat)
	_ = est.Derive()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := est.Hessian(10, 9, 11); err != nil {
			b.Fatalf("Hessian failed: %v", err)
		}
	}
}
