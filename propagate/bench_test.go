// SPDX-License-Identifier: MIT
package propagate_test

import (
	"testing"

	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/propagate"
)

// benchmarkPropagate runs n steps on a 32-site ring.
func benchmarkPropagate(b *testing.B, n int) {
	lat, _ := lattice.New(32, 1.0, 0.5)
	init := make([]float64, 32)
	init[16] = 0.25

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := propagate.Propagate(lat, init, n, propagate.WithoutTrajectory()); err != nil {
			b.Fatalf("Propagate failed: %v", err)
		}
	}
}

// BenchmarkPropagate_10 benchmarks ten steps.
func BenchmarkPropagate_10(b *testing.B) { benchmarkPropagate(b, 10) }

// BenchmarkPropagate_50 benchmarks fifty steps.
func BenchmarkPropagate_50(b *testing.B) { benchmarkPropagate(b, 50) }
