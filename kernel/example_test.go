// SPDX-License-Identifier: MIT
package kernel_test

import (
	"fmt"

	"github.com/katalvlaran/mcik/kernel"
	"github.com/katalvlaran/mcik/lattice"
)

// ExampleEstimator_Column derives the kernel of a quiet 5-site ring.
// At the zero state tanh' = 1, so column j is α on the diagonal and β on
// the two ring neighbours.
func ExampleEstimator_Column() {
	lat, _ := lattice.New(5, 1.0, 0.5)
	est, _ := kernel.NewEstimator(lat)
	if err := est.Derive(); err != nil {
		fmt.Println("error:", err)

		return
	}
	col, _ := est.Column(2)
	fmt.Printf("%.3f\n", col)
	// Output:
	// [0.000 0.500 1.000 0.500 0.000]
}

// ExampleEstimator_Hessian classifies how two neighbours of site 2 interact.
// On the positive branch tanh'' < 0, so joint pushes saturate.
func ExampleEstimator_Hessian() {
	lat, _ := lattice.New(5, 1.0, 0.5)
	_ = lat.Reset([]float64{0.2, 0.2, 0.2, 0.2, 0.2})
	est, _ := kernel.NewEstimator(lat)
	_ = est.Derive()

	h, _ := est.Hessian(2, 1, 3)
	fmt.Println(kernel.Classify(h, 1e-9))
	// Output:
	// interference
}
