// SPDX-License-Identifier: MIT
package kernel_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/mcik/kernel"
	"github.com/katalvlaran/mcik/lattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sech2 is the derivative of tanh.
func sech2(z float64) float64 {
	t := math.Tanh(z)
	return 1 - t*t
}

// weight returns ∂(linear_i)/∂g_j for the ring rule.
func weight(n, i, j int, alpha, beta float64) float64 {
	w := 0.0
	if i == j {
		w += alpha
	}
	if j == (i+1)%n {
		w += beta
	}
	if j == (i+n-1)%n {
		w += beta
	}
	return w
}

// linear returns α·g_i + β·(g_{i-1}+g_{i+1}).
func linear(g []float64, i int, alpha, beta float64) float64 {
	n := len(g)
	return alpha*g[i] + beta*(g[(i+n-1)%n]+g[(i+1)%n])
}

// analyticJacobian is the closed-form tanh-ring Jacobian at state g.
func analyticJacobian(g []float64, alpha, beta float64) [][]float64 {
	n := len(g)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		s := sech2(linear(g, i, alpha, beta))
		for j := 0; j < n; j++ {
			out[i][j] = s * weight(n, i, j, alpha, beta)
		}
	}
	return out
}

// newDerived builds a float64 lattice at state g and derives its kernel.
func newDerived(t *testing.T, g []float64, alpha, beta float64) *kernel.Estimator[float64] {
	t.Helper()
	lat, err := lattice.New(len(g), alpha, beta)
	require.NoError(t, err)
	require.NoError(t, lat.Reset(g))
	est, err := kernel.NewEstimator(lat)
	require.NoError(t, err)
	require.NoError(t, est.Derive())

	return est
}

// TestColumn_ZeroStateClosedForm checks α on the diagonal and β on the ring neighbours.
func TestColumn_ZeroStateClosedForm(t *testing.T) {
	for _, n := range []int{3, 4, 5, 7, 12} {
		est := newDerived(t, make([]float64, n), 1.0, 0.5)
		for j := 0; j < n; j++ {
			col, err := est.Column(j)
			require.NoError(t, err)
			for i := 0; i < n; i++ {
				assert.InDelta(t, weight(n, i, j, 1.0, 0.5), col[i], 1e-12, "n=%d K[%d][%d]", n, i, j)
			}
		}
	}
}

// TestColumn_ConcreteCase pins N=5, α=1, β=0.5 ⇒ column(2) = (0, 0.5, 1, 0.5, 0).
func TestColumn_ConcreteCase(t *testing.T) {
	est := newDerived(t, make([]float64, 5), 1.0, 0.5)
	col, err := est.Column(2)
	require.NoError(t, err)
	want := []float64{0, 0.5, 1, 0.5, 0}
	for i := range want {
		assert.InDelta(t, want[i], col[i], 1e-12)
	}
}

// TestKernel_RingOfThree verifies every site couples to both others on N=3.
func TestKernel_RingOfThree(t *testing.T) {
	est := newDerived(t, make([]float64, 3), 0.8, 0.3)
	k, err := est.Kernel()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, _ := k.At(i, j)
			want := 0.3
			if i == j {
				want = 0.8
			}
			assert.InDelta(t, want, v, 1e-12, "K[%d][%d]", i, j)
		}
	}
}

// TestKernel_MatchesAnalyticJacobian compares against the closed form at a generic state.
func TestKernel_MatchesAnalyticJacobian(t *testing.T) {
	g := []float64{0.3, -0.45, 0.1, 0.8, -0.2, 0.05}
	est := newDerived(t, g, 1.3, 0.6)
	want := analyticJacobian(g, 1.3, 0.6)
	k, err := est.Kernel()
	require.NoError(t, err)
	for i := range want {
		for j := range want[i] {
			v, _ := k.At(i, j)
			assert.InDelta(t, want[i][j], v, 1e-7, "K[%d][%d]", i, j)
		}
	}
}

// TestKernel_DecoupledIsDiagonal checks β=0 ⇒ K is diagonal.
func TestKernel_DecoupledIsDiagonal(t *testing.T) {
	g := []float64{0.2, -0.7, 0.4, 0.9}
	est := newDerived(t, g, 1.5, 0)
	k, err := est.Kernel()
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			v, _ := k.At(i, j)
			if i != j {
				assert.Zero(t, v, "K[%d][%d]", i, j)
				continue
			}
			assert.InDelta(t, 1.5*sech2(1.5*g[i]), v, 1e-7)
		}
	}
}

// TestColumn_EndToEnd runs N=9 with a 0.25 seed at site 4, one Forward, then Derive.
// Only rows 3..5 respond to site 4; their values follow sech² at the advanced state.
func TestColumn_EndToEnd(t *testing.T) {
	lat, err := lattice.New(9, 1.0, 0.5)
	require.NoError(t, err)
	seed := make([]float64, 9)
	seed[4] = 0.25
	require.NoError(t, lat.Reset(seed))
	lat.Forward()

	est, err := kernel.NewEstimator(lat)
	require.NoError(t, err)
	require.NoError(t, est.Derive())
	col, err := est.Column(4)
	require.NoError(t, err)

	g := lat.State()
	want := make([]float64, 9)
	want[3] = 0.5 * sech2(linear(g, 3, 1.0, 0.5))
	want[4] = 1.0 * sech2(linear(g, 4, 1.0, 0.5))
	want[5] = 0.5 * sech2(linear(g, 5, 1.0, 0.5))
	for i := range want {
		assert.InDelta(t, want[i], col[i], 1e-6, "row %d", i)
	}
	for _, i := range []int{0, 1, 2, 6, 7, 8} {
		assert.Zero(t, col[i], "row %d must not respond to site 4", i)
	}
	assert.InDelta(t, 0.8752, col[4], 1e-4)
	assert.InDelta(t, 0.4707, col[3], 1e-4)
}

// TestStaleness covers reads before Derive, after Forward and after Reset.
func TestStaleness(t *testing.T) {
	lat, err := lattice.New(5, 1.0, 0.5)
	require.NoError(t, err)
	est, err := kernel.NewEstimator(lat)
	require.NoError(t, err)

	assert.True(t, est.Stale())
	_, err = est.Column(0)
	assert.ErrorIs(t, err, kernel.ErrStaleKernel, "before any Derive")
	_, err = est.Kernel()
	assert.ErrorIs(t, err, kernel.ErrStaleKernel)
	_, err = est.Hessian(0, 0, 1)
	assert.ErrorIs(t, err, kernel.ErrStaleKernel)
	_, err = est.BaseState()
	assert.ErrorIs(t, err, kernel.ErrStaleKernel)

	require.NoError(t, est.Derive())
	_, err = est.Column(0)
	require.NoError(t, err)

	lat.Forward()
	_, err = est.Column(0)
	assert.ErrorIs(t, err, kernel.ErrStaleKernel, "after Forward")

	require.NoError(t, est.Derive())
	require.NoError(t, lat.Reset(make([]float64, 5)))
	_, err = est.Hessian(0, 0, 1)
	assert.ErrorIs(t, err, kernel.ErrStaleKernel, "after Reset")
}

// TestColumn_OutOfRange checks index validation.
func TestColumn_OutOfRange(t *testing.T) {
	est := newDerived(t, make([]float64, 4), 1, 0.5)
	_, err := est.Column(4)
	assert.ErrorIs(t, err, kernel.ErrOutOfRange)
	_, err = est.Column(-1)
	assert.ErrorIs(t, err, kernel.ErrOutOfRange)
}

// TestDerive_DoesNotMutateLattice ensures probing leaves state and generation alone.
func TestDerive_DoesNotMutateLattice(t *testing.T) {
	g := []float64{0.1, 0.2, -0.3, 0.4}
	lat, _ := lattice.New(4, 1.0, 0.5)
	require.NoError(t, lat.Reset(g))
	gen := lat.Generation()
	est, _ := kernel.NewEstimator(lat)

	require.NoError(t, est.Derive())
	assert.Equal(t, g, lat.State())
	assert.Equal(t, gen, lat.Generation())
	base, err := est.BaseState()
	require.NoError(t, err)
	assert.Equal(t, g, base)
}

// TestKernel_ReturnsCopy ensures callers cannot corrupt the cached kernel.
func TestKernel_ReturnsCopy(t *testing.T) {
	est := newDerived(t, make([]float64, 3), 1, 0.5)
	k, _ := est.Kernel()
	require.NoError(t, k.Set(0, 0, 42))
	col, _ := est.Column(0)
	assert.InDelta(t, 1.0, col[0], 1e-12)
}

// TestNewEstimator_Nil rejects a nil lattice.
func TestNewEstimator_Nil(t *testing.T) {
	_, err := kernel.NewEstimator[float64](nil)
	assert.ErrorIs(t, err, kernel.ErrNilLattice)
}

// TestSinglePrecision derives in float32 and stays within single-precision accuracy.
func TestSinglePrecision(t *testing.T) {
	lat, err := lattice.New[float32](5, 1, 0.5)
	require.NoError(t, err)
	est, err := kernel.NewEstimator(lat)
	require.NoError(t, err)
	require.NoError(t, est.Derive())
	col, err := est.Column(2)
	require.NoError(t, err)
	want := []float64{0, 0.5, 1, 0.5, 0}
	for i := range want {
		assert.InDelta(t, want[i], col[i], 1e-4, "row %d", i)
	}
}

// TestDerive_SquashIndependent checks the estimator against another nonlinearity.
func TestDerive_SquashIndependent(t *testing.T) {
	g := []float64{0.4, -0.1, 0.3}
	lat, err := lattice.New(3, 1.0, 0.5, lattice.WithSquash(lattice.Algebraic))
	require.NoError(t, err)
	require.NoError(t, lat.Reset(g))
	est, _ := kernel.NewEstimator(lat)
	require.NoError(t, est.Derive())

	col, err := est.Column(0)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		z := linear(g, i, 1.0, 0.5)
		d := math.Pow(1+z*z, -1.5) // d/dz z/√(1+z²)
		assert.InDelta(t, d*weight(3, i, 0, 1.0, 0.5), col[i], 1e-7)
	}
}
