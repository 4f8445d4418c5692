// SPDX-License-Identifier: MIT
package propagate_test

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/katalvlaran/mcik/lattice"
	"github.com/katalvlaran/mcik/matrix"
	"github.com/katalvlaran/mcik/propagate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run is a float64 Propagate on a fresh lattice.
func run(t *testing.T, size int, alpha, beta float64, initial []float64, n int, opts ...propagate.Option) *propagate.Result[float64] {
	t.Helper()
	lat, err := lattice.New(size, alpha, beta)
	require.NoError(t, err)
	if initial == nil {
		initial = make([]float64, size)
	}
	res, err := propagate.Propagate(lat, initial, n, opts...)
	require.NoError(t, err)

	return res
}

// TestPropagate_Deterministic runs the same input twice and expects identical kernels.
func TestPropagate_Deterministic(t *testing.T) {
	init := []float64{0.1, -0.3, 0.2, 0.05, 0.4, -0.1, 0.0}
	a := run(t, 7, 1.1, 0.4, init, 12)
	b := run(t, 7, 1.1, 0.4, init, 12)
	assert.Equal(t, a.Kernel, b.Kernel)
	assert.Equal(t, a.Trajectory, b.Trajectory)
}

// TestPropagate_ZeroSteps returns the identity and a one-state trajectory.
func TestPropagate_ZeroSteps(t *testing.T) {
	res := run(t, 4, 1, 0.5, []float64{0.1, 0.2, 0.3, 0.4}, 0)
	id, _ := matrix.Identity(4)
	assert.Equal(t, id, res.Kernel)
	require.Len(t, res.Trajectory, 1)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, res.Final())

	_, err := res.Growth(0)
	assert.ErrorIs(t, err, propagate.ErrInvalidArgument, "growth over zero steps")
	_, err = res.Profile()
	assert.ErrorIs(t, err, propagate.ErrInvalidArgument)
}

// TestPropagate_RejectsNegativeSteps covers n < 0 and a bad initial state.
func TestPropagate_RejectsNegativeSteps(t *testing.T) {
	lat, _ := lattice.New(3, 1.0, 0.5)
	_, err := propagate.Propagate(lat, make([]float64, 3), -1)
	assert.ErrorIs(t, err, propagate.ErrInvalidArgument)

	_, err = propagate.Propagate(lat, make([]float64, 2), 1)
	assert.ErrorIs(t, err, propagate.ErrInvalidArgument, "length mismatch")
}

// TestPropagate_OneStepRingOfThree checks K⁽¹⁾ on N=3 at the zero state.
func TestPropagate_OneStepRingOfThree(t *testing.T) {
	res := run(t, 3, 0.7, 0.2, nil, 1)
	want, _ := matrix.NewDenseFromRows([][]float64{
		{0.7, 0.2, 0.2},
		{0.2, 0.7, 0.2},
		{0.2, 0.2, 0.7},
	})
	ok, err := matrix.AllClose(res.Kernel, want, matrix.WithEpsilon(1e-12))
	require.NoError(t, err)
	assert.True(t, ok, "got\n%v", res.Kernel)
}

// TestPropagate_ChainRule compares K⁽ⁿ⁾ against a direct central difference
// of the n-step map.
func TestPropagate_ChainRule(t *testing.T) {
	const (
		size  = 6
		alpha = 1.2
		beta  = 0.45
		steps = 5
		h     = 1e-6
	)
	init := []float64{0.2, -0.1, 0.35, 0.0, -0.25, 0.15}
	res := run(t, size, alpha, beta, init, steps)

	nStep := func(x []float64) []float64 {
		lat, _ := lattice.New(size, alpha, beta)
		require.NoError(t, lat.Reset(x))
		require.NoError(t, lat.ForwardSteps(steps))

		return lat.State()
	}
	for j := 0; j < size; j++ {
		plus := append([]float64(nil), init...)
		minus := append([]float64(nil), init...)
		plus[j] += h
		minus[j] -= h
		gp, gm := nStep(plus), nStep(minus)
		col, err := res.Kernel.Col(j)
		require.NoError(t, err)
		for i := 0; i < size; i++ {
			assert.InDelta(t, (gp[i]-gm[i])/(2*h), col[i], 1e-6, "K[%d][%d]", i, j)
		}
	}
}

// TestResult_Apply checks K⁽ⁿ⁾·δ against the nonlinear response to a small δ.
func TestResult_Apply(t *testing.T) {
	init := []float64{0.1, 0.2, -0.2, 0.3, 0.0}
	res := run(t, 5, 1.0, 0.5, init, 4)

	delta := []float64{0, 0, 1e-7, 0, 0}
	lin, err := res.Apply(delta)
	require.NoError(t, err)

	lat, _ := lattice.New(5, 1.0, 0.5)
	poked := append([]float64(nil), init...)
	poked[2] += delta[2]
	require.NoError(t, lat.Reset(poked))
	require.NoError(t, lat.ForwardSteps(4))
	final := lat.State()
	base := res.Final()
	for i := range lin {
		assert.InDelta(t, (final[i]-base[i])/1e-7, lin[i]/1e-7, 1e-5, "site %d", i)
	}

	_, err = res.Apply([]float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestPropagate_Trajectory records g(0)..g(n) and leaves the lattice at g(n).
func TestPropagate_Trajectory(t *testing.T) {
	lat, _ := lattice.New(4, 1.0, 0.5)
	init := []float64{0.5, 0, 0, 0}
	res, err := propagate.Propagate(lat, init, 3)
	require.NoError(t, err)
	require.Len(t, res.Trajectory, 4)
	assert.Equal(t, init, res.Trajectory[0])
	assert.Equal(t, lat.State(), res.Trajectory[3])

	res, err = propagate.Propagate(lat, init, 3, propagate.WithoutTrajectory())
	require.NoError(t, err)
	require.Len(t, res.Trajectory, 1)
	assert.Equal(t, lat.State(), res.Final())
}

// TestPropagate_SinglePrecision matches the float64 kernel to float32 accuracy.
func TestPropagate_SinglePrecision(t *testing.T) {
	lat32, _ := lattice.New[float32](5, 1.0, 0.5)
	r32, err := propagate.Propagate(lat32, []float32{0, 0, 0.25, 0, 0}, 3)
	require.NoError(t, err)
	r64 := run(t, 5, 1.0, 0.5, []float64{0, 0, 0.25, 0, 0}, 3)

	ok, err := matrix.AllClose(r32.Kernel, r64.Kernel, matrix.WithEpsilon(5e-3))
	require.NoError(t, err)
	assert.True(t, ok)
}

type countingRecorder struct {
	mu      sync.Mutex
	derives int
	runs    int
}

func (c *countingRecorder) ObserveDerive() {
	c.mu.Lock()
	c.derives++
	c.mu.Unlock()
}

func (c *countingRecorder) ObservePropagate(time.Duration) {
	c.mu.Lock()
	c.runs++
	c.mu.Unlock()
}

// TestPropagate_Recorder counts one derive per step and one run.
func TestPropagate_Recorder(t *testing.T) {
	rec := &countingRecorder{}
	run(t, 3, 1, 0.5, nil, 7, propagate.WithRecorder(rec))
	assert.Equal(t, 7, rec.derives)
	assert.Equal(t, 1, rec.runs)

	assert.Panics(t, func() { propagate.WithRecorder(nil) })
	assert.Panics(t, func() { propagate.WithLogger(nil) })
}

// TestPropagate_NoNaN keeps every kernel entry finite on a saturating run.
func TestPropagate_NoNaN(t *testing.T) {
	res := run(t, 8, 3.0, 1.5, []float64{0.9, -0.9, 0.9, -0.9, 0.9, -0.9, 0.9, -0.9}, 40)
	res.Kernel.Do(func(i, j int, v float64) bool {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "K[%d][%d]=%v", i, j, v)

		return true
	})
}
