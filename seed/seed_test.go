// SPDX-License-Identifier: MIT
package seed_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/mcik/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestZero covers the quiet state and a bad length.
func TestZero(t *testing.T) {
	z, err := seed.Zero(4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, z)

	_, err = seed.Zero(0)
	assert.ErrorIs(t, err, seed.ErrBadLength)
}

// TestWithPokes accumulates pokes and validates sites and values.
func TestWithPokes(t *testing.T) {
	s, err := seed.WithPokes(5, []seed.Poke{{Site: 1, Value: 0.5}, {Site: 3, Value: -0.2}, {Site: 1, Value: 0.25}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.75, 0, -0.2, 0}, s)

	_, err = seed.WithPokes(5, []seed.Poke{{Site: 5, Value: 1}})
	assert.ErrorIs(t, err, seed.ErrSiteOutOfRange)
	_, err = seed.WithPokes(5, []seed.Poke{{Site: 0, Value: math.NaN()}})
	assert.ErrorIs(t, err, seed.ErrNonFinite)
	_, err = seed.WithPokes(-1, nil)
	assert.ErrorIs(t, err, seed.ErrBadLength)
}

// TestApply_AtomicOnError leaves the state alone when any poke is invalid.
func TestApply_AtomicOnError(t *testing.T) {
	state := []float64{1, 2, 3}
	err := seed.Apply(state, []seed.Poke{{Site: 0, Value: 1}, {Site: 9, Value: 1}})
	assert.ErrorIs(t, err, seed.ErrSiteOutOfRange)
	assert.Equal(t, []float64{1, 2, 3}, state)
}

// TestPulse_Rectangular pins the default period-8, 50% duty train.
func TestPulse_Rectangular(t *testing.T) {
	p, err := seed.Pulse(10)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1, 0, 0, 0, 0, 1, 1}, p)
}

// TestPulse_Triangular pins the triangle envelope and the amplitude option.
func TestPulse_Triangular(t *testing.T) {
	p, err := seed.Pulse(9, seed.WithTriangular(), seed.WithAmplitude(2))
	require.NoError(t, err)
	want := []float64{0, 0.5, 1, 1.5, 2, 1.5, 1, 0.5, 0}
	for i := range want {
		assert.InDelta(t, want[i], p[i], 1e-12, "sample %d", i)
	}
}

// TestPulse_Trend adds k·i on top of the waveform.
func TestPulse_Trend(t *testing.T) {
	p, err := seed.Pulse(4, seed.WithDuty(0), seed.WithTrend(0.1))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.1, 0.2, 0.3}, p, 1e-12)
}

// TestChirp checks bounds, determinism and the first sample's phase.
func TestChirp(t *testing.T) {
	a, err := seed.Chirp(64, seed.WithAmplitude(0.3))
	require.NoError(t, err)
	b, _ := seed.Chirp(64, seed.WithAmplitude(0.3))
	assert.Equal(t, a, b)
	for _, v := range a {
		assert.LessOrEqual(t, math.Abs(v), 0.3+1e-12)
	}
	assert.InDelta(t, 0.3*math.Sin(2*math.Pi*0.02), a[0], 1e-12)

	one, err := seed.Chirp(1, seed.WithSweep(0.1, 0.4))
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(2*math.Pi*0.1), one[0], 1e-12)

	_, err = seed.Chirp(0)
	assert.ErrorIs(t, err, seed.ErrBadLength)
}

// TestOptions_Panic covers option validation.
func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { seed.WithAmplitude(0) })
	assert.Panics(t, func() { seed.WithAmplitude(math.Inf(1)) })
	assert.Panics(t, func() { seed.WithFrequency(-1) })
	assert.Panics(t, func() { seed.WithDuty(1.5) })
	assert.Panics(t, func() { seed.WithSweep(0.1, 0) })
	assert.Panics(t, func() { seed.WithTrend(math.NaN()) })
}

// TestAs round-trips through float32.
func TestAs(t *testing.T) {
	f32 := seed.As[float32]([]float64{0.5, -0.25})
	assert.Equal(t, []float32{0.5, -0.25}, f32)
	assert.Equal(t, []float64{0.5, -0.25}, seed.Float64(f32))
	assert.Equal(t, "3=0.25", seed.Poke{Site: 3, Value: 0.25}.String())
}
