// SPDX-License-Identifier: MIT

package seed

import (
	"fmt"
	"math"
)

const (
	defAmplitude = 1.0   // peak value A > 0
	defPulseFreq = 0.125 // pulse frequency, cycles/site (period 8)
	defDuty      = 0.5   // rectangular duty in [0,1]
	defChirpF0   = 0.02  // chirp start frequency
	defChirpF1   = 0.25  // chirp end frequency
)

// Option customizes a waveform generator.
// Option constructors panic on meaningless values; generators never panic.
type Option func(*params)

type params struct {
	amp        float64
	freq       float64
	duty       float64
	triangular bool
	trend      float64
	f0, f1     float64
}

func defaultParams() params {
	return params{
		amp:  defAmplitude,
		freq: defPulseFreq,
		duty: defDuty,
		f0:   defChirpF0,
		f1:   defChirpF1,
	}
}

func gather(opts ...Option) params {
	p := defaultParams()
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}

	return p
}

func mustFinite(name string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("seed: %s(%v) must be finite", name, v))
	}
}

// WithAmplitude sets the peak value A (> 0).
func WithAmplitude(a float64) Option {
	mustFinite("WithAmplitude", a)
	if a <= 0 {
		panic(fmt.Sprintf("seed: WithAmplitude(%v) must be > 0", a))
	}

	return func(p *params) { p.amp = a }
}

// WithFrequency sets the pulse frequency in cycles per site (> 0).
func WithFrequency(f float64) Option {
	mustFinite("WithFrequency", f)
	if f <= 0 {
		panic(fmt.Sprintf("seed: WithFrequency(%v) must be > 0", f))
	}

	return func(p *params) { p.freq = f }
}

// WithDuty sets the rectangular duty cycle in [0,1].
func WithDuty(d float64) Option {
	mustFinite("WithDuty", d)
	if d < 0 || d > 1 {
		panic(fmt.Sprintf("seed: WithDuty(%v) must be in [0,1]", d))
	}

	return func(p *params) { p.duty = d }
}

// WithTriangular switches Pulse to the triangular shape.
func WithTriangular() Option {
	return func(p *params) { p.triangular = true }
}

// WithTrend adds k·i to sample i.
func WithTrend(k float64) Option {
	mustFinite("WithTrend", k)

	return func(p *params) { p.trend = k }
}

// WithSweep sets the chirp start and end frequencies (both > 0).
func WithSweep(f0, f1 float64) Option {
	mustFinite("WithSweep", f0)
	mustFinite("WithSweep", f1)
	if f0 <= 0 || f1 <= 0 {
		panic(fmt.Sprintf("seed: WithSweep(%v, %v) frequencies must be > 0", f0, f1))
	}

	return func(p *params) { p.f0, p.f1 = f0, f1 }
}
