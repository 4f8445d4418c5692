// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"
	"math"
	"strings"
)

// Float is the set of scalar precisions a lattice can run in.
type Float interface {
	float32 | float64
}

// Precision names the scalar type selected at construction time.
type Precision string

const (
	// Single selects float32 state and float32 finite-difference steps.
	Single Precision = "single"

	// Double selects float64 state and float64 finite-difference steps.
	Double Precision = "double"
)

// ParsePrecision maps a configuration string onto a Precision.
// Matching is case-insensitive; "float32"/"float64" are accepted aliases.
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "float32", "f32":
		return Single, nil
	case "double", "float64", "f64", "":
		return Double, nil
	default:
		return "", fmt.Errorf("ParsePrecision(%q): %w", s, ErrInvalidArgument)
	}
}

// Squash is the bounded nonlinearity applied after the linear combination.
// It must be odd, monotonic, have unit slope at the origin and be twice
// differentiable near typical operating values, or finite-difference
// estimates become unreliable.
type Squash func(x float64) float64

// Tanh is the reference squash function.
func Tanh(x float64) float64 { return math.Tanh(x) }

// Algebraic is x/√(1+x²): smooth, odd, unit slope at 0, asymptotes ±1.
func Algebraic(x float64) float64 { return x / math.Sqrt(1+x*x) }

// Arctan is (2/π)·atan(π/2·x): smooth, odd, unit slope at 0, asymptotes ±1.
func Arctan(x float64) float64 { return (2 / math.Pi) * math.Atan(math.Pi/2*x) }

// ParseSquash resolves a squash function by name ("tanh", "algebraic", "arctan").
func ParseSquash(name string) (Squash, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tanh", "":
		return Tanh, nil
	case "algebraic":
		return Algebraic, nil
	case "arctan", "atan":
		return Arctan, nil
	default:
		return nil, fmt.Errorf("ParseSquash(%q): %w", name, ErrInvalidArgument)
	}
}

// machineEpsilon returns the unit roundoff gap at 1.0 for T.
func machineEpsilon[T Float]() float64 {
	var zero T
	switch any(zero).(type) {
	case float32:
		return 0x1p-23
	default:
		return 0x1p-52
	}
}

// Epsilon returns the first-order finite-difference step √(machine ε) for T.
// It is not configurable.
func Epsilon[T Float]() float64 {
	return math.Sqrt(machineEpsilon[T]())
}

// HessianStep returns the mixed second-difference step (machine ε)^(1/4) for T.
func HessianStep[T Float]() float64 {
	return math.Sqrt(math.Sqrt(machineEpsilon[T]()))
}

// PrecisionOf reports the Precision matching T.
func PrecisionOf[T Float]() Precision {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return Single
	}

	return Double
}
