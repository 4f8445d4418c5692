// SPDX-License-Identifier: MIT

package strategy

import "errors"

var (
	// ErrNoLevers indicates a strategy built without any lever.
	ErrNoLevers = errors.New("strategy: no levers")

	// ErrInvalidLever indicates a lever with Delta ≤ 0, Min > Max or a bad pair index.
	ErrInvalidLever = errors.New("strategy: invalid lever")

	// ErrParamMismatch indicates a parameter vector whose length differs from the lever count.
	ErrParamMismatch = errors.New("strategy: parameter count does not match levers")

	// ErrInvalidIterations indicates a negative iteration budget.
	ErrInvalidIterations = errors.New("strategy: iterations must be >= 0")

	// ErrUnknownMode indicates an unrecognised strategy name.
	ErrUnknownMode = errors.New("strategy: unknown mode")
)
