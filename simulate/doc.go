// SPDX-License-Identifier: MIT

// Package simulate records lattice trajectories and measures finite-poke
// responses over their temporal integrals.
//
// Where kernel works with infinitesimal one-step derivatives, simulate
// answers the experimental question directly: run the lattice from a base
// state and from poked copies of it, integrate every site over time, and
// difference the integrals.
//
//	K_a  = Y_a − Y_base
//	H_ab = (Y_ab − Y_base) − (K_a + K_b)
//
// Every call resets and drives the lattice it is given.
package simulate
