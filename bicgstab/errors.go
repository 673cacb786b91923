// SPDX-License-Identifier: MIT
// Package bicgstab: sentinel errors of the solver front door.

package bicgstab

import "errors"

var (
	// ErrBadOption is returned by New when an option carries an invalid
	// value (non-positive iteration limit, negative tolerance, ...).
	ErrBadOption = errors.New("bicgstab: bad option value")

	// ErrNilFactory is returned when WithStopFactory receives nil; a
	// solver must never run without a termination rule.
	ErrNilFactory = errors.New("bicgstab: nil stopping factory")
)
