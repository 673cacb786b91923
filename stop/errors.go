// SPDX-License-Identifier: MIT
// Package stop: sentinel error set.
// Configuration problems surface here, at construction time; the check
// path never returns errors.

package stop

import "errors"

var (
	// ErrUnsupportedConfiguration is returned when a stopping set would
	// be built with zero usable criteria (empty sequence, or all entries
	// nil after dropping). Solving never proceeds without a termination
	// rule.
	ErrUnsupportedConfiguration = errors.New("stop: no usable stopping criteria configured")

	// ErrBadParameter is returned by criterion factories on nonsensical
	// parameters (non-positive iteration limit, non-positive time limit,
	// negative tolerance).
	ErrBadParameter = errors.New("stop: invalid criterion parameter")

	// ErrBadProblem is returned by Generate when the problem descriptor
	// is inconsistent (non-positive item count, baseline norms of the
	// wrong length).
	ErrBadProblem = errors.New("stop: invalid problem descriptor")
)
