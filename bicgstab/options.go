// SPDX-License-Identifier: MIT
// Package bicgstab: solver construction and functional options.
// All parameter validation happens here, at construction time; Solve
// never discovers a bad setting mid-batch.

package bicgstab

import (
	"math"

	"github.com/katalvlaran/krylov/launch"
	"github.com/katalvlaran/krylov/record"
	"github.com/katalvlaran/krylov/stop"
)

// Defaults applied by New when the corresponding option is absent.
const (
	// DefaultMaxIterations caps the Krylov loop per item.
	DefaultMaxIterations = 100

	// DefaultTolerance is the relative residual threshold.
	DefaultTolerance = 1e-8

	// DefaultWorkers of 0 lets Solve size the worker pool from
	// GOMAXPROCS.
	DefaultWorkers = 0
)

// Solver is a configured batched BiCGSTAB solver. It is immutable after
// New and safe for concurrent Solve calls with distinct operands.
type Solver struct {
	maxIters    int
	tol         float64
	mode        stop.ResidualMode
	factory     stop.Factory // overrides the built-in criteria when set
	rec         *record.Recorder
	blockJacobi bool
	workers     int
	limits      launch.HardwareLimits
}

// Option mutates solver configuration during New.
type Option func(*Solver) error

// WithMaxIterations sets the per-item iteration cap, must be > 0.
func WithMaxIterations(n int) Option {
	return func(s *Solver) error {
		if n <= 0 {
			return ErrBadOption
		}
		s.maxIters = n

		return nil
	}
}

// WithTolerance sets the residual threshold, must be finite and >= 0.
func WithTolerance(tol float64) Option {
	return func(s *Solver) error {
		if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			return ErrBadOption
		}
		s.tol = tol

		return nil
	}
}

// WithResidualMode selects Relative (default) or Absolute thresholds.
func WithResidualMode(mode stop.ResidualMode) Option {
	return func(s *Solver) error {
		if mode > stop.Absolute {
			return ErrBadOption
		}
		s.mode = mode

		return nil
	}
}

// WithStopFactory replaces the built-in iteration+residual criteria
// with a caller-supplied factory (typically a stop.Combine result).
// WithMaxIterations and WithTolerance are ignored when this is set.
func WithStopFactory(f stop.Factory) Option {
	return func(s *Solver) error {
		if f == nil {
			return ErrNilFactory
		}
		s.factory = f

		return nil
	}
}

// WithRecorder attaches a milestone recorder; nil detaches (the
// default).
func WithRecorder(r *record.Recorder) Option {
	return func(s *Solver) error {
		s.rec = r

		return nil
	}
}

// WithBlockJacobi toggles the block-Jacobi preconditioner. Enabled by
// default; items wider than blockjacobi.MaxBlockSize silently run
// unpreconditioned either way.
func WithBlockJacobi(enabled bool) Option {
	return func(s *Solver) error {
		s.blockJacobi = enabled

		return nil
	}
}

// WithWorkers fixes the solve-time worker count; 0 defers to
// GOMAXPROCS, negative is rejected.
func WithWorkers(n int) Option {
	return func(s *Solver) error {
		if n < 0 {
			return ErrBadOption
		}
		s.workers = n

		return nil
	}
}

// WithHardwareLimits overrides the planning capacities (defaults to
// launch.ReferenceLimits).
func WithHardwareLimits(h launch.HardwareLimits) Option {
	return func(s *Solver) error {
		if err := h.Validate(); err != nil {
			return ErrBadOption
		}
		s.limits = h

		return nil
	}
}

// New builds a solver from defaults plus options.
//
// Returns:
//   - *Solver and nil, or nil and the first option error; a solver
//     that cannot terminate is never constructed.
func New(opts ...Option) (*Solver, error) {
	s := &Solver{
		maxIters:    DefaultMaxIterations,
		tol:         DefaultTolerance,
		mode:        stop.Relative,
		blockJacobi: true,
		workers:     DefaultWorkers,
		limits:      launch.ReferenceLimits(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.factory == nil {
		iterF, err := stop.Iteration(s.maxIters)
		if err != nil {
			return nil, err
		}
		resF, err := stop.ResidualNorm(s.tol, s.mode)
		if err != nil {
			return nil, err
		}
		s.factory, err = stop.Combine(iterF, resF)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}
