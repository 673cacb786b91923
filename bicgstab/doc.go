// Package bicgstab implements the batched BiCGSTAB solver: many small
// independent sparse systems solved together for throughput, one
// iteration state machine per batch item.
//
// Construction is option-driven:
//
//	solver, err := bicgstab.New(
//		bicgstab.WithMaxIterations(200),
//		bicgstab.WithTolerance(1e-10),
//		bicgstab.WithRecorder(rec),
//	)
//	statuses, err := solver.Solve(a, b, x)
//
// Placement of the per-item workspace (nine Krylov vectors plus the
// block-Jacobi preconditioner) is planned once per batch by the launch
// package and dispatched through a table of pre-built occupancy
// variants; results are independent of the chosen variant and of the
// worker count.
//
// Termination composes stopping criteria under OR semantics (stop
// package). Numerical breakdown is per item: the affected item keeps
// its last iterate and reports Breakdown in its status while every
// other item runs to completion.
package bicgstab
