// Package krylov is a batched iterative linear-system toolkit: solve
// many small independent sparse systems A_i·x_i = b_i together, one
// lockstep execution group per system.
//
// 🚀 What is krylov?
//
//	A deterministic, CPU-reference implementation of the batched
//	BiCGSTAB method and its collaborators:
//		• batch/       — uniform-batch CSR matrices & dense multivectors
//		• coop/        — cooperative-group collectives (broadcast, shuffle, reduce, pivot election)
//		• blockjacobi/ — dense block inversion (Gauss-Jordan, implicit full pivoting) & preconditioner
//		• launch/      — group sizing & shared/global storage planning against explicit HardwareLimits
//		• stop/        — composable stopping criteria (iteration cap, wall clock, residual norm)
//		• record/      — passive milestone recorder (allocations, applies, checks, completions)
//		• bicgstab/    — the iteration engine and the batch solve front door
//
// ✨ Why choose krylov?
//
//   - Deterministic – fixed reduction order, results independent of
//     worker count and storage variant
//   - Failure-isolating – breakdown or a singular block never escapes
//     its batch item
//   - Explicit – hardware capacities, tolerances and criteria are
//     values you pass in, never ambient state
//
// Quick example:
//
//	solver, err := bicgstab.New(
//		bicgstab.WithMaxIterations(100),
//		bicgstab.WithTolerance(1e-10),
//	)
//	if err != nil { ... }
//	statuses, err := solver.Solve(a, b, x) // x: guesses in, solutions out
//
// Every package documents its own contracts; start at bicgstab for the
// end-to-end flow.
package krylov
