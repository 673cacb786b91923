// Package launch plans execution-group geometry and workspace placement
// for one batch run.
//
// Planning is a discrete optimization performed once per batch, before
// any work starts:
//
//   - Lanes derives the group width from the item's row count, rounded
//     to the hardware's native warp width and clamped by the
//     register-file and hard lane ceilings.
//   - PlanStorage walks shared-memory occupancy levels from highest
//     (all nine Krylov vectors plus the preconditioner in fast memory)
//     to lowest (everything in the global workspace) and picks the
//     richest level the fast-memory budget admits. Overflow is routed
//     to a per-item global stride padded to an 8-element alignment so
//     items never alias.
//
// The resulting StorageConfig maps to one of eleven pre-built kernel
// variants through Variant; the hot loop dispatches through that table
// once and never branches on placement again.
//
// All hardware capacities arrive through the explicit HardwareLimits
// value, never ambient device state, so plans are pure and testable.
package launch
