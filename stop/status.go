// SPDX-License-Identifier: MIT
// Package stop: per-item stopping state, packed into one word.
// The layout mirrors the batched kernels' register image: two flag bits
// plus the firing criterion id, so a whole batch of statuses stays
// cache-resident during the group-wide loop.

package stop

// Well-known criterion ids recorded in Status. Zero means "no criterion
// has fired".
const (
	IDNone      uint8 = 0
	IDIteration uint8 = 1
	IDTime      uint8 = 2
	IDResidual  uint8 = 3
)

const (
	stoppedBit   Status = 1 << 0
	finalizedBit Status = 1 << 1
	idShift            = 2
)

// Status is the per-item bit-state: has_stopped, is_finalized, and the
// id of the criterion that fired.
//
// Lifecycle: Reset when the item enters the engine, mutated at most
// once per iteration via Stop, frozen forever after Finalize.
type Status uint32

// Reset returns the status to "running". Calling Reset on a finalized
// status is a programmer error; the engine resets only at entry.
func (s *Status) Reset() { *s = 0 }

// HasStopped reports whether any criterion has fired for this item.
func (s Status) HasStopped() bool { return s&stoppedBit != 0 }

// IsFinalized reports whether the finalization pass has recorded this
// item; a finalized status never changes again.
func (s Status) IsFinalized() bool { return s&finalizedBit != 0 }

// ID returns the id of the criterion that stopped this item, IDNone
// while the item is running.
func (s Status) ID() uint8 { return uint8(s >> idShift) }

// Stop marks the item stopped by criterion id. It is a no-op when the
// item has already stopped or is finalized, which is what makes OR
// composition first-wins deterministic.
//
// Returns true when this call changed the status.
func (s *Status) Stop(id uint8) bool {
	if s.HasStopped() || s.IsFinalized() {
		return false
	}
	*s = stoppedBit | Status(id)<<idShift

	return true
}

// Finalize freezes the status. Idempotent.
func (s *Status) Finalize() { *s |= finalizedBit }

// AllStopped reports whether every status in the slice has stopped.
// An empty slice counts as stopped (nothing left to run).
func AllStopped(statuses []Status) bool {
	for _, st := range statuses {
		if !st.HasStopped() {
			return false
		}
	}

	return true
}
