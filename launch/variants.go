// SPDX-License-Identifier: MIT
// Package launch: the discrete kernel-variant index.
// Eleven variants exist: ten vector occupancy levels (0..9 shared
// slots, preconditioner global) plus the fully resident level (9 slots
// with the preconditioner shared). The index selects a pre-built entry
// in the executor's dispatch table, never a branch in the hot loop.

package launch

// NumVariants is the size of the kernel dispatch table.
const NumVariants = NumWorkVectors + 2

// Variant maps a StorageConfig to its dispatch-table index:
//
//	0..9  -> that many shared vector slots, preconditioner global
//	10    -> all nine slots and the preconditioner in fast memory
func (c StorageConfig) Variant() int {
	if c.PrecShared {
		return NumWorkVectors + 1
	}

	return c.NumSharedSlots
}
