// SPDX-License-Identifier: MIT
// Package launch: discrete storage planning.
// The planner enumerates occupancy levels from richest to poorest and
// keeps the first one the fast-memory budget admits; everything that
// does not fit lands in the aligned per-item global stride.

package launch

// StorageConfig fixes, for a whole batch run, how the per-item
// workspace splits between fast (shared) and global memory. It is
// immutable once planned; there is no mid-run re-planning.
//
// Invariant: GlobalStrideBytes is a multiple of Alignment*ElemSize, so
// consecutive items' global slices never alias or split cache lines.
type StorageConfig struct {
	NumSharedSlots    int  // Krylov vectors resident in fast memory, 0..NumWorkVectors
	PrecShared        bool // preconditioner storage resident in fast memory
	GlobalStrideBytes int  // per-item global workspace stride
	PaddedRows        int  // rows rounded up to Alignment
	NumRHS            int  // right-hand sides per item
	PrecElems         int  // elements of preconditioner work storage per item
}

// PlanStorage chooses the richest StorageConfig the fast-memory budget
// admits for items of the given shape.
//
// Implementation:
//   - Stage 1: validate shape and limits.
//   - Stage 2: fill vector slots greedily; each slot costs one padded
//     item vector of fast memory.
//   - Stage 3: place the preconditioner in fast memory only when all
//     vector slots fit and budget remains.
//   - Stage 4: size the aligned global stride for whatever overflowed.
//
// Inputs:
//   - rows, numRHS: per-item problem shape, both > 0.
//   - precElems:    preconditioner work storage per item in elements,
//     >= 0 (0 means no preconditioner storage is planned).
//   - limits:       hardware capacities.
//
// Returns:
//   - the config and nil, or the zero config and ErrBadParameter.
//
// Notes:
//   - Storage planning itself never exhausts: level 0 (all-global)
//     always exists. Lane-count feasibility is Lanes' concern.
func PlanStorage(rows, numRHS, precElems int, limits HardwareLimits) (StorageConfig, error) {
	if rows <= 0 || numRHS <= 0 || precElems < 0 || !limits.valid() {
		return StorageConfig{}, ErrBadParameter
	}

	padded := PaddedRows(rows)
	vecElems := padded * numRHS
	vecBytes := vecElems * ElemSize

	nShared := limits.SharedMemPerGroup / vecBytes
	if nShared > NumWorkVectors {
		nShared = NumWorkVectors
	}
	precShared := nShared == NumWorkVectors &&
		precElems > 0 &&
		limits.SharedMemPerGroup-NumWorkVectors*vecBytes >= precElems*ElemSize

	globalElems := (NumWorkVectors - nShared) * vecElems
	if !precShared {
		globalElems += precElems
	}
	globalElems = (globalElems + Alignment - 1) / Alignment * Alignment

	return StorageConfig{
		NumSharedSlots:    nShared,
		PrecShared:        precShared,
		GlobalStrideBytes: globalElems * ElemSize,
		PaddedRows:        padded,
		NumRHS:            numRHS,
		PrecElems:         precElems,
	}, nil
}

// SharedElems reports the fast-memory arena size, in elements, one
// item's group needs under this config.
func (c StorageConfig) SharedElems() int {
	elems := c.NumSharedSlots * c.PaddedRows * c.NumRHS
	if c.PrecShared {
		elems += c.PrecElems
	}

	return elems
}

// GlobalStrideElems is the per-item global workspace stride in
// elements.
func (c StorageConfig) GlobalStrideElems() int {
	return c.GlobalStrideBytes / ElemSize
}
