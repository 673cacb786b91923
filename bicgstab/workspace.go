// SPDX-License-Identifier: MIT
// Package bicgstab: workspace carving and the variant dispatch table.
//
// One item's workspace is nine Krylov vectors plus the preconditioner
// storage, split between a fast per-group arena and an aliased slice of
// the batch-wide global workspace exactly as the launch plan dictates.
// Each discrete occupancy level is a pre-built carver in a table
// indexed by launch.StorageConfig.Variant(); the hot loop never
// branches on placement.

package bicgstab

import "github.com/katalvlaran/krylov/launch"

// workspace is one item's carved scratch state. Vector slot order is
// fixed: r, rHat, p, pHat, v, s, sHat, t, x. Slices alias the arenas;
// nothing here owns memory.
type workspace struct {
	r, rHat, p, pHat []float64
	v, s, sHat, t, x []float64
	prec             []float64 // preconditioner storage, nil when unplanned
}

// carver places one item's workspace for a fixed occupancy level.
// shared is the group's fast arena (cfg.SharedElems() elements), global
// the item's slice of the batch workspace (cfg.GlobalStrideElems()
// elements).
type carver func(cfg launch.StorageConfig, rows int, shared, global []float64) workspace

// carveTable is the dispatch table over the discrete variants, built
// once at package init.
var carveTable = buildCarveTable()

func buildCarveTable() [launch.NumVariants]carver {
	var table [launch.NumVariants]carver
	for v := range table {
		numShared := v
		precShared := false
		if v == launch.NumVariants-1 {
			numShared = launch.NumWorkVectors
			precShared = true
		}
		table[v] = newCarver(numShared, precShared)
	}

	return table
}

// newCarver specializes the carving for one occupancy level: the first
// numShared vector slots come from the fast arena, the rest (and the
// preconditioner, unless resident) from the item's global slice.
func newCarver(numShared int, precShared bool) carver {
	return func(cfg launch.StorageConfig, rows int, shared, global []float64) workspace {
		vecElems := cfg.PaddedRows * cfg.NumRHS
		take := func(k int) []float64 {
			if k < numShared {
				off := k * vecElems

				return shared[off : off+rows]
			}
			off := (k - numShared) * vecElems

			return global[off : off+rows]
		}

		ws := workspace{
			r: take(0), rHat: take(1), p: take(2), pHat: take(3),
			v: take(4), s: take(5), sHat: take(6), t: take(7), x: take(8),
		}
		if cfg.PrecElems > 0 {
			if precShared {
				off := launch.NumWorkVectors * vecElems
				ws.prec = shared[off : off+cfg.PrecElems]
			} else {
				off := (launch.NumWorkVectors - numShared) * vecElems
				ws.prec = global[off : off+cfg.PrecElems]
			}
		}

		return ws
	}
}

// carveWorkspace dispatches to the pre-built carver for cfg's variant.
func carveWorkspace(cfg launch.StorageConfig, rows int, shared, global []float64) workspace {
	return carveTable[cfg.Variant()](cfg, rows, shared, global)
}
