// SPDX-License-Identifier: MIT

package launch

import "testing"

func TestPaddedRows(t *testing.T) {
	cases := map[int]int{1: 8, 8: 8, 9: 16, 17: 24, 64: 64}
	for rows, want := range cases {
		if got := PaddedRows(rows); got != want {
			t.Fatalf("PaddedRows(%d) = %d, want %d", rows, got, want)
		}
	}
}

func TestPlanStorage_AllResident(t *testing.T) {
	limits := ReferenceLimits()
	cfg, err := PlanStorage(16, 1, 16*16, limits)
	if err != nil {
		t.Fatalf("PlanStorage: %v", err)
	}
	if cfg.NumSharedSlots != NumWorkVectors || !cfg.PrecShared {
		t.Fatalf("config = %+v, want all nine slots plus preconditioner resident", cfg)
	}
	if cfg.GlobalStrideBytes != 0 {
		t.Fatalf("fully resident plan has stride %d, want 0", cfg.GlobalStrideBytes)
	}
	if got := cfg.Variant(); got != NumVariants-1 {
		t.Fatalf("Variant = %d, want %d", got, NumVariants-1)
	}
	if got := cfg.SharedElems(); got != NumWorkVectors*16+16*16 {
		t.Fatalf("SharedElems = %d", got)
	}
}

func TestPlanStorage_AllGlobal(t *testing.T) {
	limits := ReferenceLimits()
	limits.SharedMemPerGroup = 0
	cfg, err := PlanStorage(10, 1, 100, limits)
	if err != nil {
		t.Fatalf("PlanStorage: %v", err)
	}
	if cfg.NumSharedSlots != 0 || cfg.PrecShared {
		t.Fatalf("config = %+v, want everything global", cfg)
	}
	// 9 vectors of 16 padded rows plus 100 preconditioner elements,
	// rounded up to the 8-element alignment.
	wantElems := (9*16 + 100 + Alignment - 1) / Alignment * Alignment
	if cfg.GlobalStrideElems() != wantElems {
		t.Fatalf("stride = %d elems, want %d", cfg.GlobalStrideElems(), wantElems)
	}
	if cfg.GlobalStrideBytes%(Alignment*ElemSize) != 0 {
		t.Fatalf("stride %d bytes not aligned", cfg.GlobalStrideBytes)
	}
	if got := cfg.Variant(); got != 0 {
		t.Fatalf("Variant = %d, want 0", got)
	}
}

func TestPlanStorage_PartialOccupancy(t *testing.T) {
	limits := ReferenceLimits()
	// Room for exactly four padded vectors of 16 rows, nothing more.
	limits.SharedMemPerGroup = 4 * 16 * ElemSize
	cfg, err := PlanStorage(10, 1, 100, limits)
	if err != nil {
		t.Fatalf("PlanStorage: %v", err)
	}
	if cfg.NumSharedSlots != 4 || cfg.PrecShared {
		t.Fatalf("config = %+v, want four shared slots", cfg)
	}
	if got := cfg.Variant(); got != 4 {
		t.Fatalf("Variant = %d, want 4", got)
	}
	wantElems := (5*16 + 100 + Alignment - 1) / Alignment * Alignment
	if cfg.GlobalStrideElems() != wantElems {
		t.Fatalf("stride = %d elems, want %d", cfg.GlobalStrideElems(), wantElems)
	}
}

func TestPlanStorage_NineSlotsButPrecOverflows(t *testing.T) {
	limits := ReferenceLimits()
	// All nine vectors fit with one element to spare, the
	// preconditioner does not.
	limits.SharedMemPerGroup = 9*8*ElemSize + ElemSize
	cfg, err := PlanStorage(8, 1, 64, limits)
	if err != nil {
		t.Fatalf("PlanStorage: %v", err)
	}
	if cfg.NumSharedSlots != 9 || cfg.PrecShared {
		t.Fatalf("config = %+v, want nine slots with global preconditioner", cfg)
	}
	if got := cfg.Variant(); got != 9 {
		t.Fatalf("Variant = %d, want 9", got)
	}
	if cfg.GlobalStrideElems() != 64 {
		t.Fatalf("stride = %d elems, want 64", cfg.GlobalStrideElems())
	}
}

func TestPlanStorage_Validation(t *testing.T) {
	limits := ReferenceLimits()
	if _, err := PlanStorage(0, 1, 0, limits); err != ErrBadParameter {
		t.Fatalf("rows=0: got %v", err)
	}
	if _, err := PlanStorage(4, 0, 0, limits); err != ErrBadParameter {
		t.Fatalf("numRHS=0: got %v", err)
	}
	if _, err := PlanStorage(4, 1, -1, limits); err != ErrBadParameter {
		t.Fatalf("precElems<0: got %v", err)
	}
	bad := limits
	bad.WarpSize = 0
	if _, err := PlanStorage(4, 1, 0, bad); err != ErrBadParameter {
		t.Fatalf("bad limits: got %v", err)
	}
}

func TestLanes(t *testing.T) {
	limits := ReferenceLimits()

	got, err := Lanes(8, limits)
	if err != nil || got != 2*limits.WarpSize {
		t.Fatalf("Lanes(8) = %d, %v; want two warps", got, err)
	}

	got, err = Lanes(40, limits)
	if err != nil || got != 10*limits.WarpSize {
		t.Fatalf("Lanes(40) = %d, %v; want ten warps", got, err)
	}

	// Huge item clamps at the lane ceiling.
	got, err = Lanes(100000, limits)
	if err != nil || got != limits.MaxLanesPerGroup {
		t.Fatalf("Lanes(100000) = %d, %v; want ceiling %d", got, err, limits.MaxLanesPerGroup)
	}

	// Register pressure below the two-warp floor rejects the batch.
	tight := limits
	tight.MaxRegistersPerGroup = RegistersPerLane * limits.WarpSize
	if _, err = Lanes(8, tight); err != ErrResourceExhausted {
		t.Fatalf("tight registers: got %v, want ErrResourceExhausted", err)
	}

	if _, err = Lanes(0, limits); err != ErrBadParameter {
		t.Fatalf("rows=0: got %v, want ErrBadParameter", err)
	}
}
