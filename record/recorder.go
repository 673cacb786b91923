// SPDX-License-Identifier: MIT
// Package record: the Recorder itself.
// A nil *Recorder is a valid no-op observer, so call sites notify
// unconditionally. Batch items report concurrently; appends are
// serialized by a mutex, which only disabled-kind fast paths skip.

package record

import "sync"

// Recorder captures subscribed milestones into per-kind append-only
// lists.
//
// Behavior highlights:
//   - A kind outside the subscription mask costs one mask test; no
//     locking, no allocation.
//   - Notification methods never fail and never alter their arguments.
//   - Safe for concurrent use; records within one kind keep append
//     order.
type Recorder struct {
	mask Kind

	mu sync.Mutex

	allocStarted   []MemoryRecord
	allocCompleted []MemoryRecord
	freeStarted    []MemoryRecord
	freeCompleted  []MemoryRecord

	copyStarted   []CopyRecord
	copyCompleted []CopyRecord

	opLaunched  []OperationRecord
	opCompleted []OperationRecord

	genStarted   []FactoryRecord
	genCompleted []FactoryRecord

	checkStarted   []CriterionCheckRecord
	checkCompleted []CriterionCheckRecord

	applyStarted      []ApplyRecord
	applyCompleted    []ApplyRecord
	advApplyStarted   []AdvancedApplyRecord
	advApplyCompleted []AdvancedApplyRecord

	iterations []IterationRecord

	objCreateStarted   []ObjectRecord
	objCreateCompleted []ObjectRecord
	objCopyStarted     []ObjectRecord
	objCopyCompleted   []ObjectRecord
	objMoveStarted     []ObjectRecord
	objMoveCompleted   []ObjectRecord
	objDeleted         []ObjectRecord
}

// New constructs a Recorder subscribed to the given kinds. A zero mask
// yields a recorder that ignores everything.
func New(mask Kind) *Recorder {
	return &Recorder{mask: mask}
}

// Enabled reports whether the recorder captures kind k. Nil-safe.
func (r *Recorder) Enabled(k Kind) bool {
	return r != nil && r.mask&k != 0
}

// Clear drops every captured record, keeping the subscription mask.
func (r *Recorder) Clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allocStarted, r.allocCompleted = nil, nil
	r.freeStarted, r.freeCompleted = nil, nil
	r.copyStarted, r.copyCompleted = nil, nil
	r.opLaunched, r.opCompleted = nil, nil
	r.genStarted, r.genCompleted = nil, nil
	r.checkStarted, r.checkCompleted = nil, nil
	r.applyStarted, r.applyCompleted = nil, nil
	r.advApplyStarted, r.advApplyCompleted = nil, nil
	r.iterations = nil
	r.objCreateStarted, r.objCreateCompleted = nil, nil
	r.objCopyStarted, r.objCopyCompleted = nil, nil
	r.objMoveStarted, r.objMoveCompleted = nil, nil
	r.objDeleted = nil
}

// --- notification points -------------------------------------------------

// OnAllocationStarted records an allocation request of the given size.
func (r *Recorder) OnAllocationStarted(rec MemoryRecord) {
	if !r.Enabled(AllocationStarted) {
		return
	}
	r.mu.Lock()
	r.allocStarted = append(r.allocStarted, rec)
	r.mu.Unlock()
}

// OnAllocationCompleted records a finished allocation, location known.
func (r *Recorder) OnAllocationCompleted(rec MemoryRecord) {
	if !r.Enabled(AllocationCompleted) {
		return
	}
	r.mu.Lock()
	r.allocCompleted = append(r.allocCompleted, rec)
	r.mu.Unlock()
}

// OnFreeStarted records the beginning of a workspace release.
func (r *Recorder) OnFreeStarted(rec MemoryRecord) {
	if !r.Enabled(FreeStarted) {
		return
	}
	r.mu.Lock()
	r.freeStarted = append(r.freeStarted, rec)
	r.mu.Unlock()
}

// OnFreeCompleted records a finished workspace release.
func (r *Recorder) OnFreeCompleted(rec MemoryRecord) {
	if !r.Enabled(FreeCompleted) {
		return
	}
	r.mu.Lock()
	r.freeCompleted = append(r.freeCompleted, rec)
	r.mu.Unlock()
}

// OnCopyStarted records the beginning of a storage-to-storage copy.
func (r *Recorder) OnCopyStarted(rec CopyRecord) {
	if !r.Enabled(CopyStarted) {
		return
	}
	r.mu.Lock()
	r.copyStarted = append(r.copyStarted, rec)
	r.mu.Unlock()
}

// OnCopyCompleted records a finished copy.
func (r *Recorder) OnCopyCompleted(rec CopyRecord) {
	if !r.Enabled(CopyCompleted) {
		return
	}
	r.mu.Lock()
	r.copyCompleted = append(r.copyCompleted, rec)
	r.mu.Unlock()
}

// OnOperationLaunched records a generic operation start.
func (r *Recorder) OnOperationLaunched(rec OperationRecord) {
	if !r.Enabled(OperationLaunched) {
		return
	}
	r.mu.Lock()
	r.opLaunched = append(r.opLaunched, rec)
	r.mu.Unlock()
}

// OnOperationCompleted records a generic operation completion.
func (r *Recorder) OnOperationCompleted(rec OperationRecord) {
	if !r.Enabled(OperationCompleted) {
		return
	}
	r.mu.Lock()
	r.opCompleted = append(r.opCompleted, rec)
	r.mu.Unlock()
}

// OnFactoryGenerateStarted records the start of criterion/preconditioner
// generation.
func (r *Recorder) OnFactoryGenerateStarted(rec FactoryRecord) {
	if !r.Enabled(FactoryGenerateStarted) {
		return
	}
	r.mu.Lock()
	r.genStarted = append(r.genStarted, rec)
	r.mu.Unlock()
}

// OnFactoryGenerateCompleted records a finished generation.
func (r *Recorder) OnFactoryGenerateCompleted(rec FactoryRecord) {
	if !r.Enabled(FactoryGenerateCompleted) {
		return
	}
	r.mu.Lock()
	r.genCompleted = append(r.genCompleted, rec)
	r.mu.Unlock()
}

// OnCriterionCheckStarted records the inputs of a stopping check.
func (r *Recorder) OnCriterionCheckStarted(rec CriterionCheckRecord) {
	if !r.Enabled(CriterionCheckStarted) {
		return
	}
	r.mu.Lock()
	r.checkStarted = append(r.checkStarted, rec)
	r.mu.Unlock()
}

// OnCriterionCheckCompleted records the decision of a stopping check.
func (r *Recorder) OnCriterionCheckCompleted(rec CriterionCheckRecord) {
	if !r.Enabled(CriterionCheckCompleted) {
		return
	}
	r.mu.Lock()
	r.checkCompleted = append(r.checkCompleted, rec)
	r.mu.Unlock()
}

// OnApplyStarted records a plain operator application start.
func (r *Recorder) OnApplyStarted(rec ApplyRecord) {
	if !r.Enabled(ApplyStarted) {
		return
	}
	r.mu.Lock()
	r.applyStarted = append(r.applyStarted, rec)
	r.mu.Unlock()
}

// OnApplyCompleted records a plain operator application completion.
func (r *Recorder) OnApplyCompleted(rec ApplyRecord) {
	if !r.Enabled(ApplyCompleted) {
		return
	}
	r.mu.Lock()
	r.applyCompleted = append(r.applyCompleted, rec)
	r.mu.Unlock()
}

// OnAdvancedApplyStarted records a scaled application start.
func (r *Recorder) OnAdvancedApplyStarted(rec AdvancedApplyRecord) {
	if !r.Enabled(AdvancedApplyStarted) {
		return
	}
	r.mu.Lock()
	r.advApplyStarted = append(r.advApplyStarted, rec)
	r.mu.Unlock()
}

// OnAdvancedApplyCompleted records a scaled application completion.
func (r *Recorder) OnAdvancedApplyCompleted(rec AdvancedApplyRecord) {
	if !r.Enabled(AdvancedApplyCompleted) {
		return
	}
	r.mu.Lock()
	r.advApplyCompleted = append(r.advApplyCompleted, rec)
	r.mu.Unlock()
}

// OnIterationComplete records an item's terminal iteration snapshot;
// the engine emits it exactly once per item.
func (r *Recorder) OnIterationComplete(rec IterationRecord) {
	if !r.Enabled(IterationComplete) {
		return
	}
	r.mu.Lock()
	r.iterations = append(r.iterations, rec)
	r.mu.Unlock()
}

// OnObjectCreateStarted records a polymorphic-object creation start.
func (r *Recorder) OnObjectCreateStarted(rec ObjectRecord) {
	if !r.Enabled(ObjectCreateStarted) {
		return
	}
	r.mu.Lock()
	r.objCreateStarted = append(r.objCreateStarted, rec)
	r.mu.Unlock()
}

// OnObjectCreateCompleted records a polymorphic-object creation end.
func (r *Recorder) OnObjectCreateCompleted(rec ObjectRecord) {
	if !r.Enabled(ObjectCreateCompleted) {
		return
	}
	r.mu.Lock()
	r.objCreateCompleted = append(r.objCreateCompleted, rec)
	r.mu.Unlock()
}

// OnObjectCopyStarted records a polymorphic-object copy start.
func (r *Recorder) OnObjectCopyStarted(rec ObjectRecord) {
	if !r.Enabled(ObjectCopyStarted) {
		return
	}
	r.mu.Lock()
	r.objCopyStarted = append(r.objCopyStarted, rec)
	r.mu.Unlock()
}

// OnObjectCopyCompleted records a polymorphic-object copy end.
func (r *Recorder) OnObjectCopyCompleted(rec ObjectRecord) {
	if !r.Enabled(ObjectCopyCompleted) {
		return
	}
	r.mu.Lock()
	r.objCopyCompleted = append(r.objCopyCompleted, rec)
	r.mu.Unlock()
}

// OnObjectMoveStarted records a polymorphic-object move start.
func (r *Recorder) OnObjectMoveStarted(rec ObjectRecord) {
	if !r.Enabled(ObjectMoveStarted) {
		return
	}
	r.mu.Lock()
	r.objMoveStarted = append(r.objMoveStarted, rec)
	r.mu.Unlock()
}

// OnObjectMoveCompleted records a polymorphic-object move end.
func (r *Recorder) OnObjectMoveCompleted(rec ObjectRecord) {
	if !r.Enabled(ObjectMoveCompleted) {
		return
	}
	r.mu.Lock()
	r.objMoveCompleted = append(r.objMoveCompleted, rec)
	r.mu.Unlock()
}

// OnObjectDeleted records a polymorphic-object deletion.
func (r *Recorder) OnObjectDeleted(rec ObjectRecord) {
	if !r.Enabled(ObjectDeleted) {
		return
	}
	r.mu.Lock()
	r.objDeleted = append(r.objDeleted, rec)
	r.mu.Unlock()
}

// --- accessors -----------------------------------------------------------
//
// Accessors return a copy of the captured list so callers can inspect
// records while a solve is still appending.

// AllocationsStarted returns captured allocation-started records.
func (r *Recorder) AllocationsStarted() []MemoryRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]MemoryRecord(nil), r.allocStarted...)
}

// AllocationsCompleted returns captured allocation-completed records.
func (r *Recorder) AllocationsCompleted() []MemoryRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]MemoryRecord(nil), r.allocCompleted...)
}

// FreesStarted returns captured free-started records.
func (r *Recorder) FreesStarted() []MemoryRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]MemoryRecord(nil), r.freeStarted...)
}

// FreesCompleted returns captured free-completed records.
func (r *Recorder) FreesCompleted() []MemoryRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]MemoryRecord(nil), r.freeCompleted...)
}

// CopiesStarted returns captured copy-started records.
func (r *Recorder) CopiesStarted() []CopyRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]CopyRecord(nil), r.copyStarted...)
}

// CopiesCompleted returns captured copy-completed records.
func (r *Recorder) CopiesCompleted() []CopyRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]CopyRecord(nil), r.copyCompleted...)
}

// OperationsLaunched returns captured operation-launched records.
func (r *Recorder) OperationsLaunched() []OperationRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]OperationRecord(nil), r.opLaunched...)
}

// OperationsCompleted returns captured operation-completed records.
func (r *Recorder) OperationsCompleted() []OperationRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]OperationRecord(nil), r.opCompleted...)
}

// FactoryGenerationsStarted returns captured generate-started records.
func (r *Recorder) FactoryGenerationsStarted() []FactoryRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]FactoryRecord(nil), r.genStarted...)
}

// FactoryGenerationsCompleted returns captured generate-completed records.
func (r *Recorder) FactoryGenerationsCompleted() []FactoryRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]FactoryRecord(nil), r.genCompleted...)
}

// CriterionChecksStarted returns captured check-started records.
func (r *Recorder) CriterionChecksStarted() []CriterionCheckRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]CriterionCheckRecord(nil), r.checkStarted...)
}

// CriterionChecksCompleted returns captured check-completed records.
func (r *Recorder) CriterionChecksCompleted() []CriterionCheckRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]CriterionCheckRecord(nil), r.checkCompleted...)
}

// AppliesStarted returns captured apply-started records.
func (r *Recorder) AppliesStarted() []ApplyRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]ApplyRecord(nil), r.applyStarted...)
}

// AppliesCompleted returns captured apply-completed records.
func (r *Recorder) AppliesCompleted() []ApplyRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]ApplyRecord(nil), r.applyCompleted...)
}

// AdvancedAppliesStarted returns captured advanced-apply-started records.
func (r *Recorder) AdvancedAppliesStarted() []AdvancedApplyRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]AdvancedApplyRecord(nil), r.advApplyStarted...)
}

// AdvancedAppliesCompleted returns captured advanced-apply-completed records.
func (r *Recorder) AdvancedAppliesCompleted() []AdvancedApplyRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]AdvancedApplyRecord(nil), r.advApplyCompleted...)
}

// Iterations returns captured iteration-complete records.
func (r *Recorder) Iterations() []IterationRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]IterationRecord(nil), r.iterations...)
}

// ObjectsDeleted returns captured object-deleted records.
func (r *Recorder) ObjectsDeleted() []ObjectRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]ObjectRecord(nil), r.objDeleted...)
}

// ObjectsCreated returns captured object-create-completed records.
func (r *Recorder) ObjectsCreated() []ObjectRecord {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]ObjectRecord(nil), r.objCreateCompleted...)
}
