// SPDX-License-Identifier: MIT
// Package record: milestone kinds and their record payloads.
// Every milestone family gets its own payload struct instead of a
// type-erased envelope, so consumers read fields, not casts.

package record

// Kind is a bitmask of milestone kinds a Recorder subscribes to.
type Kind uint32

const (
	AllocationStarted Kind = 1 << iota
	AllocationCompleted
	FreeStarted
	FreeCompleted
	CopyStarted
	CopyCompleted
	OperationLaunched
	OperationCompleted
	FactoryGenerateStarted
	FactoryGenerateCompleted
	CriterionCheckStarted
	CriterionCheckCompleted
	ApplyStarted
	ApplyCompleted
	AdvancedApplyStarted
	AdvancedApplyCompleted
	IterationComplete
	ObjectCreateStarted
	ObjectCreateCompleted
	ObjectCopyStarted
	ObjectCopyCompleted
	ObjectMoveStarted
	ObjectMoveCompleted
	ObjectDeleted

	kindEnd
)

// AllKinds subscribes a recorder to every milestone.
const AllKinds = kindEnd - 1

// MemoryRecord snapshots an allocation or free milestone.
type MemoryRecord struct {
	Device   string
	Bytes    int
	Location uintptr // handle of the backing storage, 0 when not yet known
}

// CopyRecord snapshots a copy milestone between two storage locations.
type CopyRecord struct {
	Device string
	Bytes  int
	From   uintptr
	To     uintptr
}

// OperationRecord snapshots a generic operation launch/completion.
type OperationRecord struct {
	Device string
	Name   string
}

// FactoryRecord snapshots a factory-generate milestone.
type FactoryRecord struct {
	Factory string
	Input   string
	Output  string // empty on the started form
}

// CriterionCheckRecord is the unified criterion-check snapshot. The
// started form carries the inputs; the completed form additionally
// carries the decision. ImplicitNorm is nil when the check point had no
// implicit-residual estimate — there is exactly one completed
// signature, optionality replaces the legacy two-form split.
type CriterionCheckRecord struct {
	Item         int
	Iteration    int
	ResidualNorm float64
	ImplicitNorm *float64
	StoppingID   uint8
	OneChanged   bool
	AllStopped   bool
	Finalized    bool
}

// ApplyRecord snapshots a linear-operator application, plain form.
type ApplyRecord struct {
	Operator string
	Item     int
}

// AdvancedApplyRecord snapshots the scaled form x = alpha*op(b) + beta*x.
type AdvancedApplyRecord struct {
	Operator string
	Item     int
	Alpha    float64
	Beta     float64
}

// IterationRecord snapshots the per-item completion milestone: emitted
// exactly once per item when its iteration loop terminates.
type IterationRecord struct {
	Item          int
	NumIterations int
	ResidualNorm  float64
	AllStopped    bool
}

// ObjectRecord snapshots a polymorphic-object lifecycle milestone.
type ObjectRecord struct {
	Device string
	Object string
	Peer   string // counterpart of copy/move milestones, empty otherwise
}
