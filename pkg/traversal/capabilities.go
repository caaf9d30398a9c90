package traversal

import (
	"context"

	"github.com/dVakulen/tinkerpop/pkg/structure"
)

// Parent is implemented by steps that hold nested traversals. Local children are
// evaluated per traverser (e.g. a by() modulator), global children over the whole
// stream.
type Parent interface {
	Step
	LocalChildren() []*Traversal
	GlobalChildren() []*Traversal
}

// SideEffectProducer is implemented by steps that write into the side-effect store.
type SideEffectProducer interface {
	Step
	SideEffectKey() string
}

// SideEffectCapable steps know how to turn the raw accumulated value of their key into
// the value handed to the caller.
type SideEffectCapable interface {
	SideEffectProducer
	GenerateFinalResult(ctx context.Context, raw any) (any, error)
}

// Mutating steps write to the graph.
type Mutating interface {
	Step
	MutatesGraph()
}

// Barrier steps need every upstream traverser before they can emit anything.
type Barrier interface {
	Step
	IsBarrier()
}

// Delegated steps stand in for a whole pipeline executed elsewhere.
type Delegated interface {
	Step
	DelegatesExecution()
}

// PartitionAware start steps can be restricted to the elements owned by one worker.
type PartitionAware interface {
	Step
	Restrict(contains func(structure.Element) bool)
}
