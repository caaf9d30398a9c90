package step

import (
	"context"
	"maps"

	"github.com/dVakulen/tinkerpop/pkg/structure"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

// AddVertexStep adds a vertex to the graph. As a start step it adds one vertex,
// otherwise one per incoming traverser.
type AddVertexStep struct {
	traversal.AbstractStep
	label      string
	properties map[string]any
}

var _ traversal.Mutating = (*AddVertexStep)(nil)

func NewAddVertexStep(label string, properties map[string]any) *AddVertexStep {
	return &AddVertexStep{label: label, properties: properties}
}

func (s *AddVertexStep) MutatesGraph() {}

func (s *AddVertexStep) Process(ctx context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	g, ok := s.Traversal().Graph().(structure.MutableGraph)
	if !ok {
		return nil, ErrGraphNotMutable
	}

	runs := len(in)
	if s.PreviousStep() == traversal.EmptyStep {
		runs = 1
	}

	out := make([]*traversal.Traverser, 0, runs)
	for range runs {
		v, err := g.AddVertex(ctx, s.label, s.properties)
		if err != nil {
			return nil, err
		}
		out = append(out, traversal.NewTraverser(v))
	}
	return out, nil
}

func (s *AddVertexStep) Clone() traversal.Step {
	return &AddVertexStep{AbstractStep: s.CloneAbstract(), label: s.label, properties: maps.Clone(s.properties)}
}

func (s *AddVertexStep) String() string {
	return traversal.StepString("AddVertexStep", s.label)
}

// DropStep removes the incoming vertices from the graph and emits nothing.
type DropStep struct {
	traversal.AbstractStep
}

var _ traversal.Mutating = (*DropStep)(nil)

func NewDropStep() *DropStep {
	return &DropStep{}
}

func (s *DropStep) MutatesGraph() {}

func (s *DropStep) Process(ctx context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	g, ok := s.Traversal().Graph().(structure.MutableGraph)
	if !ok {
		return nil, ErrGraphNotMutable
	}
	for _, t := range in {
		e, ok := t.Value.(structure.Element)
		if !ok {
			return nil, ErrNotAnElement
		}
		if err := g.RemoveVertex(ctx, e.ID()); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (s *DropStep) Clone() traversal.Step {
	return &DropStep{AbstractStep: s.CloneAbstract()}
}

func (s *DropStep) String() string { return "DropStep" }
