package step

import (
	"context"
	"slices"

	"github.com/dVakulen/tinkerpop/pkg/structure"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

// GraphStep emits the vertices of the traversal's graph, optionally limited to ids.
type GraphStep struct {
	traversal.AbstractStep
	ids      []any
	contains func(structure.Element) bool
}

var _ traversal.PartitionAware = (*GraphStep)(nil)

func NewGraphStep(ids ...any) *GraphStep {
	return &GraphStep{ids: ids}
}

// Restrict limits the emitted vertices to those contains accepts.
func (s *GraphStep) Restrict(contains func(structure.Element) bool) {
	s.contains = contains
}

func (s *GraphStep) Process(ctx context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	g := s.Traversal().Graph()
	if g == nil {
		return nil, ErrNoGraph
	}

	// a start step runs once, a mid-traversal V() once per incoming traverser
	runs := len(in)
	if s.PreviousStep() == traversal.EmptyStep {
		runs = 1
	}

	var out []*traversal.Traverser
	for range runs {
		vertices, err := g.Vertices(ctx)
		if err != nil {
			return nil, err
		}
		for v := range vertices {
			if len(s.ids) > 0 && !slices.Contains(s.ids, v.ID()) {
				continue
			}
			if s.contains != nil && !s.contains(v) {
				continue
			}
			out = append(out, traversal.NewTraverser(v))
		}
	}
	return out, nil
}

func (s *GraphStep) Clone() traversal.Step {
	return &GraphStep{
		AbstractStep: s.CloneAbstract(),
		ids:          slices.Clone(s.ids),
		contains:     s.contains,
	}
}

func (s *GraphStep) String() string {
	return traversal.StepString("GraphStep", append([]any{"vertex"}, s.ids...)...)
}

// InjectStep emits the given values ahead of its input.
type InjectStep struct {
	traversal.AbstractStep
	values []any
}

func NewInjectStep(values ...any) *InjectStep {
	return &InjectStep{values: values}
}

func (s *InjectStep) Process(_ context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	return append(traversal.Traversers(s.values...), in...), nil
}

func (s *InjectStep) Clone() traversal.Step {
	return &InjectStep{AbstractStep: s.CloneAbstract(), values: slices.Clone(s.values)}
}

func (s *InjectStep) String() string {
	return traversal.StepString("InjectStep", s.values...)
}
