package step

import (
	"context"
	"fmt"

	"github.com/dVakulen/tinkerpop/pkg/structure"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

// ValuesStep maps elements to the value of a property. Elements without the property
// are dropped.
type ValuesStep struct {
	traversal.AbstractStep
	key string
}

func NewValuesStep(key string) *ValuesStep {
	return &ValuesStep{key: key}
}

func (s *ValuesStep) Process(_ context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	out := make([]*traversal.Traverser, 0, len(in))
	for _, t := range in {
		e, ok := t.Value.(structure.Element)
		if !ok {
			return nil, ErrNotAnElement
		}
		if v, ok := e.Property(s.key); ok {
			out = append(out, traversal.NewTraverser(v))
		}
	}
	return out, nil
}

func (s *ValuesStep) Clone() traversal.Step {
	return &ValuesStep{AbstractStep: s.CloneAbstract(), key: s.key}
}

func (s *ValuesStep) String() string {
	return traversal.StepString("ValuesStep", s.key)
}

// LabelStep maps elements to their label.
type LabelStep struct {
	traversal.AbstractStep
}

func NewLabelStep() *LabelStep {
	return &LabelStep{}
}

func (s *LabelStep) Process(_ context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	out := make([]*traversal.Traverser, 0, len(in))
	for _, t := range in {
		e, ok := t.Value.(structure.Element)
		if !ok {
			return nil, ErrNotAnElement
		}
		out = append(out, traversal.NewTraverser(e.Label()))
	}
	return out, nil
}

func (s *LabelStep) Clone() traversal.Step {
	return &LabelStep{AbstractStep: s.CloneAbstract()}
}

func (s *LabelStep) String() string { return "LabelStep" }

// LocalStep runs its child traversal once per traverser and emits everything the child
// produced.
type LocalStep struct {
	traversal.AbstractStep
	local *traversal.Traversal
}

var _ traversal.Parent = (*LocalStep)(nil)

func NewLocalStep(local *traversal.Traversal) *LocalStep {
	s := &LocalStep{local: local}
	local.SetParent(s)
	return s
}

func (s *LocalStep) LocalChildren() []*traversal.Traversal {
	return []*traversal.Traversal{s.local}
}

func (s *LocalStep) GlobalChildren() []*traversal.Traversal { return nil }

func (s *LocalStep) Requirements() traversal.Requirements {
	return traversal.RequiresObject | s.local.Requirements()
}

func (s *LocalStep) Process(ctx context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	var out []*traversal.Traverser
	for _, t := range in {
		res, err := s.local.ExecuteRange(ctx, 0, s.local.Len(), []*traversal.Traverser{t})
		if err != nil {
			return nil, err
		}
		out = append(out, res...)
	}
	return out, nil
}

func (s *LocalStep) Reset() {
	s.local.Reset()
}

func (s *LocalStep) Clone() traversal.Step {
	c := &LocalStep{AbstractStep: s.CloneAbstract(), local: s.local.Clone()}
	c.local.SetParent(c)
	return c
}

func (s *LocalStep) String() string {
	return traversal.StepString("LocalStep", s.local)
}

// CountGlobalStep is a barrier emitting the number of traversers it received.
type CountGlobalStep struct {
	traversal.AbstractStep
}

var _ traversal.Barrier = (*CountGlobalStep)(nil)

func NewCountGlobalStep() *CountGlobalStep {
	return &CountGlobalStep{}
}

func (s *CountGlobalStep) IsBarrier() {}

func (s *CountGlobalStep) Process(_ context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	return []*traversal.Traverser{traversal.NewTraverser(int64(len(in)))}, nil
}

func (s *CountGlobalStep) Clone() traversal.Step {
	return &CountGlobalStep{AbstractStep: s.CloneAbstract()}
}

func (s *CountGlobalStep) String() string { return "CountGlobalStep" }

func fmtValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
