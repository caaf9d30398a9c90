package step

import (
	"context"
	"slices"

	"github.com/dVakulen/tinkerpop/pkg/structure"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

// IdentityStep passes its input through unchanged.
type IdentityStep struct {
	traversal.AbstractStep
}

func NewIdentityStep() *IdentityStep {
	return &IdentityStep{}
}

func (s *IdentityStep) Process(_ context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	return in, nil
}

func (s *IdentityStep) Clone() traversal.Step {
	return &IdentityStep{AbstractStep: s.CloneAbstract()}
}

func (s *IdentityStep) String() string { return "IdentityStep" }

// HasLabelStep keeps elements whose label is one of labels.
type HasLabelStep struct {
	traversal.AbstractStep
	labels []string
}

func NewHasLabelStep(labels ...string) *HasLabelStep {
	return &HasLabelStep{labels: labels}
}

func (s *HasLabelStep) Process(_ context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	return filterElements(in, func(e structure.Element) bool {
		return slices.Contains(s.labels, e.Label())
	})
}

func (s *HasLabelStep) Clone() traversal.Step {
	return &HasLabelStep{AbstractStep: s.CloneAbstract(), labels: slices.Clone(s.labels)}
}

func (s *HasLabelStep) String() string {
	args := make([]any, 0, len(s.labels))
	for _, l := range s.labels {
		args = append(args, l)
	}
	return traversal.StepString("HasLabelStep", args...)
}

// HasStep keeps elements whose property key equals value.
type HasStep struct {
	traversal.AbstractStep
	key   string
	value any
}

func NewHasStep(key string, value any) *HasStep {
	return &HasStep{key: key, value: value}
}

func (s *HasStep) Process(_ context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	return filterElements(in, func(e structure.Element) bool {
		v, ok := e.Property(s.key)
		return ok && v == s.value
	})
}

func (s *HasStep) Clone() traversal.Step {
	return &HasStep{AbstractStep: s.CloneAbstract(), key: s.key, value: s.value}
}

func (s *HasStep) String() string {
	return traversal.StepString("HasStep", s.key+".eq("+fmtValue(s.value)+")")
}

func filterElements(in []*traversal.Traverser, keep func(structure.Element) bool) ([]*traversal.Traverser, error) {
	out := make([]*traversal.Traverser, 0, len(in))
	for _, t := range in {
		e, ok := t.Value.(structure.Element)
		if !ok {
			return nil, ErrNotAnElement
		}
		if keep(e) {
			out = append(out, t)
		}
	}
	return out, nil
}
