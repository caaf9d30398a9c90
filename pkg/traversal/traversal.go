// Package traversal contains the step pipeline of a graph query and the contracts
// strategies and steps rely on.
//
// A Traversal is an ordered sequence of steps. Strategies rewrite it before it is
// executed; nested traversals (held by Parent steps) share the side-effect store and
// graph of their root.
package traversal

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dVakulen/tinkerpop/pkg/errors"
	"github.com/dVakulen/tinkerpop/pkg/id"
	"github.com/dVakulen/tinkerpop/pkg/structure"
)

type Traversal struct {
	id          string
	steps       []Step
	parent      Step
	sideEffects *SideEffects
	graph       structure.Graph
	locked      bool
}

// New returns an empty root traversal over g. g may be nil for anonymous traversals
// that are later nested into a parent step.
func New(g structure.Graph) *Traversal {
	return &Traversal{
		id:          id.New(),
		parent:      EmptyStep,
		sideEffects: NewSideEffects(),
		graph:       g,
	}
}

// Anonymous returns a traversal meant to be nested into a parent step.
func Anonymous(steps ...Step) *Traversal {
	t := New(nil)
	for _, s := range steps {
		t.AddStep(s)
	}
	return t
}

func (t *Traversal) ID() string { return t.id }

// Steps returns a copy of the pipeline.
func (t *Traversal) Steps() []Step {
	return slices.Clone(t.steps)
}

func (t *Traversal) Len() int { return len(t.steps) }

// StartStep returns the first step, or EmptyStep if the pipeline is empty.
func (t *Traversal) StartStep() Step {
	if len(t.steps) == 0 {
		return EmptyStep
	}
	return t.steps[0]
}

// EndStep returns the last step, or EmptyStep if the pipeline is empty.
func (t *Traversal) EndStep() Step {
	if len(t.steps) == 0 {
		return EmptyStep
	}
	return t.steps[len(t.steps)-1]
}

// AddStep appends s and returns t.
func (t *Traversal) AddStep(s Step) *Traversal {
	return t.AddStepAt(len(t.steps), s)
}

// AddStepAt inserts s at index i.
func (t *Traversal) AddStepAt(i int, s Step) *Traversal {
	errors.AssertInvariant(i >= 0 && i <= len(t.steps), "index %d out of range [0,%d] for %s", i, len(t.steps), t)
	errors.AssertInvariant(s != EmptyStep, "cannot add EmptyStep to %s", t)

	if s.ID() == "" {
		s.SetID(id.New())
	}
	s.SetTraversal(t)
	t.steps = slices.Insert(t.steps, i, s)
	t.relink()
	return t
}

// RemoveStepAt removes and returns the step at index i.
func (t *Traversal) RemoveStepAt(i int) Step {
	errors.AssertInvariant(i >= 0 && i < len(t.steps), "index %d out of range [0,%d) for %s", i, len(t.steps), t)

	s := t.steps[i]
	t.steps = slices.Delete(t.steps, i, i+1)
	unlink(s)
	t.relink()
	return s
}

// RemoveStep removes s and reports whether it was part of the pipeline.
func (t *Traversal) RemoveStep(s Step) bool {
	i := t.IndexOf(s)
	if i < 0 {
		return false
	}
	t.RemoveStepAt(i)
	return true
}

// ReplaceStep puts replacement where old was. It reports false if old is not part of
// the pipeline.
func (t *Traversal) ReplaceStep(old, replacement Step) bool {
	i := t.IndexOf(old)
	if i < 0 {
		return false
	}
	t.RemoveStepAt(i)
	t.AddStepAt(i, replacement)
	return true
}

// RemoveAllSteps empties the pipeline. An empty pipeline is only valid while a
// strategy rewrites it.
func (t *Traversal) RemoveAllSteps() {
	for _, s := range t.steps {
		unlink(s)
	}
	t.steps = nil
}

func (t *Traversal) IndexOf(s Step) int {
	return slices.IndexFunc(t.steps, func(other Step) bool { return other == s })
}

// Parent returns the step holding this traversal, or EmptyStep for a root traversal.
func (t *Traversal) Parent() Step { return t.parent }

func (t *Traversal) SetParent(p Step) {
	if p == nil {
		p = EmptyStep
	}
	t.parent = p
}

func (t *Traversal) IsRoot() bool { return t.parent == EmptyStep }

// Root walks up the parent steps to the outermost traversal. A traversal whose parent
// step is not yet part of a traversal is its own root.
func (t *Traversal) Root() *Traversal {
	root := t
	for root.parent != EmptyStep && root.parent.Traversal() != nil {
		root = root.parent.Traversal()
	}
	return root
}

// SideEffects returns the store shared by the whole traversal tree.
func (t *Traversal) SideEffects() *SideEffects {
	return t.Root().sideEffects
}

func (t *Traversal) Graph() structure.Graph {
	if t.graph != nil {
		return t.graph
	}
	if root := t.Root(); root != t {
		return root.Graph()
	}
	return nil
}

func (t *Traversal) SetGraph(g structure.Graph) { t.graph = g }

// Lock marks the traversal tree as compiled. Strategies are not applied to a locked
// traversal.
func (t *Traversal) Lock() {
	t.locked = true
	for _, c := range t.Children() {
		c.Lock()
	}
}

func (t *Traversal) IsLocked() bool { return t.locked }

// Children returns the traversals nested directly into the steps of t.
func (t *Traversal) Children() []*Traversal {
	var children []*Traversal
	for _, s := range t.steps {
		if p, ok := s.(Parent); ok {
			children = append(children, p.LocalChildren()...)
			children = append(children, p.GlobalChildren()...)
		}
	}
	return children
}

// Requirements is the union of the requirements of every step, nested ones included.
func (t *Traversal) Requirements() Requirements {
	var r Requirements
	for _, s := range StepsOfTypeRecursively[Step](t) {
		r |= s.Requirements()
	}
	return r
}

// Clone returns a deep copy of t with its own snapshot of the side effects. The copy
// keeps the parent of t; callers turning it into a root call SetParent(EmptyStep).
func (t *Traversal) Clone() *Traversal {
	c := &Traversal{
		id:          t.id,
		parent:      t.parent,
		sideEffects: t.SideEffects().Clone(),
		graph:       t.Graph(),
		locked:      t.locked,
		steps:       make([]Step, 0, len(t.steps)),
	}
	for _, s := range t.steps {
		cs := s.Clone()
		cs.SetTraversal(c)
		c.steps = append(c.steps, cs)
	}
	c.relink()
	return c
}

// Reset drops the processing state of every step.
func (t *Traversal) Reset() {
	for _, s := range t.steps {
		s.Reset()
	}
}

// Execute runs the whole pipeline.
func (t *Traversal) Execute(ctx context.Context) ([]*Traverser, error) {
	return t.ExecuteRange(ctx, 0, len(t.steps), nil)
}

// ExecuteRange feeds in through the steps in [from, to) and returns what the last of
// them produced.
func (t *Traversal) ExecuteRange(ctx context.Context, from, to int, in []*Traverser) ([]*Traverser, error) {
	errors.AssertInvariant(from >= 0 && from <= to && to <= len(t.steps), "range [%d,%d) out of bounds for %s", from, to, t)

	out := in
	for _, s := range t.steps[from:to] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		out, err = s.Process(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s, err)
		}
	}
	return out, nil
}

// VerifyStructure panics if the links of the pipeline are inconsistent.
func (t *Traversal) VerifyStructure() {
	for i, s := range t.steps {
		errors.AssertInvariant(s.Traversal() == t, "step %s at %d is owned by another traversal", s, i)

		prev, next := EmptyStep, EmptyStep
		if i > 0 {
			prev = t.steps[i-1]
		}
		if i < len(t.steps)-1 {
			next = t.steps[i+1]
		}
		errors.AssertInvariant(s.PreviousStep() == prev, "step %s at %d has a broken previous link", s, i)
		errors.AssertInvariant(s.NextStep() == next, "step %s at %d has a broken next link", s, i)
	}
}

func (t *Traversal) String() string {
	parts := make([]string, 0, len(t.steps))
	for _, s := range t.steps {
		parts = append(parts, s.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (t *Traversal) relink() {
	for i, s := range t.steps {
		if i == 0 {
			s.SetPreviousStep(EmptyStep)
		} else {
			s.SetPreviousStep(t.steps[i-1])
		}
		if i == len(t.steps)-1 {
			s.SetNextStep(EmptyStep)
		} else {
			s.SetNextStep(t.steps[i+1])
		}
	}
	t.VerifyStructure()
}

func unlink(s Step) {
	s.SetPreviousStep(EmptyStep)
	s.SetNextStep(EmptyStep)
	s.SetTraversal(nil)
}
