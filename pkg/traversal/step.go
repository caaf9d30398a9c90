package traversal

import (
	"context"
	"fmt"
	"strings"
)

// Step is a single operation of a Traversal pipeline.
//
// Steps are linked to their neighbours and to the traversal that owns them by the
// traversal itself; implementations embed AbstractStep and never manage those links.
type Step interface {
	ID() string
	SetID(id string)

	// Traversal returns the owning traversal, or nil if the step was never added to one.
	Traversal() *Traversal
	SetTraversal(t *Traversal)

	PreviousStep() Step
	SetPreviousStep(s Step)
	NextStep() Step
	SetNextStep(s Step)

	// Requirements declares what the step needs from the execution context.
	Requirements() Requirements

	// Process consumes the traversers produced by the previous step and returns the
	// traversers handed to the next one.
	Process(ctx context.Context, in []*Traverser) ([]*Traverser, error)

	// Clone returns an unlinked deep copy of the step. Nested traversals are cloned
	// too and cached state is dropped.
	Clone() Step

	// Reset drops any state accumulated while processing.
	Reset()

	String() string
}

// Traverser carries one object through the pipeline.
type Traverser struct {
	Value any
}

func NewTraverser(v any) *Traverser {
	return &Traverser{Value: v}
}

// Traversers wraps every value in a Traverser.
func Traversers(values ...any) []*Traverser {
	out := make([]*Traverser, 0, len(values))
	for _, v := range values {
		out = append(out, NewTraverser(v))
	}
	return out
}

// Values unwraps the traverser values.
func Values(ts []*Traverser) []any {
	out := make([]any, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Value)
	}
	return out
}

// Requirements is a bit set of capabilities a step needs from the execution context.
type Requirements uint8

const (
	RequiresObject Requirements = 1 << iota
	RequiresBulk
	RequiresPath
	RequiresSideEffects
)

func (r Requirements) Has(other Requirements) bool {
	return r&other == other
}

func (r Requirements) String() string {
	var names []string
	for _, req := range []struct {
		r    Requirements
		name string
	}{
		{RequiresObject, "OBJECT"},
		{RequiresBulk, "BULK"},
		{RequiresPath, "PATH"},
		{RequiresSideEffects, "SIDE_EFFECTS"},
	} {
		if r.Has(req.r) {
			names = append(names, req.name)
		}
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// AbstractStep holds the identity and links shared by every step. It is meant to be
// embedded.
type AbstractStep struct {
	id        string
	traversal *Traversal
	previous  Step
	next      Step
}

func (s *AbstractStep) ID() string { return s.id }

func (s *AbstractStep) SetID(id string) { s.id = id }

func (s *AbstractStep) Traversal() *Traversal { return s.traversal }

func (s *AbstractStep) SetTraversal(t *Traversal) { s.traversal = t }

func (s *AbstractStep) PreviousStep() Step {
	if s.previous == nil {
		return EmptyStep
	}
	return s.previous
}

func (s *AbstractStep) SetPreviousStep(step Step) { s.previous = step }

func (s *AbstractStep) NextStep() Step {
	if s.next == nil {
		return EmptyStep
	}
	return s.next
}

func (s *AbstractStep) SetNextStep(step Step) { s.next = step }

func (s *AbstractStep) Requirements() Requirements { return RequiresObject }

func (s *AbstractStep) Reset() {}

// CloneAbstract returns a copy keeping the identity but none of the links.
func (s *AbstractStep) CloneAbstract() AbstractStep {
	return AbstractStep{id: s.id}
}

// StepString renders a step the way traversals print it, e.g. GroupCountStep(a).
func StepString(name string, args ...any) string {
	if len(args) == 0 {
		return name
	}
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

type emptyStep struct{}

// EmptyStep is the sentinel returned where no step exists: the neighbours of the start
// and end steps, the start and end of an empty traversal, and the parent of a root
// traversal.
var EmptyStep Step = emptyStep{}

func (emptyStep) ID() string                 { return "" }
func (emptyStep) SetID(string)               {}
func (emptyStep) Traversal() *Traversal      { return nil }
func (emptyStep) SetTraversal(*Traversal)    {}
func (emptyStep) PreviousStep() Step         { return EmptyStep }
func (emptyStep) SetPreviousStep(Step)       {}
func (emptyStep) NextStep() Step             { return EmptyStep }
func (emptyStep) SetNextStep(Step)           {}
func (emptyStep) Requirements() Requirements { return 0 }
func (emptyStep) Clone() Step                { return EmptyStep }
func (emptyStep) Reset()                     {}
func (emptyStep) String() string             { return "EmptyStep" }

func (emptyStep) Process(context.Context, []*Traverser) ([]*Traverser, error) {
	return nil, nil
}
