// Package decoration contains strategies that add behavior to a traversal, such as
// initial side effects or delegated execution, rather than optimizing it.
package decoration

import (
	"github.com/dVakulen/tinkerpop/pkg/actor"
	"github.com/dVakulen/tinkerpop/pkg/errors"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
	"github.com/dVakulen/tinkerpop/pkg/traversal/step"
	"github.com/dVakulen/tinkerpop/pkg/traversal/strategy"
	"github.com/dVakulen/tinkerpop/pkg/traversal/strategy/verification"
)

const (
	ActorStrategyName = "ActorStrategy"

	// VertexProgramStrategyName names the strategy that would compile a traversal to a
	// graph computer program. It is only referenced as an ordering constraint.
	VertexProgramStrategyName = "VertexProgramStrategy"
)

// ActorStrategy collapses a root traversal into a single actor.Step that executes the
// original pipeline on an actor runtime. Mutating traversals and traversals starting
// from injected values are rejected.
type ActorStrategy struct {
	actors      actor.Factory
	partitioner actor.Partitioner
	stepOpts    []actor.StepOpt
}

var _ strategy.Strategy = (*ActorStrategy)(nil)

func NewActorStrategy(actors actor.Factory, partitioner actor.Partitioner, opts ...actor.StepOpt) *ActorStrategy {
	return &ActorStrategy{actors: actors, partitioner: partitioner, stepOpts: opts}
}

func (*ActorStrategy) Name() string                { return ActorStrategyName }
func (*ActorStrategy) Category() strategy.Category { return strategy.Decoration }
func (*ActorStrategy) ApplyPrior() []string        { return []string{RemoteStrategyName} }
func (*ActorStrategy) ApplyPost() []string         { return []string{VertexProgramStrategyName} }

func (s *ActorStrategy) Partitioner() actor.Partitioner { return s.partitioner }

func (s *ActorStrategy) Apply(t *traversal.Traversal) error {
	if err := verification.ReadOnly().Apply(t); err != nil {
		return err
	}
	for _, st := range t.Steps() {
		if reason, ok := unsupportedByActors(st); ok {
			return errors.NewVerificationError(reason, t).WithStep(st)
		}
	}
	if !t.IsRoot() {
		return nil
	}
	if t.Len() == 1 {
		if _, ok := t.StartStep().(traversal.Delegated); ok {
			return nil
		}
	}

	actorStep := actor.NewStep(t, s.actors, s.partitioner, s.stepOpts...)
	t.RemoveAllSteps()
	t.AddStep(actorStep)

	errors.AssertInvariant(t.Len() == 1 && t.StartStep() == actorStep && t.EndStep() == actorStep,
		"traversal %s was not collapsed into a single actor step", t.ID())
	return nil
}

func unsupportedByActors(s traversal.Step) (string, bool) {
	switch s.(type) {
	case *step.InjectStep:
		return "inject traversal currently not supported", true
	}
	return "", false
}
