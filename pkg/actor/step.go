package actor

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dVakulen/tinkerpop/pkg/logger"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

var ErrNoActors = errors.New("actor step has no actors factory")

// Step replaces a whole pipeline by its delegated execution on an actor runtime. The
// plan is a clone of the original pipeline; it is exposed as a global child so that
// the remaining strategies still reach the nested steps.
type Step struct {
	traversal.AbstractStep
	plan        *traversal.Traversal
	actors      Factory
	partitioner Partitioner
	logger      logger.Logger
}

var (
	_ traversal.Delegated = (*Step)(nil)
	_ traversal.Parent    = (*Step)(nil)
)

type StepOpt func(*Step)

func WithLogger(l logger.Logger) StepOpt {
	return func(s *Step) {
		s.logger = l
	}
}

// NewStep captures a clone of t as the execution plan.
func NewStep(t *traversal.Traversal, actors Factory, partitioner Partitioner, opts ...StepOpt) *Step {
	s := &Step{
		plan:        t.Clone(),
		actors:      actors,
		partitioner: partitioner,
		logger:      logger.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.plan.SetParent(s)
	return s
}

func (s *Step) DelegatesExecution() {}

func (s *Step) Plan() *traversal.Traversal { return s.plan }

func (s *Step) Partitioner() Partitioner { return s.partitioner }

func (s *Step) LocalChildren() []*traversal.Traversal { return nil }

func (s *Step) GlobalChildren() []*traversal.Traversal {
	return []*traversal.Traversal{s.plan}
}

func (s *Step) Requirements() traversal.Requirements {
	return s.plan.Requirements()
}

// Process submits the plan to the actors and publishes the side effects they computed
// on the owning traversal.
func (s *Step) Process(ctx context.Context, _ []*traversal.Traverser) ([]*traversal.Traverser, error) {
	if s.actors == nil {
		return nil, ErrNoActors
	}

	actors, err := s.actors(NewProgram(s.plan), s.partitioner)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := actors.Close(); err != nil {
			s.logger.WarnWithContext(ctx, "failed to close actors", zap.Error(err))
		}
	}()

	res, err := actors.Submit(ctx)
	if err != nil {
		return nil, err
	}
	if res.SideEffects != nil {
		s.Traversal().SideEffects().Assign(res.SideEffects)
	}
	return res.Traversers, nil
}

func (s *Step) Clone() traversal.Step {
	c := &Step{
		AbstractStep: s.CloneAbstract(),
		plan:         s.plan.Clone(),
		actors:       s.actors,
		partitioner:  s.partitioner,
		logger:       s.logger,
	}
	c.plan.SetParent(c)
	return c
}

func (s *Step) String() string {
	return traversal.StepString("ActorStep", s.plan)
}
