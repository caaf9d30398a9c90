package decoration

import (
	"github.com/dVakulen/tinkerpop/pkg/errors"
	"github.com/dVakulen/tinkerpop/pkg/remote"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
	"github.com/dVakulen/tinkerpop/pkg/traversal/strategy"
)

const RemoteStrategyName = "RemoteStrategy"

// RemoteStrategy collapses a root traversal into a remote.Step that submits the
// original pipeline over a Connection.
type RemoteStrategy struct {
	conn remote.Connection
	opts []remote.StepOpt
}

var _ strategy.Strategy = (*RemoteStrategy)(nil)

func NewRemoteStrategy(conn remote.Connection, opts ...remote.StepOpt) *RemoteStrategy {
	return &RemoteStrategy{conn: conn, opts: opts}
}

func (*RemoteStrategy) Name() string                { return RemoteStrategyName }
func (*RemoteStrategy) Category() strategy.Category { return strategy.Decoration }
func (*RemoteStrategy) ApplyPrior() []string        { return nil }
func (*RemoteStrategy) ApplyPost() []string         { return nil }

func (s *RemoteStrategy) Apply(t *traversal.Traversal) error {
	if !t.IsRoot() || t.Len() == 0 {
		return nil
	}
	if t.Len() == 1 {
		if _, ok := t.StartStep().(traversal.Delegated); ok {
			return nil
		}
	}

	remoteStep := remote.NewStep(s.conn, t, s.opts...)
	t.RemoveAllSteps()
	t.AddStep(remoteStep)

	errors.AssertInvariant(t.Len() == 1 && t.StartStep() == remoteStep,
		"traversal %s was not collapsed into a single remote step", t.ID())
	return nil
}
