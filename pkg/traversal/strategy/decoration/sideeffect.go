package decoration

import (
	"slices"

	"github.com/dVakulen/tinkerpop/pkg/traversal"
	"github.com/dVakulen/tinkerpop/pkg/traversal/step"
	"github.com/dVakulen/tinkerpop/pkg/traversal/strategy"
)

const (
	SideEffectStrategyName    = "SideEffectStrategy"
	SideEffectCapStrategyName = "SideEffectCapStrategy"
)

// SideEffect is the definition of one initial side effect.
type SideEffect struct {
	Key      string
	Supplier traversal.Supplier
	Reducer  traversal.Reducer
}

// SideEffectStrategy registers initial side effects on root traversals.
type SideEffectStrategy struct {
	sideEffects []SideEffect
}

var _ strategy.Strategy = (*SideEffectStrategy)(nil)

func NewSideEffectStrategy(sideEffects ...SideEffect) *SideEffectStrategy {
	return &SideEffectStrategy{sideEffects: slices.Clone(sideEffects)}
}

func (*SideEffectStrategy) Name() string                { return SideEffectStrategyName }
func (*SideEffectStrategy) Category() strategy.Category { return strategy.Decoration }
func (*SideEffectStrategy) ApplyPrior() []string        { return nil }
func (*SideEffectStrategy) ApplyPost() []string         { return nil }

func (s *SideEffectStrategy) Apply(t *traversal.Traversal) error {
	if !t.IsRoot() {
		return nil
	}
	for _, se := range s.sideEffects {
		t.SideEffects().Register(se.Key, se.Supplier, se.Reducer)
	}
	return nil
}

// SideEffectCapStrategy makes a root traversal that ends with a SideEffectCapable step
// emit the finalized side effect of that step instead of its pass-through traversers.
// It runs before ActorStrategy so that the cap step becomes part of the actor plan.
type SideEffectCapStrategy struct{}

var _ strategy.Strategy = (*SideEffectCapStrategy)(nil)

func NewSideEffectCapStrategy() *SideEffectCapStrategy {
	return &SideEffectCapStrategy{}
}

func (*SideEffectCapStrategy) Name() string                { return SideEffectCapStrategyName }
func (*SideEffectCapStrategy) Category() strategy.Category { return strategy.Decoration }
func (*SideEffectCapStrategy) ApplyPrior() []string        { return nil }
func (*SideEffectCapStrategy) ApplyPost() []string {
	return []string{ActorStrategyName, RemoteStrategyName}
}

func (*SideEffectCapStrategy) Apply(t *traversal.Traversal) error {
	if !t.IsRoot() {
		return nil
	}
	end, ok := t.EndStep().(traversal.SideEffectCapable)
	if !ok {
		return nil
	}
	t.AddStep(step.NewSideEffectCapStep(end.SideEffectKey()))
	return nil
}
