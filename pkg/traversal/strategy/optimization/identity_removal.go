// Package optimization contains strategies that rewrite a traversal into an equivalent,
// cheaper one.
package optimization

import (
	"github.com/dVakulen/tinkerpop/pkg/traversal"
	"github.com/dVakulen/tinkerpop/pkg/traversal/step"
	"github.com/dVakulen/tinkerpop/pkg/traversal/strategy"
)

const IdentityRemovalStrategyName = "IdentityRemovalStrategy"

// IdentityRemovalStrategy drops IdentityStep from pipelines with more than one step.
type IdentityRemovalStrategy struct{}

var _ strategy.Strategy = (*IdentityRemovalStrategy)(nil)

func NewIdentityRemovalStrategy() *IdentityRemovalStrategy {
	return &IdentityRemovalStrategy{}
}

func (*IdentityRemovalStrategy) Name() string                { return IdentityRemovalStrategyName }
func (*IdentityRemovalStrategy) Category() strategy.Category { return strategy.Optimization }
func (*IdentityRemovalStrategy) ApplyPrior() []string        { return nil }
func (*IdentityRemovalStrategy) ApplyPost() []string         { return nil }

func (*IdentityRemovalStrategy) Apply(t *traversal.Traversal) error {
	for _, s := range traversal.StepsOfType[*step.IdentityStep](t) {
		if t.Len() == 1 {
			break
		}
		t.RemoveStep(s)
	}
	return nil
}
