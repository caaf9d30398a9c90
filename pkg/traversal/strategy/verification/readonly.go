// Package verification contains strategies that reject traversals without rewriting
// them.
package verification

import (
	"github.com/dVakulen/tinkerpop/pkg/errors"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
	"github.com/dVakulen/tinkerpop/pkg/traversal/strategy"
)

const ReadOnlyStrategyName = "ReadOnlyStrategy"

// ReadOnlyStrategy rejects traversals holding a step that writes to the graph,
// nested traversals included.
type ReadOnlyStrategy struct{}

var _ strategy.Strategy = (*ReadOnlyStrategy)(nil)

var readOnly = &ReadOnlyStrategy{}

// ReadOnly returns the shared ReadOnlyStrategy instance.
func ReadOnly() *ReadOnlyStrategy {
	return readOnly
}

func (*ReadOnlyStrategy) Name() string                { return ReadOnlyStrategyName }
func (*ReadOnlyStrategy) Category() strategy.Category { return strategy.Verification }
func (*ReadOnlyStrategy) ApplyPrior() []string        { return nil }
func (*ReadOnlyStrategy) ApplyPost() []string         { return nil }

func (*ReadOnlyStrategy) Apply(t *traversal.Traversal) error {
	mutating := traversal.StepsOfTypeRecursively[traversal.Mutating](t)
	if len(mutating) > 0 {
		return errors.NewVerificationError("the provided traversal has a mutating step and thus is not read only", t).
			WithStep(mutating[0])
	}
	return nil
}
