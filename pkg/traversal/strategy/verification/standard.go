package verification

import (
	"github.com/dVakulen/tinkerpop/pkg/errors"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
	"github.com/dVakulen/tinkerpop/pkg/traversal/step"
	"github.com/dVakulen/tinkerpop/pkg/traversal/strategy"
)

const StandardVerificationStrategyName = "StandardVerificationStrategy"

// StandardVerificationStrategy checks the structure of the pipeline and that every key
// read by a cap step is either produced by a step of the traversal tree or was
// registered on the side-effect store up front.
type StandardVerificationStrategy struct{}

var _ strategy.Strategy = (*StandardVerificationStrategy)(nil)

func NewStandardVerificationStrategy() *StandardVerificationStrategy {
	return &StandardVerificationStrategy{}
}

func (*StandardVerificationStrategy) Name() string                { return StandardVerificationStrategyName }
func (*StandardVerificationStrategy) Category() strategy.Category { return strategy.Verification }
func (*StandardVerificationStrategy) ApplyPrior() []string        { return nil }
func (*StandardVerificationStrategy) ApplyPost() []string         { return nil }

func (*StandardVerificationStrategy) Apply(t *traversal.Traversal) error {
	t.VerifyStructure()

	caps := traversal.StepsOfType[*step.SideEffectCapStep](t)
	if len(caps) == 0 {
		return nil
	}

	root := t.Root()
	produced := map[string]struct{}{}
	for _, p := range traversal.StepsOfTypeRecursively[traversal.SideEffectProducer](root) {
		produced[p.SideEffectKey()] = struct{}{}
	}

	for _, c := range caps {
		for _, key := range c.Keys() {
			if _, ok := produced[key]; ok {
				continue
			}
			if root.SideEffects().Exists(key) {
				continue
			}
			return errors.NewVerificationError("the side-effect key "+key+" is never produced", t).WithStep(c)
		}
	}
	return nil
}
