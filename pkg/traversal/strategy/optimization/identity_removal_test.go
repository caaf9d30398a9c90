package optimization

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dVakulen/tinkerpop/pkg/traversal"
	"github.com/dVakulen/tinkerpop/pkg/traversal/step"
)

func TestIdentityRemovalStrategy(t *testing.T) {
	tests := []struct {
		name  string
		steps []traversal.Step
		want  string
	}{
		{
			name:  "identity_between_steps",
			steps: []traversal.Step{step.NewInjectStep(1), step.NewIdentityStep(), step.NewCountGlobalStep()},
			want:  "[InjectStep(1), CountGlobalStep]",
		},
		{
			name:  "only_identities_keep_one",
			steps: []traversal.Step{step.NewIdentityStep(), step.NewIdentityStep(), step.NewIdentityStep()},
			want:  "[IdentityStep]",
		},
		{
			name:  "single_identity_is_kept",
			steps: []traversal.Step{step.NewIdentityStep()},
			want:  "[IdentityStep]",
		},
		{
			name:  "no_identity",
			steps: []traversal.Step{step.NewInjectStep(1, 2)},
			want:  "[InjectStep(1,2)]",
		},
		{
			name:  "empty",
			steps: nil,
			want:  "[]",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tr := traversal.Anonymous(test.steps...)
			require.NoError(t, NewIdentityRemovalStrategy().Apply(tr))
			require.Equal(t, test.want, tr.String())
			tr.VerifyStructure()
		})
	}
}
