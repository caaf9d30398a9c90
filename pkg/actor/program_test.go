package actor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dVakulen/tinkerpop/pkg/structure"
	"github.com/dVakulen/tinkerpop/pkg/structure/memory"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
	"github.com/dVakulen/tinkerpop/pkg/traversal/step"
)

func groupCountPlan() *traversal.Traversal {
	return traversal.New(memory.NewModern()).
		AddStep(step.NewGraphStep()).
		AddStep(step.NewGroupCountStep("a", traversal.Anonymous(step.NewLabelStep()))).
		AddStep(step.NewSideEffectCapStep("a"))
}

func TestProgramBarrierIndex(t *testing.T) {
	tests := []struct {
		name string
		plan *traversal.Traversal
		want int
	}{
		{
			name: "cap_is_the_first_barrier",
			plan: groupCountPlan(),
			want: 2,
		},
		{
			name: "without_barrier_everything_is_worker_segment",
			plan: traversal.New(nil).AddStep(step.NewGraphStep()).AddStep(step.NewLabelStep()),
			want: 2,
		},
		{
			name: "count_is_the_first_barrier",
			plan: traversal.New(nil).
				AddStep(step.NewGraphStep()).
				AddStep(step.NewCountGlobalStep()).
				AddStep(step.NewLabelStep()),
			want: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := NewProgram(test.plan)
			require.Equal(t, test.want, p.BarrierIndex())
			require.Equal(t, test.plan.String(), p.String())
		})
	}
}

func TestProgramWorkersAndMaster(t *testing.T) {
	ctx := context.Background()

	plan := groupCountPlan()
	plan.SideEffects().Set("a", map[any]int64{"seed": 1})
	program := NewProgram(plan)
	partitioner := NewHashPartitioner(2)

	master := program.NewMaster()
	total := 0
	for _, partition := range partitioner.Partitions() {
		worker := program.NewWorker(partition)
		require.Same(t, partition, worker.Partition())

		res, err := worker.Execute(ctx)
		require.NoError(t, err)
		for _, tr := range res.Traversers {
			v, ok := tr.Value.(structure.Element)
			require.True(t, ok)
			require.True(t, partition.Contains(v), "vertex %v leaked out of %s", v.ID(), partition.ID())
		}
		total += len(res.Traversers)

		// workers never see the values recorded before submission
		counts, ok := res.SideEffects.Get("a")
		require.True(t, ok)
		require.NotContains(t, counts, "seed")

		master.Merge(res)
	}
	require.Equal(t, 6, total)

	res, err := master.Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, []any{map[any]int64{"seed": 1, "person": 4, "software": 2}}, traversal.Values(res.Traversers))

	// the plan itself is never executed
	stored, _ := plan.SideEffects().Get("a")
	require.Equal(t, map[any]int64{"seed": 1}, stored)
}
