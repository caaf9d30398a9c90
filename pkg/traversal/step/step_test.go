package step

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dVakulen/tinkerpop/pkg/structure"
	"github.com/dVakulen/tinkerpop/pkg/structure/memory"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

type readOnlyGraph struct {
	structure.Graph
}

func run(t *testing.T, tr *traversal.Traversal) []any {
	t.Helper()
	out, err := tr.Execute(context.Background())
	require.NoError(t, err)
	return traversal.Values(out)
}

func TestGraphStep(t *testing.T) {
	t.Run("all_vertices", func(t *testing.T) {
		tr := traversal.New(memory.NewModern()).AddStep(NewGraphStep()).AddStep(NewValuesStep("name"))
		require.Equal(t, []any{"marko", "vadas", "lop", "josh", "ripple", "peter"}, run(t, tr))
	})

	t.Run("by_ids", func(t *testing.T) {
		tr := traversal.New(memory.NewModern()).AddStep(NewGraphStep(4, 1)).AddStep(NewValuesStep("name"))
		require.Equal(t, []any{"marko", "josh"}, run(t, tr))
	})

	t.Run("restricted", func(t *testing.T) {
		start := NewGraphStep()
		start.Restrict(func(e structure.Element) bool { return e.Label() == "software" })
		tr := traversal.New(memory.NewModern()).AddStep(start).AddStep(NewValuesStep("name"))
		require.Equal(t, []any{"lop", "ripple"}, run(t, tr))

		// the restriction survives cloning
		require.Equal(t, []any{"lop", "ripple"}, run(t, tr.Clone()))
	})

	t.Run("mid_traversal_runs_per_input", func(t *testing.T) {
		tr := traversal.New(memory.NewModern()).
			AddStep(NewGraphStep(1, 2)).
			AddStep(NewGraphStep(3)).
			AddStep(NewValuesStep("name"))
		require.Equal(t, []any{"lop", "lop"}, run(t, tr))
	})

	t.Run("no_graph", func(t *testing.T) {
		tr := traversal.Anonymous(NewGraphStep())
		_, err := tr.Execute(context.Background())
		require.ErrorIs(t, err, ErrNoGraph)
	})
}

func TestInjectStep(t *testing.T) {
	tr := traversal.Anonymous(NewInjectStep(1, 2), NewInjectStep(0))
	require.Equal(t, []any{0, 1, 2}, run(t, tr))
	require.Equal(t, "InjectStep(1,2)", tr.StartStep().String())
}

func TestFilterSteps(t *testing.T) {
	g := memory.NewModern()

	t.Run("has_label", func(t *testing.T) {
		tr := traversal.New(g).AddStep(NewGraphStep()).AddStep(NewHasLabelStep("software")).AddStep(NewValuesStep("name"))
		require.Equal(t, []any{"lop", "ripple"}, run(t, tr))
	})

	t.Run("has", func(t *testing.T) {
		tr := traversal.New(g).AddStep(NewGraphStep()).AddStep(NewHasStep("age", 32)).AddStep(NewValuesStep("name"))
		require.Equal(t, []any{"josh"}, run(t, tr))
		require.Equal(t, "HasStep(age.eq(32))", tr.Steps()[1].String())
	})

	t.Run("identity", func(t *testing.T) {
		tr := traversal.Anonymous(NewInjectStep(1), NewIdentityStep())
		require.Equal(t, []any{1}, run(t, tr))
	})

	t.Run("not_an_element", func(t *testing.T) {
		tr := traversal.Anonymous(NewInjectStep(1), NewHasLabelStep("person"))
		_, err := tr.Execute(context.Background())
		require.ErrorIs(t, err, ErrNotAnElement)
	})
}

func TestMapSteps(t *testing.T) {
	g := memory.NewModern()

	t.Run("values_skips_missing_property", func(t *testing.T) {
		tr := traversal.New(g).AddStep(NewGraphStep()).AddStep(NewValuesStep("lang"))
		require.Equal(t, []any{"java", "java"}, run(t, tr))
	})

	t.Run("label", func(t *testing.T) {
		tr := traversal.New(g).AddStep(NewGraphStep(1, 3)).AddStep(NewLabelStep())
		require.Equal(t, []any{"person", "software"}, run(t, tr))
	})

	t.Run("count", func(t *testing.T) {
		tr := traversal.New(g).AddStep(NewGraphStep()).AddStep(NewCountGlobalStep())
		require.Equal(t, []any{int64(6)}, run(t, tr))
	})

	t.Run("local", func(t *testing.T) {
		local := NewLocalStep(traversal.Anonymous(NewValuesStep("name")))
		tr := traversal.New(g).AddStep(NewGraphStep(1, 2)).AddStep(local)
		require.Equal(t, []any{"marko", "vadas"}, run(t, tr))
		require.Equal(t, "LocalStep([ValuesStep(name)])", local.String())
	})

	t.Run("local_clone_is_reparented", func(t *testing.T) {
		local := NewLocalStep(traversal.Anonymous(NewValuesStep("name")))
		clone := local.Clone().(*LocalStep)
		require.NotSame(t, local.LocalChildren()[0], clone.LocalChildren()[0])
		require.Equal(t, traversal.Step(clone), clone.LocalChildren()[0].Parent())
	})
}

func TestMutatingSteps(t *testing.T) {
	ctx := context.Background()

	t.Run("add_vertex", func(t *testing.T) {
		g := memory.New()
		tr := traversal.New(g).AddStep(NewAddVertexStep("person", map[string]any{"id": 7, "name": "stephen"}))

		out := run(t, tr)
		require.Len(t, out, 1)
		require.Equal(t, 7, out[0].(structure.Element).ID())
		require.Equal(t, 1, g.Len())
	})

	t.Run("drop", func(t *testing.T) {
		g := memory.NewModern()
		tr := traversal.New(g).AddStep(NewGraphStep()).AddStep(NewHasLabelStep("software")).AddStep(NewDropStep())
		require.Empty(t, run(t, tr))
		require.Equal(t, 4, g.Len())
	})

	t.Run("read_only_graph", func(t *testing.T) {
		tr := traversal.New(readOnlyGraph{memory.NewModern()}).AddStep(NewAddVertexStep("person", nil))
		_, err := tr.Execute(ctx)
		require.ErrorIs(t, err, ErrGraphNotMutable)

		drop := traversal.New(readOnlyGraph{memory.NewModern()}).AddStep(NewGraphStep()).AddStep(NewDropStep())
		_, err = drop.Execute(ctx)
		require.ErrorIs(t, err, ErrGraphNotMutable)
	})
}

func TestSideEffectSteps(t *testing.T) {
	g := memory.NewModern()

	t.Run("store_passes_traversers_through", func(t *testing.T) {
		tr := traversal.New(g).AddStep(NewGraphStep(1, 2)).AddStep(NewValuesStep("age")).AddStep(NewStoreStep("ages"))
		require.Equal(t, []any{29, 27}, run(t, tr))

		ages, err := tr.SideEffects().MustGet("ages")
		require.NoError(t, err)
		require.Equal(t, []any{29, 27}, ages)
	})

	t.Run("group_count_without_by", func(t *testing.T) {
		tr := traversal.New(g).AddStep(NewGraphStep()).AddStep(NewValuesStep("lang")).AddStep(NewGroupCountStep("langs", nil))
		run(t, tr)

		v, _ := tr.SideEffects().Get("langs")
		require.Equal(t, map[any]int64{"java": 2}, v)
	})

	t.Run("group_with_value_by", func(t *testing.T) {
		group := NewGroupStep("g", byLabel(), traversal.Anonymous(NewValuesStep("name")))
		tr := traversal.New(g).AddStep(NewGraphStep()).AddStep(group)
		run(t, tr)

		raw, _ := tr.SideEffects().Get("g")
		final, err := group.GenerateFinalResult(context.Background(), raw)
		require.NoError(t, err)
		require.Equal(t, map[any]any{
			"person":   []any{"marko", "vadas", "josh", "peter"},
			"software": []any{"lop", "ripple"},
		}, final)
	})

	t.Run("group_without_value_by", func(t *testing.T) {
		group := NewGroupStep("g", byLabel(), nil)
		tr := traversal.New(g).AddStep(NewGraphStep(3, 5)).AddStep(group)
		run(t, tr)

		raw, _ := tr.SideEffects().Get("g")
		final, err := group.GenerateFinalResult(context.Background(), raw)
		require.NoError(t, err)
		members := final.(map[any]any)["software"].([]any)
		require.Len(t, members, 2)
	})

	t.Run("unexpected_raw_value", func(t *testing.T) {
		_, err := NewGroupCountStep("a", nil).GenerateFinalResult(context.Background(), 1)
		require.ErrorIs(t, err, ErrUnexpectedResult)
		_, err = NewGroupStep("a", nil, nil).GenerateFinalResult(context.Background(), 1)
		require.ErrorIs(t, err, ErrUnexpectedResult)
	})

	t.Run("clones_keep_children_apart", func(t *testing.T) {
		group := NewGroupStep("g", byLabel(), traversal.Anonymous(NewCountGlobalStep()))
		clone := group.Clone().(*GroupStep)
		require.Len(t, clone.LocalChildren(), 2)
		for i, c := range clone.LocalChildren() {
			require.NotSame(t, group.LocalChildren()[i], c)
			require.Equal(t, traversal.Step(clone), c.Parent())
		}

		gc := NewGroupCountStep("a", byLabel())
		gcClone := gc.Clone().(*GroupCountStep)
		require.Equal(t, traversal.Step(gcClone), gcClone.LocalChildren()[0].Parent())
		require.Equal(t, "GroupCountStep(a,[LabelStep])", gc.String())
	})
}

func TestReducers(t *testing.T) {
	require.Equal(t, []any{1, 2, 3}, AppendReducer([]any{1}, []any{2, 3}))
	require.Equal(t, []any{1, 2}, AppendReducer([]any{1}, 2))
	require.Equal(t, []any{1}, AppendReducer(nil, 1))

	require.Equal(t, map[any]int64{"a": 3, "b": 1}, CountReducer(map[any]int64{"a": 1}, map[any]int64{"a": 2, "b": 1}))
	require.Equal(t, map[any]int64{"a": 2}, CountReducer(nil, map[any]int64{"a": 2}))

	require.Equal(t, map[any][]any{"a": {1, 2}}, GroupReducer(map[any][]any{"a": {1}}, map[any][]any{"a": {2}}))
}
