package traversal

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/dVakulen/tinkerpop/pkg/errors"
	"github.com/dVakulen/tinkerpop/pkg/structure/memory"
)

func TestEmptyTraversal(t *testing.T) {
	tr := New(nil)
	require.True(t, tr.IsRoot())
	require.Equal(t, 0, tr.Len())
	require.Equal(t, EmptyStep, tr.StartStep())
	require.Equal(t, EmptyStep, tr.EndStep())
	require.NotEmpty(t, tr.ID())
	require.Equal(t, "[]", tr.String())
}

func TestAddStep(t *testing.T) {
	a, b, c := newTestStep("A"), newTestStep("B"), newTestStep("C")
	tr := New(nil).AddStep(a).AddStep(c)
	tr.AddStepAt(1, b)

	if diff := cmp.Diff([]string{"A", "B", "C"}, names(tr)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, Step(a), tr.StartStep())
	require.Equal(t, Step(c), tr.EndStep())

	// links
	require.Equal(t, EmptyStep, a.PreviousStep())
	require.Equal(t, Step(b), a.NextStep())
	require.Equal(t, Step(a), b.PreviousStep())
	require.Equal(t, Step(c), b.NextStep())
	require.Equal(t, EmptyStep, c.NextStep())

	for _, s := range tr.Steps() {
		require.Equal(t, tr, s.Traversal())
		require.NotEmpty(t, s.ID())
	}
	require.Equal(t, "[A, B, C]", tr.String())
}

func TestAddStepKeepsExistingID(t *testing.T) {
	a := newTestStep("A")
	a.SetID("fixed")
	New(nil).AddStep(a)
	require.Equal(t, "fixed", a.ID())
}

func TestAddStepAtOutOfRangePanics(t *testing.T) {
	tr := New(nil).AddStep(newTestStep("A"))
	require.PanicsWithError(t, pkgerrors.ErrStructuralInvariant.Error()+": index 3 out of range [0,1] for [A]", func() {
		tr.AddStepAt(3, newTestStep("B"))
	})
}

func TestRemoveAndReplace(t *testing.T) {
	a, b, c := newTestStep("A"), newTestStep("B"), newTestStep("C")
	tr := Anonymous(a, b, c)

	t.Run("remove_middle", func(t *testing.T) {
		require.True(t, tr.RemoveStep(b))
		require.Equal(t, []string{"A", "C"}, names(tr))
		require.Equal(t, Step(c), a.NextStep())
		require.Equal(t, Step(a), c.PreviousStep())
		require.Nil(t, b.Traversal())
		require.Equal(t, EmptyStep, b.PreviousStep())
		require.Equal(t, EmptyStep, b.NextStep())
	})

	t.Run("remove_missing", func(t *testing.T) {
		require.False(t, tr.RemoveStep(b))
	})

	t.Run("replace", func(t *testing.T) {
		d := newTestStep("D")
		require.True(t, tr.ReplaceStep(a, d))
		require.Equal(t, []string{"D", "C"}, names(tr))
		require.Equal(t, Step(d), tr.StartStep())
		require.False(t, tr.ReplaceStep(a, newTestStep("E")))
	})

	t.Run("remove_all", func(t *testing.T) {
		steps := tr.Steps()
		tr.RemoveAllSteps()
		require.Equal(t, 0, tr.Len())
		for _, s := range steps {
			require.Nil(t, s.Traversal())
		}
	})
}

func TestIndexOf(t *testing.T) {
	a, b := newTestStep("A"), newTestStep("B")
	tr := Anonymous(a, b)
	require.Equal(t, 0, tr.IndexOf(a))
	require.Equal(t, 1, tr.IndexOf(b))
	require.Equal(t, -1, tr.IndexOf(newTestStep("A")))
}

func TestRootAndSharedState(t *testing.T) {
	g := memory.NewModern()
	child := Anonymous(newTestStep("inner"))
	root := New(g).AddStep(newTestParent("P", []*Traversal{child}, nil))

	require.False(t, child.IsRoot())
	require.Equal(t, root, child.Root())
	require.Same(t, root.SideEffects(), child.SideEffects())
	require.Equal(t, g, child.Graph())
	require.Equal(t, []*Traversal{child}, root.Children())
}

func TestDetachedParentIsOwnRoot(t *testing.T) {
	child := Anonymous(newTestStep("inner"))
	newTestParent("P", []*Traversal{child}, nil)

	require.False(t, child.IsRoot())
	require.Equal(t, child, child.Root())
}

func TestLockIsRecursive(t *testing.T) {
	local := Anonymous(newTestStep("l"))
	global := Anonymous(newTestStep("g"))
	root := Anonymous(newTestParent("P", []*Traversal{local}, []*Traversal{global}))

	root.Lock()
	require.True(t, root.IsLocked())
	require.True(t, local.IsLocked())
	require.True(t, global.IsLocked())
}

func TestRequirements(t *testing.T) {
	inner := newTestStep("inner")
	inner.req = RequiresSideEffects
	root := Anonymous(newTestStep("A"), newTestParent("P", []*Traversal{Anonymous(inner)}, nil))

	r := root.Requirements()
	require.True(t, r.Has(RequiresObject))
	require.True(t, r.Has(RequiresSideEffects))
	require.False(t, r.Has(RequiresPath))
	require.Equal(t, "[OBJECT, SIDE_EFFECTS]", r.String())
}

func TestClone(t *testing.T) {
	g := memory.New()
	inner := Anonymous(newTestStep("inner"))
	root := New(g).AddStep(newTestStep("A")).AddStep(newTestParent("P", nil, []*Traversal{inner}))
	root.SideEffects().Set("a", []any{1})

	c := root.Clone()
	require.Equal(t, root.ID(), c.ID())
	require.Equal(t, names(root), names(c))
	require.True(t, c.IsRoot())
	require.Equal(t, g, c.Graph())
	c.VerifyStructure()

	for i, s := range c.Steps() {
		require.NotSame(t, root.Steps()[i], s)
		require.Equal(t, root.Steps()[i].ID(), s.ID())
		require.Equal(t, c, s.Traversal())
	}

	// nested traversals are re-owned by the clone
	clonedInner := c.Children()[0]
	require.NotSame(t, inner, clonedInner)
	require.Equal(t, c, clonedInner.Root())

	// side effects are a snapshot
	c.SideEffects().Add("a", []any{2})
	v, _ := root.SideEffects().Get("a")
	require.Equal(t, []any{1}, v)
}

func TestExecute(t *testing.T) {
	double := newTestStep("double")
	double.fn = func(in []*Traverser) []*Traverser {
		out := make([]*Traverser, 0, len(in))
		for _, t := range in {
			out = append(out, NewTraverser(t.Value.(int)*2))
		}
		return out
	}
	inject := newTestStep("inject")
	inject.fn = func(in []*Traverser) []*Traverser {
		return append(Traversers(1, 2, 3), in...)
	}

	tr := Anonymous(inject, double)

	t.Run("whole_pipeline", func(t *testing.T) {
		out, err := tr.Execute(context.Background())
		require.NoError(t, err)
		require.Equal(t, []any{2, 4, 6}, Values(out))
	})

	t.Run("range", func(t *testing.T) {
		out, err := tr.ExecuteRange(context.Background(), 1, 2, Traversers(10))
		require.NoError(t, err)
		require.Equal(t, []any{20}, Values(out))
	})

	t.Run("empty_range_returns_input", func(t *testing.T) {
		out, err := tr.ExecuteRange(context.Background(), 2, 2, Traversers(10))
		require.NoError(t, err)
		require.Equal(t, []any{10}, Values(out))
	})

	t.Run("cancelled_context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := tr.Execute(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

type failingStep struct {
	testStep
	err error
}

func (s *failingStep) Process(context.Context, []*Traverser) ([]*Traverser, error) {
	return nil, s.err
}

func TestExecuteWrapsStepError(t *testing.T) {
	boom := errors.New("boom")
	tr := Anonymous(&failingStep{testStep: testStep{name: "Failing"}, err: boom})

	_, err := tr.Execute(context.Background())
	require.ErrorIs(t, err, boom)
	require.EqualError(t, err, "Failing: boom")
}

func TestVerifyStructureDetectsBrokenLinks(t *testing.T) {
	a, b := newTestStep("A"), newTestStep("B")
	tr := Anonymous(a, b)
	a.SetNextStep(EmptyStep)

	require.Panics(t, func() {
		tr.VerifyStructure()
	})
}
