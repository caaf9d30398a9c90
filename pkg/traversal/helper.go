package traversal

import "context"

// StepsOfType returns the steps of t that implement T, in pipeline order.
func StepsOfType[T any](t *Traversal) []T {
	var out []T
	for _, s := range t.steps {
		if m, ok := any(s).(T); ok {
			out = append(out, m)
		}
	}
	return out
}

// StepsOfTypeRecursively searches t and every nested traversal depth first and returns
// the steps implementing T. A parent step comes before the steps of its children,
// which come before the next step of the parent's pipeline.
func StepsOfTypeRecursively[T any](t *Traversal) []T {
	var out []T
	for _, s := range t.steps {
		if m, ok := any(s).(T); ok {
			out = append(out, m)
		}
		if p, ok := s.(Parent); ok {
			for _, c := range p.LocalChildren() {
				out = append(out, StepsOfTypeRecursively[T](c)...)
			}
			for _, c := range p.GlobalChildren() {
				out = append(out, StepsOfTypeRecursively[T](c)...)
			}
		}
	}
	return out
}

func HasStepOfType[T any](t *Traversal) bool {
	return len(StepsOfType[T](t)) > 0
}

func HasStepOfTypeRecursively[T any](t *Traversal) bool {
	return len(StepsOfTypeRecursively[T](t)) > 0
}

// FirstBarrierIndex returns the index of the first Barrier step of t, or t.Len() when
// there is none.
func FirstBarrierIndex(t *Traversal) int {
	for i, s := range t.steps {
		if _, ok := s.(Barrier); ok {
			return i
		}
	}
	return len(t.steps)
}

// ApplyNullable runs child over a single traverser and returns the first value it
// produces. A nil child returns the traverser value itself.
func ApplyNullable(ctx context.Context, child *Traversal, tr *Traverser) (any, bool, error) {
	if child == nil {
		return tr.Value, true, nil
	}
	out, err := child.ExecuteRange(ctx, 0, child.Len(), []*Traverser{tr})
	if err != nil {
		return nil, false, err
	}
	if len(out) == 0 {
		return nil, false, nil
	}
	return out[0].Value, true, nil
}

// Result is what a delegated execution hands back: the traversers leaving the
// delegated pipeline and the side effects it accumulated.
type Result struct {
	Traversers  []*Traverser
	SideEffects *SideEffects
}
