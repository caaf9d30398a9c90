package step

import (
	"context"
	"slices"

	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

// SideEffectCapStep is a supplying barrier: it drains its input and emits one traverser
// holding the side effects named by its keys.
//
// The finalizer of every key, the first SideEffectCapable step producing that key in
// the whole traversal tree, is resolved on the first supply and cached for the
// lifetime of the step. Clones start without the cache.
type SideEffectCapStep struct {
	traversal.AbstractStep
	keys       []string
	finalizers map[string]traversal.SideEffectCapable
}

var _ traversal.Barrier = (*SideEffectCapStep)(nil)

func NewSideEffectCapStep(key string, keys ...string) *SideEffectCapStep {
	return &SideEffectCapStep{keys: append([]string{key}, keys...)}
}

func (s *SideEffectCapStep) Keys() []string {
	return slices.Clone(s.keys)
}

func (s *SideEffectCapStep) IsBarrier() {}

func (s *SideEffectCapStep) Requirements() traversal.Requirements {
	return traversal.RequiresSideEffects
}

func (s *SideEffectCapStep) Process(ctx context.Context, _ []*traversal.Traverser) ([]*traversal.Traverser, error) {
	v, err := s.Supply(ctx)
	if err != nil {
		return nil, err
	}
	return []*traversal.Traverser{traversal.NewTraverser(v)}, nil
}

// Supply computes the output of the barrier from the side-effect store. With a single
// key the (finalized) value is returned as is; with several keys a map[string]any of
// the keys holding a value is returned.
func (s *SideEffectCapStep) Supply(ctx context.Context) (any, error) {
	if s.finalizers == nil {
		s.resolveFinalizers()
	}

	se := s.Traversal().SideEffects()
	if len(s.keys) == 1 {
		raw, err := se.MustGet(s.keys[0])
		if err != nil {
			return nil, err
		}
		return s.finalize(ctx, s.keys[0], raw)
	}

	out := make(map[string]any, len(s.keys))
	for _, key := range s.keys {
		raw, ok := se.Get(key)
		if !ok {
			continue
		}
		v, err := s.finalize(ctx, key, raw)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func (s *SideEffectCapStep) finalize(ctx context.Context, key string, raw any) (any, error) {
	finalizer, ok := s.finalizers[key]
	if !ok {
		return raw, nil
	}
	return finalizer.GenerateFinalResult(ctx, raw)
}

func (s *SideEffectCapStep) resolveFinalizers() {
	s.finalizers = make(map[string]traversal.SideEffectCapable, len(s.keys))
	capable := traversal.StepsOfTypeRecursively[traversal.SideEffectCapable](s.Traversal().Root())
	for _, key := range s.keys {
		for _, c := range capable {
			if c.SideEffectKey() == key {
				s.finalizers[key] = c
				break
			}
		}
	}
}

func (s *SideEffectCapStep) Clone() traversal.Step {
	return &SideEffectCapStep{AbstractStep: s.CloneAbstract(), keys: slices.Clone(s.keys)}
}

func (s *SideEffectCapStep) String() string {
	args := make([]any, 0, len(s.keys))
	for _, k := range s.keys {
		args = append(args, k)
	}
	return traversal.StepString("SideEffectCapStep", args...)
}
