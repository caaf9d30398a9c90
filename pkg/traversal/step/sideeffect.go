package step

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

// AppendReducer accumulates values into a []any.
func AppendReducer(current, value any) any {
	cur, _ := current.([]any)
	switch v := value.(type) {
	case []any:
		return append(cur, v...)
	default:
		return append(cur, v)
	}
}

// CountReducer sums map[any]int64 counts.
func CountReducer(current, value any) any {
	cur, _ := current.(map[any]int64)
	if cur == nil {
		cur = map[any]int64{}
	}
	for k, n := range value.(map[any]int64) {
		cur[k] += n
	}
	return cur
}

// GroupReducer concatenates map[any][]any groups.
func GroupReducer(current, value any) any {
	cur, _ := current.(map[any][]any)
	if cur == nil {
		cur = map[any][]any{}
	}
	for k, vs := range value.(map[any][]any) {
		cur[k] = append(cur[k], vs...)
	}
	return cur
}

// StoreStep lazily collects every traverser value into a list under its key.
type StoreStep struct {
	traversal.AbstractStep
	key string
}

var _ traversal.SideEffectProducer = (*StoreStep)(nil)

func NewStoreStep(key string) *StoreStep {
	return &StoreStep{key: key}
}

func (s *StoreStep) SideEffectKey() string { return s.key }

func (s *StoreStep) Requirements() traversal.Requirements {
	return traversal.RequiresObject | traversal.RequiresSideEffects
}

func (s *StoreStep) Process(_ context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	se := s.Traversal().SideEffects()
	se.RegisterIfAbsent(s.key, func() any { return []any{} }, AppendReducer)
	if len(in) > 0 {
		se.Add(s.key, traversal.Values(in))
	}
	return in, nil
}

func (s *StoreStep) Clone() traversal.Step {
	return &StoreStep{AbstractStep: s.CloneAbstract(), key: s.key}
}

func (s *StoreStep) String() string {
	return traversal.StepString("StoreStep", s.key)
}

// GroupCountStep counts traversers per key (the traverser itself, or what the by()
// traversal maps it to) into a map[any]int64 side effect.
type GroupCountStep struct {
	traversal.AbstractStep
	key string
	by  *traversal.Traversal
}

var (
	_ traversal.SideEffectCapable = (*GroupCountStep)(nil)
	_ traversal.Parent            = (*GroupCountStep)(nil)
)

// NewGroupCountStep returns a groupCount step. by may be nil.
func NewGroupCountStep(key string, by *traversal.Traversal) *GroupCountStep {
	s := &GroupCountStep{key: key, by: by}
	if by != nil {
		by.SetParent(s)
	}
	return s
}

func (s *GroupCountStep) SideEffectKey() string { return s.key }

func (s *GroupCountStep) LocalChildren() []*traversal.Traversal {
	if s.by == nil {
		return nil
	}
	return []*traversal.Traversal{s.by}
}

func (s *GroupCountStep) GlobalChildren() []*traversal.Traversal { return nil }

func (s *GroupCountStep) Requirements() traversal.Requirements {
	return traversal.RequiresObject | traversal.RequiresSideEffects
}

func (s *GroupCountStep) Process(ctx context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	se := s.Traversal().SideEffects()
	se.RegisterIfAbsent(s.key, func() any { return map[any]int64{} }, CountReducer)

	counts := map[any]int64{}
	for _, t := range in {
		k, ok, err := traversal.ApplyNullable(ctx, s.by, t)
		if err != nil {
			return nil, err
		}
		if ok {
			counts[k]++
		}
	}
	if len(counts) > 0 {
		se.Add(s.key, counts)
	}
	return in, nil
}

// GenerateFinalResult returns a copy of the counts so callers cannot alter the store.
func (s *GroupCountStep) GenerateFinalResult(_ context.Context, raw any) (any, error) {
	counts, ok := raw.(map[any]int64)
	if !ok {
		return nil, fmt.Errorf("%w: %T for %s", ErrUnexpectedResult, raw, s.key)
	}
	return maps.Clone(counts), nil
}

func (s *GroupCountStep) Clone() traversal.Step {
	c := &GroupCountStep{AbstractStep: s.CloneAbstract(), key: s.key}
	if s.by != nil {
		c.by = s.by.Clone()
		c.by.SetParent(c)
	}
	return c
}

func (s *GroupCountStep) String() string {
	if s.by == nil {
		return traversal.StepString("GroupCountStep", s.key)
	}
	return traversal.StepString("GroupCountStep", s.key, s.by)
}

// GroupStep groups traversers by the keyBy traversal into a map[any][]any side effect.
// The valueBy traversal reduces every group when the result is finalized.
type GroupStep struct {
	traversal.AbstractStep
	key     string
	keyBy   *traversal.Traversal
	valueBy *traversal.Traversal
}

var (
	_ traversal.SideEffectCapable = (*GroupStep)(nil)
	_ traversal.Parent            = (*GroupStep)(nil)
)

// NewGroupStep returns a group step. keyBy and valueBy may be nil.
func NewGroupStep(key string, keyBy, valueBy *traversal.Traversal) *GroupStep {
	s := &GroupStep{key: key, keyBy: keyBy, valueBy: valueBy}
	s.adopt()
	return s
}

func (s *GroupStep) adopt() {
	if s.keyBy != nil {
		s.keyBy.SetParent(s)
	}
	if s.valueBy != nil {
		s.valueBy.SetParent(s)
	}
}

func (s *GroupStep) SideEffectKey() string { return s.key }

func (s *GroupStep) LocalChildren() []*traversal.Traversal {
	var children []*traversal.Traversal
	if s.keyBy != nil {
		children = append(children, s.keyBy)
	}
	if s.valueBy != nil {
		children = append(children, s.valueBy)
	}
	return children
}

func (s *GroupStep) GlobalChildren() []*traversal.Traversal { return nil }

func (s *GroupStep) Requirements() traversal.Requirements {
	return traversal.RequiresObject | traversal.RequiresSideEffects
}

func (s *GroupStep) Process(ctx context.Context, in []*traversal.Traverser) ([]*traversal.Traverser, error) {
	se := s.Traversal().SideEffects()
	se.RegisterIfAbsent(s.key, func() any { return map[any][]any{} }, GroupReducer)

	groups := map[any][]any{}
	for _, t := range in {
		k, ok, err := traversal.ApplyNullable(ctx, s.keyBy, t)
		if err != nil {
			return nil, err
		}
		if ok {
			groups[k] = append(groups[k], t.Value)
		}
	}
	if len(groups) > 0 {
		se.Add(s.key, groups)
	}
	return in, nil
}

// GenerateFinalResult runs valueBy over the members of every group. A group reduced to
// a single value maps to that value, otherwise to the list of values.
func (s *GroupStep) GenerateFinalResult(ctx context.Context, raw any) (any, error) {
	groups, ok := raw.(map[any][]any)
	if !ok {
		return nil, fmt.Errorf("%w: %T for %s", ErrUnexpectedResult, raw, s.key)
	}

	final := make(map[any]any, len(groups))
	for k, members := range groups {
		if s.valueBy == nil {
			final[k] = slices.Clone(members)
			continue
		}
		out, err := s.valueBy.ExecuteRange(ctx, 0, s.valueBy.Len(), traversal.Traversers(members...))
		if err != nil {
			return nil, err
		}
		if len(out) == 1 {
			final[k] = out[0].Value
		} else {
			final[k] = traversal.Values(out)
		}
	}
	return final, nil
}

func (s *GroupStep) Clone() traversal.Step {
	c := &GroupStep{AbstractStep: s.CloneAbstract(), key: s.key}
	if s.keyBy != nil {
		c.keyBy = s.keyBy.Clone()
	}
	if s.valueBy != nil {
		c.valueBy = s.valueBy.Clone()
	}
	c.adopt()
	return c
}

func (s *GroupStep) String() string {
	return traversal.StepString("GroupStep", s.key, childString(s.keyBy), childString(s.valueBy))
}

func childString(t *traversal.Traversal) string {
	if t == nil {
		return "[]"
	}
	return t.String()
}
