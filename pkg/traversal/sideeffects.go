package traversal

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var ErrSideEffectNotFound = errors.New("side-effect not found")

// Supplier produces the initial value of a side-effect.
type Supplier func() any

// Reducer folds a newly written value into the current one and returns the result.
// It may update current in place.
type Reducer func(current, value any) any

type sideEffect struct {
	value    any
	recorded bool
	supplier Supplier
	reducer  Reducer
}

// SideEffects is the keyed accumulator store owned by a root traversal. Nested
// traversals share the store of their root.
//
// SideEffects is not safe for concurrent use. Concurrent writers, such as the workers
// of a delegated execution, must each own a clone and merge afterwards.
type SideEffects struct {
	keys    []string
	entries map[string]*sideEffect
}

func NewSideEffects() *SideEffects {
	return &SideEffects{entries: map[string]*sideEffect{}}
}

func (s *SideEffects) entry(key string) *sideEffect {
	e, ok := s.entries[key]
	if !ok {
		e = &sideEffect{}
		s.entries[key] = e
		s.keys = append(s.keys, key)
	}
	return e
}

// Register defines how the value of key is initialised and reduced. A value already
// recorded for key is kept.
func (s *SideEffects) Register(key string, supplier Supplier, reducer Reducer) {
	e := s.entry(key)
	e.supplier = supplier
	e.reducer = reducer
}

// RegisterIfAbsent is like Register but leaves an existing definition untouched.
func (s *SideEffects) RegisterIfAbsent(key string, supplier Supplier, reducer Reducer) {
	if e, ok := s.entries[key]; ok && (e.supplier != nil || e.reducer != nil) {
		return
	}
	s.Register(key, supplier, reducer)
}

// Set records value for key, replacing whatever was recorded before.
func (s *SideEffects) Set(key string, value any) {
	e := s.entry(key)
	e.value = value
	e.recorded = true
}

// Add reduces value into key. Without a reducer it behaves like Set.
func (s *SideEffects) Add(key string, value any) {
	e := s.entry(key)
	if e.reducer == nil {
		e.value = value
		e.recorded = true
		return
	}

	switch {
	case e.recorded:
		e.value = e.reducer(e.value, value)
	case e.supplier != nil:
		e.value = e.reducer(e.supplier(), value)
	default:
		e.value = value
	}
	e.recorded = true
}

// Get returns the recorded value of key, or the initial value from its supplier. The
// boolean is false when neither exists.
func (s *SideEffects) Get(key string) (any, bool) {
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if e.recorded {
		return e.value, true
	}
	if e.supplier != nil {
		return e.supplier(), true
	}
	return nil, false
}

// MustGet is like Get but fails with ErrSideEffectNotFound.
func (s *SideEffects) MustGet(key string) (any, error) {
	v, ok := s.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSideEffectNotFound, key)
	}
	return v, nil
}

// Exists reports whether key was registered or written.
func (s *SideEffects) Exists(key string) bool {
	_, ok := s.entries[key]
	return ok
}

func (s *SideEffects) Remove(key string) {
	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in the order they were first registered or written.
func (s *SideEffects) Keys() []string {
	return slices.Clone(s.keys)
}

// ClearValues forgets every recorded value but keeps the definitions.
func (s *SideEffects) ClearValues() {
	for _, e := range s.entries {
		e.value = nil
		e.recorded = false
	}
}

// Merge reduces every value recorded in other into s. Definitions missing from s are
// adopted from other.
func (s *SideEffects) Merge(other *SideEffects) {
	for _, key := range other.keys {
		oe := other.entries[key]
		if e, ok := s.entries[key]; !ok || (e.supplier == nil && e.reducer == nil) {
			s.Register(key, oe.supplier, oe.reducer)
		}
		if oe.recorded {
			s.Add(key, cloneValue(oe.value))
		}
	}
}

// Assign copies every definition and recorded value of other into s, replacing what s
// held for those keys.
func (s *SideEffects) Assign(other *SideEffects) {
	for _, key := range other.keys {
		oe := other.entries[key]
		e := s.entry(key)
		e.supplier = oe.supplier
		e.reducer = oe.reducer
		if oe.recorded {
			e.value = cloneValue(oe.value)
			e.recorded = true
		}
	}
}

// Clone returns an independent copy. Recorded containers of the shapes produced by
// the built-in steps are copied; any other value is treated as immutable.
func (s *SideEffects) Clone() *SideEffects {
	c := &SideEffects{
		keys:    slices.Clone(s.keys),
		entries: make(map[string]*sideEffect, len(s.entries)),
	}
	for k, e := range s.entries {
		c.entries[k] = &sideEffect{
			value:    cloneValue(e.value),
			recorded: e.recorded,
			supplier: e.supplier,
			reducer:  e.reducer,
		}
	}
	return c
}

func (s *SideEffects) String() string {
	return fmt.Sprintf("sideEffects[size:%d]", len(s.keys))
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []any:
		return slices.Clone(val)
	case map[any]int64:
		return maps.Clone(val)
	case map[any]any:
		return maps.Clone(val)
	case map[string]any:
		return maps.Clone(val)
	case map[any][]any:
		c := make(map[any][]any, len(val))
		for k, vs := range val {
			c[k] = slices.Clone(vs)
		}
		return c
	default:
		return v
	}
}
