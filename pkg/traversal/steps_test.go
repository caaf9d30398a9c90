package traversal

import (
	"context"
	"slices"
)

// testStep is a minimal step used to exercise the pipeline without the step package.
type testStep struct {
	AbstractStep
	name string
	fn   func(in []*Traverser) []*Traverser
	req  Requirements
}

func newTestStep(name string) *testStep {
	return &testStep{name: name}
}

func (s *testStep) Requirements() Requirements {
	if s.req != 0 {
		return s.req
	}
	return RequiresObject
}

func (s *testStep) Process(_ context.Context, in []*Traverser) ([]*Traverser, error) {
	if s.fn == nil {
		return in, nil
	}
	return s.fn(in), nil
}

func (s *testStep) Clone() Step {
	return &testStep{AbstractStep: s.CloneAbstract(), name: s.name, fn: s.fn, req: s.req}
}

func (s *testStep) String() string { return s.name }

type testBarrier struct {
	testStep
}

func (s *testBarrier) IsBarrier() {}

func (s *testBarrier) Clone() Step {
	return &testBarrier{testStep: *s.testStep.Clone().(*testStep)}
}

// testParent holds nested traversals.
type testParent struct {
	testStep
	local  []*Traversal
	global []*Traversal
}

func newTestParent(name string, local, global []*Traversal) *testParent {
	p := &testParent{testStep: testStep{name: name}, local: local, global: global}
	for _, c := range slices.Concat(local, global) {
		c.SetParent(p)
	}
	return p
}

func (s *testParent) LocalChildren() []*Traversal  { return s.local }
func (s *testParent) GlobalChildren() []*Traversal { return s.global }

func (s *testParent) Clone() Step {
	c := &testParent{testStep: *s.testStep.Clone().(*testStep)}
	for _, l := range s.local {
		lc := l.Clone()
		lc.SetParent(c)
		c.local = append(c.local, lc)
	}
	for _, g := range s.global {
		gc := g.Clone()
		gc.SetParent(c)
		c.global = append(c.global, gc)
	}
	return c
}

type testProducer struct {
	testStep
	key string
}

func (s *testProducer) SideEffectKey() string { return s.key }

func (s *testProducer) Clone() Step {
	return &testProducer{testStep: *s.testStep.Clone().(*testStep), key: s.key}
}

func names(t *Traversal) []string {
	var out []string
	for _, s := range t.Steps() {
		out = append(out, s.String())
	}
	return out
}
