// Package strategy orders and applies the rewrite rules of a traversal.
//
// A Strategy belongs to one Category and may name other strategies that must be
// applied before (ApplyPrior) or after (ApplyPost) it. Categories are applied in the
// order Decoration, Optimization, Verification, Finalization; inside a category the
// Registry resolves a deterministic order honouring every constraint.
package strategy

import (
	"fmt"
	"slices"

	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

type Category int

const (
	Decoration Category = iota
	Optimization
	Verification
	Finalization
)

// Categories lists every category in application order.
var Categories = []Category{Decoration, Optimization, Verification, Finalization}

func (c Category) String() string {
	switch c {
	case Decoration:
		return "decoration"
	case Optimization:
		return "optimization"
	case Verification:
		return "verification"
	case Finalization:
		return "finalization"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Strategy is a rewrite rule applied to a traversal before it is executed. Name is the
// identity other strategies refer to in their constraints.
//
// Apply may inspect or mutate the traversal, or reject it by returning an error
// (usually a *errors.VerificationError). It is called once per compilation for the
// root traversal and once for every nested traversal.
type Strategy interface {
	Name() string
	Category() Category
	ApplyPrior() []string
	ApplyPost() []string
	Apply(t *traversal.Traversal) error
}

// ApplyFunc is the behaviour of a strategy built with New.
type ApplyFunc func(t *traversal.Traversal) error

type funcStrategy struct {
	name     string
	category Category
	prior    []string
	post     []string
	apply    ApplyFunc
}

// Opt configures a strategy built with New.
type Opt func(*funcStrategy)

// WithPrior names strategies that must be applied before this one.
func WithPrior(names ...string) Opt {
	return func(s *funcStrategy) {
		s.prior = append(s.prior, names...)
	}
}

// WithPost names strategies that must be applied after this one.
func WithPost(names ...string) Opt {
	return func(s *funcStrategy) {
		s.post = append(s.post, names...)
	}
}

// New builds a Strategy from plain data and one function.
func New(name string, category Category, apply ApplyFunc, opts ...Opt) Strategy {
	s := &funcStrategy{name: name, category: category, apply: apply}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *funcStrategy) Name() string         { return s.name }
func (s *funcStrategy) Category() Category   { return s.category }
func (s *funcStrategy) ApplyPrior() []string { return slices.Clone(s.prior) }
func (s *funcStrategy) ApplyPost() []string  { return slices.Clone(s.post) }

func (s *funcStrategy) Apply(t *traversal.Traversal) error {
	if s.apply == nil {
		return nil
	}
	return s.apply(t)
}

func (s *funcStrategy) String() string { return s.name }
