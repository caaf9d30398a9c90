package strategy

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/dVakulen/tinkerpop/pkg/errors"
	"github.com/dVakulen/tinkerpop/pkg/logger"
	"github.com/dVakulen/tinkerpop/pkg/telemetry"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

var tracer = otel.Tracer("pkg/traversal/strategy")

// Registry is the set of strategies a compilation applies. It is immutable: the
// application order is resolved when the Registry is built, so a Registry with cyclic
// constraints can never be obtained.
type Registry struct {
	strategies []Strategy
	order      []Strategy
	logger     logger.Logger
}

// RegistryOpt defines an option that can be used to change the behavior of a Registry.
type RegistryOpt func(*Registry)

// WithStrategies registers strategies in the given order. Registering a name that is
// already present replaces the earlier strategy and moves it to the end.
func WithStrategies(strategies ...Strategy) RegistryOpt {
	return func(r *Registry) {
		for _, s := range strategies {
			r.strategies = slices.DeleteFunc(r.strategies, func(other Strategy) bool {
				return other.Name() == s.Name()
			})
			r.strategies = append(r.strategies, s)
		}
	}
}

func WithLogger(l logger.Logger) RegistryOpt {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry resolves the application order of the registered strategies. It fails
// with a *errors.ConfigurationError when their constraints contain a cycle.
func NewRegistry(opts ...RegistryOpt) (*Registry, error) {
	r := &Registry{
		logger: logger.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	order, err := resolve(r.strategies)
	if err != nil {
		return nil, err
	}
	r.order = order

	r.logger.Debug("resolved strategy order", zap.Strings("strategies", namesOf(order)))
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on a configuration error.
func MustNewRegistry(opts ...RegistryOpt) *Registry {
	r, err := NewRegistry(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// With returns a new Registry with strategies added.
func (r *Registry) With(strategies ...Strategy) (*Registry, error) {
	return NewRegistry(WithLogger(r.logger), WithStrategies(r.strategies...), WithStrategies(strategies...))
}

// Without returns a new Registry without the named strategies.
func (r *Registry) Without(names ...string) (*Registry, error) {
	kept := slices.DeleteFunc(slices.Clone(r.strategies), func(s Strategy) bool {
		return slices.Contains(names, s.Name())
	})
	return NewRegistry(WithLogger(r.logger), WithStrategies(kept...))
}

// Strategies returns the strategies in registration order.
func (r *Registry) Strategies() []Strategy {
	return slices.Clone(r.strategies)
}

// Order returns the strategies in application order.
func (r *Registry) Order() []Strategy {
	return slices.Clone(r.order)
}

// Names returns the strategy names in application order.
func (r *Registry) Names() []string {
	return namesOf(r.order)
}

func (r *Registry) Get(name string) (Strategy, bool) {
	i := slices.IndexFunc(r.strategies, func(s Strategy) bool { return s.Name() == name })
	if i < 0 {
		return nil, false
	}
	return r.strategies[i], true
}

// Apply compiles t: every strategy is applied to t in order, then the whole registry is
// applied to each traversal nested in t, and t is locked. The first error aborts the
// compilation; strategies after it are not applied. A locked traversal is left as is.
func (r *Registry) Apply(ctx context.Context, t *traversal.Traversal) error {
	if t.IsLocked() {
		return nil
	}

	ctx, span := tracer.Start(ctx, "ApplyStrategies")
	defer span.End()
	span.SetAttributes(
		attribute.String("traversal_id", t.ID()),
		attribute.StringSlice("strategies", r.Names()),
	)

	if err := r.apply(ctx, t); err != nil {
		telemetry.TraceError(span, err)
		return err
	}

	t.Lock()
	return nil
}

func (r *Registry) apply(ctx context.Context, t *traversal.Traversal) error {
	for _, s := range r.order {
		hadSteps := t.Len() > 0

		start := time.Now()
		err := s.Apply(t)
		strategyApplyDurationHistogram.WithLabelValues(s.Name(), s.Category().String()).
			Observe(float64(time.Since(start).Microseconds()) / 1000)

		if err != nil {
			strategyRejectionCounter.WithLabelValues(s.Name()).Inc()
			r.logger.WarnWithContext(ctx, "strategy rejected traversal",
				zap.String("strategy", s.Name()),
				zap.String("traversal", t.String()),
				zap.Error(err),
			)

			var verr *errors.VerificationError
			if !stderrors.As(err, &verr) {
				err = errors.ErrorWithStack(err)
			}
			return fmt.Errorf("%s: %w", s.Name(), err)
		}

		t.VerifyStructure()
		errors.AssertInvariant(!hadSteps || t.Len() > 0, "%s left %s without steps", s.Name(), t.ID())
	}

	for _, child := range t.Children() {
		if err := r.apply(ctx, child); err != nil {
			return err
		}
	}
	return nil
}
