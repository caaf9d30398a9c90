// Package engine compiles and executes traversals with the strategies enabled by a
// configuration.
package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/dVakulen/tinkerpop/internal/config"
	"github.com/dVakulen/tinkerpop/pkg/actor"
	"github.com/dVakulen/tinkerpop/pkg/actor/local"
	"github.com/dVakulen/tinkerpop/pkg/logger"
	"github.com/dVakulen/tinkerpop/pkg/remote"
	"github.com/dVakulen/tinkerpop/pkg/structure"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
	"github.com/dVakulen/tinkerpop/pkg/traversal/strategy"
	"github.com/dVakulen/tinkerpop/pkg/traversal/strategy/decoration"
	"github.com/dVakulen/tinkerpop/pkg/traversal/strategy/optimization"
	"github.com/dVakulen/tinkerpop/pkg/traversal/strategy/verification"
)

var (
	ErrUnknownStrategy   = errors.New("unknown strategy")
	ErrMissingConnection = errors.New("remote strategy enabled without a remote connection")
)

// Catalog lists the names of the strategies an Engine can be configured with.
var Catalog = []string{
	decoration.SideEffectStrategyName,
	decoration.SideEffectCapStrategyName,
	decoration.RemoteStrategyName,
	decoration.ActorStrategyName,
	optimization.IdentityRemovalStrategyName,
	verification.ReadOnlyStrategyName,
	verification.StandardVerificationStrategyName,
}

type Engine struct {
	cfg         *config.Config
	graph       structure.Graph
	registry    *strategy.Registry
	logger      logger.Logger
	actors      actor.Factory
	partitioner actor.Partitioner
	conn        remote.Connection
	sideEffects []decoration.SideEffect
	extra       []strategy.Strategy
}

type Opt func(*Engine)

func WithLogger(l logger.Logger) Opt {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithRemoteConnection sets the connection used by the RemoteStrategy. The Engine owns
// the connection and closes it on Close.
func WithRemoteConnection(conn remote.Connection) Opt {
	return func(e *Engine) {
		e.conn = conn
	}
}

// WithActors replaces the local actor runtime used by the ActorStrategy.
func WithActors(actors actor.Factory) Opt {
	return func(e *Engine) {
		e.actors = actors
	}
}

func WithPartitioner(p actor.Partitioner) Opt {
	return func(e *Engine) {
		e.partitioner = p
	}
}

// WithSideEffects registers initial side effects on every compiled traversal. It
// enables the SideEffectStrategy.
func WithSideEffects(sideEffects ...decoration.SideEffect) Opt {
	return func(e *Engine) {
		e.sideEffects = append(e.sideEffects, sideEffects...)
	}
}

// WithStrategies registers strategies after the configured ones.
func WithStrategies(strategies ...strategy.Strategy) Opt {
	return func(e *Engine) {
		e.extra = append(e.extra, strategies...)
	}
}

// New builds an Engine from cfg. The strategies are registered in the order of
// cfg.Strategies.Enabled, followed by the ones implied by the options.
func New(cfg *config.Config, g structure.Graph, opts ...Opt) (*Engine, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		graph:  g,
		logger: logger.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.actors == nil {
		e.actors = local.New(
			local.WithLogger(e.logger),
			local.WithMaxConcurrentWorkers(cfg.Actors.MaxConcurrentWorkers),
		)
	}
	if e.partitioner == nil {
		if cfg.Actors.Partitions == 1 {
			e.partitioner = actor.GlobalPartitioner{}
		} else {
			e.partitioner = actor.NewHashPartitioner(cfg.Actors.Partitions)
		}
	}

	names := slices.Clone(cfg.Strategies.Enabled)
	if len(e.sideEffects) > 0 && !slices.Contains(names, decoration.SideEffectStrategyName) {
		names = append([]string{decoration.SideEffectStrategyName}, names...)
	}
	if cfg.Actors.Enabled {
		// a side-effect query run by actors needs its cap inside the plan
		if !slices.Contains(names, decoration.SideEffectCapStrategyName) {
			names = append(names, decoration.SideEffectCapStrategyName)
		}
		if !slices.Contains(names, decoration.ActorStrategyName) {
			names = append(names, decoration.ActorStrategyName)
		}
	}

	strategies := make([]strategy.Strategy, 0, len(names)+len(e.extra))
	for _, name := range names {
		s, err := e.build(name)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	strategies = append(strategies, e.extra...)

	registry, err := strategy.NewRegistry(
		strategy.WithLogger(e.logger),
		strategy.WithStrategies(strategies...),
	)
	if err != nil {
		return nil, err
	}
	e.registry = registry

	e.logger.Info("traversal engine ready", zap.Strings("strategies", registry.Names()))
	return e, nil
}

func (e *Engine) build(name string) (strategy.Strategy, error) {
	switch name {
	case decoration.SideEffectStrategyName:
		return decoration.NewSideEffectStrategy(e.sideEffects...), nil
	case decoration.SideEffectCapStrategyName:
		return decoration.NewSideEffectCapStrategy(), nil
	case decoration.RemoteStrategyName:
		if e.conn == nil {
			return nil, ErrMissingConnection
		}
		return decoration.NewRemoteStrategy(e.conn,
			remote.WithMaxElapsedTime(e.cfg.Remote.MaxElapsedTime),
			remote.WithLogger(e.logger),
		), nil
	case decoration.ActorStrategyName:
		return decoration.NewActorStrategy(e.actors, e.partitioner, actor.WithLogger(e.logger)), nil
	case optimization.IdentityRemovalStrategyName:
		return optimization.NewIdentityRemovalStrategy(), nil
	case verification.ReadOnlyStrategyName:
		return verification.ReadOnly(), nil
	case verification.StandardVerificationStrategyName:
		return verification.NewStandardVerificationStrategy(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
}

func (e *Engine) Registry() *strategy.Registry { return e.registry }

func (e *Engine) Graph() structure.Graph { return e.graph }

// Traversal starts a new root traversal over the graph of the Engine.
func (e *Engine) Traversal(steps ...traversal.Step) *traversal.Traversal {
	t := traversal.New(e.graph)
	for _, s := range steps {
		t.AddStep(s)
	}
	return t
}

// Compile applies the strategies to t and locks it.
func (e *Engine) Compile(ctx context.Context, t *traversal.Traversal) error {
	return e.registry.Apply(ctx, t)
}

// Execute compiles t when needed and runs it.
func (e *Engine) Execute(ctx context.Context, t *traversal.Traversal) (*traversal.Result, error) {
	if err := e.Compile(ctx, t); err != nil {
		return nil, err
	}

	out, err := t.Execute(ctx)
	if err != nil {
		e.logger.ErrorWithContext(ctx, "traversal failed", zap.String("traversal", t.String()), zap.Error(err))
		return nil, err
	}
	return &traversal.Result{Traversers: out, SideEffects: t.SideEffects()}, nil
}

func (e *Engine) Close() error {
	if e.conn != nil {
		return e.conn.Close()
	}
	return nil
}
