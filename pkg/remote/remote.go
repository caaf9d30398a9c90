//go:generate mockgen -source remote.go -destination ../../internal/mocks/mock_remote.go -package mocks Connection

// Package remote delegates the execution of a whole traversal to a remote graph
// provider.
package remote

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/dVakulen/tinkerpop/pkg/logger"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

// ErrUnavailable is returned by a Connection that can not reach the provider. Submissions
// failing with it are retried.
var ErrUnavailable = errors.New("remote provider unavailable")

var ErrNoConnection = errors.New("remote step has no connection")

const defaultMaxElapsedTime = 10 * time.Second

// Connection submits traversals to a remote provider.
type Connection interface {
	Submit(ctx context.Context, t *traversal.Traversal) (*traversal.Result, error)
	Close() error
}

// Step sends its plan over a Connection and emits what the provider returned.
type Step struct {
	traversal.AbstractStep
	conn           Connection
	plan           *traversal.Traversal
	maxElapsedTime time.Duration
	logger         logger.Logger
}

var _ traversal.Delegated = (*Step)(nil)

type StepOpt func(*Step)

// WithMaxElapsedTime bounds the time spent retrying an unavailable provider. A
// non-positive d disables retries.
func WithMaxElapsedTime(d time.Duration) StepOpt {
	return func(s *Step) {
		s.maxElapsedTime = d
	}
}

func WithLogger(l logger.Logger) StepOpt {
	return func(s *Step) {
		s.logger = l
	}
}

// NewStep captures a detached clone of t as the plan sent to conn.
func NewStep(conn Connection, t *traversal.Traversal, opts ...StepOpt) *Step {
	plan := t.Clone()
	plan.SetParent(traversal.EmptyStep)

	s := &Step{
		conn:           conn,
		plan:           plan,
		maxElapsedTime: defaultMaxElapsedTime,
		logger:         logger.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Step) DelegatesExecution() {}

func (s *Step) Plan() *traversal.Traversal { return s.plan }

func (s *Step) Requirements() traversal.Requirements {
	return s.plan.Requirements()
}

func (s *Step) Process(ctx context.Context, _ []*traversal.Traverser) ([]*traversal.Traverser, error) {
	if s.conn == nil {
		return nil, ErrNoConnection
	}

	var policy backoff.BackOff = backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 0)
	if s.maxElapsedTime > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.MaxElapsedTime = s.maxElapsedTime
		policy = exp
	}

	var res *traversal.Result
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		var err error
		res, err = s.conn.Submit(ctx, s.plan)
		if errors.Is(err, ErrUnavailable) {
			s.logger.WarnWithContext(ctx, "remote provider unavailable, retrying",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	if res.SideEffects != nil {
		s.Traversal().SideEffects().Assign(res.SideEffects)
	}
	return res.Traversers, nil
}

func (s *Step) Clone() traversal.Step {
	return &Step{
		AbstractStep:   s.CloneAbstract(),
		conn:           s.conn,
		plan:           s.plan.Clone(),
		maxElapsedTime: s.maxElapsedTime,
		logger:         s.logger,
	}
}

func (s *Step) String() string {
	return traversal.StepString("RemoteStep", s.plan)
}
