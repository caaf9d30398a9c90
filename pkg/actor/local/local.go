// Package local is an in-process actor runtime. Every partition gets a worker goroutine
// running the worker segment of the program; workers post their results to the
// master's mailbox, and the master merges them in partition order before running the
// master segment.
package local

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dVakulen/tinkerpop/internal/concurrency"
	"github.com/dVakulen/tinkerpop/internal/containers"
	"github.com/dVakulen/tinkerpop/pkg/actor"
	"github.com/dVakulen/tinkerpop/pkg/logger"
	"github.com/dVakulen/tinkerpop/pkg/telemetry"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

var tracer = otel.Tracer("pkg/actor/local")

var (
	ErrClosed       = errors.New("actors closed")
	ErrNoPartitions = errors.New("partitioner has no partitions")
)

const defaultMaxConcurrentWorkers = 8

type message struct {
	index  int
	result *traversal.Result
}

// Actors runs one Program over the partitions of a Partitioner.
type Actors struct {
	program              *actor.Program
	partitioner          actor.Partitioner
	logger               logger.Logger
	maxConcurrentWorkers int
	mailbox              containers.Mailbox[message]
}

var _ actor.Actors = (*Actors)(nil)

type Opt func(*Actors)

func WithLogger(l logger.Logger) Opt {
	return func(a *Actors) {
		a.logger = l
	}
}

// WithMaxConcurrentWorkers bounds the number of workers running at the same time.
func WithMaxConcurrentWorkers(n int) Opt {
	return func(a *Actors) {
		a.maxConcurrentWorkers = n
	}
}

// New returns an actor.Factory creating local Actors configured with opts.
func New(opts ...Opt) actor.Factory {
	return func(program *actor.Program, partitioner actor.Partitioner) (actor.Actors, error) {
		return NewActors(program, partitioner, opts...), nil
	}
}

func NewActors(program *actor.Program, partitioner actor.Partitioner, opts ...Opt) *Actors {
	a := &Actors{
		program:              program,
		partitioner:          partitioner,
		logger:               logger.NewNoopLogger(),
		maxConcurrentWorkers: defaultMaxConcurrentWorkers,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Submit runs the program. It can be called once; the result of the master segment is
// returned with the merged side effects.
func (a *Actors) Submit(ctx context.Context) (*traversal.Result, error) {
	if a.mailbox.Closed() {
		return nil, ErrClosed
	}

	partitions := a.partitioner.Partitions()
	if len(partitions) == 0 {
		return nil, ErrNoPartitions
	}

	ctx, span := tracer.Start(ctx, "actors.Submit", trace.WithAttributes(
		attribute.String("program", a.program.String()),
		attribute.Int("partitions", len(partitions)),
	))
	defer span.End()

	pool := concurrency.NewPool(ctx, a.maxConcurrentWorkers)
	for i, partition := range partitions {
		worker := a.program.NewWorker(partition)
		pool.Go(func(ctx context.Context) error {
			start := time.Now()
			res, err := worker.Execute(ctx)
			workerDurationHistogram.WithLabelValues(strconv.FormatBool(err == nil)).
				Observe(float64(time.Since(start).Milliseconds()))
			if err != nil {
				return fmt.Errorf("worker %s: %w", partition.ID(), err)
			}
			if !a.mailbox.Post(message{index: i, result: res}) {
				return ErrClosed
			}
			a.logger.DebugWithContext(ctx, "worker done",
				zap.String("partition", partition.ID()),
				zap.Int("traversers", len(res.Traversers)),
			)
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		telemetry.TraceError(span, err)
		return nil, err
	}

	messages := a.mailbox.Drain()
	slices.SortFunc(messages, func(x, y message) int { return x.index - y.index })

	master := a.program.NewMaster()
	for _, m := range messages {
		master.Merge(m.result)
	}

	res, err := master.Execute(ctx)
	if err != nil {
		telemetry.TraceError(span, err)
		return nil, fmt.Errorf("master: %w", err)
	}
	return res, nil
}

func (a *Actors) Close() error {
	a.mailbox.Close()
	return nil
}
