package actor

import (
	"context"

	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

// Program is the execution plan handed to the workers. The steps before the first
// barrier form the worker segment, run once per partition; the barrier and everything
// after it form the master segment, run once over the merged worker output.
//
// A Program never executes its plan: workers and the master each run their own clone,
// so no pipeline state is shared between them.
type Program struct {
	plan    *traversal.Traversal
	barrier int
}

func NewProgram(plan *traversal.Traversal) *Program {
	return &Program{
		plan:    plan,
		barrier: traversal.FirstBarrierIndex(plan),
	}
}

// BarrierIndex is the index of the first master step.
func (p *Program) BarrierIndex() int { return p.barrier }

func (p *Program) String() string { return p.plan.String() }

// NewWorker returns the worker executing the worker segment over partition. The worker
// starts with empty accumulators.
func (p *Program) NewWorker(partition Partition) *Worker {
	t := p.detach()
	t.SideEffects().ClearValues()
	if start, ok := t.StartStep().(traversal.PartitionAware); ok {
		start.Restrict(partition.Contains)
	}
	return &Worker{partition: partition, traversal: t, end: p.barrier}
}

// NewMaster returns the master that merges worker results and runs the master segment.
func (p *Program) NewMaster() *Master {
	return &Master{traversal: p.detach(), from: p.barrier}
}

func (p *Program) detach() *traversal.Traversal {
	t := p.plan.Clone()
	t.SetParent(traversal.EmptyStep)
	return t
}

type Worker struct {
	partition Partition
	traversal *traversal.Traversal
	end       int
}

func (w *Worker) Partition() Partition { return w.partition }

func (w *Worker) Execute(ctx context.Context) (*traversal.Result, error) {
	out, err := w.traversal.ExecuteRange(ctx, 0, w.end, nil)
	if err != nil {
		return nil, err
	}
	return &traversal.Result{Traversers: out, SideEffects: w.traversal.SideEffects()}, nil
}

type Master struct {
	traversal  *traversal.Traversal
	from       int
	traversers []*traversal.Traverser
}

// Merge folds the result of one worker into the master state. Results must be merged
// in a deterministic order for the output to be deterministic.
func (m *Master) Merge(r *traversal.Result) {
	m.traversers = append(m.traversers, r.Traversers...)
	if r.SideEffects != nil {
		m.traversal.SideEffects().Merge(r.SideEffects)
	}
}

func (m *Master) Execute(ctx context.Context) (*traversal.Result, error) {
	out, err := m.traversal.ExecuteRange(ctx, m.from, m.traversal.Len(), m.traversers)
	if err != nil {
		return nil, err
	}
	return &traversal.Result{Traversers: out, SideEffects: m.traversal.SideEffects()}, nil
}
