package actor

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/dVakulen/tinkerpop/pkg/structure"
)

type hashPartition struct {
	index uint64
	count uint64
}

func (p *hashPartition) ID() string {
	return "partition-" + strconv.FormatUint(p.index, 10)
}

func (p *hashPartition) Contains(e structure.Element) bool {
	return hashID(e.ID())%p.count == p.index
}

func (p *hashPartition) String() string { return p.ID() }

// HashPartitioner assigns every element to one of a fixed number of partitions by the
// xxhash of its id.
type HashPartitioner struct {
	partitions []Partition
}

var _ Partitioner = (*HashPartitioner)(nil)

// NewHashPartitioner returns a HashPartitioner with n partitions. n is raised to 1 when
// lower.
func NewHashPartitioner(n int) *HashPartitioner {
	if n < 1 {
		n = 1
	}
	p := &HashPartitioner{partitions: make([]Partition, 0, n)}
	for i := range n {
		p.partitions = append(p.partitions, &hashPartition{index: uint64(i), count: uint64(n)})
	}
	return p
}

func (p *HashPartitioner) Partitions() []Partition {
	return append([]Partition(nil), p.partitions...)
}

func (p *HashPartitioner) Find(e structure.Element) Partition {
	return p.partitions[hashID(e.ID())%uint64(len(p.partitions))]
}

func hashID(id any) uint64 {
	return xxhash.Sum64String(fmt.Sprint(id))
}

type globalPartition struct{}

func (globalPartition) ID() string                      { return "global" }
func (globalPartition) Contains(structure.Element) bool { return true }

// GlobalPartitioner puts the whole graph into a single partition.
type GlobalPartitioner struct{}

var _ Partitioner = GlobalPartitioner{}

func (GlobalPartitioner) Partitions() []Partition { return []Partition{globalPartition{}} }

func (GlobalPartitioner) Find(structure.Element) Partition { return globalPartition{} }
