//go:generate mockgen -source actor.go -destination ../../internal/mocks/mock_actor.go -package mocks Actors

// Package actor defines what a traversal needs from an actor runtime to be executed by
// a fleet of workers, and the delegated step that hands the work over.
//
// A Partitioner describes how graph elements are sharded across workers. A Factory
// instantiates the Actors hosting the workers of one Program; the Program is the
// immutable plan captured when the pipeline was collapsed.
package actor

import (
	"context"

	"github.com/dVakulen/tinkerpop/pkg/structure"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
)

// Partition is the share of the graph owned by one worker.
type Partition interface {
	ID() string
	Contains(e structure.Element) bool
}

type Partitioner interface {
	Partitions() []Partition
	// Find returns the partition owning e.
	Find(e structure.Element) Partition
}

// Actors hosts the workers executing one Program.
type Actors interface {
	// Submit runs the program to completion and returns what its last step produced
	// together with the merged side effects.
	Submit(ctx context.Context) (*traversal.Result, error)
	Close() error
}

// Factory instantiates the Actors running program over the partitions of partitioner.
type Factory func(program *Program, partitioner Partitioner) (Actors, error)
