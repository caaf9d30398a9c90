// Package structure contains the graph data contracts consumed by traversal steps.
// Storage of graph data is left to implementations such as structure/memory.
package structure

import (
	"context"
	"fmt"
	"iter"
)

// Element is a vertex (or any other addressable graph element).
type Element interface {
	ID() any
	Label() string
	Property(key string) (any, bool)
}

// Graph is the read side of a graph store as seen by a traversal.
type Graph interface {
	Vertices(ctx context.Context) (iter.Seq[Element], error)
}

// MutableGraph is implemented by graphs that accept writes from mutating steps.
type MutableGraph interface {
	Graph
	AddVertex(ctx context.Context, label string, properties map[string]any) (Element, error)
	RemoveVertex(ctx context.Context, id any) error
}

// Vertex is the plain Element implementation used by the in-memory graph.
type Vertex struct {
	Id         any
	VertexType string
	Properties map[string]any
}

var _ Element = (*Vertex)(nil)

func (v *Vertex) ID() any { return v.Id }

func (v *Vertex) Label() string { return v.VertexType }

func (v *Vertex) Property(key string) (any, bool) {
	val, ok := v.Properties[key]
	return val, ok
}

func (v *Vertex) String() string {
	return fmt.Sprintf("v[%v]", v.Id)
}
