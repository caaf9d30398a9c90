// Package memory contains an in-memory implementation of structure.MutableGraph.
package memory

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/dVakulen/tinkerpop/pkg/id"
	"github.com/dVakulen/tinkerpop/pkg/structure"
)

var ErrNotFound = errors.New("vertex not found")

// Graph holds vertices in insertion order. The methods on Graph are thread safe.
type Graph struct {
	mu       sync.RWMutex
	order    []any
	vertices map[any]*structure.Vertex
}

var _ structure.MutableGraph = (*Graph)(nil)

func New() *Graph {
	return &Graph{
		vertices: map[any]*structure.Vertex{},
	}
}

// Vertices returns a snapshot of the vertices present when it was called.
func (g *Graph) Vertices(ctx context.Context) (iter.Seq[structure.Element], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	snapshot := make([]structure.Element, 0, len(g.order))
	for _, id := range g.order {
		snapshot = append(snapshot, g.vertices[id])
	}
	g.mu.RUnlock()

	return slices.Values(snapshot), nil
}

// AddVertex stores a new vertex. If properties carry an "id" it is used as the vertex id,
// otherwise a ULID is generated.
func (g *Graph) AddVertex(ctx context.Context, label string, properties map[string]any) (structure.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	props := maps.Clone(properties)
	if props == nil {
		props = map[string]any{}
	}
	vertexID, ok := props["id"]
	if !ok {
		vertexID = id.New()
	}
	delete(props, "id")

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.vertices[vertexID]; exists {
		return nil, fmt.Errorf("vertex %v already exists", vertexID)
	}
	v := &structure.Vertex{Id: vertexID, VertexType: label, Properties: props}
	g.vertices[vertexID] = v
	g.order = append(g.order, vertexID)
	return v, nil
}

func (g *Graph) RemoveVertex(ctx context.Context, id any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.vertices[id]; !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	delete(g.vertices, id)
	g.order = slices.DeleteFunc(g.order, func(other any) bool { return other == id })
	return nil
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.order)
}

// NewModern returns the six vertex "modern" toy graph: four people and the two pieces
// of software they created.
func NewModern() *Graph {
	g := New()
	vertices := []struct {
		label string
		props map[string]any
	}{
		{"person", map[string]any{"id": 1, "name": "marko", "age": 29}},
		{"person", map[string]any{"id": 2, "name": "vadas", "age": 27}},
		{"software", map[string]any{"id": 3, "name": "lop", "lang": "java"}},
		{"person", map[string]any{"id": 4, "name": "josh", "age": 32}},
		{"software", map[string]any{"id": 5, "name": "ripple", "lang": "java"}},
		{"person", map[string]any{"id": 6, "name": "peter", "age": 35}},
	}
	for _, v := range vertices {
		if _, err := g.AddVertex(context.Background(), v.label, v.props); err != nil {
			panic(err)
		}
	}
	return g
}
