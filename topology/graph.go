package topology

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Sentinel errors for graph operations.
var (
	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("topology: vertex not found")

	// ErrDuplicateEdge indicates AddEdge was given an id already in use.
	ErrDuplicateEdge = errors.New("topology: duplicate edge id")
)

// Edge is a directed connection From→To.
type Edge struct {
	// ID uniquely identifies this edge in the Graph.
	ID uint32

	// From is the source vertex ID.
	From uint32

	// To is the destination vertex ID.
	To uint32
}

// Graph is a directed multigraph.
//
// muVert protects vertices; muEdgeAdj protects edges and adjacency. When both
// are needed muVert is taken first.
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	vertices map[uint32]struct{}
	edges    map[uint32]Edge

	// adjacency[from] lists outgoing edge ids in insertion order.
	adjacency map[uint32][]uint32
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		vertices:  make(map[uint32]struct{}),
		edges:     make(map[uint32]Edge),
		adjacency: make(map[uint32][]uint32),
	}
}

// AddVertex inserts id if absent.
// Complexity: O(1)
func (g *Graph) AddVertex(id uint32) {
	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.vertices[id] = struct{}{}
}

// HasVertex reports whether id exists.
func (g *Graph) HasVertex(id uint32) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// AddEdge inserts the directed edge id: from→to, creating missing endpoints.
// Returns ErrDuplicateEdge if id is taken.
// Complexity: O(1)
func (g *Graph) AddEdge(id, from, to uint32) error {
	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, dup := g.edges[id]; dup {
		return fmt.Errorf("AddEdge(%d): %w", id, ErrDuplicateEdge)
	}
	g.vertices[from] = struct{}{}
	g.vertices[to] = struct{}{}
	g.edges[id] = Edge{ID: id, From: from, To: to}
	g.adjacency[from] = append(g.adjacency[from], id)

	return nil
}

// Edge returns the edge with id.
func (g *Graph) Edge(id uint32) (Edge, bool) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	e, ok := g.edges[id]

	return e, ok
}

// OutEdges returns the edges leaving from, in insertion order.
// Complexity: O(deg(from))
func (g *Graph) OutEdges(from uint32) ([]Edge, error) {
	if !g.HasVertex(from) {
		return nil, fmt.Errorf("OutEdges(%d): %w", from, ErrVertexNotFound)
	}

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	ids := g.adjacency[from]
	out := make([]Edge, len(ids))
	for i, id := range ids {
		out[i] = g.edges[id]
	}

	return out, nil
}

// Vertices returns all vertex ids in ascending order.
// Complexity: O(V·log V)
func (g *Graph) Vertices() []uint32 {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	out := make([]uint32, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// Clone returns a deep copy of the Graph.
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	clone := &Graph{
		vertices:  make(map[uint32]struct{}, len(g.vertices)),
		edges:     make(map[uint32]Edge, len(g.edges)),
		adjacency: make(map[uint32][]uint32, len(g.adjacency)),
	}
	for id := range g.vertices {
		clone.vertices[id] = struct{}{}
	}
	for id, e := range g.edges {
		clone.edges[id] = e
	}
	for from, ids := range g.adjacency {
		clone.adjacency[from] = append([]uint32(nil), ids...)
	}

	return clone
}
