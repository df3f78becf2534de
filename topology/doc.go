// Package topology provides a small, thread-safe directed multigraph keyed by
// uint32 ids, plus breadth-first route search over it.
//
// A manifold uses it as its connectivity layer: charts are vertices, portals
// are edges (edge id == portal id). The graph only grows.
//
// The Graph G = (V,E):
//
//   - Directed edges only; parallel edges and self-loops are allowed
//     (two portals may join the same pair of charts, a portal may lead back
//     into its own chart).
//   - Caller-assigned edge ids; OutEdges reports edges in insertion order so
//     routes are deterministic.
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj).
//
// Core Methods:
//
//	AddVertex(id uint32)                      // O(1), idempotent
//	AddEdge(id, from, to uint32) error        // O(1), adds missing endpoints
//	HasVertex(id uint32) bool                 // O(1)
//	Edge(id uint32) (Edge, bool)              // O(1)
//	OutEdges(from uint32) ([]Edge, error)     // O(deg)
//	Vertices() []uint32                       // O(V·log V), sorted
//	VertexCount(), EdgeCount() int            // O(1)
//	Clone() *Graph                            // O(V+E)
//
// Routing:
//
//	ShortestPath(g, from, to, opts...) ([]Edge, error)
//
// returns the fewest-edge path. Options: WithMaxDepth, WithEdgeFilter,
// WithContext.
//
// Errors:
//
//	ErrVertexNotFound  – missing endpoint
//	ErrDuplicateEdge   – edge id reused
//	ErrNoPath          – destination unreachable under the options
//	ErrOptionViolation – invalid option (e.g. negative depth)
package topology
