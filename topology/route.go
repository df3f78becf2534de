package topology

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for route search.
var (
	// ErrNoPath is returned when the destination is unreachable.
	ErrNoPath = errors.New("topology: no path")

	// ErrOptionViolation is returned when an invalid RouteOption is supplied.
	ErrOptionViolation = errors.New("topology: invalid option supplied")
)

// RouteOption configures ShortestPath via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation.
type RouteOption func(*RouteOptions)

// RouteOptions holds the parameters of a route search.
type RouteOptions struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxDepth, if > 0, rejects routes longer than MaxDepth edges.
	MaxDepth int

	// FilterEdge can skip edges by returning false.
	FilterEdge func(e Edge) bool

	err error
}

// DefaultRouteOptions returns background context, no depth limit and no
// filtering.
func DefaultRouteOptions() RouteOptions {
	return RouteOptions{
		Ctx:        context.Background(),
		FilterEdge: func(Edge) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) RouteOption {
	return func(o *RouteOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth limits routes to d edges.
//
//	d > 0: limit to d
//	d == 0: no limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) RouteOption {
	return func(o *RouteOptions) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithEdgeFilter skips edges for which fn returns false.
func WithEdgeFilter(fn func(e Edge) bool) RouteOption {
	return func(o *RouteOptions) {
		if fn != nil {
			o.FilterEdge = fn
		}
	}
}

// queueItem pairs a vertex with its depth.
type queueItem struct {
	id    uint32
	depth int
}

// walker encapsulates mutable search state.
type walker struct {
	graph  *Graph
	opts   RouteOptions
	queue  []queueItem
	parent map[uint32]Edge
	seen   map[uint32]bool
}

// ShortestPath returns the fewest-edge route from→to as the edges to follow.
// Ties resolve by edge insertion order. from == to yields an empty route.
//
// Returns ErrVertexNotFound for unknown endpoints, ErrOptionViolation for bad
// options, ErrNoPath when unreachable, or the context error on cancellation.
// Complexity: O(V + E)
func ShortestPath(g *Graph, from, to uint32, opts ...RouteOption) ([]Edge, error) {
	o := DefaultRouteOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(from) {
		return nil, fmt.Errorf("ShortestPath: from %d: %w", from, ErrVertexNotFound)
	}
	if !g.HasVertex(to) {
		return nil, fmt.Errorf("ShortestPath: to %d: %w", to, ErrVertexNotFound)
	}
	if from == to {
		return []Edge{}, nil
	}

	w := &walker{
		graph:  g,
		opts:   o,
		parent: make(map[uint32]Edge),
		seen:   map[uint32]bool{from: true},
		queue:  []queueItem{{id: from}},
	}
	found, err := w.loop(to)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("ShortestPath(%d→%d): %w", from, to, ErrNoPath)
	}

	return w.pathTo(from, to), nil
}

// loop expands the frontier until to is reached or the queue drains.
func (w *walker) loop(to uint32) (bool, error) {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return false, w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}

		edges, err := w.graph.OutEdges(item.id)
		if err != nil {
			return false, err
		}
		for _, e := range edges {
			if w.seen[e.To] || !w.opts.FilterEdge(e) {
				continue
			}
			w.seen[e.To] = true
			w.parent[e.To] = e
			if e.To == to {
				return true, nil
			}
			w.queue = append(w.queue, queueItem{id: e.To, depth: next})
		}
	}

	return false, nil
}

// pathTo walks parent links back from to and reverses them.
func (w *walker) pathTo(from, to uint32) []Edge {
	var path []Edge
	for cur := to; cur != from; {
		e := w.parent[cur]
		path = append(path, e)
		cur = e.From
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
