package manifold

import "errors"

// Sentinel errors for manifold operations.
var (
	// ErrChartNotFound indicates an operation referenced a chart id that does not exist.
	ErrChartNotFound = errors.New("manifold: chart not found")

	// ErrPortalNotFound indicates an operation referenced a portal id that does not exist.
	ErrPortalNotFound = errors.New("manifold: portal not found")

	// ErrNoRoute indicates that no chain of active portals leads from one chart to another.
	ErrNoRoute = errors.New("manifold: no portal route between charts")
)
