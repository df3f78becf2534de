package ecs

import "errors"

// Sentinel errors for the ecs package.
var (
	// ErrEntityNotFound indicates an operation on a despawned or unknown entity.
	ErrEntityNotFound = errors.New("ecs: entity not found")

	// ErrSystemPanic wraps a panic recovered from a System.
	ErrSystemPanic = errors.New("ecs: system panicked")
)
