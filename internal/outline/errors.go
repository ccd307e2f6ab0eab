package outline

import "errors"

var (
	// ErrNotFound indicates an unknown node id, or a missing active edge.
	ErrNotFound = errors.New("not found in outline")

	// ErrSelfReference indicates a node set as its own parent.
	ErrSelfReference = errors.New("a node cannot be its own parent")

	// ErrCircularReference indicates a reparent that would make a node its own ancestor.
	ErrCircularReference = errors.New("move would make a node its own ancestor")

	// ErrCircularDependency indicates an edge that would create a cycle in the
	// dependency graph.
	ErrCircularDependency = errors.New("dependency would create a cycle")

	// ErrDuplicateEdge indicates an active edge already exists for the ordered pair.
	ErrDuplicateEdge = errors.New("an active dependency already exists between these items")

	// ErrHasChildren blocks deletion of a node with children unless the caller cascades.
	ErrHasChildren = errors.New("node has children")

	// ErrHasActiveDependencies blocks deletion while active edges touch the node.
	ErrHasActiveDependencies = errors.New("node has active dependencies")

	// ErrInvalidOrder indicates a non-positive sibling order.
	ErrInvalidOrder = errors.New("order must be positive")
)
