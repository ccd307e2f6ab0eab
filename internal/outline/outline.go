// Package outline maintains a scope's hierarchy (one parent per node, ordered
// siblings) alongside a directed graph of dependency edges over the same node
// id space. The two structures are independent: reparenting never touches
// edges, and edge insertion never consults the tree. Every mutation validates
// before touching state, so a failed call leaves the outline unchanged.
//
// The outline does no I/O and assumes single-writer access; its caller
// persists the resulting state.
package outline

import (
	"fmt"
	"sort"
	"time"

	"github.com/ameliebergh/traject/internal/domain"
)

type Outline struct {
	scopeID string
	nodes   map[string]*domain.WorkItem
	edges   []*domain.Dependency
}

// New creates an empty outline for a scope.
func New(scopeID string) *Outline {
	return &Outline{
		scopeID: scopeID,
		nodes:   make(map[string]*domain.WorkItem),
	}
}

// Load rebuilds an outline from persisted state. Fails when a node points at
// a parent that is not part of the set, or when the parent chains contain a
// cycle. Mutations preserve acyclicity, so a cycle here means corrupted rows.
func Load(scopeID string, nodes []*domain.WorkItem, edges []*domain.Dependency) (*Outline, error) {
	o := New(scopeID)
	for _, n := range nodes {
		o.nodes[n.ID] = n
	}
	for _, n := range nodes {
		if n.ParentID != nil {
			if _, ok := o.nodes[*n.ParentID]; !ok {
				return nil, fmt.Errorf("node %s: parent %s: %w", n.ID, *n.ParentID, ErrNotFound)
			}
		}
	}
	for _, n := range nodes {
		seen := map[string]bool{n.ID: true}
		for cur := n; cur.ParentID != nil; {
			if seen[*cur.ParentID] {
				return nil, fmt.Errorf("node %s: %w", n.ID, ErrCircularReference)
			}
			seen[*cur.ParentID] = true
			cur = o.nodes[*cur.ParentID]
		}
	}
	o.edges = append(o.edges, edges...)
	return o, nil
}

func (o *Outline) ScopeID() string { return o.scopeID }

// Node returns the node with the given id, or nil.
func (o *Outline) Node(id string) *domain.WorkItem {
	return o.nodes[id]
}

// Nodes returns all nodes, roots first, siblings in order.
func (o *Outline) Nodes() []*domain.WorkItem {
	var out []*domain.WorkItem
	var walk func(parentID *string)
	walk = func(parentID *string) {
		for _, n := range o.children(parentID) {
			out = append(out, n)
			id := n.ID
			walk(&id)
		}
	}
	walk(nil)
	return out
}

// Edges returns every edge, removed ones included.
func (o *Outline) Edges() []*domain.Dependency {
	return append([]*domain.Dependency(nil), o.edges...)
}

// ActiveEdges returns only edges that have not been soft-deleted.
func (o *Outline) ActiveEdges() []*domain.Dependency {
	var out []*domain.Dependency
	for _, e := range o.edges {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out
}

// ── tree mutations ───────────────────────────────────────────────────────────

// AddChild inserts the node under node.ParentID. OrderIndex <= 0 appends as
// the last sibling; a positive OrderIndex inserts at that position, shifting
// later siblings down. The final OrderIndex is written back to the node.
func (o *Outline) AddChild(node *domain.WorkItem) error {
	if _, exists := o.nodes[node.ID]; exists {
		return fmt.Errorf("node %s already exists", node.ID)
	}
	if node.ParentID != nil {
		if *node.ParentID == node.ID {
			return ErrSelfReference
		}
		if _, ok := o.nodes[*node.ParentID]; !ok {
			return fmt.Errorf("parent %s: %w", *node.ParentID, ErrNotFound)
		}
	}

	siblings := o.children(node.ParentID)
	order := node.OrderIndex
	if order <= 0 || order > len(siblings)+1 {
		order = len(siblings) + 1
	}

	for _, s := range siblings {
		if s.OrderIndex >= order {
			s.OrderIndex++
		}
	}
	node.OrderIndex = order
	o.nodes[node.ID] = node
	return nil
}

// Reparent moves a node under a new parent (nil for root) at the requested
// order, appending when newOrder is nil. Fails with ErrCircularReference when
// the new parent is the node itself or one of its descendants; the outline is
// unchanged on failure.
func (o *Outline) Reparent(id string, newParentID *string, newOrder *int) error {
	node, ok := o.nodes[id]
	if !ok {
		return fmt.Errorf("node %s: %w", id, ErrNotFound)
	}
	if newParentID != nil {
		if *newParentID == id {
			return ErrCircularReference
		}
		parent, ok := o.nodes[*newParentID]
		if !ok {
			return fmt.Errorf("parent %s: %w", *newParentID, ErrNotFound)
		}
		if o.isDescendant(parent.ID, id) {
			return ErrCircularReference
		}
	}
	if newOrder != nil && *newOrder <= 0 {
		return ErrInvalidOrder
	}

	// Detach: compact the old sibling list.
	oldSiblings := o.children(node.ParentID)
	for _, s := range oldSiblings {
		if s.ID != id && s.OrderIndex > node.OrderIndex {
			s.OrderIndex--
		}
	}

	node.ParentID = copyStr(newParentID)

	// Attach at the requested position, or append.
	newSiblings := o.childrenExcept(newParentID, id)
	order := len(newSiblings) + 1
	if newOrder != nil && *newOrder < order {
		order = *newOrder
	}
	for _, s := range newSiblings {
		if s.OrderIndex >= order {
			s.OrderIndex++
		}
	}
	node.OrderIndex = order

	o.normalize(newParentID)
	return nil
}

// SetOrder moves a node to a new position within its current sibling list.
func (o *Outline) SetOrder(id string, order int) error {
	node, ok := o.nodes[id]
	if !ok {
		return fmt.Errorf("node %s: %w", id, ErrNotFound)
	}
	if order <= 0 {
		return ErrInvalidOrder
	}

	siblings := o.children(node.ParentID)
	if order > len(siblings) {
		order = len(siblings)
	}
	if order == node.OrderIndex {
		return nil
	}

	old := node.OrderIndex
	for _, s := range siblings {
		switch {
		case s.ID == id:
			s.OrderIndex = order
		case old < order && s.OrderIndex > old && s.OrderIndex <= order:
			s.OrderIndex--
		case old > order && s.OrderIndex >= order && s.OrderIndex < old:
			s.OrderIndex++
		}
	}
	return nil
}

// Delete removes a childless node. Fails with ErrHasChildren when children
// exist (use DeleteCascade to remove a subtree) and with
// ErrHasActiveDependencies while any active edge touches the node, forcing
// explicit edge removal first.
func (o *Outline) Delete(id string) error {
	node, ok := o.nodes[id]
	if !ok {
		return fmt.Errorf("node %s: %w", id, ErrNotFound)
	}
	if len(o.children(&id)) > 0 {
		return ErrHasChildren
	}
	if o.hasActiveEdges(id) {
		return ErrHasActiveDependencies
	}

	for _, s := range o.children(node.ParentID) {
		if s.OrderIndex > node.OrderIndex {
			s.OrderIndex--
		}
	}
	delete(o.nodes, id)
	return nil
}

// DeleteCascade removes a node and its whole subtree. Still fails with
// ErrHasActiveDependencies when an active edge touches any node in the
// subtree; nothing is removed in that case.
func (o *Outline) DeleteCascade(id string) ([]string, error) {
	node, ok := o.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %s: %w", id, ErrNotFound)
	}

	subtree := o.descendants(id)
	subtree = append([]string{id}, subtree...)
	for _, nid := range subtree {
		if o.hasActiveEdges(nid) {
			return nil, ErrHasActiveDependencies
		}
	}

	for _, s := range o.children(node.ParentID) {
		if s.OrderIndex > node.OrderIndex {
			s.OrderIndex--
		}
	}
	for _, nid := range subtree {
		delete(o.nodes, nid)
	}
	return subtree, nil
}

// ── dependency graph mutations ───────────────────────────────────────────────

// AddEdge inserts an active dependency edge. Fails with ErrDuplicateEdge when
// an active edge already exists for the ordered pair and with
// ErrCircularDependency when the target already reaches the source through
// active edges.
func (o *Outline) AddEdge(d *domain.Dependency) error {
	if d.SourceID == d.TargetID {
		return domain.ErrSelfDependency
	}
	if _, ok := o.nodes[d.SourceID]; !ok {
		return fmt.Errorf("source %s: %w", d.SourceID, ErrNotFound)
	}
	if _, ok := o.nodes[d.TargetID]; !ok {
		return fmt.Errorf("target %s: %w", d.TargetID, ErrNotFound)
	}
	if o.activeEdge(d.SourceID, d.TargetID) != nil {
		return ErrDuplicateEdge
	}
	if o.reaches(d.TargetID, d.SourceID) {
		return ErrCircularDependency
	}
	o.edges = append(o.edges, d)
	return nil
}

// RemoveEdge soft-deletes the active edge for the ordered pair, stamping when
// and by whom. Fails with ErrNotFound when no active edge exists, so callers
// can tell "already removed" from genuine success.
func (o *Outline) RemoveEdge(sourceID, targetID string, when time.Time, byID string) error {
	e := o.activeEdge(sourceID, targetID)
	if e == nil {
		return fmt.Errorf("dependency %s -> %s: %w", sourceID, targetID, ErrNotFound)
	}
	return e.Remove(when, byID)
}

// ── internals ────────────────────────────────────────────────────────────────

func (o *Outline) children(parentID *string) []*domain.WorkItem {
	return o.childrenExcept(parentID, "")
}

func (o *Outline) childrenExcept(parentID *string, exclude string) []*domain.WorkItem {
	var out []*domain.WorkItem
	for _, n := range o.nodes {
		if n.ID == exclude {
			continue
		}
		if sameParent(n.ParentID, parentID) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// normalize rewrites a sibling list to a dense 1..N sequence.
func (o *Outline) normalize(parentID *string) {
	for i, n := range o.children(parentID) {
		n.OrderIndex = i + 1
	}
}

// isDescendant reports whether candidate lies in the subtree rooted at root,
// walking candidate's ancestors up to the top. The visited set keeps the walk
// finite even if the parent chains are somehow cyclic.
func (o *Outline) isDescendant(candidate, root string) bool {
	seen := map[string]bool{candidate: true}
	n := o.nodes[candidate]
	for n != nil && n.ParentID != nil {
		if *n.ParentID == root {
			return true
		}
		if seen[*n.ParentID] {
			return false
		}
		seen[*n.ParentID] = true
		n = o.nodes[*n.ParentID]
	}
	return false
}

// descendants returns the ids of every node below root, depth-first.
func (o *Outline) descendants(root string) []string {
	var out []string
	for _, c := range o.children(&root) {
		out = append(out, c.ID)
		out = append(out, o.descendants(c.ID)...)
	}
	return out
}

func (o *Outline) activeEdge(sourceID, targetID string) *domain.Dependency {
	for _, e := range o.edges {
		if e.IsActive && e.SourceID == sourceID && e.TargetID == targetID {
			return e
		}
	}
	return nil
}

func (o *Outline) hasActiveEdges(id string) bool {
	for _, e := range o.edges {
		if e.IsActive && (e.SourceID == id || e.TargetID == id) {
			return true
		}
	}
	return false
}

// reaches reports whether "to" is reachable from "from" over active edges.
func (o *Outline) reaches(from, to string) bool {
	seen := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return true
		}
		for _, e := range o.edges {
			if e.IsActive && e.SourceID == cur && !seen[e.TargetID] {
				seen[e.TargetID] = true
				queue = append(queue, e.TargetID)
			}
		}
	}
	return false
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
