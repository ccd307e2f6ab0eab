package formatter

import (
	"fmt"

	"github.com/ameliebergh/traject/internal/domain"
)

// FormatOutline renders a depth-first node list (roots first, siblings in
// order) as an indented tree. Effort shows up as a right-aligned badge.
func FormatOutline(nodes []*domain.WorkItem) string {
	if len(nodes) == 0 {
		return Dim("Empty outline.")
	}

	depth := make(map[string]int, len(nodes))
	byID := make(map[string]*domain.WorkItem, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	for _, n := range nodes {
		d := 0
		for p := n.ParentID; p != nil; {
			parent, ok := byID[*p]
			if !ok {
				break
			}
			d++
			p = parent.ParentID
		}
		depth[n.ID] = d
	}

	// Last-sibling detection per parent for tree connectors.
	lastChild := make(map[string]string)
	for _, n := range nodes {
		key := ""
		if n.ParentID != nil {
			key = *n.ParentID
		}
		if cur, ok := lastChild[key]; !ok || byID[cur].OrderIndex < n.OrderIndex {
			lastChild[key] = n.ID
		}
	}

	items := make([]TreeItem, 0, len(nodes))
	for _, n := range nodes {
		key := ""
		if n.ParentID != nil {
			key = *n.ParentID
		}
		detail := ""
		if n.Effort != nil {
			detail = fmt.Sprintf("effort %d", *n.Effort)
		}
		items = append(items, TreeItem{
			Title:  n.Title,
			Order:  n.OrderIndex,
			Level:  depth[n.ID],
			IsLast: lastChild[key] == n.ID,
			Status: string(n.Status),
			Detail: detail,
		})
	}
	return RenderTree(items)
}
