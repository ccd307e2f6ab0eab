package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveScopeID turns user input into a scope UUID. Accepts an exact name
// (case-insensitive), a full UUID, or an unambiguous UUID prefix.
func resolveScopeID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("scope is required")
	}

	scopes, err := app.Scopes.List(ctx)
	if err != nil {
		return "", err
	}

	for _, s := range scopes {
		if strings.EqualFold(s.Name, input) {
			return s.ID, nil
		}
	}

	for _, s := range scopes {
		if s.ID == input {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range scopes {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("scope not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("scope prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveItemID matches a work item within a scope by exact title
// (case-insensitive), full UUID, or UUID prefix.
func resolveItemID(ctx context.Context, app *App, scopeID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("item is required")
	}

	items, err := app.WorkItems.ListByScope(ctx, scopeID)
	if err != nil {
		return "", err
	}

	var titleMatches []string
	for _, w := range items {
		if strings.EqualFold(w.Title, input) {
			titleMatches = append(titleMatches, w.ID)
		}
	}
	if len(titleMatches) == 1 {
		return titleMatches[0], nil
	}
	if len(titleMatches) > 1 {
		return "", fmt.Errorf("item title %q is ambiguous (%d matches)", input, len(titleMatches))
	}

	for _, w := range items {
		if w.ID == input {
			return w.ID, nil
		}
	}

	var matches []string
	for _, w := range items {
		if strings.HasPrefix(w.ID, input) {
			matches = append(matches, w.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("item not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("item prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
