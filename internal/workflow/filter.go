package workflow

import "strings"

// ApplyFilter returns the items whose display name contains term, ignoring
// case. An empty term returns items unchanged.
func ApplyFilter[T any](term string, items []T, nameOf func(T) string) []T {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(nameOf(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}
