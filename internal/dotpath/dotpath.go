package dotpath

import (
	"sort"
	"strings"
)

// Separator divides the segments of a dotted path.
const Separator = "."

// Split breaks a dotted path into its segments.
// Examples:
//   - "app.debug" → ["app", "debug"]
//   - "name" → ["name"]
//   - "" → [""]
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Join combines a prefix with a key to create a nested path.
// If prefix is empty, returns the key unchanged.
// Examples:
//   - Join("database", "host") → "database.host"
//   - Join("", "host") → "host"
func Join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + Separator + key
}

// Top returns the first segment of a dotted path.
func Top(path string) string {
	top, _, _ := strings.Cut(path, Separator)
	return top
}

// Covers reports whether path equals root or lies beneath it.
// Matching is case-insensitive.
func Covers(root, path string) bool {
	root = strings.ToLower(root)
	path = strings.ToLower(path)
	return path == root || strings.HasPrefix(path, root+Separator)
}

// Flatten walks nested map[string]any values and returns a flat map of
// dotted paths to leaf values. Lists are leaves. Empty maps are kept as leaves
// so they stay visible.
func Flatten(m map[string]any) map[string]any {
	result := make(map[string]any)
	flatten("", m, result)
	return result
}

func flatten(prefix string, value any, result map[string]any) {
	m, ok := value.(map[string]any)
	if !ok || (len(m) == 0 && prefix != "") {
		if prefix != "" {
			result[prefix] = value
		}
		return
	}
	for key, val := range m {
		flatten(Join(prefix, key), val, result)
	}
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
