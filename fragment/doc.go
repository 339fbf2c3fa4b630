// Package fragment decodes per-topic configuration files (YAML, JSON, or TOML)
// into plain Go container values.
//
// Format is auto-detected from extension (.yaml, .yml, .json, .toml). Decoded
// values are normalized: integers become int64, floats float64, mappings
// map[string]any, and sequences []any.
//
// Example:
//
//	value, err := fragment.Decode("config/database.yaml")
//	repo.Set("database", value)
package fragment
