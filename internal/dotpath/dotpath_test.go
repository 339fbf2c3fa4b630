package dotpath

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single segment", input: "app", expected: []string{"app"}},
		{name: "nested path", input: "database.connections.mysql", expected: []string{"database", "connections", "mysql"}},
		{name: "empty string", input: "", expected: []string{""}},
		{name: "trailing dot", input: "app.", expected: []string{"app", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Split(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Split(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		key      string
		expected string
	}{
		{name: "with prefix", prefix: "database", key: "host", expected: "database.host"},
		{name: "empty prefix", prefix: "", key: "host", expected: "host"},
		{name: "empty key", prefix: "database", key: "", expected: "database"},
		{name: "nested prefix", prefix: "app.cache", key: "driver", expected: "app.cache.driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Join(tt.prefix, tt.key)
			if result != tt.expected {
				t.Errorf("Join(%q, %q) = %q, want %q", tt.prefix, tt.key, result, tt.expected)
			}
		})
	}
}

func TestTop(t *testing.T) {
	if got := Top("app.debug"); got != "app" {
		t.Errorf("Top(app.debug) = %q, want %q", got, "app")
	}
	if got := Top("app"); got != "app" {
		t.Errorf("Top(app) = %q, want %q", got, "app")
	}
}

func TestCovers(t *testing.T) {
	tests := []struct {
		root, path string
		want       bool
	}{
		{"database.password", "database.password", true},
		{"database", "database.password", true},
		{"Database", "database.host", true},
		{"database", "databases.host", false},
		{"database.password", "database", false},
	}

	for _, tt := range tests {
		if got := Covers(tt.root, tt.path); got != tt.want {
			t.Errorf("Covers(%q, %q) = %v, want %v", tt.root, tt.path, got, tt.want)
		}
	}
}

func TestFlatten(t *testing.T) {
	input := map[string]any{
		"app": map[string]any{
			"name":  "demo",
			"debug": true,
			"cache": map[string]any{"driver": "file"},
		},
		"drivers": []any{"file", "redis"},
		"empty":   map[string]any{},
	}

	expected := map[string]any{
		"app.name":         "demo",
		"app.debug":        true,
		"app.cache.driver": "file",
		"drivers":          []any{"file", "redis"},
		"empty":            map[string]any{},
	}

	result := Flatten(input)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Flatten() = %v, want %v", result, expected)
	}
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[string]int{"b": 1, "a": 2, "c": 3})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedKeys() = %v, want %v", got, want)
	}
}
