package dotconf

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Azhovan/dotconf/internal/dotpath"
)

// Redacted replaces secret values in dumps and snapshots.
const Redacted = "***redacted***"

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for Dump.
type dumpConfig struct {
	withSources bool     // Include source attribution for each key
	asJSON      bool     // Output as JSON instead of text format
	indent      string   // Indentation for JSON output (default: "  ")
	secrets     []string // Dotted paths to redact
}

// WithSources includes source attribution for each key in the output.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs configuration as nested JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  ").
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// WithSecrets redacts the given dotted paths and everything beneath them.
func WithSecrets(paths ...string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.secrets = append(cfg.secrets, paths...)
	}
}

// Dump writes a human-readable representation of the repository.
// Text output is one sorted "key: value" line per leaf.
// Returns an error if writing to the writer fails.
func Dump(w io.Writer, r *Repository, opts ...DumpOption) error {
	if r == nil {
		return ErrNilRepository
	}

	config := dumpConfig{
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&config)
	}

	if config.asJSON {
		return dumpAsJSON(w, r, config)
	}
	return dumpAsText(w, r, config)
}

// dumpAsText outputs configuration in text format (key: value).
func dumpAsText(w io.Writer, r *Repository, config dumpConfig) error {
	prov := r.Provenance()
	flat := dotpath.Flatten(r.All())

	for _, key := range dotpath.SortedKeys(flat) {
		display := formatDisplay(flat[key])
		if isSecret(key, config.secrets) {
			display = Redacted
		}

		line := fmt.Sprintf("%s: %s", key, display)
		if config.withSources {
			if source, ok := prov.Source(key); ok {
				line += fmt.Sprintf(" (source: %s)", source)
			}
		}
		line += "\n"

		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}

	return nil
}

// dumpAsJSON outputs the nested structure as JSON with secret redaction.
func dumpAsJSON(w io.Writer, r *Repository, config dumpConfig) error {
	var result any = redact("", r.All(), config.secrets)
	if config.withSources {
		result = map[string]any{
			"config":  result,
			"sources": r.Provenance().Keys,
		}
	}

	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(result, "", config.indent)
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

// redact returns a copy of value with secret paths replaced by Redacted.
func redact(prefix string, value any, secrets []string) any {
	if prefix != "" && isSecret(prefix, secrets) {
		return Redacted
	}
	m, ok := value.(map[string]any)
	if !ok {
		return value
	}
	out := make(map[string]any, len(m))
	for key, nested := range m {
		out[key] = redact(dotpath.Join(prefix, key), nested, secrets)
	}
	return out
}

func isSecret(path string, secrets []string) bool {
	for _, secret := range secrets {
		if dotpath.Covers(secret, path) {
			return true
		}
	}
	return false
}

// formatDisplay formats a leaf value for text output.
func formatDisplay(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", val)
	case map[string]any:
		if len(val) == 0 {
			return "{}"
		}
	}

	if list, ok := toSlice(v); ok {
		items := make([]string, 0, len(list))
		for _, item := range list {
			items = append(items, formatDisplay(item))
		}
		return fmt.Sprintf("[%s]", strings.Join(items, ", "))
	}
	return toString(v)
}
