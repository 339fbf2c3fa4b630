package dotconf

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Azhovan/dotconf/fragment"
	"github.com/Azhovan/dotconf/internal/dotpath"
)

// Repository stores configuration values with dot-notation access.
// Nested mappings are map[string]any; a path segment that reaches any other
// value ends the walk.
//
// Not safe for concurrent use: callers load once at bootstrap and read after.
type Repository struct {
	items      map[string]any
	sources    map[string]string
	warnings   []Warning
	extensions []string
	logger     *zap.Logger
}

// Option configures a Repository using the functional options pattern.
type Option func(*Repository)

// WithLogger sets the logger that receives load warnings.
// Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithExtensions restricts the file extensions LoadDirectory reads.
// Default: every extension package fragment understands.
func WithExtensions(exts ...string) Option {
	return func(r *Repository) {
		r.extensions = r.extensions[:0]
		for _, ext := range exts {
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			r.extensions = append(r.extensions, strings.ToLower(ext))
		}
	}
}

// New creates a repository holding a deep copy of items.
func New(items map[string]any, opts ...Option) *Repository {
	r := &Repository{
		items:      make(map[string]any, len(items)),
		sources:    make(map[string]string, len(items)),
		extensions: fragment.Extensions(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for key, value := range items {
		r.items[key] = cloneValue(value)
		r.sources[key] = SourceInitial
	}
	return r
}

// Get returns the value at a dotted path, or def when any segment is missing
// or addresses a non-mapping before the path is exhausted.
func (r *Repository) Get(path string, def any) any {
	if value, ok := r.lookup(path); ok {
		return value
	}
	return def
}

// Has reports whether the full path resolves, even to nil, false or an empty value.
func (r *Repository) Has(path string) bool {
	_, ok := r.lookup(path)
	return ok
}

func (r *Repository) lookup(path string) (any, bool) {
	var current any = r.items
	for _, segment := range dotpath.Split(path) {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}

// Set assigns value at a dotted path, creating intermediate mappings and
// replacing any non-mapping value found on the way. Mappings and lists are
// copied, so later writes to the repository do not reach the caller's value.
func (r *Repository) Set(path string, value any) {
	segments := dotpath.Split(path)
	m := r.items
	for _, segment := range segments[:len(segments)-1] {
		next, ok := m[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[segment] = next
		}
		m = next
	}
	m[segments[len(segments)-1]] = cloneValue(value)
	r.sources[segments[0]] = SourceSet
}

// All returns the backing map itself. Mutations through it are visible to
// the repository and are not recorded in its provenance.
func (r *Repository) All() map[string]any {
	return r.items
}

// String returns the value as a string. Non-strings are stringified.
func (r *Repository) String(path string, def string) string {
	return toString(r.Get(path, def))
}

// Int returns the value cast to int.
// Numeric strings use their leading numeric prefix ("12abc" → 12); anything
// without one is 0.
func (r *Repository) Int(path string, def int) int {
	return toInt(r.Get(path, def))
}

// Float returns the value cast to float64 using the same rules as Int.
func (r *Repository) Float(path string, def float64) float64 {
	return toFloat(r.Get(path, def))
}

// Bool returns the value as a bool.
// Strings are true only for "true", "1", "yes" and "on" (case-insensitive).
func (r *Repository) Bool(path string, def bool) bool {
	return toBool(r.Get(path, def))
}

// Array returns the value when it is a list or a mapping, else def.
// Scalars are never wrapped.
func (r *Repository) Array(path string, def any) any {
	value := r.Get(path, def)
	if KindOf(value).IsContainer() {
		return value
	}
	return def
}

// Slice returns a copy of a list value as []any, else def.
func (r *Repository) Slice(path string, def []any) []any {
	value, ok := r.lookup(path)
	if !ok {
		return def
	}
	if list, ok := toSlice(value); ok {
		return list
	}
	return def
}

// Map returns a mapping value with string keys, else def.
func (r *Repository) Map(path string, def map[string]any) map[string]any {
	value, ok := r.lookup(path)
	if !ok {
		return def
	}
	if m, ok := toMap(value); ok {
		return m
	}
	return def
}

// Merge deep-merges items into the repository. Mappings on both sides merge
// recursively; any other incoming value replaces the existing one.
func (r *Repository) Merge(items map[string]any) {
	mergeInto(r.items, items)
	for key := range items {
		r.sources[key] = SourceMerge
	}
}

func mergeInto(dst, src map[string]any) {
	for key, incoming := range src {
		if existing, ok := dst[key].(map[string]any); ok {
			if nested, ok := incoming.(map[string]any); ok {
				mergeInto(existing, nested)
				continue
			}
		}
		dst[key] = cloneValue(incoming)
	}
}

// LoadDirectory loads every file in path whose extension is enabled. The file
// name without extension becomes the top-level key, and a decoded list or
// mapping replaces whatever the key held. Files are visited in lexical
// order, so the last file deriving a key wins.
//
// A missing directory is a no-op. Undecodable and non-container files are
// skipped and reported through Err and the logger.
func (r *Repository) LoadDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		r.warn(path, WarnUnreadable, err.Error())
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		if !r.loads(ext) {
			continue
		}

		file := filepath.Join(path, name)
		value, err := fragment.Decode(file)
		if err != nil {
			r.warn(file, WarnDecode, err.Error())
			continue
		}

		kind := KindOf(value)
		if !kind.IsContainer() {
			r.warn(file, WarnNotContainer, "decoded to "+kind.String()+", expected list or map")
			continue
		}

		key := strings.TrimSuffix(name, ext)
		r.items[key] = value
		r.sources[key] = SourceFilePrefix + name
		r.logger.Debug("loaded config fragment", zap.String("key", key), zap.String("file", file))
	}
}

func (r *Repository) loads(ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range r.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (r *Repository) warn(path, code, message string) {
	r.warnings = append(r.warnings, Warning{Path: path, Code: code, Message: message})
	r.logger.Warn("skipping config fragment",
		zap.String("path", path),
		zap.String("code", code),
		zap.String("reason", message),
	)
}

// Err returns a *LoadError describing every skipped file, or nil.
func (r *Repository) Err() error {
	if len(r.warnings) == 0 {
		return nil
	}
	warnings := make([]Warning, len(r.warnings))
	copy(warnings, r.warnings)
	return &LoadError{Warnings: warnings}
}

// cloneValue deep-copies map[string]any and []any values.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, nested := range val {
			out[key] = cloneValue(nested)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, nested := range val {
			out[i] = cloneValue(nested)
		}
		return out
	default:
		return v
	}
}
