package fragment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files whose format cannot be inferred.
var ErrUnsupportedFormat = errors.New("fragment: unsupported file format")

var extensions = []string{".json", ".toml", ".yaml", ".yml"}

// Extensions returns the file extensions Decode understands, in lexical order.
func Extensions() []string {
	out := make([]string, len(extensions))
	copy(out, extensions)
	return out
}

// Format infers the decoding format from the file extension.
// Returns "" when the extension is not recognized.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

// Decode reads and parses the file at path.
// A missing file yields an error wrapping fs.ErrNotExist.
func Decode(path string) (any, error) {
	format := Format(path)
	if format == "" {
		return nil, fmt.Errorf("%w: %s (supported: yaml, json, toml)", ErrUnsupportedFormat, filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	value, err := DecodeBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return value, nil
}

// DecodeBytes parses data in the given format ("yaml", "yml", "json" or "toml").
// Empty input decodes to an empty map.
func DecodeBytes(data []byte, format string) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]any), nil
	}

	var raw any
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case "toml":
		var table map[string]any
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
		raw = table
	default:
		return nil, fmt.Errorf("%w: %s (supported: yaml, json, toml)", ErrUnsupportedFormat, format)
	}

	if raw == nil {
		return make(map[string]any), nil
	}
	return Normalize(raw), nil
}

// clampUint converts v to int64, saturating at math.MaxInt64.
func clampUint(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// Normalize converts decoder output into the closed set of value kinds:
// nil, bool, int64, float64, string, []any and map[string]any.
// Mapping keys that are not strings are formatted with fmt.Sprint.
func Normalize(value any) any {
	switch v := value.(type) {
	case nil, bool, string, int64, float64:
		return v
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return clampUint(uint64(v))
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return clampUint(v)
	case float32:
		return float64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case toml.LocalDate:
		return v.String()
	case toml.LocalTime:
		return v.String()
	case toml.LocalDateTime:
		return v.String()
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[fmt.Sprint(key)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = Normalize(val)
		}
		return out
	default:
		return v
	}
}
