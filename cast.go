package dotconf

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// truthyStrings are the only string values Bool treats as true.
var truthyStrings = map[string]bool{
	"true": true,
	"1":    true,
	"yes":  true,
	"on":   true,
}

// toString stringifies a scalar. Strings pass through, nil becomes "".
func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case bool:
		// Words, not "1"/"", so the result reads back through toBool.
		return strconv.FormatBool(val)
	case float32:
		return formatFloat(float64(val))
	case float64:
		return formatFloat(val)
	}

	if i, ok := asInt64(v); ok {
		return strconv.FormatInt(i, 10)
	}
	return fmt.Sprint(v)
}

// formatFloat renders f in plain decimal notation unless it is very large or small.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// toInt casts v to int. Floats truncate toward zero; NaN, infinities and
// out-of-range floats become 0. Strings use their leading numeric prefix.
func toInt(v any) int {
	switch val := v.(type) {
	case nil:
		return 0
	case bool:
		if val {
			return 1
		}
		return 0
	case float32:
		return floatToInt(float64(val))
	case float64:
		return floatToInt(val)
	case string:
		prefix, integral := numericPrefix(val)
		if prefix == "" {
			return 0
		}
		if integral {
			// On overflow ParseInt returns the saturated value.
			i, _ := strconv.ParseInt(prefix, 10, strconv.IntSize)
			return int(i)
		}
		f, _ := strconv.ParseFloat(prefix, 64)
		return floatToInt(f)
	}

	if i, ok := asInt64(v); ok {
		return int(i)
	}
	return containerFlag(v)
}

// toFloat casts v to float64 with the same rules as toInt.
func toFloat(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case bool:
		if val {
			return 1
		}
		return 0
	case float32:
		return float64(val)
	case float64:
		return val
	case string:
		prefix, _ := numericPrefix(val)
		if prefix == "" {
			return 0
		}
		f, _ := strconv.ParseFloat(prefix, 64)
		return f
	}

	if i, ok := asInt64(v); ok {
		return float64(i)
	}
	return float64(containerFlag(v))
}

// toBool casts v to bool. Strings are true only for the truthy tokens;
// other values use truthiness.
func toBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return truthyStrings[strings.ToLower(val)]
	case nil:
		return false
	case float32:
		return val != 0
	case float64:
		return val != 0
	}

	if i, ok := asInt64(v); ok {
		return i != 0
	}
	if KindOf(v).IsContainer() {
		return reflect.ValueOf(v).Len() > 0
	}
	return true
}

// containerFlag returns 1 for a non-empty container and 0 otherwise.
func containerFlag(v any) int {
	if KindOf(v).IsContainer() && reflect.ValueOf(v).Len() > 0 {
		return 1
	}
	return 0
}

func floatToInt(f float64) int {
	if math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int(f)
}

// asInt64 converts any Go integer kind. uint64 values above MaxInt64 saturate.
func asInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint:
		return saturate(uint64(val)), true
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint64:
		return saturate(val), true
	default:
		return 0, false
	}
}

func saturate(u uint64) int64 {
	if u > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(u)
}

// numericPrefix returns the longest leading numeric prefix of s after leading
// whitespace: optional sign, digits, optional fraction, optional exponent.
// integral is false when the prefix has a fraction or an exponent.
// Examples:
//   - "12abc" → "12", true
//   - " 3.7kg" → "3.7", false
//   - "1e3" → "1e3", false
//   - "abc" → "", false
func numericPrefix(s string) (prefix string, integral bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	digits := i - intStart
	integral = true

	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if fraction := j - i - 1; fraction > 0 || digits > 0 {
			digits += fraction
			i = j
			integral = false
		}
	}

	if digits == 0 {
		return "", false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
			integral = false
		}
	}

	return s[:i], integral
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// toSlice copies any list kind into a fresh []any.
func toSlice(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		out := make([]any, len(list))
		copy(out, list)
		return out, true
	}
	if KindOf(v) != KindList {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return list, true
}

// toMap exposes any mapping with string keys as map[string]any.
func toMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if KindOf(v) != KindMap {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}
