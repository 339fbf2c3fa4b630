package dotconf

import "reflect"

// Kind classifies a configuration value.
type Kind int

// Value kinds. Decoded fragments only ever contain the first seven.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
	KindOther
)

var kindNames = [...]string{"null", "bool", "int", "float", "string", "list", "map", "other"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsContainer reports whether k is a list or a mapping.
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindMap
}

// KindOf classifies v. Any slice or array is a list and any map is a mapping,
// but dotted paths only descend into map[string]any.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case []any:
		return KindList
	case map[string]any:
		return KindMap
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return KindList
	case reflect.Map:
		return KindMap
	default:
		return KindOther
	}
}
