package domain

import (
	"fmt"
	"math"
	"sort"
)

// Values is a read accessor over one decoded fragment entry.
// Decoders disagree on numeric widths (YAML yields int, JSON float64,
// TOML int64), so the typed getters accept any of them.
type Values map[string]any

// AsValues converts a fragment value into Values.
func AsValues(v any) (Values, bool) {
	switch m := v.(type) {
	case map[string]any:
		return Values(m), true
	case Values:
		return m, true
	case map[any]any:
		result := make(Values, len(m))
		for k, val := range m {
			result[fmt.Sprint(k)] = val
		}
		return result, true
	default:
		return nil, false
	}
}

// String returns the string at key, or "" when missing or not a string.
func (v Values) String(key string) string {
	s, ok := v[key].(string)
	if !ok {
		return ""
	}
	return s
}

// Int returns the integer at key, or 0 when missing or not numeric.
func (v Values) Int(key string) int {
	n, _ := toInt(v[key])
	return n
}

// Bool returns the boolean at key, or false when missing or not a boolean.
func (v Values) Bool(key string) bool {
	b, ok := v[key].(bool)
	if !ok {
		return false
	}
	return b
}

// Strings returns the string list at key. Non-string items are skipped.
func (v Values) Strings(key string) []string {
	switch list := v[key].(type) {
	case []string:
		return list
	case []any:
		result := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}

// Map returns the nested mapping at key, or nil.
func (v Values) Map(key string) map[string]any {
	m, ok := AsValues(v[key])
	if !ok {
		return nil
	}
	return map[string]any(m)
}

// Slice returns the sequence at key, or nil.
func (v Values) Slice(key string) []any {
	switch list := v[key].(type) {
	case []any:
		return list
	case []map[string]any:
		result := make([]any, len(list))
		for i, item := range list {
			result[i] = item
		}
		return result
	default:
		return nil
	}
}

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Normalize canonicalises a nested value so that values produced by
// different decoders compare equal: integral numbers become int,
// non-integral numbers float64, typed slices []any and typed maps
// map[string]any. Empty maps and slices normalise to nil and mapping
// keys holding nil are dropped.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		if len(val) == 0 {
			return nil
		}
		result := make(map[string]any, len(val))
		for k, item := range val {
			if n := Normalize(item); n != nil {
				result[k] = n
			}
		}
		if len(result) == 0 {
			return nil
		}
		return result
	case Values:
		return Normalize(map[string]any(val))
	case map[any]any:
		m, _ := AsValues(val)
		return Normalize(map[string]any(m))
	case map[string]string:
		if len(val) == 0 {
			return nil
		}
		result := make(map[string]any, len(val))
		for k, item := range val {
			result[k] = item
		}
		return result
	case []any:
		if len(val) == 0 {
			return nil
		}
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = Normalize(item)
		}
		return result
	case []string:
		if len(val) == 0 {
			return nil
		}
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = item
		}
		return result
	case float32:
		return normalizeFloat(float64(val))
	case float64:
		return normalizeFloat(val)
	default:
		if n, ok := toInt(val); ok {
			return n
		}
		return v
	}
}

// NormalizeMap normalises a settings map, returning nil for empty maps.
func NormalizeMap(m map[string]any) map[string]any {
	n, _ := Normalize(m).(map[string]any)
	return n
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

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return int(f)
	}
	return f
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
		return 0, false
	case float32:
		if float64(n) == math.Trunc(float64(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}
