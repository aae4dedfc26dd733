package nest

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Unified container coercion module
// Consolidates the conversions between arbitrary Go values and the two
// container shapes the path engine understands: []any and map[string]any.

// ToArray coerces value to a sequence. Mappings yield their values in
// sorted-key order, generic slices and arrays are widened to []any, and
// anything else (including nil) yields an empty sequence.
func ToArray(value any) []any {
	switch v := value.(type) {
	case nil:
		return []any{}
	case []any:
		return v
	case map[string]any:
		keys := sortedKeys(v)
		out := make([]any, 0, len(v))
		for _, k := range keys {
			out = append(out, v[k])
		}
		return out
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		return ToArray(toStringMap(rv))
	}
	return []any{}
}

// ToObject coerces value to a mapping. Sequences become records keyed by
// their decimal index, generic maps are widened to map[string]any, and
// anything else (including nil) yields an empty mapping.
func ToObject(value any) map[string]any {
	switch v := value.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return v
	case []any:
		out := make(map[string]any, len(v))
		for i, item := range v {
			out[strconv.Itoa(i)] = item
		}
		return out
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		return toStringMap(rv)
	case reflect.Slice, reflect.Array:
		return ToObject(ToArray(value))
	}
	return map[string]any{}
}

// IsArray reports whether value is a sequence container
func IsArray(value any) bool {
	_, ok := value.([]any)
	return ok
}

// IsObject reports whether value is a mapping container
func IsObject(value any) bool {
	_, ok := value.(map[string]any)
	return ok
}

// toStringMap widens an arbitrary map to map[string]any, stringifying keys
func toStringMap(rv reflect.Value) map[string]any {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out
}

// wrapContainer makes any value addressable by the path engine: containers
// pass through, nil becomes an empty sequence, and a lone scalar becomes a
// one-element sequence.
func wrapContainer(value any) any {
	switch value.(type) {
	case nil:
		return []any{}
	case map[string]any, []any:
		return value
	}
	return []any{value}
}

// isContainer reports whether value can hold members
func isContainer(value any) bool {
	switch value.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

// isEmptyValue checks if a value is empty for collection purposes:
// nil, zero numbers, false, empty strings and empty containers.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return val == ""
	case bool:
		return !val
	case int:
		return val == 0
	case int64:
		return val == 0
	case float64:
		return val == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// sortedKeys returns the keys of m in sorted order for deterministic
// iteration over mappings.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toFloat64 converts numeric values to float64 for arithmetic operations
func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
