// Package cast provides type conversion helpers for map[string]any and similar generic data.
package cast

import "strconv"

// ToString renders a YAML scalar as its metadata string form.
// Supports string, bool, int/uint, and float types; nil renders as "".
func ToString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), true
	default:
		return "", false
	}
}

// ToStringList converts v to []string. Accepts []string or []any where each
// element is a scalar accepted by ToString.
func ToStringList(v any) ([]string, bool) {
	if ss, ok := v.([]string); ok {
		return ss, true
	}
	slice, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(slice))
	for _, e := range slice {
		s, ok := ToString(e)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
