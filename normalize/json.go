package normalize

import "strconv"

// Accessors over decoded generic JSON. All of them tolerate missing keys
// and wrong types by returning the zero value.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func childMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	return asMap(m[key])
}

func stringAt(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func floatAt(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func floatPtrAt(m map[string]any, key string) *float64 {
	f, ok := floatAt(m, key)
	if !ok {
		return nil
	}
	return &f
}

// nestedFloatPtr reads m[outer][inner] as a float, e.g. temperature["2m"].
func nestedFloatPtr(m map[string]any, outer, inner string) *float64 {
	return floatPtrAt(childMap(m, outer), inner)
}
