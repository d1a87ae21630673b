package breeze

import (
	"strconv"
	"strings"
)

// Row is one loosely-typed record from a Breeze response.
type Row map[string]any

// First returns the value for the first key present with a non-nil,
// non-blank value, reporting whether one was found. The ordered fallback
// absorbs the upstream API's inconsistent field naming across segments.
func (r Row) First(keys ...string) (any, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// Value is First without the found flag; absent resolves to nil so the
// field serializes as null.
func (r Row) Value(keys ...string) any {
	v, _ := r.First(keys...)
	return v
}

// Float reads a key as float64, accepting JSON numbers and numeric
// strings.
func (r Row) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
