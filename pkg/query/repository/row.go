package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Row is one untyped result row. Column names differ in case between
// sources, so every accessor matches keys case-insensitively after trying
// the exact name.
type Row map[string]any

func (r Row) lookup(key string) (any, bool) {
	if v, ok := r[key]; ok {
		return v, v != nil
	}
	for k, v := range r {
		if strings.EqualFold(k, key) {
			return v, v != nil
		}
	}
	return nil, false
}

// Has reports whether any of keys is present with a non-null value.
func (r Row) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := r.lookup(k); ok {
			return true
		}
	}
	return false
}

// Float returns the first of keys that holds a number or numeric string.
// A present zero is returned as zero; only absent or non-numeric values fall
// through to the next key. The result is 0 when nothing matches.
func (r Row) Float(keys ...string) float64 {
	f, _ := r.FloatOK(keys...)
	return f
}

func (r Row) FloatOK(keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := r.lookup(k)
		if !ok {
			continue
		}
		if f, ok := toFloat(v); ok {
			return f, true
		}
	}
	return 0, false
}

// Int truncates Float.
func (r Row) Int(keys ...string) int {
	return int(r.Float(keys...))
}

// String returns the first non-empty value of keys, formatting numbers
// without exponent.
func (r Row) String(keys ...string) string {
	for _, k := range keys {
		v, ok := r.lookup(k)
		if !ok {
			continue
		}
		if s := toString(v); s != "" {
			return s
		}
	}
	return ""
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		return f, err == nil
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case []byte:
		return strings.TrimSpace(string(s))
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	}
	return fmt.Sprint(v)
}
