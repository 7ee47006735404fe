package gateway

import (
	"encoding/json"
	"strconv"
	"time"
)

// Row value accessors. Backend rows travel as map[string]any, so numeric
// values may arrive as int64, float64 or json.Number depending on the
// driver; these helpers absorb that.

// Str returns the string value at key, or "".
func Str(r Row, key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// Float returns the float64 value at key, or 0.
func Float(r Row, key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

// Int returns the int value at key, or 0.
func Int(r Row, key string) int { return int(Float(r, key)) }

// Uint returns the uint value at key, or 0.
func Uint(r Row, key string) uint {
	f := Float(r, key)
	if f < 0 {
		return 0
	}
	return uint(f)
}

// UintPtr returns a pointer to the uint at key, or nil for absent/NULL/0.
func UintPtr(r Row, key string) *uint {
	if v, ok := r[key]; !ok || v == nil {
		return nil
	}
	u := Uint(r, key)
	if u == 0 {
		return nil
	}
	return &u
}

// Bool returns the bool value at key, or false.
func Bool(r Row, key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Time returns the time value at key, or the zero time. String values are
// parsed as RFC3339 then as plain dates.
func Time(r Row, key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// JSONInto decodes a JSON-typed column (object, array, raw bytes or
// pre-decoded map) at key into out. Absent or NULL values leave out alone.
func JSONInto(r Row, key string, out any) {
	v, ok := r[key]
	if !ok || v == nil {
		return
	}
	switch t := v.(type) {
	case []byte:
		_ = json.Unmarshal(t, out)
	case string:
		_ = json.Unmarshal([]byte(t), out)
	default:
		// already decoded (fake gateway, jsonb scan); re-marshal to convert
		if b, err := json.Marshal(t); err == nil {
			_ = json.Unmarshal(b, out)
		}
	}
}
