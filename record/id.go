package record

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// IDKey is the reserved field the store writes its assigned identifier
// into. Records never carry it on insert and always carry it once stored.
const IDKey = "id"

// ReadID extracts a record's identifier under strict numeric rules.
// See AsID for what qualifies.
func ReadID(rec map[string]any) (int64, bool) {
	return AsID(rec[IDKey])
}

// AsID interprets v as a record identifier. Only numbers qualify:
// the integer kinds directly, floats when they are integral, and
// json.Number when it parses as an integer. Strings never qualify here;
// the lenient reading used by lookups lives in CoerceID.
func AsID(v any) (int64, bool) {
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case float32:
		return integralFloat(float64(val))
	case float64:
		return integralFloat(val)
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// CoerceID applies the lenient identifier coercion lookups use. Numbers
// coerce with truncation toward zero, and strings coerce when they are
// base-10 integers after trimming whitespace. Everything else - nil,
// booleans, non-numeric strings, containers - reports false, which
// callers read as "no identifier filter".
func CoerceID(v any) (int64, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case float32:
		return truncFloat(float64(val))
	case float64:
		return truncFloat(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, true
		}
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return truncFloat(f)
	default:
		return AsID(v)
	}
}

// integralFloat converts f when it is a whole number in int64 range.
func integralFloat(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}

// truncFloat drops f's fractional part, rejecting NaN, infinities, and
// values outside int64 range.
func truncFloat(f float64) (int64, bool) {
	t := math.Trunc(f)
	if math.IsNaN(t) || math.Abs(t) >= 1<<63 {
		return 0, false
	}
	return int64(t), true
}
