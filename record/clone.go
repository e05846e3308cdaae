package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
)

// Clone errors. Both are wrapped with the path to the offending value,
// so match with errors.Is.
var (
	// ErrCycle reports a value that contains itself, directly or through
	// any chain of maps and slices.
	ErrCycle = errors.New("cyclic structure")

	// ErrUnsupportedType reports a value outside the data model: funcs,
	// channels, pointers, structs, or numbers that cannot be represented.
	ErrUnsupportedType = errors.New("unsupported type")
)

// Clone returns a deep, independent copy of v.
//
// The copy shares no mutable sub-structure with the source: maps and
// slices are reallocated at every level. Scalars are normalized on the
// way through - the signed and unsigned integer kinds collapse to int64,
// float32 widens to float64, and json.Number becomes int64 when it parses
// as one and float64 otherwise. A clone therefore contains only nil,
// bool, string, int64, float64, []any, and map[string]any.
//
// Values that are not data fail with ErrUnsupportedType. Structures that
// loop back into themselves fail with ErrCycle rather than recursing
// forever; sharing without a loop (the same sub-map reachable twice) is
// fine and yields two independent copies.
func Clone(v any) (any, error) {
	return clone(v, make(map[ref]struct{}))
}

// CloneMap clones a record. The map must be non-nil.
func CloneMap(m map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, errors.New("nil record")
	}
	out, err := clone(m, make(map[ref]struct{}))
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

// ref identifies a container on the current walk path. Maps are keyed by
// their pointer alone (length -1). A slice is keyed by data pointer plus
// length: two slices agreeing on both share every element, so meeting one
// again while still inside it means the structure loops.
type ref struct {
	ptr uintptr
	len int
}

func clone(v any, seen map[ref]struct{}) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return val, nil
	case string:
		return val, nil
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case uint:
		if uint64(val) > math.MaxInt64 {
			return nil, fmt.Errorf("%w: uint value %d overflows int64", ErrUnsupportedType, val)
		}
		return int64(val), nil
	case uint8:
		return int64(val), nil
	case uint16:
		return int64(val), nil
	case uint32:
		return int64(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("%w: uint value %d overflows int64", ErrUnsupportedType, val)
		}
		return int64(val), nil
	case float32:
		return float64(val), nil
	case float64:
		return val, nil
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: malformed number %q", ErrUnsupportedType, string(val))
		}
		return f, nil
	case []any:
		return cloneSlice(val, seen)
	case map[string]any:
		return cloneMap(val, seen)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

func cloneSlice(src []any, seen map[ref]struct{}) (any, error) {
	// A zero-length slice cannot contain anything, so it cannot loop.
	if len(src) > 0 {
		r := ref{ptr: reflect.ValueOf(src).Pointer(), len: len(src)}
		if _, ok := seen[r]; ok {
			return nil, ErrCycle
		}
		seen[r] = struct{}{}
		defer delete(seen, r)
	}

	out := make([]any, len(src))
	for i, elem := range src {
		c, err := clone(elem, seen)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

func cloneMap(src map[string]any, seen map[ref]struct{}) (any, error) {
	if len(src) > 0 {
		r := ref{ptr: reflect.ValueOf(src).Pointer(), len: -1}
		if _, ok := seen[r]; ok {
			return nil, ErrCycle
		}
		seen[r] = struct{}{}
		defer delete(seen, r)
	}

	out := make(map[string]any, len(src))
	for k, elem := range src {
		c, err := clone(elem, seen)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = c
	}
	return out, nil
}
