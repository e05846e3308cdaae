// Package record holds the value model shared by every store boundary.
//
// A record is a plain map[string]any limited to JSON-representable data:
// nil, bool, string, int64, float64, []any, and nested map[string]any.
// Clone is the only way values enter or leave a store: it produces a deep,
// independent copy, normalizes the numeric zoo (int, uint32, json.Number,
// ...) onto int64 and float64, and rejects cycles and non-data values
// deterministically.
//
// MarshalCanonical renders records as RFC 8785-style canonical JSON
// (UTF-16 key order, NFC-normalized strings, no HTML escaping) so dumps
// and golden fixtures compare byte for byte.
package record
