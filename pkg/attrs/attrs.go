// Package attrs reads values back out of slog-style key/value slices.
package attrs

// Lookup returns the value stored after key in a [k1, v1, k2, v2, ...] slice
// when it has type T.
func Lookup[T any](kv []any, key string) (T, bool) {
	var zero T
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok && k == key {
			v, ok := kv[i+1].(T)
			return v, ok
		}
	}
	return zero, false
}

// String is Lookup for strings; a missing or non-string value reads as "".
func String(kv []any, key string) string {
	v, _ := Lookup[string](kv, key)
	return v
}
