// Package fieldpaths reads and writes dotted field paths ("foo.bar.baz") in
// decoded JSON objects.
package fieldpaths

import "strings"

// Get returns the value at path in body. The second result is false when any
// segment is missing or traverses a non-object value.
func Get(body map[string]any, path string) (any, bool) {
	current := any(body)
	for _, segment := range strings.Split(path, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = object[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set writes value at path in out, creating intermediate objects as needed.
// An intermediate value that is not an object is replaced.
func Set(out map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := out
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

// DeepCopy copies maps and slices of a decoded JSON value recursively. Scalars
// are returned as is.
func DeepCopy(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return CopyObject(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = DeepCopy(item)
		}
		return out
	default:
		return v
	}
}

// CopyObject is DeepCopy for an object. A nil object copies to nil.
func CopyObject(object map[string]any) map[string]any {
	if object == nil {
		return nil
	}
	out := make(map[string]any, len(object))
	for key, value := range object {
		out[key] = DeepCopy(value)
	}
	return out
}
