package rcconfig

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/maps"
)

// ManifestKey is the key under which the merged configuration lists the files
// that were loaded.
const ManifestKey = "configs"

// Value is a nested configuration object. Leaves are scalars (string, numbers,
// bool, nil) or slices; nested objects are stored as map[string]any.
type Value map[string]any

// Get returns the value found by walking path through nested objects, or nil if
// any segment is missing or crosses a scalar.
func (v Value) Get(path ...string) any {
	if len(path) == 0 || v == nil {
		return nil
	}
	return maps.Search(v, path)
}

// Configs returns the list of loaded files recorded under ManifestKey.
func (v Value) Configs() []string {
	files, _ := v[ManifestKey].([]string)
	return files
}

// Merge deep-merges layers from left to right and returns a new Value.
// When both sides hold objects at the same key they are merged recursively;
// otherwise the right-hand value replaces the left-hand one. The input layers are
// not modified.
func Merge(layers ...Value) Value {
	out := make(map[string]any)
	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		maps.Merge(normalize(layer), out)
	}
	return out
}

// normalize copies m, converting every nested object to map[string]any so the
// merge recognises it as an object regardless of how a parser or caller built it.
func normalize(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case Value:
		return normalize(t)
	case map[string]any:
		return normalize(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalizeValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = normalizeValue(vv)
		}
		return out
	default:
		return v
	}
}

// splitPath splits s on delim and drops empty segments, so "a____b" split on "__"
// is [a b].
func splitPath(s, delim string) []string {
	parts := strings.Split(s, delim)
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// assignPath sets value at segments below root, creating missing objects. An
// intermediate segment that holds a non-object leaves root unchanged; the final
// segment always replaces.
func assignPath(root map[string]any, segments []string, value any) {
	cursor := root
	for i, seg := range segments {
		if i == len(segments)-1 {
			cursor[seg] = value
			return
		}
		next, ok := cursor[seg]
		if !ok {
			child := make(map[string]any)
			cursor[seg] = child
			cursor = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return
		}
		cursor = child
	}
}
