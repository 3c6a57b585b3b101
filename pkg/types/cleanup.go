// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// nullValues are string values treated as absent by Sweep.
var nullValues = map[string]bool{
	"":              true,
	".":             true,
	"-":             true,
	"NA":            true,
	"none":          true,
	" ":             true,
	"Not Available": true,
	"unknown":       true,
}

// Cleanup sweeps null-ish values from m and collapses single-element lists.
// It never mutates m, and Cleanup(Cleanup(m)) equals Cleanup(m).
func Cleanup(m map[string]any) map[string]any {
	return Unlist(Sweep(m))
}

// Sweep returns a copy of m without nil values, null-ish strings, empty
// lists and empty maps. Lists and nested maps are swept recursively, so a
// map that only held null-ish values disappears as well.
func Sweep(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if sv, keep := sweepValue(v); keep {
			out[k] = sv
		}
	}
	return out
}

func sweepValue(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case string:
		return x, !nullValues[x]
	case map[string]any:
		s := Sweep(x)
		return s, len(s) > 0
	case []string:
		return sweepList(stringsToAny(x))
	case []any:
		return sweepList(x)
	default:
		return v, true
	}
}

func sweepList(items []any) (any, bool) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if sv, keep := sweepValue(item); keep {
			out = append(out, sv)
		}
	}
	return out, len(out) > 0
}

// Unlist returns a copy of m where every single-element list, at any depth,
// is replaced by its element.
func Unlist(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = unlistValue(v)
	}
	return out
}

func unlistValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return Unlist(x)
	case []string:
		return unlistValue(stringsToAny(x))
	case []any:
		if len(x) == 1 {
			return unlistValue(x[0])
		}
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = unlistValue(item)
		}
		return out
	default:
		return v
	}
}
