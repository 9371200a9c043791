// Package document loads and merges JSON configuration documents.
//
// A Document is a parsed JSON object treated as an opaque mapping: this
// package never interprets keys, it only combines trees. Absence is a
// first-class outcome — every load and merge reports presence through an ok
// bool, and callers must branch on it. A file that is missing, unreadable,
// or malformed yields an absent Document, never an error return: the loader
// diagnoses the failure through its logger and the pipeline continues with
// whatever it already has.
//
// Files may contain // and /* */ comments; they are stripped with
// tidwall/jsonc before parsing, so the on-disk format is a JSON superset
// while the in-memory form is plain JSON.
package document

// Document is a parsed JSON object. Nested objects decode to Document-shaped
// map[string]any values, arrays to []any, scalars to string/float64/bool/nil.
type Document map[string]any

// Merge deep-merges two documents with primary taking priority.
//
// The result holds the union of keys. When a key is present in both and both
// values are mappings, they are merged recursively; for any other collision
// primary's value is kept wholesale. Arrays are never concatenated. Neither
// input is mutated.
func Merge(primary, secondary Document) Document {
	out := make(Document, len(primary)+len(secondary))
	for k, v := range secondary {
		out[k] = v
	}
	for k, v := range primary {
		pm, pok := asMapping(v)
		sm, sok := asMapping(out[k])
		if pok && sok {
			out[k] = map[string]any(Merge(pm, sm))
			continue
		}
		out[k] = v
	}
	return out
}

// asMapping normalizes the two mapping shapes that appear after JSON
// decoding and recursive merging.
func asMapping(v any) (Document, bool) {
	switch m := v.(type) {
	case map[string]any:
		return Document(m), true
	case Document:
		return m, true
	default:
		return nil, false
	}
}
