package jsonschema

// Fragment is a JSON-serializable piece of a JSON Schema document: one field's
// schema, one definition, or a property map.
type Fragment map[string]any

// Clone returns a deep copy of the fragment. Nested fragments, plain maps and
// slices are copied; other values are shared.
func (f Fragment) Clone() Fragment {
	if f == nil {
		return nil
	}
	return cloneValue(f).(Fragment)
}

// Types returns the declared type names of the fragment, accepting both the
// single string and the list form of the "type" keyword.
func (f Fragment) Types() []string {
	switch typed := f["type"].(type) {
	case string:
		return []string{typed}
	case []string:
		return append([]string(nil), typed...)
	case []any:
		out := make([]string, 0, len(typed))
		for _, entry := range typed {
			if name, ok := entry.(string); ok {
				out = append(out, name)
			}
		}
		return out
	default:
		return nil
	}
}

// HasType reports whether name is one of the fragment's declared types.
func (f Fragment) HasType(name string) bool {
	for _, candidate := range f.Types() {
		if candidate == name {
			return true
		}
	}
	return false
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case Fragment:
		out := make(Fragment, len(typed))
		for key, entry := range typed {
			out[key] = cloneValue(entry)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, entry := range typed {
			out[key] = cloneValue(entry)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, entry := range typed {
			out[i] = cloneValue(entry)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	default:
		return value
	}
}
