package validation

// downlevel rewrites the boolean exclusiveMinimum/exclusiveMaximum flags the
// compiler emits into the numeric form draft-07 validators expect:
// {"minimum": 0, "exclusiveMinimum": true} becomes {"exclusiveMinimum": 0}.
func downlevel(node any) any {
	switch typed := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = downlevel(value)
		}
		downlevelBound(out, "minimum", "exclusiveMinimum")
		downlevelBound(out, "maximum", "exclusiveMaximum")
		return out
	case []any:
		out := make([]any, len(typed))
		for i, entry := range typed {
			out[i] = downlevel(entry)
		}
		return out
	default:
		return node
	}
}

func downlevelBound(node map[string]any, boundKey, exclusiveKey string) {
	exclusive, ok := node[exclusiveKey].(bool)
	if !ok {
		return
	}
	bound, hasBound := node[boundKey]
	if !exclusive || !hasBound {
		delete(node, exclusiveKey)
		return
	}
	node[exclusiveKey] = bound
	delete(node, boundKey)
}
