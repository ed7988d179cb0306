package jsonschema

import (
	"errors"
	"fmt"
)

const defaultMaxInlineDepth = 64

// ErrRefCycle is returned when inlining meets a recursive definition.
var ErrRefCycle = errors.New("jsonschema: ref cycle")

// Inline expands every local definition $ref of doc into a single
// self-contained fragment rooted at the document's root definition. Keywords
// next to a $ref are laid over the expanded target. Recursive schema graphs
// cannot be inlined and fail with ErrRefCycle.
func Inline(doc *Document) (Fragment, error) {
	if doc == nil {
		return nil, errors.New("jsonschema: document is nil")
	}
	state := &inlineState{doc: doc, inStack: make(map[string]struct{})}
	resolved, err := state.resolveRef(doc.Ref, nil)
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

type inlineState struct {
	doc     *Document
	stack   []string
	inStack map[string]struct{}
}

func (s *inlineState) resolveRef(ref string, siblings Fragment) (Fragment, error) {
	name, ok := DefinitionName(ref)
	if !ok {
		return nil, fmt.Errorf("jsonschema: unsupported ref %q", ref)
	}
	target, ok := s.doc.Definitions[name]
	if !ok {
		return nil, fmt.Errorf("jsonschema: definition %q not found", name)
	}
	if _, cycling := s.inStack[name]; cycling {
		return nil, fmt.Errorf("%w at %s", ErrRefCycle, ref)
	}
	if len(s.stack) >= defaultMaxInlineDepth {
		return nil, fmt.Errorf("jsonschema: ref depth exceeds %d", defaultMaxInlineDepth)
	}

	s.stack = append(s.stack, name)
	s.inStack[name] = struct{}{}
	resolved, err := s.resolveNode(target)
	s.stack = s.stack[:len(s.stack)-1]
	delete(s.inStack, name)
	if err != nil {
		return nil, err
	}

	out := resolved.(Fragment)
	for key, value := range siblings {
		if key == "$ref" {
			continue
		}
		resolvedValue, err := s.resolveNode(value)
		if err != nil {
			return nil, err
		}
		out[key] = resolvedValue
	}
	return out, nil
}

func (s *inlineState) resolveNode(node any) (any, error) {
	switch typed := node.(type) {
	case Fragment:
		return s.resolveMap(typed)
	case map[string]any:
		return s.resolveMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, entry := range typed {
			resolved, err := s.resolveNode(entry)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return cloneValue(node), nil
	}
}

func (s *inlineState) resolveMap(node map[string]any) (Fragment, error) {
	if ref, ok := node["$ref"].(string); ok {
		return s.resolveRef(ref, node)
	}
	out := make(Fragment, len(node))
	for key, value := range node {
		resolved, err := s.resolveNode(value)
		if err != nil {
			return nil, err
		}
		out[key] = resolved
	}
	return out, nil
}
