package jsonschema

import "strings"

// sanitizedKeys are the free-text keywords cleaned by the configured policy.
var sanitizedKeys = []string{"title", "description"}

func (c *compilation) sanitize(fragment Fragment) {
	policy := c.opts.sanitizer
	if policy == nil {
		return
	}
	for _, key := range sanitizedKeys {
		text, ok := fragment[key].(string)
		if !ok {
			continue
		}
		fragment[key] = strings.TrimSpace(policy.Sanitize(text))
	}
}
