package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sjs "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goliatone/go-schemagen/pkg/jsonschema"
)

// documentURL is the in-memory location compiled documents are registered at.
const documentURL = "mem://schemagen/document.json"

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures validation outcomes.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

func (r SchemaValidationResult) Error() string {
	if r.Valid || len(r.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Err returns the result as an error, or nil when valid.
func (r SchemaValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return r
}

// Validator validates decoded JSON instances against a compiled document.
type Validator struct {
	schema  *sjs.Schema
	printer *message.Printer
}

// ValidateDocument checks that doc is a well-formed draft-07 schema whose refs
// all resolve.
func ValidateDocument(doc *jsonschema.Document) SchemaValidationResult {
	if _, err := compileDocument(doc); err != nil {
		return SchemaValidationResult{Issues: []SchemaIssue{issueFromError(err)}}
	}
	return SchemaValidationResult{Valid: true}
}

// NewValidator compiles doc for instance validation.
func NewValidator(doc *jsonschema.Document) (*Validator, error) {
	schema, err := compileDocument(doc)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: schema, printer: message.NewPrinter(language.English)}, nil
}

// Validate checks instance, a value shaped like decoded JSON, against the
// document's root definition.
func (v *Validator) Validate(instance any) SchemaValidationResult {
	normalized, err := normalize(instance)
	if err != nil {
		return SchemaValidationResult{Issues: []SchemaIssue{{Message: err.Error()}}}
	}
	return v.validate(normalized)
}

// ValidateJSON decodes raw and validates it.
func (v *Validator) ValidateJSON(raw []byte) SchemaValidationResult {
	value, err := sjs.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return SchemaValidationResult{Issues: []SchemaIssue{{Message: fmt.Sprintf("invalid JSON: %s", err)}}}
	}
	return v.validate(value)
}

func (v *Validator) validate(value any) SchemaValidationResult {
	err := v.schema.Validate(value)
	if err == nil {
		return SchemaValidationResult{Valid: true}
	}

	var validationErr *sjs.ValidationError
	if !errors.As(err, &validationErr) {
		return SchemaValidationResult{Issues: []SchemaIssue{{Message: err.Error()}}}
	}
	var issues []SchemaIssue
	v.collect(validationErr, &issues)
	return SchemaValidationResult{Issues: issues}
}

func (v *Validator) collect(err *sjs.ValidationError, issues *[]SchemaIssue) {
	if len(err.Causes) == 0 {
		pointer := instancePointer(err.InstanceLocation)
		*issues = append(*issues, SchemaIssue{
			Path:    pointer,
			Field:   fieldPathFromPointer(pointer),
			Message: err.ErrorKind.LocalizedString(v.printer),
		})
		return
	}
	for _, cause := range err.Causes {
		v.collect(cause, issues)
	}
}

func compileDocument(doc *jsonschema.Document) (*sjs.Schema, error) {
	if doc == nil {
		return nil, errors.New("validation: document is nil")
	}
	payload, err := normalize(doc)
	if err != nil {
		return nil, err
	}
	payload = downlevel(payload)

	compiler := sjs.NewCompiler()
	compiler.DefaultDraft(sjs.Draft7)
	if err := compiler.AddResource(documentURL, payload); err != nil {
		return nil, fmt.Errorf("validation: add document: %w", err)
	}
	schema, err := compiler.Compile(documentURL)
	if err != nil {
		return nil, fmt.Errorf("validation: compile document: %w", err)
	}
	return schema, nil
}

// normalize round-trips value through JSON so the validator sees the same
// value shapes it would get from a decoder.
func normalize(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("validation: encode value: %w", err)
	}
	out, err := sjs.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("validation: decode value: %w", err)
	}
	return out, nil
}

func issueFromError(err error) SchemaIssue {
	if err == nil {
		return SchemaIssue{Message: "unknown error"}
	}
	msg := strings.TrimSpace(err.Error())
	msg = strings.TrimPrefix(msg, "validation: ")
	path := extractJSONPointer(msg)
	return SchemaIssue{
		Path:    path,
		Field:   fieldPathFromPointer(path),
		Message: msg,
	}
}

func instancePointer(location []string) string {
	if len(location) == 0 {
		return ""
	}
	escaped := make([]string, len(location))
	for i, segment := range location {
		segment = strings.ReplaceAll(segment, "~", "~0")
		escaped[i] = strings.ReplaceAll(segment, "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}

func extractJSONPointer(message string) string {
	idx := strings.LastIndex(message, "#/")
	if idx < 0 {
		return ""
	}
	candidate := strings.TrimSpace(message[idx+1:])
	if end := strings.IndexAny(candidate, " '\"),"); end >= 0 {
		candidate = candidate[:end]
	}
	return candidate
}

// fieldPathFromPointer turns "/pets/0/id" into "pets[0].id".
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	var sb strings.Builder
	for _, part := range strings.Split(trimmed, "/") {
		segment := strings.ReplaceAll(part, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if isNumeric(segment) {
			sb.WriteString("[" + segment + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(segment)
	}
	return sb.String()
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
