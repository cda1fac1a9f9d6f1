// Package validation checks decoded embedded objects and the quick reference
// file against JSON schemas.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("validation: schema invalid")
	ErrSchemaValidation = errors.New("validation: schema validation failed")
)

// Issue is one failed schema keyword. Pointer is the JSON pointer of the
// offending value inside the object, "" for the object itself.
type Issue struct {
	Pointer string
	Message string
}

func (i Issue) String() string {
	pointer := "#" + strings.TrimPrefix(strings.TrimSpace(i.Pointer), "#")
	if i.Message == "" {
		return pointer
	}
	return pointer + ": " + i.Message
}

// ShapeError reports an embedded object, or the quick reference document,
// that does not have the expected shape. It unwraps to ErrSchemaValidation.
type ShapeError struct {
	Object string
	Issues []Issue
	cause  error
}

func (e *ShapeError) Error() string {
	var b strings.Builder
	if e.Object != "" {
		b.WriteString(e.Object)
		b.WriteString(": ")
	}
	switch {
	case len(e.Issues) > 0:
		for i, issue := range e.Issues {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(issue.String())
		}
	case e.cause != nil:
		b.WriteString(e.cause.Error())
	default:
		b.WriteString("does not match its schema")
	}
	return b.String()
}

func (e *ShapeError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues lists what err reports. Errors that are not shape errors become a
// single issue carrying their message.
func Issues(err error) []Issue {
	var shapeErr *ShapeError
	var schemaErr *jsonschema.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &shapeErr):
		return shapeErr.Issues
	case errors.As(err, &schemaErr):
		return leafIssues(schemaErr)
	default:
		return []Issue{{Message: err.Error()}}
	}
}

// Compile normalises schema and compiles it. Schemas may be written as full
// JSON schema or in the shorthand {"fields": [{"name", "type", "required"}]}.
func Compile(schema map[string]any) (*jsonschema.Schema, error) {
	normalized := NormalizeSchema(schema)
	if normalized == nil {
		return nil, fmt.Errorf("%w: empty schema", ErrSchemaInvalid)
	}
	compiled, err := compileSchema(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return compiled, nil
}

// check validates a decoded JSON value against compiled. A nil schema
// accepts everything.
func check(compiled *jsonschema.Schema, object string, value any) error {
	if compiled == nil {
		return nil
	}
	err := compiled.Validate(value)
	if err == nil {
		return nil
	}
	return &ShapeError{Object: object, Issues: Issues(err), cause: err}
}

// NormalizeSchema converts the fields shorthand into a JSON schema. Full JSON
// schemas are copied as is.
func NormalizeSchema(schema map[string]any) map[string]any {
	if len(schema) == 0 {
		return nil
	}
	if isJSONSchema(schema) {
		return maps.Clone(schema)
	}
	fields, ok := schema["fields"].([]any)
	if !ok {
		return nil
	}
	properties := map[string]any{}
	required := []any{}
	for _, entry := range fields {
		field, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := field["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		switch {
		case field["schema"] != nil:
			properties[name] = field["schema"]
		case normalizeJSONType(field["type"]) != "":
			properties[name] = map[string]any{"type": normalizeJSONType(field["type"])}
		default:
			properties[name] = map[string]any{}
		}
		if flag, _ := field["required"].(bool); flag {
			required = append(required, name)
		}
	}
	if len(properties) == 0 {
		return nil
	}
	normalized := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if allowed, ok := schema["additionalProperties"].(bool); ok {
		normalized["additionalProperties"] = allowed
	}
	if len(required) > 0 {
		normalized["required"] = required
	}
	return normalized
}

func isJSONSchema(schema map[string]any) bool {
	for _, key := range []string{"$schema", "type", "properties", "oneOf", "anyOf", "allOf"} {
		if _, ok := schema[key]; ok {
			return true
		}
	}
	return false
}

func normalizeJSONType(value any) string {
	name, _ := value.(string)
	switch name = strings.ToLower(strings.TrimSpace(name)); name {
	case "string", "number", "integer", "boolean", "object", "array", "null":
		return name
	default:
		return ""
	}
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// leafIssues flattens the cause tree. Only leaves name a concrete keyword.
func leafIssues(root *jsonschema.ValidationError) []Issue {
	issues := []Issue{}
	pending := []*jsonschema.ValidationError{root}
	for len(pending) > 0 {
		node := pending[0]
		pending = pending[1:]
		if node == nil {
			continue
		}
		if len(node.Causes) > 0 {
			pending = append(append([]*jsonschema.ValidationError{}, node.Causes...), pending...)
			continue
		}
		issues = append(issues, Issue{
			Pointer: strings.TrimSpace(node.InstanceLocation),
			Message: strings.TrimSpace(node.Message),
		})
	}
	return issues
}
