package validation

import (
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var imageSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type":    map[string]any{"type": "string"},
		"src":     map[string]any{"type": "string", "minLength": 1},
		"caption": map[string]any{"type": "string"},
		"float":   map[string]any{"type": "string"},
	},
	"required": []any{"src"},
}

var stringOrList = map[string]any{
	"oneOf": []any{
		map[string]any{"type": "string"},
		map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

// objectSchemas holds the shapes of the typed embedded objects. Reference
// listings are checked by the references package instead.
var objectSchemas = map[string]map[string]any{
	"info": {
		"additionalProperties": true,
		"fields": []any{
			map[string]any{"name": "type", "type": "string", "required": true},
			map[string]any{"name": "name", "type": "string"},
			map[string]any{"name": "born", "type": "string"},
			map[string]any{"name": "died", "type": "string"},
			map[string]any{"name": "subtitle", "type": "string"},
			map[string]any{"name": "article-type", "type": "string"},
			map[string]any{"name": "images", "schema": map[string]any{"type": "array", "items": imageSchema}},
		},
	},
	"infobox": {
		"additionalProperties": true,
		"fields": []any{
			map[string]any{"name": "type", "type": "string", "required": true},
			map[string]any{"name": "image", "type": "string"},
			map[string]any{"name": "image-caption", "type": "string"},
			map[string]any{"name": "entries", "schema": map[string]any{
				"type":                 "object",
				"additionalProperties": stringOrList,
			}},
		},
	},
	"img": imageSchema,
	"gallery": {
		"additionalProperties": true,
		"fields": []any{
			map[string]any{"name": "type", "type": "string", "required": true},
			map[string]any{"name": "images", "required": true, "schema": map[string]any{
				"type":  "array",
				"items": imageSchema,
			}},
		},
	},
}

var librarySchema = map[string]any{
	"type": "object",
	"additionalProperties": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"source-type": map[string]any{"type": "string"},
		},
		"required": []any{"source-type"},
	},
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compiledLib *jsonschema.Schema
	compileErr  error
)

func schemas() (map[string]*jsonschema.Schema, *jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*jsonschema.Schema, len(objectSchemas))
		for name, schema := range objectSchemas {
			c, err := Compile(schema)
			if err != nil {
				compileErr = fmt.Errorf("%s: %w", name, err)
				return
			}
			compiled[name] = c
		}
		compiledLib, compileErr = Compile(librarySchema)
	})
	return compiled, compiledLib, compileErr
}

// HasObjectSchema reports whether objectType has a registered shape.
func HasObjectSchema(objectType string) bool {
	_, ok := objectSchemas[objectType]
	return ok
}

// ValidateObject checks the decoded fields of an embedded object against the
// shape registered for objectType. Unregistered types pass.
func ValidateObject(objectType string, fields map[string]any) error {
	byType, _, err := schemas()
	if err != nil {
		return err
	}
	schema, ok := byType[objectType]
	if !ok {
		return nil
	}
	return check(schema, objectType+" object", fields)
}

// ValidateLibrary checks the decoded quick reference document: an object of
// listings, each with a string source-type.
func ValidateLibrary(document any) error {
	_, lib, err := schemas()
	if err != nil {
		return err
	}
	return check(lib, "quick references", document)
}
