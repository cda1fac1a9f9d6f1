package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

var ErrNotObject = errors.New("validation: payload is not a JSON object")

// Field is one top level member of a JSON object, kept undecoded.
type Field struct {
	Name string
	Raw  json.RawMessage
}

// ObjectFields splits a JSON object into its members in source order.
// Duplicate names are kept; callers decide which wins.
func ObjectFields(raw []byte) ([]Field, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	fields := []Field{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		name, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("validation: unexpected token %v", token)
		}
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: name, Raw: value})
	}
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, errors.New("validation: trailing data after object")
	}
	return fields, nil
}

// Attributes decodes a JSON object into ordered attributes. A repeated name
// keeps its first position and its last value, as encoding/json does.
func Attributes(raw []byte) ([]interfaces.Attribute, error) {
	fields, err := ObjectFields(raw)
	if err != nil {
		return nil, err
	}
	attributes := make([]interfaces.Attribute, 0, len(fields))
	index := make(map[string]int, len(fields))
	for _, field := range fields {
		var value any
		if err := json.Unmarshal(field.Raw, &value); err != nil {
			return nil, err
		}
		if i, ok := index[field.Name]; ok {
			attributes[i].Value = value
			continue
		}
		index[field.Name] = len(attributes)
		attributes = append(attributes, interfaces.Attribute{Name: field.Name, Value: value})
	}
	return attributes, nil
}
