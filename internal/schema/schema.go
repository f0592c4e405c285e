// Package schema describes the structured output requested from the
// extraction provider as a list of fields and renders it as JSON Schema.
package schema

import (
	"encoding/json"
	"fmt"
)

type Type string

const String Type = "string"

type Field struct {
	Name        string
	Type        Type
	Description string
	Optional    bool
}

// Object is a named, described object in the rendered schema.
type Object struct {
	Fields []Field
}

// JSON renders the object as a JSON Schema object definition. Property order
// follows Fields.
func (o Object) JSON() map[string]any {
	properties := make(orderedProperties, 0, len(o.Fields))
	required := []string{}
	for _, f := range o.Fields {
		prop := map[string]any{"type": string(f.Type)}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		if f.Optional {
			prop["default"] = ""
		} else {
			required = append(required, f.Name)
		}
		properties = append(properties, property{name: f.Name, value: prop})
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// ArrayOf wraps item in a top-level object holding one array property.
func ArrayOf(name, description string, item Object) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": orderedProperties{{
			name: name,
			value: map[string]any{
				"type":        "array",
				"description": description,
				"items":       item.JSON(),
			},
		}},
		"required": []string{name},
	}
}

type property struct {
	name  string
	value any
}

// orderedProperties marshals as a JSON object keeping insertion order, so the
// schema the provider sees matches the declared field order.
type orderedProperties []property

func (p orderedProperties) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, prop := range p {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(prop.name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(prop.value)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", prop.name, err)
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, value...)
	}
	return append(buf, '}'), nil
}
