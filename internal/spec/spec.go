// Package spec defines validation schemas: declarative field shapes used to
// validate incoming request payloads and to describe outgoing rows. Schemas
// are plain values, so they can be hand-written next to a model or
// synthesized from column metadata at startup.
package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
)

// Kind is the semantic type of a schema field.
type Kind string

// Semantic field kinds.
const (
	Text      Kind = "text"
	Integer   Kind = "integer"
	Decimal   Kind = "decimal"
	Boolean   Kind = "boolean"
	Timestamp Kind = "timestamp"
)

// FormatEmail marks a text field that must contain an email address.
const FormatEmail = "email"

// Field describes a single schema field.
type Field struct {
	Kind     Kind   // Semantic type of the field.
	Required bool   // Whether the field must be present in a payload.
	Default  any    // Declared default, informational only; extraction never injects it.
	Format   string // Optional format constraint (e.g. FormatEmail).
}

// Schema is a named set of field specifications.
type Schema struct {
	Name   string           // Declared schema name, used for role bucketing.
	Fields map[string]Field // Field specifications keyed by column name.
}

// New constructs a schema from a name and field map.
func New(name string, fields map[string]Field) *Schema {
	return &Schema{Name: name, Fields: fields}
}

var formatChecker = validator.New()

// Extract validates a JSON payload against the schema and returns only the
// explicitly-provided fields, coerced to their Go representations. Keys not
// declared in the schema are ignored. A field absent from the payload is
// absent from the result, even when it declares a default.
func (s *Schema) Extract(raw []byte) (map[string]any, error) {
	provided := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if errUnmarshal := json.Unmarshal(raw, &provided); errUnmarshal != nil {
			return nil, fmt.Errorf("spec: invalid json body: %w", errUnmarshal)
		}
	}

	values := make(map[string]any, len(provided))
	for name, field := range s.Fields {
		rawValue, ok := provided[name]
		if !ok {
			if field.Required {
				return nil, fmt.Errorf("spec: missing required field %q", name)
			}
			continue
		}
		value, errCoerce := coerce(name, field, rawValue)
		if errCoerce != nil {
			return nil, errCoerce
		}
		values[name] = value
	}
	return values, nil
}

// FieldNames returns the declared field names in sorted order.
func (s *Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// coerce converts a raw JSON value to the Go representation of the field kind.
func coerce(name string, field Field, raw json.RawMessage) (any, error) {
	if string(bytes.TrimSpace(raw)) == "null" {
		if field.Required {
			return nil, fmt.Errorf("spec: field %q must not be null", name)
		}
		return nil, nil
	}

	switch field.Kind {
	case Integer:
		var number json.Number
		if err := strictUnmarshal(raw, &number); err != nil {
			return nil, fmt.Errorf("spec: field %q: expected integer", name)
		}
		value, errInt := number.Int64()
		if errInt != nil {
			return nil, fmt.Errorf("spec: field %q: expected integer", name)
		}
		return value, nil
	case Decimal:
		var number json.Number
		if err := strictUnmarshal(raw, &number); err != nil {
			return nil, fmt.Errorf("spec: field %q: expected number", name)
		}
		value, errFloat := number.Float64()
		if errFloat != nil {
			return nil, fmt.Errorf("spec: field %q: expected number", name)
		}
		return value, nil
	case Boolean:
		var value bool
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("spec: field %q: expected boolean", name)
		}
		return value, nil
	case Timestamp:
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("spec: field %q: expected timestamp string", name)
		}
		value, errParse := time.Parse(time.RFC3339, text)
		if errParse != nil {
			return nil, fmt.Errorf("spec: field %q: invalid timestamp: %w", name, errParse)
		}
		return value, nil
	default: // Text and any unrecognized kind.
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("spec: field %q: expected string", name)
		}
		if field.Format != "" {
			if errFormat := formatChecker.Var(text, field.Format); errFormat != nil {
				return nil, fmt.Errorf("spec: field %q: invalid %s", name, field.Format)
			}
		}
		return text, nil
	}
}

// strictUnmarshal decodes a JSON number without accepting quoted values.
func strictUnmarshal(raw json.RawMessage, out *json.Number) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return fmt.Errorf("quoted number")
	}
	return json.Unmarshal(trimmed, out)
}
