package crud

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// serialize converts a model value to a response map, one entry per column.
// Opaque identifiers render as strings and timestamps as RFC 3339 text (null
// when absent); everything else passes through unchanged.
func (r *resource) serialize(item reflect.Value) map[string]any {
	out := make(map[string]any, len(r.entry.Parsed.Fields))
	for _, field := range r.entry.Parsed.Fields {
		if field.DBName == "" {
			continue
		}
		out[field.DBName] = renderValue(item.Elem().FieldByIndex(field.StructField.Index))
	}
	return out
}

// renderValue converts a single column value to its response representation.
func renderValue(v reflect.Value) any {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch value := v.Interface().(type) {
	case uuid.UUID:
		return value.String()
	case time.Time:
		if value.IsZero() {
			return nil
		}
		return value.UTC().Format(time.RFC3339Nano)
	case datatypes.JSON:
		if len(value) == 0 {
			return nil
		}
		if json.Valid(value) {
			return json.RawMessage(value)
		}
		return string(value)
	default:
		return value
	}
}
