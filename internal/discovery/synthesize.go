package discovery

import (
	"strings"

	"gorm.io/gorm/schema"

	"github.com/autocrud/autocrud/internal/spec"
)

// ColumnSpec is the column metadata consumed by schema synthesis. It is
// derived from the parsed model and not retained afterwards.
type ColumnSpec struct {
	Name       string // Column name.
	TypeName   string // Rendered column type, e.g. "varchar(255)".
	Nullable   bool   // Whether the column accepts NULL.
	PrimaryKey bool   // Whether the column is part of the primary key.
	HasDefault bool   // Whether the column carries a declared or automatic default.
	Default    any    // Declared default value, when known.
}

// typeKinds maps rendered column type names to semantic kinds. Matching is a
// case-insensitive substring test in declared order; unmatched types fall
// back to text.
var typeKinds = []struct {
	marker string
	kind   spec.Kind
}{
	{"VARCHAR", spec.Text},
	{"TEXT", spec.Text},
	{"STRING", spec.Text},
	{"INTEGER", spec.Integer},
	{"BIGINT", spec.Integer},
	{"FLOAT", spec.Decimal},
	{"REAL", spec.Decimal},
	{"BOOLEAN", spec.Boolean},
	{"DATETIME", spec.Timestamp},
	{"UUID", spec.Text},
}

// Synthesize derives a full create/update/response schema set from a model's
// columns. It always produces all three roles; callers replace any partial
// discovered set with the result rather than merging.
func Synthesize(entry ModelEntry) SchemaSet {
	columns := Columns(entry)
	title := titleCase(entry.Key)

	responseFields := map[string]spec.Field{}
	createFields := map[string]spec.Field{}
	updateFields := map[string]spec.Field{}

	for _, col := range columns {
		kind := kindOf(col.TypeName)

		switch {
		case col.PrimaryKey:
			// Primary keys serialize as opaque string identifiers.
			responseFields[col.Name] = spec.Field{Kind: spec.Text, Required: true}
		case col.Nullable:
			responseFields[col.Name] = spec.Field{Kind: kind}
		default:
			responseFields[col.Name] = spec.Field{Kind: kind, Required: true}
		}

		if !col.PrimaryKey && !isAutoColumn(col) {
			if col.Nullable || col.HasDefault {
				createFields[col.Name] = spec.Field{Kind: kind, Default: col.Default}
			} else {
				createFields[col.Name] = spec.Field{Kind: kind, Required: true}
			}
		}

		if !col.PrimaryKey {
			updateFields[col.Name] = spec.Field{Kind: kind}
		}
	}

	return SchemaSet{
		RoleResponse: spec.New(title+"Response", responseFields),
		RoleCreate:   spec.New(title+"Create", createFields),
		RoleUpdate:   spec.New(title+"Update", updateFields),
	}
}

// Columns renders the model's parsed fields as column specs.
func Columns(entry ModelEntry) []ColumnSpec {
	if entry.Parsed == nil {
		return nil
	}
	columns := make([]ColumnSpec, 0, len(entry.Parsed.Fields))
	for _, field := range entry.Parsed.Fields {
		if field.DBName == "" {
			continue
		}
		columns = append(columns, ColumnSpec{
			Name:       field.DBName,
			TypeName:   typeName(field),
			Nullable:   !field.PrimaryKey && !field.NotNull,
			PrimaryKey: field.PrimaryKey,
			HasDefault: field.HasDefaultValue || field.AutoCreateTime != 0 || field.AutoUpdateTime != 0,
			Default:    defaultOf(field),
		})
	}
	return columns
}

// isAutoColumn reports whether the column is populated by the system rather
// than the caller: primary key, defaulted, or conventional timestamp.
func isAutoColumn(col ColumnSpec) bool {
	lower := strings.ToLower(col.Name)
	return col.PrimaryKey ||
		col.HasDefault ||
		strings.Contains(lower, "created_at") ||
		strings.Contains(lower, "updated_at")
}

// kindOf maps a rendered column type name to its semantic kind.
func kindOf(columnType string) spec.Kind {
	upper := strings.ToUpper(columnType)
	for _, entry := range typeKinds {
		if strings.Contains(upper, entry.marker) {
			return entry.kind
		}
	}
	return spec.Text
}

// typeName renders a column type name from the field definition, preferring
// an explicit type tag over the generic data type.
func typeName(field *schema.Field) string {
	if explicit, ok := field.TagSettings["TYPE"]; ok && explicit != "" {
		return explicit
	}
	switch field.DataType {
	case schema.String:
		return "TEXT"
	case schema.Int, schema.Uint:
		return "INTEGER"
	case schema.Float:
		return "FLOAT"
	case schema.Bool:
		return "BOOLEAN"
	case schema.Time:
		return "DATETIME"
	case schema.Bytes:
		return "BLOB"
	default:
		return string(field.DataType)
	}
}

// defaultOf returns the declared default value of a field, when present.
func defaultOf(field *schema.Field) any {
	if !field.HasDefaultValue {
		return nil
	}
	if field.DefaultValueInterface != nil {
		return field.DefaultValueInterface
	}
	if field.DefaultValue != "" {
		return field.DefaultValue
	}
	return nil
}

// titleCase capitalizes the first letter of a registry key.
func titleCase(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
