package spec

import (
	"strings"
	"testing"
	"time"
)

func testSchema() *Schema {
	return New("WidgetCreate", map[string]Field{
		"name":      {Kind: Text, Required: true},
		"email":     {Kind: Text, Format: FormatEmail},
		"age":       {Kind: Integer},
		"score":     {Kind: Decimal},
		"is_active": {Kind: Boolean, Default: true},
		"starts_at": {Kind: Timestamp},
	})
}

func TestExtract_OnlyProvidedFields(t *testing.T) {
	values, err := testSchema().Extract([]byte(`{"name":"a"}`))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(values) != 1 {
		t.Fatalf("expected 1 field, got %d: %v", len(values), values)
	}
	if values["name"] != "a" {
		t.Fatalf("expected name=a, got %v", values["name"])
	}
	if _, ok := values["is_active"]; ok {
		t.Fatalf("default must not be injected for absent field")
	}
}

func TestExtract_MissingRequired(t *testing.T) {
	_, err := testSchema().Extract([]byte(`{"age":3}`))
	if err == nil {
		t.Fatalf("expected error for missing required field")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Fatalf("expected error to name the field, got %v", err)
	}
}

func TestExtract_UnknownFieldIgnored(t *testing.T) {
	values, err := testSchema().Extract([]byte(`{"name":"a","bogus":1}`))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if _, ok := values["bogus"]; ok {
		t.Fatalf("undeclared field must be ignored")
	}
}

func TestExtract_NullValues(t *testing.T) {
	values, err := testSchema().Extract([]byte(`{"name":"a","age":null}`))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	value, ok := values["age"]
	if !ok || value != nil {
		t.Fatalf("expected explicit null for age, got %v (present=%v)", value, ok)
	}

	if _, err := testSchema().Extract([]byte(`{"name":null}`)); err == nil {
		t.Fatalf("expected error for null required field")
	}
}

func TestExtract_Coercion(t *testing.T) {
	values, err := testSchema().Extract([]byte(`{"name":"a","age":30,"score":1.5,"is_active":false,"starts_at":"2024-01-02T03:04:05Z"}`))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if values["age"] != int64(30) {
		t.Fatalf("expected age int64(30), got %T %v", values["age"], values["age"])
	}
	if values["score"] != 1.5 {
		t.Fatalf("expected score 1.5, got %v", values["score"])
	}
	if values["is_active"] != false {
		t.Fatalf("expected is_active false, got %v", values["is_active"])
	}
	startsAt, ok := values["starts_at"].(time.Time)
	if !ok || !startsAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("expected parsed timestamp, got %v", values["starts_at"])
	}
}

func TestExtract_TypeMismatches(t *testing.T) {
	cases := []string{
		`{"name":"a","age":"30"}`,
		`{"name":"a","age":3.5}`,
		`{"name":"a","is_active":"yes"}`,
		`{"name":"a","starts_at":"not-a-time"}`,
		`{"name":1}`,
	}
	for _, body := range cases {
		if _, err := testSchema().Extract([]byte(body)); err == nil {
			t.Fatalf("expected error for body %s", body)
		}
	}
}

func TestExtract_EmailFormat(t *testing.T) {
	if _, err := testSchema().Extract([]byte(`{"name":"a","email":"not-an-email"}`)); err == nil {
		t.Fatalf("expected error for invalid email")
	}
	values, err := testSchema().Extract([]byte(`{"name":"a","email":"a@example.com"}`))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if values["email"] != "a@example.com" {
		t.Fatalf("expected email passthrough, got %v", values["email"])
	}
}

func TestExtract_EmptyBody(t *testing.T) {
	update := New("WidgetUpdate", map[string]Field{"name": {Kind: Text}})
	values, err := update.Extract(nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("expected no values, got %v", values)
	}
}
