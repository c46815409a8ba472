package crud

import (
	"database/sql"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// applyValues assigns extracted field values onto a model value, resolving
// column names through the parsed model metadata. Columns the model does not
// declare are skipped.
func (r *resource) applyValues(item reflect.Value, values map[string]any) error {
	for name, value := range values {
		field, ok := r.entry.Parsed.FieldsByDBName[name]
		if !ok {
			continue
		}
		target := item.Elem().FieldByIndex(field.StructField.Index)
		if errSet := setValue(target, value); errSet != nil {
			return fmt.Errorf("crud: field %q: %w", name, errSet)
		}
	}
	return nil
}

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
	timeType = reflect.TypeOf(time.Time{})
)

// setValue assigns an extracted value to a struct field, allocating through
// pointers and falling back to sql.Scanner for wrapper column types. A null
// is only accepted where the column can actually hold one.
func setValue(target reflect.Value, value any) error {
	if value == nil {
		switch target.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
			target.Set(reflect.Zero(target.Type()))
			return nil
		}
		return fmt.Errorf("column does not accept null")
	}
	if target.Kind() == reflect.Ptr {
		elem := reflect.New(target.Type().Elem())
		if errSet := setValue(elem.Elem(), value); errSet != nil {
			return errSet
		}
		target.Set(elem)
		return nil
	}

	switch v := value.(type) {
	case string:
		if target.Type() == uuidType {
			parsed, errParse := uuid.Parse(v)
			if errParse != nil {
				return fmt.Errorf("invalid uuid: %w", errParse)
			}
			target.Set(reflect.ValueOf(parsed))
			return nil
		}
		if target.Kind() == reflect.String {
			target.SetString(v)
			return nil
		}
	case int64:
		switch target.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			target.SetInt(v)
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if v < 0 {
				return fmt.Errorf("negative value for unsigned column")
			}
			target.SetUint(uint64(v))
			return nil
		case reflect.Float32, reflect.Float64:
			target.SetFloat(float64(v))
			return nil
		}
	case float64:
		switch target.Kind() {
		case reflect.Float32, reflect.Float64:
			target.SetFloat(v)
			return nil
		}
	case bool:
		if target.Kind() == reflect.Bool {
			target.SetBool(v)
			return nil
		}
	case time.Time:
		if target.Type() == timeType {
			target.Set(reflect.ValueOf(v))
			return nil
		}
	}

	if scanner, ok := target.Addr().Interface().(sql.Scanner); ok {
		return scanner.Scan(value)
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(target.Type()) {
		target.Set(rv)
		return nil
	}
	if rv.Type().ConvertibleTo(target.Type()) {
		target.Set(rv.Convert(target.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, target.Type())
}
