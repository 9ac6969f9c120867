// Package utils provides reflection helpers shared by the frame loaders.
package utils

import (
	"fmt"
	"reflect"
	"strings"
)

// fieldKey returns the column name for a struct field: the json tag when
// present (minus options), otherwise the field name.
func fieldKey(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// StructFieldNames returns the exported field names of a struct type (or
// pointer to struct), in declaration order, honoring json tags. This is the
// column order used when loading structs into a frame.
func StructFieldNames(record any) ([]string, error) {
	typ := reflect.TypeOf(record)
	if typ == nil {
		return nil, fmt.Errorf("input record cannot be nil")
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input record must be a struct or a pointer to a struct, got %s", typ.Kind())
	}
	var names []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		names = append(names, fieldKey(field))
	}
	return names, nil
}

// StructToMap converts a struct (or pointer to struct) into a map[string]any
// keyed like StructFieldNames. Primitive values keep their Go types: ints
// stay ints, floats stay floats, so downstream type inference stays exact.
// Non-primitive fields are rendered with fmt.
func StructToMap(record any) (map[string]any, error) {
	val := reflect.ValueOf(record)
	if !val.IsValid() {
		return nil, fmt.Errorf("input record cannot be nil")
	}
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("input record cannot be a nil pointer to a struct")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input record must be a struct or a pointer to a struct, got %s", val.Kind())
	}

	typ := val.Type()
	out := make(map[string]any, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := val.Field(i)
		switch fv.Kind() {
		case reflect.Bool:
			out[fieldKey(field)] = fv.Bool()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out[fieldKey(field)] = int(fv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			out[fieldKey(field)] = int(fv.Uint())
		case reflect.Float32, reflect.Float64:
			out[fieldKey(field)] = fv.Float()
		case reflect.String:
			out[fieldKey(field)] = fv.String()
		default:
			out[fieldKey(field)] = fmt.Sprintf("%v", fv.Interface())
		}
	}
	return out, nil
}
