// Package schema renders JSON schemas for the configuration structs so editors
// and the `schema` command can validate YAML and JSON files before loading.
package schema

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
)

// ToJSONSchema converts a struct to a JSON schema
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.FieldNameTag = "json"
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// SecretFields returns the json names of the fields tagged `secret:"true"`,
// including the ones of embedded structs. Secret fields are read from the
// environment when the file leaves them empty.
func SecretFields[T any](t T) []string {
	return secretFields(reflect.TypeOf(t))
}

func secretFields(typ reflect.Type) []string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Struct {
		return nil
	}

	var fields []string

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous {
			fields = append(fields, secretFields(field.Type)...)
			continue
		}

		if field.Tag.Get("secret") != "true" {
			continue
		}

		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" {
			name = field.Name
		}

		fields = append(fields, name)
	}

	return fields
}
