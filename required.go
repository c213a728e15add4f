package formvalidation

import (
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// required passes unless the value is nil or the empty string. Zero numbers
// and false are present.
func required(_ *Context, value any, _ Holder, _ any) bool {
	return present(value)
}

func present(value any) bool {
	value, isNil := validation.Indirect(value)
	if isNil {
		return false
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() != reflect.String || rv.Len() > 0
}

func describeRequired(name string, _ any, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	schema.Required = append(schema.Required, name)
	if ref.Value.Type.Is(openapi3.TypeString) && ref.Value.MinLength == 0 {
		ref.Value.MinLength = 1
	}
	return nil
}
