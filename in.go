package formvalidation

import (
	"fmt"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// in passes when the value is one of the elements of param, a slice. Values
// that differ only in type, such as "5" and 5, match by their printed form.
func in(ctx *Context, value any, target Holder, param any) bool {
	if ctx.Optional(target) {
		return true
	}
	values := formatArgs(param)
	if isComparable(value) && !validation.IsEmpty(value) && validation.In(comparableOnly(values)...).Validate(value) == nil {
		return true
	}
	want := fmt.Sprint(value)
	for _, v := range values {
		if fmt.Sprint(v) == want {
			return true
		}
	}
	return false
}

// equalTo passes when the value equals param, usually another holder.
func equalTo(ctx *Context, value any, target Holder, param any) bool {
	if ctx.Optional(target) {
		return true
	}
	if reflect.DeepEqual(value, param) {
		return true
	}
	return fmt.Sprint(value) == fmt.Sprint(param)
}

func isComparable(v any) bool {
	return v != nil && reflect.TypeOf(v).Comparable()
}

func comparableOnly(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if isComparable(v) {
			out = append(out, v)
		}
	}
	return out
}

func describeIn(_ string, param any, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Enum = formatArgs(param)
	return nil
}
