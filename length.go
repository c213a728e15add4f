package formvalidation

import (
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func minLength(ctx *Context, value any, target Holder, param any) bool {
	if ctx.Optional(target) {
		return true
	}
	n, ok := length(value)
	lo, err := getInt(param)
	return ok && err == nil && n >= lo
}

func maxLength(ctx *Context, value any, target Holder, param any) bool {
	if ctx.Optional(target) {
		return true
	}
	n, ok := length(value)
	hi, err := getInt(param)
	return ok && err == nil && n <= hi
}

func rangeLength(ctx *Context, value any, target Holder, param any) bool {
	if ctx.Optional(target) {
		return true
	}
	n, ok := length(value)
	if !ok {
		return false
	}
	lo, hi, err := intBounds(param)
	return err == nil && n >= lo && n <= hi
}

// length is the rune count of a string. Other values have no length.
func length(value any) (int, bool) {
	value, isNil := validation.Indirect(value)
	if isNil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.String {
		return 0, false
	}
	return utf8.RuneCountInString(rv.String()), true
}

func getInt(unk any) (int, error) {
	f, err := getFloat(unk)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < 0 {
		return 0, fmt.Errorf("length bound %v must be a non-negative integer", unk)
	}
	return int(f), nil
}

func intBounds(param any) (lo, hi int, err error) {
	l, h, err := bounds(param)
	if err != nil {
		return 0, 0, err
	}
	if lo, err = getInt(l); err != nil {
		return 0, 0, err
	}
	if hi, err = getInt(h); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func describeMinLength(_ string, param any, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	lo, err := getInt(param)
	if err != nil {
		return err
	}
	ref.Value.MinLength = uint64(lo)
	return nil
}

func describeMaxLength(_ string, param any, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	hi, err := getInt(param)
	if err != nil {
		return err
	}
	u := uint64(hi)
	ref.Value.MaxLength = &u
	return nil
}

func describeRangeLength(_ string, param any, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	lo, hi, err := intBounds(param)
	if err != nil {
		return err
	}
	u := uint64(hi)
	ref.Value.MinLength = uint64(lo)
	ref.Value.MaxLength = &u
	return nil
}
