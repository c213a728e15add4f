package formvalidation

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func number(ctx *Context, value any, target Holder, _ any) bool {
	if ctx.Optional(target) {
		return true
	}
	_, ok := toFloat(value)
	return ok
}

func minimum(ctx *Context, value any, target Holder, param any) bool {
	if ctx.Optional(target) {
		return true
	}
	v, ok := toFloat(value)
	if !ok {
		return false
	}
	lo, ok := toFloat(param)
	return ok && v >= lo
}

func maximum(ctx *Context, value any, target Holder, param any) bool {
	if ctx.Optional(target) {
		return true
	}
	v, ok := toFloat(value)
	if !ok {
		return false
	}
	hi, ok := toFloat(param)
	return ok && v <= hi
}

func between(ctx *Context, value any, target Holder, param any) bool {
	if ctx.Optional(target) {
		return true
	}
	v, ok := toFloat(value)
	if !ok {
		return false
	}
	lo, hi, err := bounds(param)
	if err != nil {
		return false
	}
	l, ok := toFloat(lo)
	if !ok {
		return false
	}
	h, ok := toFloat(hi)
	return ok && v >= l && v <= h
}

// toFloat coerces numeric kinds and numeric strings to a finite float64.
// Booleans are not numbers.
func toFloat(unk any) (float64, bool) {
	unk, isNil := validation.Indirect(unk)
	if isNil {
		return 0, false
	}

	var f float64
	rv := reflect.ValueOf(unk)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		f = float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f = rv.Float()
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		if s == "" || !govalidator.IsFloat(s) {
			return 0, false
		}
		var err error
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	return f, !math.IsNaN(f) && !math.IsInf(f, 0)
}

// bounds extracts min and max by name from Bounds or a struct or map with
// min and max fields or keys in any case, or by position from a two element
// slice or array.
func bounds(param any) (lo, hi any, err error) {
	if b, ok := param.(Bounds); ok {
		return b.Min, b.Max, nil
	}
	if b, ok := param.(*Bounds); ok && b != nil {
		return b.Min, b.Max, nil
	}
	rv := reflect.Indirect(reflect.ValueOf(param))
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		l, h := minMax(rv)
		if l.IsValid() && h.IsValid() {
			return valueOf(l), valueOf(h), nil
		}
	case reflect.Slice, reflect.Array:
		if rv.Len() == 2 {
			return rv.Index(0).Interface(), rv.Index(1).Interface(), nil
		}
	}
	return nil, nil, fmt.Errorf("cannot read bounds from %T", param)
}

func describeNumber(_ string, _ any, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if ref.Value.Type.Is(openapi3.TypeString) {
		ref.Value.Format = "number"
		return nil
	}
	ref.Value.Type = &openapi3.Types{openapi3.TypeNumber}
	return nil
}

func describeMin(_ string, param any, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	f, err := getFloat(param)
	if err != nil {
		return err
	}
	ref.Value.Min = &f
	return nil
}

func describeMax(_ string, param any, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	f, err := getFloat(param)
	if err != nil {
		return err
	}
	ref.Value.Max = &f
	return nil
}

func describeRange(_ string, param any, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	lo, hi, err := bounds(param)
	if err != nil {
		return err
	}
	flo, err := getFloat(lo)
	if err != nil {
		return err
	}
	fhi, err := getFloat(hi)
	if err != nil {
		return err
	}
	ref.Value.Min = &flo
	ref.Value.Max = &fhi
	return nil
}

func getFloat(unk any) (float64, error) {
	f, ok := toFloat(unk)
	if !ok {
		return 0, fmt.Errorf("cannot convert %v to float64", unk)
	}
	return f, nil
}
