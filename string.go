package formvalidation

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const digitsPattern = `^[0-9]+$`

var urlSchemes = []string{"http://", "https://", "ftp://"}

func digits(ctx *Context, value any, target Holder, _ any) bool {
	if ctx.Optional(target) {
		return true
	}
	s, ok := text(value)
	return ok && s != "" && is.Digit.Validate(s) == nil
}

func url(ctx *Context, value any, target Holder, _ any) bool {
	if ctx.Optional(target) {
		return true
	}
	s, ok := text(value)
	if !ok || !hasScheme(s) {
		return false
	}
	return govalidator.IsURL(s)
}

func hasScheme(s string) bool {
	lower := strings.ToLower(s)
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(lower, scheme) && len(lower) > len(scheme) {
			return true
		}
	}
	return false
}

func email(ctx *Context, value any, target Holder, _ any) bool {
	if ctx.Optional(target) {
		return true
	}
	s, ok := text(value)
	return ok && s != "" && is.EmailFormat.Validate(s) == nil
}

// text returns the textual form of strings and numbers.
func text(value any) (string, bool) {
	value, isNil := validation.Indirect(value)
	if isNil {
		return "", false
	}
	if b, ok := value.([]byte); ok {
		return string(b), true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	}
	return "", false
}

func describePattern(pattern string) DescribeFunc {
	return func(_ string, _ any, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
		ref.Value.Pattern = pattern
		return nil
	}
}

func describeFormat(format string) DescribeFunc {
	return func(_ string, _ any, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
		ref.Value.Format = format
		return nil
	}
}

// appendDescription adds desc to the schema description, space separated.
func appendDescription(s *openapi3.Schema, desc string) {
	if desc == "" {
		return
	}
	if s.Description != "" && !strings.HasSuffix(s.Description, " ") {
		s.Description += " "
	}
	s.Description += desc
}
