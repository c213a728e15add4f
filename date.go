package formvalidation

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayouts are the layouts the date rule accepts for string values, tried
// in order.
var DateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
}

var dateISOPattern = regexp.MustCompile(`^\d{4}[/-]\d{2}[/-]\d{2}$`)

// date passes for time values, numbers (milliseconds since the epoch) and
// strings in one of DateLayouts.
func date(ctx *Context, value any, target Holder, _ any) bool {
	if ctx.Optional(target) {
		return true
	}
	value, _ = validation.Indirect(value)
	if t, ok := value.(time.Time); ok {
		return !t.IsZero()
	}
	if _, ok := toFloat(value); ok {
		return true
	}
	s, ok := text(value)
	if !ok {
		return false
	}
	for _, layout := range DateLayouts {
		if validation.Date(layout).Validate(s) == nil {
			return true
		}
	}
	return false
}

func dateISO(ctx *Context, value any, target Holder, _ any) bool {
	if ctx.Optional(target) {
		return true
	}
	s, ok := text(value)
	return ok && s != "" && validation.Match(dateISOPattern).Validate(s) == nil
}
