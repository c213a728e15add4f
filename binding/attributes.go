package binding

import (
	"strconv"
	"strings"

	fv "github.com/Gobd/formvalidation"
)

type attribute struct {
	attr, rule, message string
}

var validationAttributes = []attribute{
	{attr: "required", rule: "required", message: "data-val-required"},
	{attr: "min", rule: "min", message: "data-val-min"},
	{attr: "max", rule: "max", message: "data-val-max"},
	{attr: "maxlength", rule: "maxlength", message: "data-val-maxlength"},
}

// FromAttributes returns the rules declared by attrs. A required attribute
// is always active whatever its value; numeric values become numbers.
// A data-val-<rule> attribute overrides the message of a declared rule.
func FromAttributes(attrs map[string]string) *fv.RuleSet {
	rs := fv.NewRuleSet()
	for _, a := range validationAttributes {
		value, ok := attrs[a.attr]
		if !ok {
			continue
		}
		if a.rule == "required" {
			rs.Add(a.rule, true)
		} else {
			rs.Add(a.rule, parseNumber(value))
		}
		if msg, ok := attrs[a.message]; ok {
			rs.Message(a.rule, msg)
		}
	}
	return rs
}

func parseNumber(s string) any {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
