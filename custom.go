package formvalidation

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RegisterRule registers an ozzo-validation rule under name. Like the
// built-in format rules it passes on empty values. desc is both the default
// message and the schema description.
//
//	reg.RegisterRule("uuid", is.UUID, "Please enter a valid identifier.")
func (r *Registry) RegisterRule(name string, rule validation.Rule, desc string, opts ...RuleOption) {
	var msg Message
	if desc != "" {
		msg = Text(desc)
	}
	opts = append([]RuleOption{WithSchema(describeText(desc))}, opts...)
	r.Register(name, func(ctx *Context, value any, target Holder, _ any) bool {
		if ctx.Optional(target) {
			return true
		}
		return rule.Validate(value) == nil
	}, msg, opts...)
}

// RegisterFunc registers f as a rule under name. See RegisterRule.
func (r *Registry) RegisterFunc(name string, f func(value any) error, desc string, opts ...RuleOption) {
	r.RegisterRule(name, validation.By(f), desc, opts...)
}

// RegisterRule registers an ozzo-validation rule in the default registry.
func RegisterRule(name string, rule validation.Rule, desc string, opts ...RuleOption) {
	defaultRegistry.RegisterRule(name, rule, desc, opts...)
}

// RegisterFunc registers f as a rule in the default registry.
func RegisterFunc(name string, f func(value any) error, desc string, opts ...RuleOption) {
	defaultRegistry.RegisterFunc(name, f, desc, opts...)
}

func describeText(desc string) DescribeFunc {
	return func(_ string, _ any, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
		appendDescription(ref.Value, desc)
		return nil
	}
}
