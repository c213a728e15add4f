package formvalidation

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// DescribeField adds the property name to the object schema parent, a
// string property unless parent already has one, and describes the rules of
// rs on it.
func (r *Registry) DescribeField(name string, rs *RuleSet, parent *openapi3.Schema) error {
	if parent.Properties == nil {
		parent.Properties = openapi3.Schemas{}
	}
	ref, ok := parent.Properties[name]
	if !ok || ref == nil || ref.Value == nil {
		ref = openapi3.NewSchemaRef("", openapi3.NewStringSchema())
		parent.Properties[name] = ref
	}
	return r.Describe(name, rs, parent, ref)
}

// Describe documents each active rule of rs on ref, the property name of
// schema. Rules registered without a describer are skipped; message
// overrides are appended to the description.
func (r *Registry) Describe(name string, rs *RuleSet, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	for _, rule := range rs.names {
		param := Unwrap(rs.params[rule])
		if disabled, ok := param.(bool); ok && !disabled {
			continue
		}
		ru, ok := r.lookup(rule)
		if !ok {
			return &UnknownRuleError{Name: rule}
		}
		if ru.describe == nil {
			continue
		}
		if err := ru.describe(name, param, schema, ref); err != nil {
			return fmt.Errorf("describe %s of %s: %w", rule, name, err)
		}
		if msg := rs.override(rule); msg != nil {
			appendDescription(ref.Value, msg(param))
		}
	}
	return nil
}
