package formvalidation

import (
	"sort"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// DescribeFunc documents a rule with the given parameter on an OpenAPI
// property schema. schema is the enclosing object and ref the property named
// name.
type DescribeFunc func(name string, param any, schema *openapi3.Schema, ref *openapi3.SchemaRef) error

// RuleOption configures a registered rule.
type RuleOption func(*rule)

// WithSchema sets how the rule is described by Schema.
func WithSchema(fn DescribeFunc) RuleOption {
	return func(r *rule) {
		r.describe = fn
	}
}

type rule struct {
	predicate Predicate
	message   Message
	describe  DescribeFunc
}

// Registry holds named rules. It is safe for concurrent use, but rules
// should be registered before validation starts.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]rule
}

// NewEmptyRegistry returns a registry without any rules.
func NewEmptyRegistry() *Registry {
	return &Registry{rules: map[string]rule{}}
}

// NewRegistry returns a registry holding the built-in rules.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.Register("required", required, Text("This field is required."), WithSchema(describeRequired))
	r.Register("number", number, Text("Please enter a valid number."), WithSchema(describeNumber))
	r.Register("min", minimum, Text("Please enter a value greater than or equal to {0}."), WithSchema(describeMin))
	r.Register("max", maximum, Text("Please enter a value less than or equal to {0}."), WithSchema(describeMax))
	r.Register("digits", digits, Text("Please enter only digits."), WithSchema(describePattern(digitsPattern)))
	r.Register("range", between, Text("Please enter a value between {0} and {1}."), WithSchema(describeRange))
	r.Register("date", date, Text("Please enter a valid date."), WithSchema(describeFormat("date-time")))
	r.Register("dateISO", dateISO, Text("Please enter a valid date (ISO)."), WithSchema(describeFormat("date")))
	r.Register("url", url, Text("Please enter a valid URL."), WithSchema(describeFormat("uri")))
	r.Register("email", email, Text("Please enter a valid email address."), WithSchema(describeFormat("email")))
	r.Register("minlength", minLength, Text("Please enter at least {0} characters."), WithSchema(describeMinLength))
	r.Register("maxlength", maxLength, Text("Please enter no more than {0} characters."), WithSchema(describeMaxLength))
	r.Register("rangelength", rangeLength, Text("Please enter a value between {0} and {1} characters long."), WithSchema(describeRangeLength))
	r.Register("in", in, Text("Please enter one of the allowed values."), WithSchema(describeIn))
	r.Register("equalTo", equalTo, Text("Please enter the same value again."))
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when no registry is given.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a rule to the process-wide registry. See Registry.Register.
func Register(name string, predicate Predicate, message Message, opts ...RuleOption) {
	defaultRegistry.Register(name, predicate, message, opts...)
}

// Register stores predicate and its default message under name, replacing
// any rule already registered under that name. It panics on an empty name or
// a nil predicate.
func (r *Registry) Register(name string, predicate Predicate, message Message, opts ...RuleOption) {
	if name == "" || name == messagesKey {
		panic("formvalidation: invalid rule name " + `"` + name + `"`)
	}
	if predicate == nil {
		panic("formvalidation: nil predicate for rule " + name)
	}

	ru := rule{predicate: predicate, message: message}
	for _, opt := range opts {
		opt(&ru)
	}

	r.mu.Lock()
	r.rules[name] = ru
	r.mu.Unlock()
}

func (r *Registry) lookup(name string) (rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ru, ok := r.rules[name]
	return ru, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Names returns the registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Message returns the default message of name formatted with param, or ""
// when the rule is unknown or has no default message.
func (r *Registry) Message(name string, param any) string {
	ru, ok := r.lookup(name)
	if !ok || ru.message == nil {
		return ""
	}
	return ru.message(param)
}

// Optional reports whether target is empty, that is whether the required
// rule would fail on it. Format rules pass on optional targets.
func (r *Registry) Optional(target Holder) bool {
	value := Unwrap(target.Current())
	ru, ok := r.lookup("required")
	if !ok {
		return !present(value)
	}
	return !ru.predicate(&Context{registry: r}, value, target, true)
}

// Context is passed to every predicate.
type Context struct {
	registry *Registry
}

// Registry returns the registry the predicate runs from.
func (c *Context) Registry() *Registry {
	return c.registry
}

// Optional reports whether target is empty. Format rules start with
//
//	if ctx.Optional(target) {
//		return true
//	}
func (c *Context) Optional(target Holder) bool {
	return c.registry.Optional(target)
}
