package formvalidation

type (
	// Predicate reports whether value satisfies a rule. value is the target's
	// unwrapped current value and param the rule's unwrapped parameter.
	Predicate func(ctx *Context, value any, target Holder, param any) bool

	// Message produces the error text of a failed rule from its parameter.
	// A nil Message is an absent message: the failure is still recorded, with
	// empty text.
	Message func(param any) string

	// Subscribable reports changes to subscribers.
	Subscribable interface {
		Subscribe(fn func()) (cancel func())
	}

	// Reactive is a readable value that reports changes.
	Reactive interface {
		Subscribable
		Current() any
	}

	// Holder is a writable reactive value that can carry validation. The
	// extension slot is what distinguishes a writable holder from a read-only
	// derived value; see the observable package for implementations.
	Holder interface {
		Reactive
		Extension(key any, init func() any) any
		LookupExtension(key any) (any, bool)
	}

	// Bounds is the parameter of the range and rangelength rules.
	//
	//	NewRuleSet().Add("range", Bounds{Min: 1, Max: 10})
	Bounds struct {
		Min any `yaml:"min"`
		Max any `yaml:"max"`
	}

	// Failure is one failed rule of a validation pass.
	Failure struct {
		Rule    string
		Message string
	}
)

// Args returns the bounds as message placeholder arguments: {0} is Min and
// {1} is Max.
func (b Bounds) Args() []any {
	return []any{b.Min, b.Max}
}
