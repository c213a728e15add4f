// Package formvalidation attaches declarative validation rules to reactive
// values and keeps their validity current as the values change.
//
// Attach a rule set to any [Holder], such as an observable from the
// observable package:
//
//	age := observable.New("")
//	st, err := formvalidation.Attach(age, formvalidation.NewRuleSet().
//	    Add("required", true).
//	    Add("range", formvalidation.Bounds{Min: 18, Max: 130}).
//	    Message("required", "Tell us your age"))
//
// Every age.Set revalidates; st.Valid and st.Message report the result.
// Rule parameters may themselves be reactive, in which case changing them
// revalidates the holder too.
//
// [Validate], [ValidateObject] and [ValidateArray] walk a view model of
// structs, maps, slices and holders and validate every holder with rules.
// [NewSchemaRefForValue] describes the same view model as an OpenAPI 3
// schema.
//
// Rules live in a [Registry]. The built-in rules are required, number, min,
// max, digits, range, date, dateISO, url, email, minlength, maxlength,
// rangelength, in and equalTo; [Register] and [RegisterRule] add more.
//
// Sub-packages:
//   - observable – the reactive value holders
//   - binding – element adapters toggling classes and rendering messages
//   - openapi – OpenAPI documents with form schemas as request bodies
package formvalidation
