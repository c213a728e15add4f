// Package binding connects validation state to view elements.
//
// [FromAttributes] turns markup attributes (required, min, max, maxlength and
// their data-val-* message overrides) into a rule set. [Validate] keeps an
// element's valid and error classes in step with a holder, and
// [ValidationMessage] renders the holder's first error message into an
// element. [Element] is an in-memory element implementing every interface
// the adapters need.
package binding
