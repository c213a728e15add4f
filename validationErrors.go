package formvalidation

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationErrors is a map of field names to their validation errors.
// It is an alias for [validation.Errors] from ozzo-validation and implements
// the error interface with a JSON-friendly string representation.
type ValidationErrors = validation.Errors

var (
	// ErrNotCollection is returned by ValidateArray for anything that is not a
	// slice or an array.
	ErrNotCollection = errors.New("not a collection")

	// ErrUnknownRule is wrapped by UnknownRuleError.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrNilHolder is returned by Attach for a nil holder.
	ErrNilHolder = errors.New("nil holder")
)

// UnknownRuleError reports a rule-set entry naming a rule that is not
// registered.
type UnknownRuleError struct {
	Name string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownRule, e.Name)
}

func (e *UnknownRuleError) Unwrap() error {
	return ErrUnknownRule
}

// leafError converts the failures of one holder into the ozzo error reported
// for it by Validate. Like an ozzo field, a holder reports its first failure.
func leafError(failures []Failure) error {
	if len(failures) == 0 {
		return nil
	}
	f := failures[0]
	return validation.NewError("validation_"+f.Rule, f.Message)
}
