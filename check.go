package formvalidation

import "slices"

// Unvalidated returns the dotted paths of the writable holders reachable
// from viewModel that have no rules and do not hold a collection. Paths
// follow the keys of Validate. Nothing is validated.
//
// Use in tests to catch forgotten fields:
//
//	assert.Empty(t, fv.Unvalidated(&signup))
//	assert.Empty(t, fv.Unvalidated(&signup, "nickname"))
func Unvalidated(viewModel any, exclude ...string) []string {
	var missing []string
	w := newWalker(
		func(string, Holder, *State) error { return nil },
		func(path string, _ Holder) {
			if !slices.Contains(exclude, path) {
				missing = append(missing, path)
			}
		},
	)
	_ = w.walk("", viewModel)
	return missing
}

// Check returns an *UnknownRuleError for the first rule of rs that is not
// registered in r.
func (r *Registry) Check(rs *RuleSet) error {
	if rs == nil {
		return nil
	}
	for _, name := range rs.names {
		if !r.Has(name) {
			return &UnknownRuleError{Name: name}
		}
	}
	return nil
}
