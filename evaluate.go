package formvalidation

// ValidateHolder validates h with its attached rules and reports whether it
// passed. A holder without rules is valid unless its value is a collection,
// in which case the elements are validated instead.
func ValidateHolder(h Holder) bool {
	if st, ok := StateOf(h); ok {
		return st.Revalidate()
	}
	if value := h.Current(); isCollection(value) {
		valid, _ := ValidateArray(value)
		return valid
	}
	return true
}

// evaluate runs every active rule of rs against the current value of h, in
// rule order, and returns the failures. It never stops at the first failure.
func (r *Registry) evaluate(h Holder, rs *RuleSet) ([]Failure, error) {
	ctx := &Context{registry: r}
	value := Unwrap(h)

	var failures []Failure
	for _, name := range rs.names {
		param := Unwrap(rs.params[name])
		if disabled, ok := param.(bool); ok && !disabled {
			continue
		}

		ru, ok := r.lookup(name)
		if !ok {
			return nil, &UnknownRuleError{Name: name}
		}
		if ru.predicate(ctx, value, h, param) {
			continue
		}

		msg := rs.override(name)
		if msg == nil {
			msg = ru.message
		}
		var text string
		if msg != nil {
			text = msg(param)
		}
		failures = append(failures, Failure{Rule: name, Message: text})
	}
	return failures, nil
}
