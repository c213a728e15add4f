package formvalidation

// track subscribes to every reactive parameter of rs. A parameter replaced
// by a later Attach loses its subscription.
func (s *State) track(rs *RuleSet) {
	for _, name := range rs.names {
		s.mu.Lock()
		old, ok := s.deps[name]
		delete(s.deps, name)
		s.mu.Unlock()
		if ok {
			old()
		}

		dep, ok := rs.params[name].(Subscribable)
		if !ok {
			continue
		}
		cancel := dep.Subscribe(func() {
			s.dependencyChanged(name)
		})

		s.mu.Lock()
		s.deps[name] = cancel
		s.mu.Unlock()
	}
}

// dependencyChanged revalidates when the holder is invalid or has a value.
// An untouched empty field is left alone so that flipping a dependency does
// not raise a required error before the user typed anything.
func (s *State) dependencyChanged(rule string) {
	if s.Valid() && s.registry.Optional(s.holder) {
		log().Debug("dependency changed, field untouched", "rule", rule)
		return
	}
	s.Revalidate()
}
