package formvalidation

import (
	"reflect"
	"slices"
	"sync"

	"github.com/Gobd/formvalidation/observable"
)

type stateKey struct{}

// AttachOption configures Attach.
type AttachOption func(*attachConfig)

type attachConfig struct {
	registry *Registry
}

// WithRegistry makes the rules resolve in r instead of the default registry.
// It only applies when the holder has no rules yet.
func WithRegistry(r *Registry) AttachOption {
	return func(c *attachConfig) {
		c.registry = r
	}
}

// State is the validation state of one holder: its rules and the failures
// of the last validation pass.
type State struct {
	holder   Holder
	registry *Registry

	mu       sync.Mutex
	rules    *RuleSet
	failures []Failure
	deps     map[string]func()
	cancel   func()

	errors  *observable.Observable[[]string]
	valid   *observable.Computed[bool]
	message *observable.Computed[string]
}

// Attach merges rs into the rules of h, creating its State on first use.
// From then on every change of h revalidates it. Rule parameters that are
// themselves reactive revalidate h when they change. Attach does not
// validate; call Revalidate for an initial pass.
//
// Unknown rule names are rejected before anything changes.
func Attach(h Holder, rs *RuleSet, opts ...AttachOption) (*State, error) {
	if isNilHolder(h) {
		return nil, ErrNilHolder
	}
	cfg := attachConfig{registry: defaultRegistry}
	for _, opt := range opts {
		opt(&cfg)
	}
	if rs == nil {
		rs = NewRuleSet()
	}

	reg := cfg.registry
	if st, ok := StateOf(h); ok {
		reg = st.registry
	}
	if err := reg.Check(rs); err != nil {
		return nil, err
	}

	created := false
	st := h.Extension(stateKey{}, func() any {
		created = true
		return newState(h, reg)
	}).(*State)
	if created {
		st.cancel = h.Subscribe(func() {
			st.Revalidate()
		})
	}

	st.mu.Lock()
	st.rules.merge(rs)
	total := st.rules.Len()
	st.mu.Unlock()
	st.track(rs)

	log().Debug("attached rules", "rules", rs.Names(), "total", total, "created", created)
	return st, nil
}

// MustAttach is like Attach but panics on error.
func MustAttach(h Holder, rs *RuleSet, opts ...AttachOption) *State {
	st, err := Attach(h, rs, opts...)
	if err != nil {
		panic(err)
	}
	return st
}

// StateOf returns the State attached to h.
func StateOf(h Holder) (*State, bool) {
	if isNilHolder(h) {
		return nil, false
	}
	v, ok := h.LookupExtension(stateKey{})
	if !ok {
		return nil, false
	}
	st, ok := v.(*State)
	return st, ok
}

func isNilHolder(h Holder) bool {
	if h == nil {
		return true
	}
	rv := reflect.ValueOf(h)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func newState(h Holder, reg *Registry) *State {
	st := &State{
		holder:   h,
		registry: reg,
		rules:    NewRuleSet(),
		deps:     map[string]func(){},
		errors:   observable.New[[]string](nil, observable.WithEquality(slices.Equal[[]string])),
	}
	st.valid = observable.Compute(func() bool {
		return len(st.errors.Get()) == 0
	}, st.errors)
	st.message = observable.Compute(func() string {
		return first(st.errors.Get())
	}, st.errors)
	return st
}

// Revalidate validates the holder and replaces the error list. It panics
// with an *UnknownRuleError if a rule is no longer registered.
func (s *State) Revalidate() bool {
	valid, err := s.Check()
	if err != nil {
		log().Error("revalidate", "error", err)
		panic(err)
	}
	return valid
}

// Check is like Revalidate but returns an unknown rule as an error, leaving
// the previous error list in place.
func (s *State) Check() (bool, error) {
	s.mu.Lock()
	rules := s.rules.clone()
	s.mu.Unlock()

	failures, err := s.registry.evaluate(s.holder, rules)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	s.failures = failures
	s.mu.Unlock()
	s.errors.Set(messages(failures))

	if len(failures) > 0 {
		log().Debug("validation failed", "failures", len(failures), "message", failures[0].Message)
	}
	return len(failures) == 0, nil
}

// Valid reports whether the last validation pass had no failures.
func (s *State) Valid() bool {
	return len(s.errors.Get()) == 0
}

// Message returns the first error message, or "" when valid.
func (s *State) Message() string {
	return first(s.errors.Get())
}

// Errors returns the error messages of the last validation pass in rule
// order.
func (s *State) Errors() []string {
	return slices.Clone(s.errors.Get())
}

// Failures returns the failed rules of the last validation pass with their
// messages.
func (s *State) Failures() []Failure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.failures)
}

// Rules returns a copy of the attached rules.
func (s *State) Rules() *RuleSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.clone()
}

// Registry returns the registry the rules resolve in.
func (s *State) Registry() *Registry {
	return s.registry
}

// Subscribe registers fn to run whenever the error list changes.
func (s *State) Subscribe(fn func()) (cancel func()) {
	return s.errors.Subscribe(fn)
}

// ValidObservable returns the validity as a read-only reactive value.
func (s *State) ValidObservable() *observable.Computed[bool] {
	return s.valid
}

// MessageObservable returns the first error message as a read-only reactive
// value.
func (s *State) MessageObservable() *observable.Computed[string] {
	return s.message
}

// Close stops revalidating on changes of the holder and of rule parameters.
// The State stays attached with its last results.
func (s *State) Close() {
	s.mu.Lock()
	cancels := make([]func(), 0, len(s.deps)+1)
	if s.cancel != nil {
		cancels = append(cancels, s.cancel)
		s.cancel = nil
	}
	for name, cancel := range s.deps {
		cancels = append(cancels, cancel)
		delete(s.deps, name)
	}
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

func messages(failures []Failure) []string {
	if len(failures) == 0 {
		return nil
	}
	out := make([]string, len(failures))
	for i, f := range failures {
		out[i] = f.Message
	}
	return out
}

func first(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	return errs[0]
}
