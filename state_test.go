package formvalidation_test

import (
	"errors"
	"testing"

	fv "github.com/Gobd/formvalidation"
	"github.com/Gobd/formvalidation/observable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachDoesNotValidate(t *testing.T) {
	h := observable.New("")
	st, err := fv.Attach(h, fv.NewRuleSet().Add("required", true))
	require.NoError(t, err)

	assert.True(t, st.Valid())
	assert.Empty(t, st.Errors())
	assert.Equal(t, "", st.Message())

	assert.False(t, st.Revalidate())
	assert.Equal(t, []string{"This field is required."}, st.Errors())
}

func TestValidMatchesErrors(t *testing.T) {
	sets := []*fv.RuleSet{
		fv.NewRuleSet().Add("required", true),
		fv.NewRuleSet().Add("required", true).Add("email", true),
		fv.NewRuleSet().Add("min", 5).Add("max", 10).Add("digits", true),
		fv.NewRuleSet().Add("rangelength", fv.Bounds{Min: 2, Max: 3}),
	}
	values := []string{"", "a", "7", "12", "abc", "a@b.com", "abcd"}
	for _, rs := range sets {
		for _, v := range values {
			h := observable.New(v)
			st := fv.MustAttach(h, rs)
			st.Revalidate()
			assert.Equal(t, len(st.Errors()) == 0, st.Valid(), "%v on %q", rs.Names(), v)
			assert.Len(t, st.Failures(), len(st.Errors()))
		}
	}
}

func TestOnlyRequiredFailsOnEmpty(t *testing.T) {
	rs := fv.NewRuleSet().
		Add("number", true).
		Add("required", true).
		Add("min", 5).
		Add("max", 1).
		Add("digits", true).
		Add("range", fv.Bounds{Min: 1, Max: 2}).
		Add("date", true).
		Add("dateISO", true).
		Add("url", true).
		Add("email", true).
		Add("minlength", 3).
		Add("maxlength", 1).
		Add("rangelength", fv.Bounds{Min: 2, Max: 3}).
		Add("in", []string{"a"}).
		Add("equalTo", "b")

	for _, v := range []any{nil, ""} {
		h := observable.New[any](v)
		st := fv.MustAttach(h, rs)
		assert.False(t, st.Revalidate())
		assert.Equal(t, []string{"This field is required."}, st.Errors())
	}
}

func TestRevalidateIdempotent(t *testing.T) {
	h := observable.New("abc")
	st := fv.MustAttach(h, fv.NewRuleSet().Add("number", true).Add("minlength", 5).Add("email", true))

	st.Revalidate()
	first := st.Errors()
	st.Revalidate()
	assert.Equal(t, first, st.Errors())
	assert.Len(t, first, 3)
}

func TestNoShortCircuit(t *testing.T) {
	h := observable.New("x")
	st := fv.MustAttach(h, fv.NewRuleSet().
		Add("number", true).
		Add("minlength", 2).
		Add("url", true))

	assert.False(t, st.Revalidate())
	assert.Equal(t, []string{
		"Please enter a valid number.",
		"Please enter at least 2 characters.",
		"Please enter a valid URL.",
	}, st.Errors())
	assert.Equal(t, "Please enter a valid number.", st.Message())

	rules := make([]string, 0, 3)
	for _, f := range st.Failures() {
		rules = append(rules, f.Rule)
	}
	assert.Equal(t, []string{"number", "minlength", "url"}, rules)
}

func TestMinScenario(t *testing.T) {
	h := observable.New("3")
	st := fv.MustAttach(h, fv.NewRuleSet().Add("min", 5))

	assert.False(t, st.Revalidate())
	assert.Equal(t, "Please enter a value greater than or equal to 5.", st.Message())

	h.Set("10")
	assert.True(t, st.Valid())
	assert.Empty(t, st.Errors())
}

func TestRangeScenario(t *testing.T) {
	h := observable.New(1)
	st := fv.MustAttach(h, fv.NewRuleSet().Add("range", fv.Bounds{Min: 1, Max: 2}))

	assert.True(t, st.Revalidate())

	h.Set(0)
	assert.False(t, st.Valid())
	assert.Equal(t, "Please enter a value between 1 and 2.", st.Message())
}

func TestMessageOverride(t *testing.T) {
	h := observable.New("")
	st := fv.MustAttach(h, fv.NewRuleSet().
		Add("required", true).
		Add("messages", map[string]string{"required": "X"}))

	st.Revalidate()
	assert.Equal(t, "X", st.Message())
}

func TestMessageOverrideFunc(t *testing.T) {
	h := observable.New("12345")
	st := fv.MustAttach(h, fv.NewRuleSet().
		Add("maxlength", 3).
		MessageFunc("maxlength", func(param any) string { return "too long" }))

	st.Revalidate()
	assert.Equal(t, "too long", st.Message())
}

func TestEmptyOverrideFallsBack(t *testing.T) {
	h := observable.New("")
	st := fv.MustAttach(h, fv.NewRuleSet().
		Add("required", true).
		Add("messages", map[string]string{"required": ""}))

	st.Revalidate()
	assert.Equal(t, "This field is required.", st.Message())
}

func TestAbsentMessage(t *testing.T) {
	reg := fv.NewRegistry()
	reg.Register("never", func(*fv.Context, any, fv.Holder, any) bool { return false }, nil)

	h := observable.New("x")
	st := fv.MustAttach(h, fv.NewRuleSet().Add("never", true), fv.WithRegistry(reg))

	assert.False(t, st.Revalidate())
	assert.Equal(t, []string{""}, st.Errors())
	assert.Equal(t, "", st.Message())
	assert.False(t, st.Valid())
}

func TestDisabledRule(t *testing.T) {
	h := observable.New("abc")
	st := fv.MustAttach(h, fv.NewRuleSet().Add("number", false))
	assert.True(t, st.Revalidate())

	enabled := true
	fv.MustAttach(h, fv.NewRuleSet().Add("number", func() bool { return enabled }))
	assert.False(t, st.Revalidate())

	enabled = false
	assert.True(t, st.Revalidate())
}

func TestFunctionParameter(t *testing.T) {
	lo := 5
	h := observable.New(4)
	st := fv.MustAttach(h, fv.NewRuleSet().Add("min", func() int { return lo }))

	assert.False(t, st.Revalidate())
	assert.Equal(t, "Please enter a value greater than or equal to 5.", st.Message())
	lo = 3
	assert.True(t, st.Revalidate())
}

func TestDependencyRetrigger(t *testing.T) {
	dep := observable.New(false)
	target := observable.New("")
	st := fv.MustAttach(target, fv.NewRuleSet().Add("number", dep))

	target.Set("foobar")
	assert.True(t, st.Valid())

	dep.Set(true)
	assert.False(t, st.Valid())
	assert.Equal(t, "Please enter a valid number.", st.Message())

	dep.Set(false)
	assert.True(t, st.Valid())
}

func TestDependencySkipsUntouchedField(t *testing.T) {
	dep := observable.New(1)
	target := observable.New("")
	st := fv.MustAttach(target, fv.NewRuleSet().Add("required", true).Add("min", dep))

	dep.Set(2)
	assert.True(t, st.Valid(), "empty valid field is left alone")

	st.Revalidate()
	require.False(t, st.Valid())
	dep.Set(3)
	assert.Equal(t, []string{"This field is required."}, st.Errors())
}

func TestEqualToDependency(t *testing.T) {
	password := observable.New("secret")
	confirm := observable.New("")
	st := fv.MustAttach(confirm, fv.NewRuleSet().Add("equalTo", password))

	confirm.Set("secret")
	assert.True(t, st.Valid())

	password.Set("changed")
	assert.False(t, st.Valid())
	assert.Equal(t, "Please enter the same value again.", st.Message())
}

func TestReattachMerges(t *testing.T) {
	h := observable.New("")
	st := fv.MustAttach(h, fv.NewRuleSet().Add("required", true).Add("min", 1))
	again := fv.MustAttach(h, fv.NewRuleSet().Add("max", 3).Add("min", 2).Message("min", "min {0}"))

	assert.Same(t, st, again)
	assert.Equal(t, []string{"required", "min", "max"}, st.Rules().Names())

	h.Set("1")
	assert.Equal(t, []string{"min 2"}, st.Errors())
}

func TestReattachCancelsDependency(t *testing.T) {
	first := observable.New(1)
	second := observable.New(2)
	h := observable.New(0)

	fv.MustAttach(h, fv.NewRuleSet().Add("min", first))
	assert.Equal(t, 1, first.Subscribers())

	fv.MustAttach(h, fv.NewRuleSet().Add("min", second))
	assert.Equal(t, 0, first.Subscribers())
	assert.Equal(t, 1, second.Subscribers())

	fv.MustAttach(h, fv.NewRuleSet().Add("min", 5))
	assert.Equal(t, 0, second.Subscribers())
}

func TestAttachErrors(t *testing.T) {
	h := observable.New("")
	_, err := fv.Attach(h, fv.NewRuleSet().Add("required", true).Add("requird", true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fv.ErrUnknownRule))
	var unknown *fv.UnknownRuleError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "requird", unknown.Name)

	_, ok := fv.StateOf(h)
	assert.False(t, ok, "rejected attach leaves no state behind")

	var nilHolder *observable.Observable[string]
	_, err = fv.Attach(nilHolder, fv.NewRuleSet())
	assert.ErrorIs(t, err, fv.ErrNilHolder)
	_, err = fv.Attach(nil, fv.NewRuleSet())
	assert.ErrorIs(t, err, fv.ErrNilHolder)

	assert.Panics(t, func() {
		fv.MustAttach(h, fv.NewRuleSet().Add("nope", true))
	})
}

func TestStateObservables(t *testing.T) {
	h := observable.New("")
	st := fv.MustAttach(h, fv.NewRuleSet().Add("required", true))

	var changes int
	cancel := st.Subscribe(func() { changes++ })
	defer cancel()

	valid := st.ValidObservable()
	message := st.MessageObservable()
	assert.True(t, valid.Get())

	st.Revalidate()
	assert.False(t, valid.Get())
	assert.Equal(t, "This field is required.", message.Get())
	assert.Equal(t, 1, changes)

	st.Revalidate()
	assert.Equal(t, 1, changes, "unchanged errors do not notify")

	h.Set("x")
	assert.True(t, valid.Get())
	assert.Equal(t, "", message.Get())
	assert.Equal(t, 2, changes)
}

func TestClose(t *testing.T) {
	dep := observable.New(5)
	h := observable.New(1)
	st := fv.MustAttach(h, fv.NewRuleSet().Add("min", dep))

	st.Close()
	assert.Equal(t, 0, dep.Subscribers())

	h.Set(2)
	assert.True(t, st.Valid(), "closed state no longer follows the holder")
	assert.False(t, st.Revalidate())
}

func TestStateOf(t *testing.T) {
	h := observable.New("")
	_, ok := fv.StateOf(h)
	assert.False(t, ok)

	st := fv.MustAttach(h, nil)
	got, ok := fv.StateOf(h)
	require.True(t, ok)
	assert.Same(t, st, got)
	assert.Equal(t, fv.Default(), st.Registry())
}
