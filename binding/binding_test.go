package binding_test

import (
	"testing"

	fv "github.com/Gobd/formvalidation"
	"github.com/Gobd/formvalidation/binding"
	"github.com/Gobd/formvalidation/observable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAttributes(t *testing.T) {
	rs := binding.FromAttributes(map[string]string{
		"required":          "",
		"min":               "5",
		"max":               "7.5",
		"maxlength":         "10",
		"data-val-min":      "At least {0}",
		"data-val-max":      "At most {0}",
		"data-val-required": "",
		"data-val-pattern":  "ignored",
		"type":              "text",
	})

	assert.Equal(t, []string{"required", "min", "max", "maxlength"}, rs.Names())
	p, _ := rs.Param("required")
	assert.Equal(t, true, p)
	p, _ = rs.Param("min")
	assert.Equal(t, 5, p)
	p, _ = rs.Param("max")
	assert.Equal(t, 7.5, p)
	p, _ = rs.Param("maxlength")
	assert.Equal(t, 10, p)

	h := observable.New("")
	st := fv.MustAttach(h, rs)
	st.Revalidate()
	assert.Equal(t, "This field is required.", st.Message(), "empty override keeps the default")

	h.Set("3")
	assert.Equal(t, []string{"At least 5"}, st.Errors())
	h.Set("9")
	assert.Equal(t, []string{"At most 7.5"}, st.Errors())
}

func TestFromAttributesIgnoresOrphanMessages(t *testing.T) {
	rs := binding.FromAttributes(map[string]string{"data-val-min": "x"})
	assert.Equal(t, 0, rs.Len())
}

func TestValidate(t *testing.T) {
	h := observable.New("")
	fv.MustAttach(h, fv.NewRuleSet().Add("required", true))
	el := binding.NewElement(nil)

	cancel, err := binding.Validate(el, h, fv.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"valid"}, el.Classes(), "not validated yet")

	h.Set("x")
	h.Set("")
	assert.Equal(t, []string{"error"}, el.Classes())

	h.Set("y")
	assert.Equal(t, []string{"valid"}, el.Classes())

	cancel()
	h.Set("")
	assert.True(t, el.HasClass("valid"))
}

func TestValidateCustomClasses(t *testing.T) {
	h := observable.New("")
	st := fv.MustAttach(h, fv.NewRuleSet().Add("required", true))
	st.Revalidate()
	el := binding.NewElement(nil)

	_, err := binding.Validate(el, h, fv.Options{ValidClass: "ok", ErrorClass: "invalid"})
	require.NoError(t, err)
	assert.Equal(t, []string{"invalid"}, el.Classes())
}

func TestValidateNotValidatable(t *testing.T) {
	_, err := binding.Validate(binding.NewElement(nil), observable.New(""), fv.DefaultOptions())
	assert.ErrorIs(t, err, binding.ErrNotValidatable)
	_, err = binding.ValidationMessage(binding.NewElement(nil), observable.New(""), fv.DefaultOptions())
	assert.ErrorIs(t, err, binding.ErrNotValidatable)
}

func TestValidatable(t *testing.T) {
	el := binding.NewElement(map[string]string{"required": "required", "maxlength": "3"})
	h := observable.New("")

	_, err := binding.Validatable(el, h, fv.DefaultOptions())
	require.NoError(t, err)

	h.Set("abcd")
	assert.Equal(t, []string{"error"}, el.Classes())
	st, ok := fv.StateOf(h)
	require.True(t, ok)
	assert.Equal(t, "Please enter no more than 3 characters.", st.Message())

	_, err = binding.Validatable(el, h, fv.DefaultOptions(), fv.WithRegistry(fv.NewEmptyRegistry()))
	require.NoError(t, err, "existing state keeps its registry")

	_, err = binding.Validatable(el, observable.New(""), fv.DefaultOptions(), fv.WithRegistry(fv.NewEmptyRegistry()))
	assert.ErrorIs(t, err, fv.ErrUnknownRule)
}

func TestValidationMessage(t *testing.T) {
	h := observable.New("")
	st := fv.MustAttach(h, fv.NewRuleSet().Add("required", true).Message("required", "Name please"))
	st.Revalidate()
	el := binding.NewElement(nil)

	cancel, err := binding.ValidationMessage(el, h, fv.DefaultOptions())
	require.NoError(t, err)
	defer cancel()

	assert.True(t, el.HasClass("error"))
	assert.Equal(t, "Name please", el.Text())

	h.Set("Ada")
	assert.Equal(t, "", el.Text())
	assert.True(t, el.HasClass("error"), "the class stays, only the text changes")

	h.Set("")
	assert.Equal(t, "Name please", el.Text())
}

func TestElement(t *testing.T) {
	attrs := map[string]string{"id": "name"}
	el := binding.NewElement(attrs)
	attrs["id"] = "changed"
	assert.Equal(t, "name", el.Attributes()["id"])

	el.ToggleClass("b", true)
	el.ToggleClass("a", true)
	el.ToggleClass("b", false)
	assert.Equal(t, []string{"a"}, el.Classes())

	var zero binding.Element
	zero.ToggleClass("x", true)
	assert.True(t, zero.HasClass("x"))
}
