package form

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	fv "github.com/Gobd/formvalidation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signup = `
name: signup
fields:
  - name: email
    rules:
      required: true
      email: true
  - name: age
    value: "3"
    attributes:
      min: "5"
      data-val-min: "At least {0}"
  - name: nickname
  - name: tags
    items: ["a", ""]
    rules:
      required: true
`

func bind(t *testing.T, src string) *Form {
	t.Helper()
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	f, err := doc.Bind(nil, fv.DefaultOptions())
	require.NoError(t, err)
	return f
}

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(signup))
	require.NoError(t, err)

	assert.Equal(t, "signup", doc.Name)
	require.Len(t, doc.Fields, 4)
	assert.Equal(t, []string{"required", "email"}, doc.Fields[0].Rules.Names())
	assert.Equal(t, "3", doc.Fields[1].Value)
	assert.Nil(t, doc.Fields[2].Rules)
	assert.False(t, doc.Fields[2].IsList())
	assert.True(t, doc.Fields[3].IsList())
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"empty":      "",
		"no name":    "fields: []",
		"field name": "name: x\nfields:\n  - value: 1",
		"duplicate":  "name: x\nfields:\n  - name: a\n  - name: a",
		"both":       "name: x\nfields:\n  - name: a\n    value: 1\n    items: [1]",
		"unknown":    "name: x\ncolour: red",
		"rules":      "name: x\nfields:\n  - name: a\n    rules: [required]",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(signup), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "signup", doc.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("fields: []"), 0o600))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Contains(t, err.Error(), bad)
}

func TestCheck(t *testing.T) {
	f := bind(t, signup)
	assert.Equal(t, []string{"email", "age", "nickname", "tags"}, f.Fields())

	assert.Equal(t, []Result{
		{Field: "email", Valid: false, Errors: []string{"This field is required."}, Class: "error"},
		{Field: "age", Valid: false, Errors: []string{"At least 5"}, Class: "error"},
		{Field: "nickname", Valid: true, Class: "valid"},
		{Field: "tags.0", Valid: true, Class: "valid"},
		{Field: "tags.1", Valid: false, Errors: []string{"This field is required."}, Class: "error"},
	}, f.Check())

	require.NoError(t, f.Set("email", "not-an-email"))
	require.NoError(t, f.Set("age", "7"))
	require.NoError(t, f.Set("tags", "a, b"))

	assert.Equal(t, []Result{
		{Field: "email", Valid: false, Errors: []string{"Please enter a valid email address."}, Class: "error"},
		{Field: "age", Valid: true, Class: "valid"},
		{Field: "nickname", Valid: true, Class: "valid"},
		{Field: "tags.0", Valid: true, Class: "valid"},
		{Field: "tags.1", Valid: true, Class: "valid"},
	}, f.Check())

	tags, err := f.Value("tags")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, tags)
}

func TestSetRevalidates(t *testing.T) {
	f := bind(t, signup)
	f.Check()

	require.NoError(t, f.Set("email", "ada@example.com"))
	st, ok := fv.StateOf(f.byName["email"].value)
	require.True(t, ok)
	assert.True(t, st.Valid())
	assert.Equal(t, "valid", f.Check()[0].Class)
}

func TestSetUnknownField(t *testing.T) {
	f := bind(t, signup)
	assert.ErrorIs(t, f.Set("missing", 1), ErrUnknownField)
	_, err := f.Value("missing")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSetListValues(t *testing.T) {
	f := bind(t, signup)

	require.NoError(t, f.Set("tags", []string{"x"}))
	v, _ := f.Value("tags")
	assert.Equal(t, []any{"x"}, v)

	require.NoError(t, f.Set("tags", 4))
	v, _ = f.Value("tags")
	assert.Equal(t, []any{4}, v)
}

func TestValidate(t *testing.T) {
	f := bind(t, signup)

	err := f.Validate()
	require.Error(t, err)
	errs, ok := err.(fv.ValidationErrors)
	require.True(t, ok)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "age")
	assert.Contains(t, errs, "tags")
	assert.NotContains(t, errs, "nickname")
}

func TestBindUnknownRule(t *testing.T) {
	doc, err := Parse([]byte("name: x\nfields:\n  - name: a\n    rules: {shouty: true}"))
	require.NoError(t, err)

	_, err = doc.Bind(nil, fv.Options{})
	assert.ErrorIs(t, err, fv.ErrUnknownRule)
	assert.Contains(t, err.Error(), "field a")
}

func TestBindRegistry(t *testing.T) {
	reg := fv.NewRegistry()
	reg.Register("shouty", func(_ *fv.Context, v any, _ fv.Holder, _ any) bool {
		s, _ := v.(string)
		return s != "" && s == strings.ToUpper(s)
	}, fv.Text("Use capitals."))

	doc, err := Parse([]byte("name: x\nfields:\n  - name: a\n    value: quiet\n    rules: {shouty: true}"))
	require.NoError(t, err)
	f, err := doc.Bind(reg, fv.Options{ValidClass: "ok", ErrorClass: "bad"})
	require.NoError(t, err)

	assert.Equal(t, []Result{{Field: "a", Errors: []string{"Use capitals."}, Class: "bad"}}, f.Check())
}

func TestSchema(t *testing.T) {
	f := bind(t, signup)

	ref, err := f.Schema()
	require.NoError(t, err)
	s := ref.Value
	assert.Equal(t, "signup", s.Title)
	assert.Equal(t, []string{"email"}, s.Required)
	assert.Equal(t, "email", s.Properties["email"].Value.Format)
	require.NotNil(t, s.Properties["age"].Value.Min)
	assert.Equal(t, 5.0, *s.Properties["age"].Value.Min)
	require.NotNil(t, s.Properties["tags"].Value.Items)
}
