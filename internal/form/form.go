package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	fv "github.com/Gobd/formvalidation"
	"github.com/Gobd/formvalidation/binding"
	"github.com/Gobd/formvalidation/observable"
	"github.com/getkin/kin-openapi/openapi3"
)

// ErrUnknownField is returned when setting a field the form does not have.
var ErrUnknownField = errors.New("unknown field")

type (
	holder = observable.Observable[any]

	// Form is a Document bound to observables with their rules attached.
	Form struct {
		name   string
		reg    *fv.Registry
		opts   fv.Options
		fields []*field
		byName map[string]*field
	}

	field struct {
		def   Field
		value *holder
		items *observable.Array[*holder]
		elems []*binding.Element
	}

	// Result is the validation outcome of one field, or of one item of a
	// list field, named field.index.
	Result struct {
		Field  string   `json:"field"`
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors,omitempty"`
		Class  string   `json:"class"`
	}
)

// Bind creates an observable per field, attaches the rules declared by its
// attributes and then its explicit rules, and binds an element toggling the
// opts classes. A nil reg is the default registry.
func (d *Document) Bind(reg *fv.Registry, opts fv.Options) (*Form, error) {
	if reg == nil {
		reg = fv.Default()
	}
	f := &Form{
		name:   d.Name,
		reg:    reg,
		opts:   opts.WithDefaults(),
		byName: make(map[string]*field, len(d.Fields)),
	}
	for _, def := range d.Fields {
		fd := &field{def: def}
		if def.IsList() {
			fd.items = observable.NewArray[*holder]()
			if err := f.setItems(fd, def.Items); err != nil {
				return nil, err
			}
		} else {
			fd.value = observable.New(def.Value)
			el, err := f.bindHolder(def, fd.value)
			if err != nil {
				return nil, err
			}
			fd.elems = []*binding.Element{el}
		}
		f.fields = append(f.fields, fd)
		f.byName[def.Name] = fd
	}
	return f, nil
}

func (f *Form) bindHolder(def Field, h *holder) (*binding.Element, error) {
	el := binding.NewElement(def.Attributes)
	if _, err := binding.Validatable(el, h, f.opts, fv.WithRegistry(f.reg)); err != nil {
		return nil, fmt.Errorf("field %s: %w", def.Name, err)
	}
	if _, err := fv.Attach(h, def.Rules); err != nil {
		return nil, fmt.Errorf("field %s: %w", def.Name, err)
	}
	return el, nil
}

func (f *Form) setItems(fd *field, values []any) error {
	items := make([]*holder, len(values))
	elems := make([]*binding.Element, len(values))
	for i, v := range values {
		items[i] = observable.New(v)
		el, err := f.bindHolder(fd.def, items[i])
		if err != nil {
			return err
		}
		elems[i] = el
	}
	fd.elems = elems
	fd.items.Set(items)
	return nil
}

// Name returns the document name.
func (f *Form) Name() string {
	return f.name
}

// Fields returns the field names in document order.
func (f *Form) Fields() []string {
	names := make([]string, len(f.fields))
	for i, fd := range f.fields {
		names[i] = fd.def.Name
	}
	return names
}

// Set changes the value of the named field, which revalidates it. List
// fields take a slice, or a string of comma separated items.
func (f *Form) Set(name string, value any) error {
	fd, ok := f.byName[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	if fd.items == nil {
		fd.value.Set(value)
		return nil
	}

	var values []any
	switch v := value.(type) {
	case []any:
		values = v
	case []string:
		for _, s := range v {
			values = append(values, s)
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			values = append(values, strings.TrimSpace(s))
		}
	default:
		values = []any{v}
	}
	return f.setItems(fd, values)
}

// Value returns the current value of the named field; the items of a list
// field as a slice.
func (f *Form) Value(name string) (any, error) {
	fd, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	if fd.items == nil {
		return fd.value.Get(), nil
	}
	items := fd.items.Get()
	values := make([]any, len(items))
	for i, h := range items {
		values[i] = h.Get()
	}
	return values, nil
}

// model is the view model of the form: field names to holders.
func (f *Form) model() map[string]any {
	m := make(map[string]any, len(f.fields))
	for _, fd := range f.fields {
		if fd.items != nil {
			m[fd.def.Name] = fd.items
		} else {
			m[fd.def.Name] = fd.value
		}
	}
	return m
}

// Validate validates every field and returns their failures keyed by field
// name, and item index for list fields.
func (f *Form) Validate() error {
	return fv.Validate(f.model())
}

// Check validates every field and returns one result per field, or per item
// of list fields, in document order.
func (f *Form) Check() []Result {
	_ = f.Validate()

	var results []Result
	for _, fd := range f.fields {
		if fd.items == nil {
			results = append(results, f.result(fd.def.Name, fd.value, fd.elems[0]))
			continue
		}
		for i, h := range fd.items.Get() {
			results = append(results, f.result(fd.def.Name+"."+strconv.Itoa(i), h, fd.elems[i]))
		}
	}
	return results
}

func (f *Form) result(name string, h *holder, el *binding.Element) Result {
	st, _ := fv.StateOf(h)
	return Result{
		Field:  name,
		Valid:  st.Valid(),
		Errors: st.Errors(),
		Class:  strings.Join(el.Classes(), " "),
	}
}

// Schema describes the form as an OpenAPI object schema titled after the
// form.
func (f *Form) Schema() (*openapi3.SchemaRef, error) {
	ref, err := fv.NewSchemaRefForValue(f.model())
	if err != nil {
		return nil, fmt.Errorf("form %s: %w", f.name, err)
	}
	ref.Value.Title = f.name
	return ref, nil
}
