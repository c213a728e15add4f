package formvalidation

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate validates every holder with rules reachable from viewModel and
// returns their failures as ValidationErrors, nested by slice index, map key
// and struct field (json tag when present). It returns nil when everything
// passed. Every holder is validated, also after an earlier one failed, so
// all of their states are current.
//
// Struct fields tagged validate:"-" and unexported fields are skipped.
func Validate(viewModel any) error {
	w := newWalker(revalidateLeaf, nil)
	return w.walk("", viewModel)
}

// ValidateObject reports whether every holder with rules reachable from node
// passed. Anything without holders is valid.
func ValidateObject(node any) bool {
	return Validate(node) == nil
}

// ValidateArray validates each element of collection, a slice, an array or
// a reactive value holding one. An empty collection is valid. Anything else
// is an error wrapping ErrNotCollection.
func ValidateArray(collection any) (bool, error) {
	value := collection
	if r, ok := collection.(Reactive); ok {
		value = r.Current()
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !isCollectionValue(rv) {
		return false, fmt.Errorf("%w: got %T", ErrNotCollection, collection)
	}

	w := newWalker(revalidateLeaf, nil)
	return w.collection("", rv) == nil, nil
}

type nodeKind int

const (
	scalarNode nodeKind = iota
	leafNode
	reactiveNode
	collectionNode
	compositeNode
	unsupportedNode
)

func classify(v any) nodeKind {
	if isNil(v) {
		return scalarNode
	}
	switch n := v.(type) {
	case Holder:
		if _, ok := StateOf(n); ok {
			return leafNode
		}
		return reactiveNode
	case Reactive:
		return reactiveNode
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
		if isNilValue(rv) {
			return scalarNode
		}
	}
	switch {
	case isCollectionValue(rv):
		return collectionNode
	case rv.Kind() == reflect.Struct, rv.Kind() == reflect.Map:
		return compositeNode
	case rv.Kind() == reflect.Func, rv.Kind() == reflect.Chan, rv.Kind() == reflect.UnsafePointer:
		return unsupportedNode
	}
	return scalarNode
}

// isNil reports whether v is nil or a nil pointer.
func isNil(v any) bool {
	return v == nil || isNilValue(reflect.ValueOf(v))
}

func isNilValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

type (
	leafFunc func(path string, h Holder, st *State) error
	bareFunc func(path string, h Holder)
)

// walker traverses a view-model graph. leaf is called for holders with
// rules, bare for writable holders without rules that do not hold a
// collection.
type walker struct {
	leaf leafFunc
	bare bareFunc
	seen map[visit]bool
}

type visit struct {
	typ reflect.Type
	ptr uintptr
}

func newWalker(leaf leafFunc, bare bareFunc) *walker {
	return &walker{leaf: leaf, bare: bare, seen: map[visit]bool{}}
}

func revalidateLeaf(_ string, _ Holder, st *State) error {
	st.Revalidate()
	return leafError(st.Failures())
}

func (w *walker) walk(path string, v any) error {
	switch classify(v) {
	case leafNode:
		h := v.(Holder)
		if w.visited(reflect.ValueOf(h)) {
			return nil
		}
		st, _ := StateOf(h)
		return w.leaf(path, h, st)
	case reactiveNode:
		if w.visited(reflect.ValueOf(v)) {
			return nil
		}
		return w.reactive(path, v.(Reactive))
	case collectionNode:
		rv, ok := w.deref(v)
		if !ok {
			return nil
		}
		return w.collection(path, rv)
	case compositeNode:
		rv, ok := w.deref(v)
		if !ok {
			return nil
		}
		if rv.Kind() == reflect.Map {
			return w.mapping(path, rv)
		}
		return w.fields(path, rv)
	}
	return nil
}

func (w *walker) reactive(path string, r Reactive) error {
	value := r.Current()
	if isCollection(value) {
		return w.walk(path, value)
	}
	if h, ok := r.(Holder); ok && w.bare != nil {
		w.bare(path, h)
	}
	return nil
}

// deref follows pointers and interfaces, reporting false when it reaches a
// nil or an already visited pointer.
func (w *walker) deref(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() || w.visited(rv) {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Map && (rv.IsNil() || w.visited(rv)) {
		return reflect.Value{}, false
	}
	return rv, true
}

func (w *walker) visited(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
	default:
		return false
	}
	k := visit{typ: rv.Type(), ptr: rv.Pointer()}
	if w.seen[k] {
		return true
	}
	w.seen[k] = true
	return false
}

func (w *walker) collection(path string, rv reflect.Value) error {
	errs := validation.Errors{}
	for i := range rv.Len() {
		key := strconv.Itoa(i)
		if err := w.walk(join(path, key), element(rv.Index(i))); err != nil {
			errs[key] = err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (w *walker) mapping(path string, rv reflect.Value) error {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})

	errs := validation.Errors{}
	for _, k := range keys {
		key := fmt.Sprint(k.Interface())
		if err := w.walk(join(path, key), rv.MapIndex(k).Interface()); err != nil {
			errs[key] = err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (w *walker) fields(path string, rv reflect.Value) error {
	errs := validation.Errors{}
	t := rv.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Tag.Get("validate") == "-" {
			continue
		}

		if sf.Anonymous {
			err := w.walk(path, element(rv.Field(i)))
			if inner, ok := err.(validation.Errors); ok {
				for k, v := range inner {
					errs[k] = v
				}
			} else if err != nil {
				errs[sf.Name] = err
			}
			continue
		}

		key := fieldKey(sf)
		if err := w.walk(join(path, key), element(rv.Field(i))); err != nil {
			errs[key] = err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// element returns v as an interface, taking its address when only the
// pointer is reactive, as with holders embedded by value.
func element(v reflect.Value) any {
	if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface && v.CanAddr() {
		if r, ok := v.Addr().Interface().(Reactive); ok {
			return r
		}
	}
	return v.Interface()
}

// fieldKey returns the json tag name if present, otherwise the Go field name.
func fieldKey(sf reflect.StructField) string {
	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag != "" && tag != "-" {
		return tag
	}
	return sf.Name
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func isCollection(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	return isCollectionValue(rv)
}

func isCollectionValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	}
	return false
}
