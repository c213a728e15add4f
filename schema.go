package formvalidation

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

var timeType = reflect.TypeOf(time.Time{})

// NewSchemaRefForValue generates an OpenAPI schema for viewModel. Structs
// and maps become objects and collections arrays described by their first
// element. Holders contribute a property typed after their current value
// and described by their rules.
func NewSchemaRefForValue(viewModel any) (*openapi3.SchemaRef, error) {
	b := &schemaBuilder{seen: map[visit]bool{}}
	ref, st, err := b.value(viewModel)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return openapi3.NewSchemaRef("", openapi3.NewSchema()), nil
	}
	if st != nil {
		if err := st.Registry().Describe("", st.Rules(), openapi3.NewObjectSchema(), ref); err != nil {
			return nil, err
		}
	}
	return ref, nil
}

type schemaBuilder struct {
	seen map[visit]bool
}

func (b *schemaBuilder) value(v any) (*openapi3.SchemaRef, *State, error) {
	switch classify(v) {
	case leafNode:
		h := v.(Holder)
		st, _ := StateOf(h)
		return openapi3.NewSchemaRef("", typeSchema(Unwrap(h))), st, nil
	case reactiveNode:
		r := v.(Reactive)
		if current := r.Current(); isCollection(current) {
			return b.value(current)
		}
		return openapi3.NewSchemaRef("", typeSchema(Unwrap(r))), nil, nil
	case unsupportedNode:
		return nil, nil, nil
	case scalarNode:
		if isNil(v) {
			return nil, nil, nil
		}
		return openapi3.NewSchemaRef("", typeSchema(v)), nil, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() || b.visited(rv) {
			return nil, nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return b.array(rv)
	case reflect.Map:
		return b.mapping(rv)
	case reflect.Struct:
		if rv.Type() == timeType {
			return openapi3.NewSchemaRef("", openapi3.NewDateTimeSchema()), nil, nil
		}
		return b.object(rv)
	}
	return nil, nil, nil
}

func (b *schemaBuilder) visited(rv reflect.Value) bool {
	k := visit{typ: rv.Type(), ptr: rv.Pointer()}
	if b.seen[k] {
		return true
	}
	b.seen[k] = true
	return false
}

func (b *schemaBuilder) array(rv reflect.Value) (*openapi3.SchemaRef, *State, error) {
	arr := openapi3.NewArraySchema()
	if rv.Len() > 0 {
		item, st, err := b.value(element(rv.Index(0)))
		if err != nil {
			return nil, nil, err
		}
		if item != nil && st != nil {
			if err := st.Registry().Describe("items", st.Rules(), openapi3.NewObjectSchema(), item); err != nil {
				return nil, nil, err
			}
		}
		arr.Items = item
	}
	if arr.Items == nil {
		arr.Items = openapi3.NewSchemaRef("", openapi3.NewSchema())
	}
	return openapi3.NewSchemaRef("", arr), nil, nil
}

func (b *schemaBuilder) mapping(rv reflect.Value) (*openapi3.SchemaRef, *State, error) {
	obj := openapi3.NewObjectSchema()
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, k := range keys {
		if err := b.property(obj, fmt.Sprint(k.Interface()), rv.MapIndex(k).Interface()); err != nil {
			return nil, nil, err
		}
	}
	return openapi3.NewSchemaRef("", obj), nil, nil
}

func (b *schemaBuilder) object(rv reflect.Value) (*openapi3.SchemaRef, *State, error) {
	obj := openapi3.NewObjectSchema()
	t := rv.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Tag.Get("validate") == "-" || sf.Tag.Get("docs") == "skip" {
			continue
		}
		if err := b.property(obj, fieldKey(sf), element(rv.Field(i))); err != nil {
			return nil, nil, err
		}
	}
	return openapi3.NewSchemaRef("", obj), nil, nil
}

func (b *schemaBuilder) property(obj *openapi3.Schema, key string, v any) error {
	ref, st, err := b.value(v)
	if err != nil || ref == nil {
		return err
	}
	obj.Properties[key] = ref
	if st == nil {
		return nil
	}
	return st.Registry().Describe(key, st.Rules(), obj, ref)
}

// typeSchema returns the schema of a scalar value by its kind.
func typeSchema(v any) *openapi3.Schema {
	if t, ok := v.(time.Time); ok && !t.IsZero() {
		return openapi3.NewDateTimeSchema()
	}
	switch reflect.Indirect(reflect.ValueOf(v)).Kind() {
	case reflect.Bool:
		return openapi3.NewBoolSchema()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return openapi3.NewIntegerSchema()
	case reflect.Float32, reflect.Float64:
		return openapi3.NewFloat64Schema()
	case reflect.Slice, reflect.Array:
		return openapi3.NewArraySchema().WithItems(openapi3.NewSchema())
	case reflect.Map, reflect.Struct:
		return openapi3.NewObjectSchema()
	}
	return openapi3.NewStringSchema()
}
