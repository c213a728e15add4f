package formvalidation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\{(\d+)\}`)

// Text returns a Message that substitutes {0}, {1}, ... in s with the
// positional arguments of the rule parameter. A scalar parameter is {0};
// Bounds, and structs or maps with min and max fields or keys in any case,
// give {0} and {1}; other structs give their exported fields in declaration
// order and slices their elements.
// Placeholders without an argument are left as they are.
func Text(s string) Message {
	return func(param any) string {
		return format(s, formatArgs(param))
	}
}

// Format substitutes the {n} placeholders of s with args.
func Format(s string, args ...any) string {
	return format(s, args)
}

func format(s string, args []any) string {
	if len(args) == 0 {
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		i, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || i >= len(args) {
			return m
		}
		return fmt.Sprint(args[i])
	})
}

type argser interface {
	Args() []any
}

func formatArgs(param any) []any {
	switch p := param.(type) {
	case nil:
		return nil
	case argser:
		return p.Args()
	case string, []byte:
		return []any{p}
	}

	rv := reflect.Indirect(reflect.ValueOf(param))
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		if lo, hi := minMax(rv); lo.IsValid() || hi.IsValid() {
			return []any{valueOf(lo), valueOf(hi)}
		}
		if rv.Kind() == reflect.Map {
			break
		}
		args := make([]any, 0, rv.NumField())
		for i := range rv.NumField() {
			if rv.Type().Field(i).IsExported() {
				args = append(args, rv.Field(i).Interface())
			}
		}
		return args
	case reflect.Slice, reflect.Array:
		args := make([]any, rv.Len())
		for i := range rv.Len() {
			args[i] = rv.Index(i).Interface()
		}
		return args
	}
	return []any{param}
}

// minMax finds the exported fields of a struct, or the string keys of a map,
// named min and max in any case.
func minMax(rv reflect.Value) (lo, hi reflect.Value) {
	pick := func(name string, v reflect.Value) {
		switch strings.ToLower(name) {
		case "min":
			lo = v
		case "max":
			hi = v
		}
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return
		}
		iter := rv.MapRange()
		for iter.Next() {
			pick(iter.Key().String(), iter.Value())
		}
	case reflect.Struct:
		t := rv.Type()
		for i := range t.NumField() {
			if t.Field(i).IsExported() {
				pick(t.Field(i).Name, rv.Field(i))
			}
		}
	}
	return lo, hi
}

func valueOf(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}
