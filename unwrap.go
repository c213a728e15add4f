package formvalidation

import "reflect"

// Unwrap normalizes x into a concrete value. A Reactive is read through
// Current; then a function taking no arguments and returning at least one
// result is called and its first result returned. Anything else is returned
// unchanged.
func Unwrap(x any) any {
	if r, ok := x.(Reactive); ok {
		x = r.Current()
	}
	return call(x)
}

func call(x any) any {
	switch f := x.(type) {
	case nil:
		return nil
	case func() any:
		return f()
	case func() bool:
		return f()
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return x
	}
	t := rv.Type()
	if t.NumIn() != 0 || t.NumOut() == 0 {
		return x
	}
	return rv.Call(nil)[0].Interface()
}
