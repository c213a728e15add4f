package observable

import (
	"reflect"
	"sync"
)

// Option configures an Observable.
type Option[T any] func(*Observable[T])

// WithEquality replaces the comparison used to decide whether Set notifies.
func WithEquality[T any](equal func(a, b T) bool) Option[T] {
	return func(o *Observable[T]) {
		if equal != nil {
			o.equal = equal
		}
	}
}

// Observable is a writable reactive value. The zero value holds the zero
// value of T and is ready to use.
type Observable[T any] struct {
	mu    sync.RWMutex
	value T
	equal func(a, b T) bool
	subs  subscribers

	extMu sync.Mutex
	ext   map[any]any
}

// New returns an Observable holding initial.
func New[T any](initial T, opts ...Option[T]) *Observable[T] {
	o := &Observable[T]{
		value: initial,
		equal: defaultEqual[T],
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Current returns the current value as any.
func (o *Observable[T]) Current() any {
	return o.Get()
}

// Set stores v and, when it differs from the previous value, runs every
// subscriber before returning.
func (o *Observable[T]) Set(v T) {
	o.mu.Lock()
	equal := o.equal
	if equal == nil {
		equal = defaultEqual[T]
	}
	changed := !equal(o.value, v)
	o.value = v
	o.mu.Unlock()

	if changed {
		o.subs.notify()
	}
}

// Update sets the value returned by fn applied to the current value.
func (o *Observable[T]) Update(fn func(T) T) {
	o.Set(fn(o.Get()))
}

// Notify runs every subscriber without changing the value.
func (o *Observable[T]) Notify() {
	o.subs.notify()
}

// Subscribe registers fn to run after every change. The returned func
// cancels the subscription.
func (o *Observable[T]) Subscribe(fn func()) (cancel func()) {
	return o.subs.add(fn)
}

// Subscribers returns the number of active subscriptions.
func (o *Observable[T]) Subscribers() int {
	return o.subs.len()
}

// Extension returns the value stored under key, storing the result of init
// first if nothing is stored yet. init runs at most once per key.
func (o *Observable[T]) Extension(key any, init func() any) any {
	o.extMu.Lock()
	defer o.extMu.Unlock()

	if v, ok := o.ext[key]; ok {
		return v
	}
	if o.ext == nil {
		o.ext = map[any]any{}
	}
	v := init()
	o.ext[key] = v
	return v
}

// LookupExtension returns the value stored under key.
func (o *Observable[T]) LookupExtension(key any) (any, bool) {
	o.extMu.Lock()
	defer o.extMu.Unlock()
	v, ok := o.ext[key]
	return v, ok
}

// defaultEqual reports whether a and b are equal comparable values of the same
// dynamic type. Values that cannot be compared are never equal, so setting
// them always notifies.
func defaultEqual[T any](a, b T) bool {
	va, vb := reflect.ValueOf(any(a)), reflect.ValueOf(any(b))
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}
