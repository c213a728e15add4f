package observable

import "slices"

// Array is a writable reactive ordered collection. Every mutation notifies.
type Array[T any] struct {
	items *Observable[[]T]
}

// NewArray returns an Array holding a copy of items.
func NewArray[T any](items ...T) *Array[T] {
	return &Array[T]{
		items: New(slices.Clone(items), WithEquality(func(_, _ []T) bool { return false })),
	}
}

// Get returns a snapshot of the elements; mutating it does not affect the array.
func (a *Array[T]) Get() []T {
	return slices.Clone(a.items.Get())
}

// Current returns the snapshot from Get as any.
func (a *Array[T]) Current() any {
	return a.Get()
}

// Len returns the number of elements.
func (a *Array[T]) Len() int {
	return len(a.items.Get())
}

// Set replaces the elements with a copy of items.
func (a *Array[T]) Set(items []T) {
	a.items.Set(slices.Clone(items))
}

// Push appends items.
func (a *Array[T]) Push(items ...T) {
	a.items.Update(func(cur []T) []T {
		return append(slices.Clone(cur), items...)
	})
}

// RemoveAt removes the element at index i. Out of range indexes are ignored.
func (a *Array[T]) RemoveAt(i int) {
	cur := a.items.Get()
	if i < 0 || i >= len(cur) {
		return
	}
	a.items.Set(slices.Delete(slices.Clone(cur), i, i+1))
}

// Subscribe registers fn to run after every mutation.
func (a *Array[T]) Subscribe(fn func()) (cancel func()) {
	return a.items.Subscribe(fn)
}

// Extension implements the holder extension slot.
func (a *Array[T]) Extension(key any, init func() any) any {
	return a.items.Extension(key, init)
}

// LookupExtension implements the holder extension slot.
func (a *Array[T]) LookupExtension(key any) (any, bool) {
	return a.items.LookupExtension(key)
}
