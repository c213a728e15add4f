package observable

import "sync"

// Subscribable is anything that reports changes.
type Subscribable interface {
	Subscribe(fn func()) (cancel func())
}

// Computed is a read-only value derived from other reactive values. It
// re-evaluates whenever one of its dependencies changes and notifies its own
// subscribers only when the result differs.
type Computed[T any] struct {
	mu    sync.RWMutex
	fn    func() T
	value T
	equal func(a, b T) bool
	subs  subscribers
	deps  []func()
}

// Compute evaluates fn now and again after every change of deps.
func Compute[T any](fn func() T, deps ...Subscribable) *Computed[T] {
	c := &Computed[T]{
		fn:    fn,
		value: fn(),
		equal: defaultEqual[T],
	}
	for _, d := range deps {
		c.deps = append(c.deps, d.Subscribe(c.recompute))
	}
	return c
}

func (c *Computed[T]) recompute() {
	v := c.fn()

	c.mu.Lock()
	changed := !c.equal(c.value, v)
	c.value = v
	c.mu.Unlock()

	if changed {
		c.subs.notify()
	}
}

// Get returns the last computed value.
func (c *Computed[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Current returns the last computed value as any.
func (c *Computed[T]) Current() any {
	return c.Get()
}

// Subscribe registers fn to run after the computed value changes.
func (c *Computed[T]) Subscribe(fn func()) (cancel func()) {
	return c.subs.add(fn)
}

// Dispose stops tracking the dependencies. The last value stays readable.
func (c *Computed[T]) Dispose() {
	c.mu.Lock()
	deps := c.deps
	c.deps = nil
	c.mu.Unlock()

	for _, cancel := range deps {
		cancel()
	}
}
