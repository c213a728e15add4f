// Package observable provides the reactive value-holders validated by
// formvalidation.
//
// An [Observable] is a writable value that notifies its subscribers
// synchronously, in subscription order, before [Observable.Set] returns:
//
//	name := observable.New("")
//	cancel := name.Subscribe(func() { fmt.Println("changed:", name.Get()) })
//	name.Set("gopher") // prints before Set returns
//	cancel()
//
// A [Computed] is a read-only value derived from other reactive values and an
// [Array] is a writable ordered collection. All types are safe for concurrent
// use; subscribers are never called while an internal lock is held, so a
// subscriber may read or write any reactive value, including the one that
// notified it.
package observable
