// Package reactive provides observable fields and derived values with an
// explicit subscribe contract.
//
// Every write to a Field produces a Notice naming the field. Listeners run
// synchronously in the writer's goroutine unless they were registered with
// a Scheduler.
package reactive

import "sync"

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// Notice describes a write to a named field.
type Notice struct {
	Field string
}

// Listener receives write notices.
type Listener func(Notice)

// Observable emits write notices.
type Observable interface {
	Subscribe(fn Listener) func()
}

// Field holds a mutable value and notifies listeners on every write.
type Field[T any] struct {
	name  string
	mu    sync.Mutex
	value T
	equal EqualFunc[T]
	subs  Hub[Notice]
}

// NewField creates a named field with an initial value.
func NewField[T any](name string, initial T) *Field[T] {
	return &Field[T]{name: name, value: initial}
}

// Name returns the field name carried in notices.
func (f *Field[T]) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

// SetEqualFunc configures the equality check used to suppress redundant writes.
func (f *Field[T]) SetEqualFunc(fn EqualFunc[T]) {
	if f == nil {
		return
	}
	f.mu.Lock()
	f.equal = fn
	f.mu.Unlock()
}

// Get returns the current value.
func (f *Field[T]) Get() T {
	if f == nil {
		var zero T
		return zero
	}
	f.mu.Lock()
	value := f.value
	f.mu.Unlock()
	return value
}

// Set assigns value and notifies listeners. It reports false when the
// equal func considers the write redundant.
func (f *Field[T]) Set(value T) bool {
	if f == nil {
		return false
	}
	f.mu.Lock()
	if f.equal != nil && f.equal(f.value, value) {
		f.mu.Unlock()
		return false
	}
	f.value = value
	f.mu.Unlock()

	f.subs.Publish(Notice{Field: f.name})
	return true
}

// Update replaces the value with fn(current) atomically.
// fn runs under the field lock and must not call back into the field.
func (f *Field[T]) Update(fn func(T) T) bool {
	if f == nil || fn == nil {
		return false
	}
	f.mu.Lock()
	next := fn(f.value)
	if f.equal != nil && f.equal(f.value, next) {
		f.mu.Unlock()
		return false
	}
	f.value = next
	f.mu.Unlock()

	f.subs.Publish(Notice{Field: f.name})
	return true
}

// Subscribe registers a listener that runs synchronously on each write.
func (f *Field[T]) Subscribe(fn Listener) func() {
	return f.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers a listener delivered through scheduler.
// A nil scheduler delivers synchronously.
func (f *Field[T]) SubscribeWithScheduler(scheduler Scheduler, fn Listener) func() {
	if f == nil {
		return func() {}
	}
	return f.subs.Subscribe(scheduler, fn)
}
