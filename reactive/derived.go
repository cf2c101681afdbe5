package reactive

import "sync"

// Derived is a read-only value computed from other observables.
//
// Get always recomputes, so the value is never stale. Listeners are told
// when a dependency write changes the derived result.
type Derived[T any] struct {
	name    string
	compute func() T

	mu     sync.Mutex
	last   T
	equal  EqualFunc[T]
	unsubs []func()
	subs   Hub[Notice]
}

// NewDerived creates a derived value tracking deps.
func NewDerived[T any](name string, compute func() T, deps ...Observable) *Derived[T] {
	if compute == nil {
		compute = func() T {
			var zero T
			return zero
		}
	}
	d := &Derived[T]{
		name:    name,
		compute: compute,
		last:    compute(),
	}
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		if unsub := dep.Subscribe(d.refresh); unsub != nil {
			d.unsubs = append(d.unsubs, unsub)
		}
	}
	return d
}

// Name returns the name carried in notices.
func (d *Derived[T]) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

// SetEqualFunc configures the check used to suppress notices when a
// dependency write leaves the result unchanged.
func (d *Derived[T]) SetEqualFunc(fn EqualFunc[T]) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.equal = fn
	d.mu.Unlock()
}

// Get computes and returns the current value.
func (d *Derived[T]) Get() T {
	if d == nil {
		var zero T
		return zero
	}
	return d.compute()
}

// Subscribe registers a listener for result changes.
func (d *Derived[T]) Subscribe(fn Listener) func() {
	return d.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers a listener delivered through scheduler.
func (d *Derived[T]) SubscribeWithScheduler(scheduler Scheduler, fn Listener) func() {
	if d == nil {
		return func() {}
	}
	return d.subs.Subscribe(scheduler, fn)
}

// Stop detaches from dependencies. Get keeps working.
func (d *Derived[T]) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	unsubs := d.unsubs
	d.unsubs = nil
	d.mu.Unlock()
	for _, unsub := range unsubs {
		if unsub != nil {
			unsub()
		}
	}
}

func (d *Derived[T]) refresh(Notice) {
	next := d.compute()
	d.mu.Lock()
	if d.equal != nil && d.equal(d.last, next) {
		d.mu.Unlock()
		return
	}
	d.last = next
	d.mu.Unlock()
	d.subs.Publish(Notice{Field: d.name})
}
