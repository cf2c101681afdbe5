package reactive

import "sync"

type hubEntry[E any] struct {
	fn        func(E)
	scheduler Scheduler
}

// Hub is a registry of listeners for events of type E. The zero value is
// ready to use. Listeners receive events in registration order.
type Hub[E any] struct {
	mu   sync.Mutex
	subs map[int]hubEntry[E]
	next int
}

// Subscribe registers fn, delivered through scheduler when non-nil.
// The returned func unsubscribes and is safe to call more than once.
func (h *Hub[E]) Subscribe(scheduler Scheduler, fn func(E)) func() {
	if h == nil || fn == nil {
		return func() {}
	}
	h.mu.Lock()
	if h.subs == nil {
		h.subs = make(map[int]hubEntry[E])
	}
	id := h.next
	h.next++
	h.subs[id] = hubEntry[E]{fn: fn, scheduler: scheduler}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Len reports the number of registered listeners.
func (h *Hub[E]) Len() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Publish delivers e to every listener. It must not be called with a lock
// held that listeners may need.
func (h *Hub[E]) Publish(e E) {
	if h == nil {
		return
	}
	for _, entry := range h.snapshot() {
		if entry.scheduler == nil {
			entry.fn(e)
			continue
		}
		fn := entry.fn
		entry.scheduler.Schedule(func() { fn(e) })
	}
}

func (h *Hub[E]) snapshot() []hubEntry[E] {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.subs) == 0 {
		return nil
	}
	out := make([]hubEntry[E], 0, len(h.subs))
	for id := 0; id < h.next; id++ {
		if entry, ok := h.subs[id]; ok {
			out = append(out, entry)
		}
	}
	return out
}
