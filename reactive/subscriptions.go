package reactive

import "sync"

// Subscriptions groups unsubscribe callbacks so a view can drop all of its
// listeners at once.
type Subscriptions struct {
	mu     sync.Mutex
	unsubs []func()
	sched  Scheduler
}

// NewSubscriptions creates a Subscriptions with a default scheduler.
func NewSubscriptions(scheduler Scheduler) *Subscriptions {
	return &Subscriptions{sched: scheduler}
}

// Scheduler returns the default scheduler.
func (s *Subscriptions) Scheduler() Scheduler {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched
}

// Add tracks an unsubscribe callback.
func (s *Subscriptions) Add(unsub func()) {
	if s == nil || unsub == nil {
		return
	}
	s.mu.Lock()
	s.unsubs = append(s.unsubs, unsub)
	s.mu.Unlock()
}

// Observe subscribes fn to obs through the default scheduler.
func (s *Subscriptions) Observe(obs Observable, fn Listener) {
	if s == nil || obs == nil || fn == nil {
		return
	}
	scheduler := s.Scheduler()
	if scheduler == nil {
		s.Add(obs.Subscribe(fn))
		return
	}
	if sched, ok := obs.(interface {
		SubscribeWithScheduler(Scheduler, Listener) func()
	}); ok {
		s.Add(sched.SubscribeWithScheduler(scheduler, fn))
		return
	}
	s.Add(obs.Subscribe(func(n Notice) {
		scheduler.Schedule(func() { fn(n) })
	}))
}

// Len reports how many subscriptions are tracked.
func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.unsubs)
}

// Clear unsubscribes everything tracked.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}
