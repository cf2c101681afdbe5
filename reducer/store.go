package reducer

import (
	"log/slog"
	"sync"

	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/model"
	"github.com/odvcencio/furry-feed/reactive"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for transition tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithInitial replaces the starting state.
func WithInitial(state model.AppState) Option {
	return func(s *Store) {
		s.state = state
	}
}

// Store owns an AppState and applies actions to it one at a time.
//
// Listeners run after the transition has been committed and the store lock
// released, so a listener may Dispatch again.
type Store struct {
	mu     sync.RWMutex
	state  model.AppState
	logger *slog.Logger

	subs reactive.Hub[action.Change]
}

// New creates a Store holding model.Initial().
func New(opts ...Option) *Store {
	s := &Store{
		state:  model.Initial(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() model.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() model.AppState {
	return s.State()
}

// Dispatch applies a and notifies listeners. Unknown actions are ignored.
func (s *Store) Dispatch(a action.Action) {
	s.mu.Lock()
	next, ok := reduce(s.state, a)
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("ignored unknown action", "action", a)
		return
	}
	s.state = next
	s.mu.Unlock()

	s.logger.Debug("dispatch", "kind", a.Kind(), "posts", len(next.Posts), "users", len(next.Users))
	s.subs.Publish(action.Change{Action: a, Field: a.Field(), State: next})
}

// Submit is Dispatch under the container name.
func (s *Store) Submit(a action.Action) {
	s.Dispatch(a)
}

// Subscribe registers fn for every committed transition.
func (s *Store) Subscribe(fn action.ChangeFunc) func() {
	return s.subs.Subscribe(nil, fn)
}

// SubscribeWithScheduler registers fn delivered through scheduler.
func (s *Store) SubscribeWithScheduler(scheduler reactive.Scheduler, fn action.ChangeFunc) func() {
	return s.subs.Subscribe(scheduler, fn)
}

// SubscribeField registers fn for transitions that write field.
func (s *Store) SubscribeField(field action.Field, fn action.ChangeFunc) func() {
	if fn == nil {
		return func() {}
	}
	return s.subs.Subscribe(nil, func(c action.Change) {
		if c.Field == field {
			fn(c)
		}
	})
}
