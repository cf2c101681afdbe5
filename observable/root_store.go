package observable

import (
	"log/slog"
	"sync"

	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/model"
	"github.com/odvcencio/furry-feed/reactive"
)

// Option configures a RootStore.
type Option func(*RootStore)

// WithLogger sets the logger used for submit tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *RootStore) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// RootStore composes the user and post stores. Build one at startup and
// pass it to whatever needs it.
//
// Submit applies an action through the store setters. Listeners added with
// Subscribe see one Change per written field once Submit has finished;
// listeners attached to individual fields run inside the write and must
// not call Submit.
type RootStore struct {
	Users *UserStore
	Posts *PostStore

	logger *slog.Logger

	submitMu sync.Mutex

	bufMu    sync.Mutex
	batching bool
	batch    []action.Field

	changes reactive.Hub[action.Change]
}

// NewRootStore constructs both stores together.
func NewRootStore(opts ...Option) *RootStore {
	r := &RootStore{
		Users:  NewUserStore(),
		Posts:  NewPostStore(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, obs := range append(r.Users.observables(), r.Posts.observables()...) {
		obs.Subscribe(r.onNotice)
	}
	return r
}

// Submit applies a to the stores. Unknown actions are ignored.
func (r *RootStore) Submit(a action.Action) {
	r.submitMu.Lock()
	r.bufMu.Lock()
	r.batching = true
	r.batch = r.batch[:0]
	r.bufMu.Unlock()

	ok := r.apply(a)

	r.bufMu.Lock()
	fields := append([]action.Field(nil), r.batch...)
	r.batching = false
	r.bufMu.Unlock()

	// Snapshot before releasing submitMu so State matches this action.
	var state model.AppState
	if ok && len(fields) > 0 {
		state = r.Snapshot()
	}
	r.submitMu.Unlock()

	if !ok {
		r.logger.Debug("ignored unknown action", "action", a)
		return
	}
	r.logger.Debug("submit", "kind", a.Kind(), "fields", len(fields))
	if len(fields) == 0 {
		return
	}
	for _, f := range fields {
		r.changes.Publish(action.Change{Action: a, Field: f, State: state})
	}
}

func (r *RootStore) apply(a action.Action) bool {
	switch act := a.(type) {
	case action.SetUsers:
		r.Users.SetUsers(act.Users)
	case action.SetPosts:
		r.Posts.SetPosts(act.Posts)
	case action.SetCurrentUser:
		r.Users.SetCurrentUser(act.User)
	case action.SetLoading:
		r.Users.SetLoading(act.Loading)
		r.Posts.SetLoading(act.Loading)
	case action.SetError:
		r.Users.SetError(act.Err)
		r.Posts.SetError(act.Err)
	case action.AddPost:
		r.Posts.AddPost(act.Post)
	default:
		return false
	}
	return true
}

func (r *RootStore) onNotice(n reactive.Notice) {
	field := action.Field(n.Field)
	r.bufMu.Lock()
	if r.batching {
		for _, f := range r.batch {
			if f == field {
				r.bufMu.Unlock()
				return
			}
		}
		r.batch = append(r.batch, field)
		r.bufMu.Unlock()
		return
	}
	r.bufMu.Unlock()
	r.changes.Publish(action.Change{Field: field, State: r.Snapshot()})
}

// Snapshot assembles the current state. Loading is set when either store
// is loading; the user store error wins over the post store error.
func (r *RootStore) Snapshot() model.AppState {
	errMsg := r.Users.Error.Get()
	if errMsg == nil {
		errMsg = r.Posts.Error.Get()
	}
	return model.AppState{
		Users:       r.Users.Users.Get(),
		Posts:       r.Posts.Posts.Get(),
		CurrentUser: r.Users.CurrentUser.Get(),
		Loading:     r.Users.Loading.Get() || r.Posts.Loading.Get(),
		Error:       errMsg,
	}
}

// Subscribe registers fn for every field write.
func (r *RootStore) Subscribe(fn action.ChangeFunc) func() {
	return r.changes.Subscribe(nil, fn)
}

// SubscribeWithScheduler registers fn delivered through scheduler.
func (r *RootStore) SubscribeWithScheduler(scheduler reactive.Scheduler, fn action.ChangeFunc) func() {
	return r.changes.Subscribe(scheduler, fn)
}

// PostsCount returns the number of posts.
func (r *RootStore) PostsCount() int {
	return r.Posts.PostsCount()
}
