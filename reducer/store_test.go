package reducer

import (
	"sync"
	"testing"

	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/model"
	"github.com/odvcencio/furry-feed/reactive"
)

func TestStore_DispatchAndState(t *testing.T) {
	store := New()
	var changes []action.Change
	unsub := store.Subscribe(func(c action.Change) {
		changes = append(changes, c)
	})

	store.Dispatch(action.SetLoading{Loading: true})
	store.Dispatch(action.AddPost{Post: model.Post{ID: "1"}})

	state := store.State()
	if !state.Loading || len(state.Posts) != 1 {
		t.Fatalf("unexpected state %+v", state)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	if changes[1].Field != action.FieldPosts || changes[1].Action.Kind() != action.KindAddPost {
		t.Fatalf("unexpected change %+v", changes[1])
	}
	if len(changes[1].State.Posts) != 1 {
		t.Fatalf("expected change to carry the committed state")
	}

	unsub()
	store.Dispatch(action.SetLoading{Loading: false})
	if len(changes) != 2 {
		t.Fatalf("expected no changes after unsubscribe, got %d", len(changes))
	}
}

func TestStore_UnknownActionDoesNotNotify(t *testing.T) {
	store := New()
	calls := 0
	store.Subscribe(func(action.Change) { calls++ })

	store.Dispatch(nil)
	if calls != 0 {
		t.Fatalf("expected no notice for unknown action, got %d", calls)
	}
}

func TestStore_SubscribeField(t *testing.T) {
	store := New()
	posts := 0
	store.SubscribeField(action.FieldPosts, func(action.Change) { posts++ })

	store.Dispatch(action.SetUsers{Users: []model.User{{ID: "u1"}}})
	store.Dispatch(action.SetPosts{Posts: nil})
	store.Dispatch(action.AddPost{Post: model.Post{ID: "p"}})

	if posts != 2 {
		t.Fatalf("expected 2 posts notices, got %d", posts)
	}
}

func TestStore_SubscribeWithScheduler(t *testing.T) {
	store := New()
	queue := reactive.NewQueue()
	calls := 0
	store.SubscribeWithScheduler(queue, func(action.Change) { calls++ })

	store.Dispatch(action.SetLoading{Loading: true})
	if calls != 0 {
		t.Fatalf("expected delivery to be queued")
	}
	queue.Flush()
	if calls != 1 {
		t.Fatalf("expected delivery after flush, got %d", calls)
	}
}

func TestStore_ListenerMayDispatch(t *testing.T) {
	store := New()
	store.SubscribeField(action.FieldError, func(c action.Change) {
		if c.State.Error != nil {
			store.Dispatch(action.SetLoading{Loading: false})
		}
	})
	store.Dispatch(action.SetLoading{Loading: true})
	store.Dispatch(action.Error("boom"))

	if store.State().Loading {
		t.Fatalf("expected nested dispatch to clear loading")
	}
}

func TestStore_WithInitial(t *testing.T) {
	initial := model.Initial()
	initial.Loading = true
	store := New(WithInitial(initial), WithLogger(nil))
	if !store.State().Loading {
		t.Fatalf("expected initial loading state")
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	store := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Dispatch(action.AddPost{Post: model.Post{ID: "p"}})
		}()
	}
	wg.Wait()
	if got := len(store.State().Posts); got != 50 {
		t.Fatalf("expected 50 posts, got %d", got)
	}
}
