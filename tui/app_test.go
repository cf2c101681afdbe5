package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/model"
	"github.com/odvcencio/furry-feed/reactive"
	"github.com/odvcencio/furry-feed/store"
)

func TestQueueScheduler_CoalescesPosts(t *testing.T) {
	posted := 0
	scheduler := NewQueueScheduler(reactive.NewQueue(), func(msg Message) bool {
		if _, ok := msg.(QueueFlushMsg); ok {
			posted++
			return true
		}
		return false
	})

	calls := 0
	scheduler.Schedule(func() { calls++ })
	scheduler.Schedule(func() { calls++ })
	if posted != 1 {
		t.Fatalf("expected 1 flush post, got %d", posted)
	}
	if n := scheduler.Flush(); n != 2 || calls != 2 {
		t.Fatalf("expected 2 callbacks flushed, got %d (calls %d)", n, calls)
	}
	scheduler.Schedule(func() {})
	if posted != 2 {
		t.Fatalf("expected 2 flush posts after flush, got %d", posted)
	}
}

func TestQueueScheduler_RepostsOnFailedSend(t *testing.T) {
	attempts := 0
	scheduler := NewQueueScheduler(nil, func(Message) bool {
		attempts++
		return false
	})
	scheduler.Schedule(func() {})
	scheduler.Schedule(func() {})
	if attempts != 2 {
		t.Fatalf("expected 2 post attempts, got %d", attempts)
	}
}

func TestInvalidator_Coalesces(t *testing.T) {
	posted := 0
	invalidator := NewInvalidator(func(msg Message) bool {
		if _, ok := msg.(InvalidateMsg); ok {
			posted++
			return true
		}
		return false
	})

	invalidator.Invalidate()
	invalidator.Invalidate()
	if posted != 1 {
		t.Fatalf("expected 1 invalidate post, got %d", posted)
	}
	invalidator.resetPending()
	invalidator.Invalidate()
	if posted != 2 {
		t.Fatalf("expected 2 invalidate posts after reset, got %d", posted)
	}
}

func TestAfter(t *testing.T) {
	calls := 0
	After(0, ReloadMsg{}).Run(context.Background(), func(Message) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("expected immediate post, got %d", calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	After(time.Hour, ReloadMsg{}).Run(ctx, func(Message) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("expected canceled delay to skip posting, got %d", calls)
	}
}

func TestEvery(t *testing.T) {
	calls := 0
	Every(0, func(time.Time) Message { return ReloadMsg{} }).Run(context.Background(), func(Message) bool {
		calls++
		return true
	})
	if calls != 0 {
		t.Fatalf("expected no posts for invalid interval, got %d", calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan Message, 4)
	go Every(time.Millisecond, func(time.Time) Message { return ReloadMsg{} }).Run(ctx, func(msg Message) bool {
		got <- msg
		return true
	})
	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a tick message")
	}
	cancel()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestApp_Run(t *testing.T) {
	c, err := store.New(store.Config{})
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	screen := newFakeScreen(80, 12)
	reloads := make(chan struct{}, 4)
	app := NewApp(AppConfig{
		Screen:    screen,
		Container: c,
		Reload:    func() { reloads <- struct{}{} },
	})

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	waitFor(t, "first frame", func() bool { return strings.Contains(screen.row(0), "posts: 0") })

	c.Submit(action.SetPosts{Posts: []model.Post{{ID: "p1", Title: "Hello"}}})
	waitFor(t, "state change render", func() bool { return strings.Contains(screen.row(0), "posts: 1") })

	screen.events <- tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)
	select {
	case <-reloads:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected reload hook to run")
	}
	waitFor(t, "status note", func() bool { return strings.Contains(screen.text(), "reloading") })

	screen.events <- tcell.NewEventResize(100, 12)
	waitFor(t, "resize sync", func() bool {
		screen.mu.Lock()
		defer screen.mu.Unlock()
		return screen.syncs > 0
	})

	screen.events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error on quit, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("app did not quit")
	}
}

func TestApp_RunCanceled(t *testing.T) {
	c, _ := store.New(store.Config{})
	app := NewApp(AppConfig{Screen: newFakeScreen(10, 3), Container: c})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestApp_RunWithoutScreen(t *testing.T) {
	c, _ := store.New(store.Config{})
	if err := NewApp(AppConfig{Container: c}).Run(context.Background()); !errors.Is(err, ErrNoScreen) {
		t.Fatalf("expected ErrNoScreen, got %v", err)
	}
}

func TestApp_SpawnBeforeRun(t *testing.T) {
	c, _ := store.New(store.Config{})
	screen := newFakeScreen(40, 5)
	app := NewApp(AppConfig{Screen: screen, Container: c})
	app.Spawn(After(0, KeyMsg{Key: tcell.KeyRune, Rune: 'q'}))

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected quit from spawned effect, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("spawned effect did not run")
	}
}
