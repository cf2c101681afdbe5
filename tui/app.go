package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/reactive"
	"github.com/odvcencio/furry-feed/store"
)

// ErrNoScreen is returned by Run when the app has no screen.
var ErrNoScreen = errors.New("tui: screen is required")

// Screen is the terminal the app drives. tcell.Screen satisfies it.
type Screen interface {
	Canvas
	Init() error
	Fini()
	Clear()
	Show()
	Sync()
	HideCursor()
	PollEvent() tcell.Event
}

// AppConfig configures an App.
type AppConfig struct {
	Screen    Screen
	Container store.Container
	View      *FeedView
	// Reload is called on the UI goroutine for each ReloadMsg. It must not
	// block.
	Reload        func()
	MessageBuffer int
	TickRate      time.Duration
	Logger        *slog.Logger
}

// App runs the feed view against a terminal screen.
type App struct {
	screen    Screen
	container store.Container
	view      *FeedView
	reload    func()
	logger    *slog.Logger

	messages    chan Message
	tickRate    time.Duration
	queue       *QueueScheduler
	invalidator *Invalidator

	taskCtx        context.Context
	taskCancel     context.CancelFunc
	pendingMu      sync.Mutex
	pendingEffects []Effect

	running bool
	dirty   bool
}

// NewApp creates an App from config. A nil View gets a default FeedView
// over the container.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	view := cfg.View
	if view == nil && cfg.Container != nil {
		view = NewFeedView(cfg.Container, WithViewLogger(logger))
	}
	app := &App{
		screen:    cfg.Screen,
		container: cfg.Container,
		view:      view,
		reload:    cfg.Reload,
		logger:    logger,
		messages:  make(chan Message, bufferSize),
		tickRate:  cfg.TickRate,
	}
	app.queue = NewQueueScheduler(reactive.NewQueue(), app.TryPost)
	app.invalidator = NewInvalidator(app.TryPost)
	return app
}

// Scheduler returns the scheduler that runs callbacks on the UI goroutine.
func (a *App) Scheduler() reactive.Scheduler {
	return a.queue
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	a.invalidator.Invalidate()
}

// Post sends a message to the event loop, dropping it when the buffer is
// full.
func (a *App) Post(msg Message) {
	_ = a.TryPost(msg)
}

// TryPost sends a message to the event loop without blocking.
func (a *App) TryPost(msg Message) bool {
	if a == nil || msg == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		return false
	}
}

// Spawn starts an effect using the app task context.
// If Run has not started, the effect is queued until start.
func (a *App) Spawn(effect Effect) {
	if effect.Run == nil {
		return
	}
	a.pendingMu.Lock()
	if a.taskCtx == nil {
		a.pendingEffects = append(a.pendingEffects, effect)
		a.pendingMu.Unlock()
		return
	}
	ctx := a.taskCtx
	a.pendingMu.Unlock()
	go effect.Run(ctx, a.TryPost)
}

// Run starts the event loop until quit or context cancellation.
// It returns nil on quit and the context error on cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.screen == nil {
		return ErrNoScreen
	}
	if a.view == nil {
		return errors.New("tui: container or view is required")
	}
	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer a.screen.Fini()
	a.screen.HideCursor()

	if a.container != nil {
		unsubscribe := a.container.SubscribeWithScheduler(a.queue, func(ch action.Change) {
			a.logger.Debug("state changed", "field", ch.Field)
			a.dirty = true
		})
		defer unsubscribe()
	}

	a.pendingMu.Lock()
	a.taskCtx = taskCtx
	pending := a.pendingEffects
	a.pendingEffects = nil
	a.pendingMu.Unlock()
	for _, effect := range pending {
		go effect.Run(taskCtx, a.TryPost)
	}
	defer func() {
		a.pendingMu.Lock()
		a.taskCtx = nil
		a.pendingMu.Unlock()
	}()

	go a.pollEvents()

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	a.running = true
	a.render()
	for a.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-a.messages:
			if a.update(msg) {
				a.dirty = true
			}
		case now := <-ticks:
			if a.update(TickMsg{Time: now}) {
				a.dirty = true
			}
		}
		if a.running && a.dirty {
			a.render()
			a.dirty = false
		}
	}
	a.logger.Debug("ui stopped")
	return nil
}

// update applies msg and reports whether a render is needed.
func (a *App) update(msg Message) bool {
	switch m := msg.(type) {
	case ResizeMsg:
		a.screen.Sync()
		return true
	case QueueFlushMsg:
		a.queue.Flush()
		return false
	case InvalidateMsg:
		a.invalidator.resetPending()
		return true
	case ReloadMsg:
		if a.reload != nil {
			a.reload()
		}
		return false
	default:
		dirty, cmds := a.view.Update(m)
		for _, cmd := range cmds {
			if a.handleCommand(cmd) {
				dirty = true
			}
		}
		return dirty
	}
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.running = false
		return false
	case SendMsg:
		if c.Message != nil {
			return a.update(c.Message)
		}
	case Effect:
		a.Spawn(c)
	}
	return false
}

func (a *App) render() {
	a.screen.Clear()
	a.view.Draw(a.screen)
	a.screen.Show()
}

// pollEvents forwards terminal events until the screen is finalized.
func (a *App) pollEvents() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			a.Post(keyMsg(e))
		case *tcell.EventResize:
			w, h := e.Size()
			a.Post(ResizeMsg{Width: w, Height: h})
		}
	}
}
