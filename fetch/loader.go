// Package fetch moves data from a source into a state container.
//
// Fetches run off the caller's goroutine, but every state write goes
// through Container.Submit, so each transition stays atomic.
package fetch

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/model"
	"github.com/odvcencio/furry-feed/source"
	"github.com/odvcencio/furry-feed/store"
)

// Loader fetches users and posts and submits them to a container.
type Loader struct {
	src       source.Source
	container store.Container
	logger    *slog.Logger

	// mu keeps loads from overlapping so results land in request order.
	mu sync.Mutex
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the loader logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader wires src to container.
func NewLoader(src source.Source, container store.Container, opts ...Option) *Loader {
	l := &Loader{
		src:       src,
		container: container,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load runs one fetch cycle: loading on, users and posts fetched
// concurrently, then either both lists replaced and the error cleared, or
// the error recorded, and loading off. The returned error is the fetch
// failure, also recorded in the container.
func (l *Loader) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.NewString()
	log := l.logger.With("fetch_id", id)
	log.Debug("fetch started")

	l.container.Submit(action.SetLoading{Loading: true})
	defer l.container.Submit(action.SetLoading{Loading: false})

	var (
		users []model.User
		posts []model.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = l.src.Users(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = l.src.Posts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			log.Debug("fetch canceled")
			return err
		}
		log.Warn("fetch failed", "error", err)
		l.container.Submit(action.Error(err.Error()))
		return err
	}

	l.container.Submit(action.SetUsers{Users: users})
	l.container.Submit(action.SetPosts{Posts: posts})
	if l.container.Snapshot().Error != nil {
		l.container.Submit(action.ClearError())
	}
	log.Info("fetch finished", "users", len(users), "posts", len(posts))
	return nil
}

// Follow calls Load for every value received on reloads until ctx ends or
// reloads closes. Load failures are recorded in the container and do not
// stop the loop.
func (l *Loader) Follow(ctx context.Context, reloads <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-reloads:
			if !ok {
				return nil
			}
			if err := l.Load(ctx); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}
