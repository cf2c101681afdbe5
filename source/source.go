// Package source loads users and posts from outside the process.
//
// A Source is the collaborator that feeds a state container. Fixture files
// and SQLite snapshots are supported; both return posts newest first.
package source

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/odvcencio/furry-feed/model"
)

// Source fetches feed data.
type Source interface {
	Users(ctx context.Context) ([]model.User, error)
	Posts(ctx context.Context) ([]model.Post, error)
}

var (
	// ErrNoFixtures is returned when a fixture pattern matches no files.
	ErrNoFixtures = errors.New("source: no fixture files matched")
	// ErrInvalidRecord is returned for records that fail validation.
	ErrInvalidRecord = errors.New("source: invalid record")
)

// Option configures sources and watchers.
type Option func(*options)

type options struct {
	logger *slog.Logger
	strict bool
}

func defaultOptions() *options {
	return &options{logger: slog.New(slog.DiscardHandler)}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrictIDs rejects records whose IDs are not ULIDs instead of
// accepting any non-empty ID.
func WithStrictIDs(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// newestFirst orders posts by creation time, newest first, keeping input
// order for ties.
func newestFirst(posts []model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
