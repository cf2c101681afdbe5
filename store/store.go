// Package store defines the capability every state container offers and
// the context-scoped provider used to reach it.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/model"
	"github.com/odvcencio/furry-feed/observable"
	"github.com/odvcencio/furry-feed/reactive"
	"github.com/odvcencio/furry-feed/reducer"
)

// Container owns application state and exposes read, submit and subscribe.
// Submit never blocks on I/O and never fails.
//
// Subscribers see every write that changes state. A write that leaves a
// field as it was may or may not notify depending on the backend: the
// reducer notifies for every known action, the observable backend skips
// repeated loading values.
type Container interface {
	Snapshot() model.AppState
	Submit(a action.Action)
	Subscribe(fn action.ChangeFunc) func()
	SubscribeWithScheduler(scheduler reactive.Scheduler, fn action.ChangeFunc) func()
}

var (
	_ Container = (*reducer.Store)(nil)
	_ Container = (*observable.RootStore)(nil)
)

// Backend selects a Container implementation.
type Backend string

const (
	BackendReducer    Backend = "reducer"
	BackendObservable Backend = "observable"
)

// ErrUnknownBackend is returned by New and ParseBackend for unsupported names.
var ErrUnknownBackend = errors.New("store: unknown backend")

// ParseBackend resolves a backend name, case-insensitively.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendReducer, BackendObservable:
		return b, nil
	case "":
		return BackendReducer, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// Config configures New.
type Config struct {
	Backend Backend
	Logger  *slog.Logger
}

// New builds an empty container for cfg.Backend.
func New(cfg Config) (Container, error) {
	switch cfg.Backend {
	case BackendReducer, "":
		return reducer.New(reducer.WithLogger(cfg.Logger)), nil
	case BackendObservable:
		return observable.NewRootStore(observable.WithLogger(cfg.Logger)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
