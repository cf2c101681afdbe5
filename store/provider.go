package store

import (
	"context"
	"errors"
)

// ErrMissingProvider is returned when a container is requested from a
// context that never had one provided. It signals a wiring mistake.
var ErrMissingProvider = errors.New("store: container requested outside provider scope")

type providerKey struct{}

// Provide returns a child context carrying c. Everything running under the
// returned context can reach c with FromContext.
func Provide(ctx context.Context, c Container) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, providerKey{}, c)
}

// FromContext returns the container provided on ctx.
func FromContext(ctx context.Context) (Container, error) {
	if ctx == nil {
		return nil, ErrMissingProvider
	}
	c, ok := ctx.Value(providerKey{}).(Container)
	if !ok || c == nil {
		return nil, ErrMissingProvider
	}
	return c, nil
}

// MustFromContext is FromContext that panics with ErrMissingProvider.
func MustFromContext(ctx context.Context) Container {
	c, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return c
}
