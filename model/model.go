// Package model defines the feed entities and the application state
// aggregate shared by every state container.
package model

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// User is a feed participant.
type User struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email,omitempty" yaml:"email,omitempty"`
	Bio       string    `json:"bio,omitempty" yaml:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Post is a feed entry. Body is markdown.
type Post struct {
	ID        string    `json:"id" yaml:"id"`
	AuthorID  string    `json:"author_id,omitempty" yaml:"author_id,omitempty"`
	Title     string    `json:"title" yaml:"title"`
	Body      string    `json:"body,omitempty" yaml:"body,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a ULID for t. IDs generated in the same millisecond sort in
// generation order.
func NewID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// ValidateID reports whether id is a well-formed ULID.
func ValidateID(id string) error {
	if _, err := ulid.ParseStrict(id); err != nil {
		return fmt.Errorf("invalid id %q: %w", id, err)
	}
	return nil
}

// NewUser creates a user with a fresh ID.
func NewUser(name, email string) User {
	now := time.Now().UTC()
	return User{
		ID:        NewID(now),
		Name:      name,
		Email:     email,
		CreatedAt: now,
	}
}

// NewPost creates a post with a fresh ID.
func NewPost(authorID, title, body string) Post {
	now := time.Now().UTC()
	return Post{
		ID:        NewID(now),
		AuthorID:  authorID,
		Title:     title,
		Body:      body,
		CreatedAt: now,
	}
}
