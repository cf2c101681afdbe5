package model

import (
	"testing"
	"time"
)

func TestInitial(t *testing.T) {
	s := Initial()
	if s.Users == nil || len(s.Users) != 0 {
		t.Fatalf("expected empty non-nil users, got %v", s.Users)
	}
	if s.Posts == nil || len(s.Posts) != 0 {
		t.Fatalf("expected empty non-nil posts, got %v", s.Posts)
	}
	if s.CurrentUser != nil || s.Loading || s.Error != nil {
		t.Fatalf("expected zero scalar fields, got %+v", s)
	}
	if s.ErrorText() != "" {
		t.Fatalf("expected empty error text")
	}
}

func TestNewID_Monotonic(t *testing.T) {
	now := time.Now()
	prev := NewID(now)
	for i := 0; i < 100; i++ {
		next := NewID(now)
		if next <= prev {
			t.Fatalf("expected increasing ids, got %s after %s", next, prev)
		}
		if err := ValidateID(next); err != nil {
			t.Fatalf("expected valid id: %v", err)
		}
		prev = next
	}
}

func TestValidateID_Rejects(t *testing.T) {
	if err := ValidateID("not-a-ulid"); err == nil {
		t.Fatalf("expected error for malformed id")
	}
}

func TestFindUser(t *testing.T) {
	ada := NewUser("ada", "ada@example.com")
	s := Initial()
	s.Users = []User{ada}

	got, ok := s.FindUser(ada.ID)
	if !ok || got.Name != "ada" {
		t.Fatalf("expected to find ada, got %+v ok=%v", got, ok)
	}
	if _, ok := s.FindUser("missing"); ok {
		t.Fatalf("expected missing user to be absent")
	}
}

func TestNewPost(t *testing.T) {
	p := NewPost("author", "hello", "*body*")
	if p.ID == "" || p.AuthorID != "author" || p.Title != "hello" {
		t.Fatalf("unexpected post %+v", p)
	}
	if p.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}
