package source

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/odvcencio/furry-feed/model"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout sorts lexically in chronological order for UTC times.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteSource reads a feed snapshot from a SQLite database.
type SQLiteSource struct {
	db   *sql.DB
	path string
	opts *options
}

// OpenSQLite opens (creating if needed) the snapshot database at path.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLiteSource, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteSource{db: db, path: path, opts: applyOptions(opts)}, nil
}

// Path returns the database path.
func (s *SQLiteSource) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Save replaces the snapshot with users and posts in one transaction.
func (s *SQLiteSource) Save(ctx context.Context, users []model.User, posts []model.Post) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	for _, u := range users {
		if s.opts.strict {
			if err = model.ValidateID(u.ID); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
			}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO users (user_id, name, email, bio, created_at) VALUES (?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, u.Bio, formatTime(u.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}
	for _, p := range posts {
		if s.opts.strict {
			if err = model.ValidateID(p.ID); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
			}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO posts (post_id, author_id, title, body, created_at) VALUES (?, ?, ?, ?, ?)`,
			p.ID, p.AuthorID, p.Title, p.Body, formatTime(p.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert post %s: %w", p.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.opts.logger.Debug("snapshot saved", "path", s.path, "users", len(users), "posts", len(posts))
	return nil
}

// Users returns users in insertion order.
func (s *SQLiteSource) Users(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, name, email, bio, created_at FROM users ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		var created string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Bio, &created); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if u.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Posts returns posts newest first.
func (s *SQLiteSource) Posts(ctx context.Context) ([]model.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT post_id, author_id, title, body, created_at FROM posts ORDER BY created_at DESC, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		var created string
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &created); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		if p.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse created_at %q: %w", s, err)
	}
	return t, nil
}
