package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/odvcencio/furry-feed/model"
)

// Fixture is the YAML layout of a fixture file.
type Fixture struct {
	Users []model.User `yaml:"users"`
	Posts []model.Post `yaml:"posts"`
}

// FixtureSource reads users and posts from YAML files matched by a
// doublestar pattern such as "fixtures/**/*.yaml".
type FixtureSource struct {
	root    string
	pattern string
	opts    *options
}

// NewFixtureSource creates a source for pattern. Relative patterns are
// resolved against the working directory.
func NewFixtureSource(pattern string, opts ...Option) *FixtureSource {
	root, rel := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return &FixtureSource{
		root:    filepath.FromSlash(root),
		pattern: rel,
		opts:    applyOptions(opts),
	}
}

// Root returns the directory the pattern is matched under.
func (s *FixtureSource) Root() string {
	return s.root
}

// Pattern returns the pattern relative to Root.
func (s *FixtureSource) Pattern() string {
	return s.pattern
}

// Files returns matching fixture paths in lexical order.
func (s *FixtureSource) Files() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(s.root), s.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", s.pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFixtures, filepath.Join(s.root, s.pattern))
	}
	sort.Strings(matches)
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(s.root, filepath.FromSlash(m))
	}
	return paths, nil
}

// Load reads and merges every fixture file.
func (s *FixtureSource) Load(ctx context.Context) (Fixture, error) {
	files, err := s.Files()
	if err != nil {
		return Fixture{}, err
	}
	var merged Fixture
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return Fixture{}, err
		}
		f, err := readFixture(path)
		if err != nil {
			return Fixture{}, err
		}
		merged.Users = append(merged.Users, f.Users...)
		merged.Posts = append(merged.Posts, f.Posts...)
	}
	if err := s.normalize(&merged); err != nil {
		return Fixture{}, err
	}
	s.opts.logger.Debug("fixtures loaded", "files", len(files), "users", len(merged.Users), "posts", len(merged.Posts))
	return merged, nil
}

// Users returns every user across the fixture files.
func (s *FixtureSource) Users(ctx context.Context) ([]model.User, error) {
	f, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return f.Users, nil
}

// Posts returns every post across the fixture files, newest first.
func (s *FixtureSource) Posts(ctx context.Context) ([]model.Post, error) {
	f, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return f.Posts, nil
}

func (s *FixtureSource) normalize(f *Fixture) error {
	now := time.Now().UTC()
	if f.Users == nil {
		f.Users = []model.User{}
	}
	if f.Posts == nil {
		f.Posts = []model.Post{}
	}
	for i := range f.Users {
		u := &f.Users[i]
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now
		}
		if err := s.checkID(&u.ID, u.CreatedAt); err != nil {
			return fmt.Errorf("user %q: %w", u.Name, err)
		}
	}
	for i := range f.Posts {
		p := &f.Posts[i]
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if err := s.checkID(&p.ID, p.CreatedAt); err != nil {
			return fmt.Errorf("post %q: %w", p.Title, err)
		}
	}
	newestFirst(f.Posts)
	return nil
}

func (s *FixtureSource) checkID(id *string, created time.Time) error {
	if *id == "" {
		*id = model.NewID(created)
		return nil
	}
	if !s.opts.strict {
		return nil
	}
	if err := model.ValidateID(*id); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}

func readFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return f, nil
}

// WriteFixture writes f as YAML to path, creating parent directories.
func WriteFixture(path string, f Fixture) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
