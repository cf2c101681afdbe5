package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher signals when fixture files matching a pattern change.
type Watcher struct {
	root     string
	pattern  string
	debounce time.Duration
	opts     *options
}

// NewWatcher watches the files a FixtureSource reads.
func NewWatcher(src *FixtureSource, debounce time.Duration, opts ...Option) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		root:     src.Root(),
		pattern:  src.Pattern(),
		debounce: debounce,
		opts:     applyOptions(opts),
	}
}

// Watch starts watching and returns a channel that receives one value per
// settled burst of changes. The channel closes when ctx ends.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.addTree(watcher, w.root); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)
	go w.run(ctx, watcher, out)
	return out, nil
}

func (w *Watcher) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context, watcher *fsnotify.Watcher, out chan<- struct{}) {
	defer close(out)
	defer watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if w.handle(watcher, event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.opts.logger.Error("fsnotify error", "error", err)
		case <-timer.C:
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}

// handle reports whether event touches a watched fixture.
func (w *Watcher) handle(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if isDir(event.Name) {
			if err := w.addTree(watcher, event.Name); err != nil {
				w.opts.logger.Debug("watch new dir failed", "path", event.Name, "error", err)
			}
			return false
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return false
	}
	ok, err := doublestar.Match(w.pattern, filepath.ToSlash(rel))
	if err != nil || !ok {
		return false
	}
	w.opts.logger.Debug("fixture changed", "path", event.Name, "op", event.Op.String())
	return true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
