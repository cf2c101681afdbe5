package tui

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

type cell struct {
	r     rune
	style tcell.Style
}

// fakeScreen records cells in memory and feeds events from a channel.
type fakeScreen struct {
	mu     sync.Mutex
	w, h   int
	cells  map[[2]int]cell
	shows  int
	syncs  int
	events chan tcell.Event
	once   sync.Once
}

func newFakeScreen(w, h int) *fakeScreen {
	return &fakeScreen{w: w, h: h, cells: map[[2]int]cell{}, events: make(chan tcell.Event, 16)}
}

func (s *fakeScreen) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.cells[[2]int{x, y}] = cell{r: primary, style: style}
}

func (s *fakeScreen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

func (s *fakeScreen) Init() error { return nil }

func (s *fakeScreen) Fini() {
	s.once.Do(func() { close(s.events) })
}

func (s *fakeScreen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells = map[[2]int]cell{}
}

func (s *fakeScreen) Show() {
	s.mu.Lock()
	s.shows++
	s.mu.Unlock()
}

func (s *fakeScreen) Sync() {
	s.mu.Lock()
	s.syncs++
	s.mu.Unlock()
}

func (s *fakeScreen) HideCursor() {}

func (s *fakeScreen) PollEvent() tcell.Event {
	ev, ok := <-s.events
	if !ok {
		return nil
	}
	return ev
}

func (s *fakeScreen) row(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	for x := 0; x < s.w; x++ {
		c, ok := s.cells[[2]int{x, y}]
		if !ok {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.r)
	}
	return strings.TrimRight(b.String(), " ")
}

func (s *fakeScreen) text() string {
	lines := make([]string, s.h)
	for y := range lines {
		lines[y] = s.row(y)
	}
	return strings.Join(lines, "\n")
}
