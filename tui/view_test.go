package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/model"
	"github.com/odvcencio/furry-feed/render"
	"github.com/odvcencio/furry-feed/store"
)

func newContainer(t *testing.T, backend store.Backend) store.Container {
	t.Helper()
	c, err := store.New(store.Config{Backend: backend})
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return c
}

func seed(c store.Container) {
	c.Submit(action.SetUsers{Users: []model.User{
		{ID: "u1", Name: "Ada"},
		{ID: "u2", Name: "Grace"},
	}})
	c.Submit(action.SetPosts{Posts: []model.Post{
		{ID: "p2", AuthorID: "u2", Title: "Compilers", Body: "Nobody believed **me**."},
		{ID: "p1", AuthorID: "u1", Title: "Engines", Body: "Notes on the engine."},
	}})
}

func press(r rune) KeyMsg {
	return KeyMsg{Key: tcell.KeyRune, Rune: r}
}

func TestFeedView_Draw(t *testing.T) {
	c := newContainer(t, store.BackendReducer)
	seed(c)
	u := c.Snapshot().Users[0]
	c.Submit(action.CurrentUser(u))
	c.Submit(action.Error("fetch failed"))

	screen := newFakeScreen(80, 20)
	NewFeedView(c).Draw(screen)

	header := screen.row(0)
	if !strings.Contains(header, "user: Ada") || !strings.Contains(header, "posts: 2") {
		t.Fatalf("unexpected header %q", header)
	}
	if !strings.Contains(screen.row(1), "error: fetch failed") {
		t.Fatalf("expected error row, got %q", screen.row(1))
	}
	text := screen.text()
	for _, want := range []string{"▶ Ada", "  Grace", "Compilers · Grace", "Nobody believed me.", "Engines · Ada", helpText} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q on screen:\n%s", want, text)
		}
	}
	if strings.Index(text, "Compilers") > strings.Index(text, "Engines") {
		t.Fatalf("expected newest post first:\n%s", text)
	}
}

func TestFeedView_DrawEmptyAndNarrow(t *testing.T) {
	c := newContainer(t, store.BackendObservable)
	screen := newFakeScreen(30, 6)
	NewFeedView(c).Draw(screen)
	if !strings.Contains(screen.row(0), "user: none") {
		t.Fatalf("unexpected header %q", screen.row(0))
	}
	if !strings.Contains(screen.text(), "No posts yet.") {
		t.Fatalf("expected empty feed note:\n%s", screen.text())
	}
	if strings.Contains(screen.text(), "Users") {
		t.Fatalf("expected users column hidden on narrow screens")
	}

	NewFeedView(c).Draw(newFakeScreen(0, 0))
}

func TestFeedView_SelectUser(t *testing.T) {
	for _, backend := range []store.Backend{store.BackendReducer, store.BackendObservable} {
		t.Run(string(backend), func(t *testing.T) {
			c := newContainer(t, backend)
			v := NewFeedView(c)
			if dirty, _ := v.Update(press('j')); dirty {
				t.Fatalf("expected no-op without users")
			}

			seed(c)
			v.Update(press('j'))
			if got := c.Snapshot().CurrentUser; got == nil || got.ID != "u1" {
				t.Fatalf("expected u1 selected, got %+v", got)
			}
			v.Update(press('j'))
			v.Update(press('j'))
			if got := c.Snapshot().CurrentUser; got.ID != "u2" {
				t.Fatalf("expected selection to stop at u2, got %s", got.ID)
			}
			v.Update(KeyMsg{Key: tcell.KeyUp})
			if got := c.Snapshot().CurrentUser; got.ID != "u1" {
				t.Fatalf("expected u1 after moving up, got %s", got.ID)
			}
			if dirty, _ := v.Update(press('k')); dirty {
				t.Fatalf("expected no-op at the top")
			}
		})
	}
}

func TestFeedView_NewPost(t *testing.T) {
	c := newContainer(t, store.BackendObservable)
	seed(c)
	v := NewFeedView(c)

	_, cmds := v.Update(press('n'))
	if len(cmds) != 0 {
		t.Fatalf("expected no commands without a current user")
	}
	if c.Snapshot().Error == nil {
		t.Fatalf("expected error when posting without a current user")
	}
	if len(c.Snapshot().Posts) != 2 {
		t.Fatalf("expected posts untouched")
	}

	v.Update(press('e'))
	if c.Snapshot().Error != nil {
		t.Fatalf("expected error cleared")
	}
	if dirty, _ := v.Update(press('e')); dirty {
		t.Fatalf("expected clearing an empty error to be a no-op")
	}

	v.Update(press('j'))
	_, cmds = v.Update(press('n'))
	s := c.Snapshot()
	if len(s.Posts) != 3 || s.Posts[0].AuthorID != "u1" || s.Posts[0].Title != "Post 3" {
		t.Fatalf("expected new post first, got %+v", s.Posts[0])
	}
	if v.Status() != "post added" {
		t.Fatalf("expected status note, got %q", v.Status())
	}
	if len(cmds) != 1 {
		t.Fatalf("expected one status effect, got %d", len(cmds))
	}
	if _, ok := cmds[0].(Effect); !ok {
		t.Fatalf("expected effect, got %T", cmds[0])
	}
}

func TestFeedView_StatusClears(t *testing.T) {
	c := newContainer(t, store.BackendReducer)
	v := NewFeedView(c)

	_, cmds := v.Update(press('r'))
	if len(cmds) != 2 {
		t.Fatalf("expected reload and status commands, got %d", len(cmds))
	}
	if send, ok := cmds[0].(SendMsg); !ok || send.Message != (ReloadMsg{}) {
		t.Fatalf("expected reload message, got %#v", cmds[0])
	}
	first := v.statusSeq
	v.Update(press('r'))

	if dirty, _ := v.Update(clearStatusMsg{seq: first}); dirty {
		t.Fatalf("expected stale clear to be ignored")
	}
	if v.Status() == "" {
		t.Fatalf("expected status to remain")
	}
	if dirty, _ := v.Update(clearStatusMsg{seq: v.statusSeq}); !dirty || v.Status() != "" {
		t.Fatalf("expected status cleared")
	}
}

func TestFeedView_QuitKeys(t *testing.T) {
	v := NewFeedView(newContainer(t, store.BackendReducer))
	for _, msg := range []KeyMsg{press('q'), {Key: tcell.KeyCtrlC}, {Key: tcell.KeyEscape}} {
		_, cmds := v.Update(msg)
		if len(cmds) != 1 || cmds[0] != (Quit{}) {
			t.Fatalf("expected quit for %+v, got %v", msg, cmds)
		}
	}
	if dirty, cmds := v.Update(press('x')); dirty || cmds != nil {
		t.Fatalf("expected unknown key to be ignored")
	}
}

func TestFeedView_TickSpinsWhileLoading(t *testing.T) {
	c := newContainer(t, store.BackendReducer)
	v := NewFeedView(c)
	if dirty, _ := v.Update(TickMsg{Time: time.Now()}); dirty {
		t.Fatalf("expected idle tick to be ignored")
	}
	c.Submit(action.SetLoading{Loading: true})
	if dirty, _ := v.Update(TickMsg{Time: time.Now()}); !dirty || v.frame != 1 {
		t.Fatalf("expected spinner to advance, frame %d", v.frame)
	}
	screen := newFakeScreen(60, 5)
	v.Draw(screen)
	if !strings.Contains(screen.row(0), "loading") {
		t.Fatalf("expected loading marker, got %q", screen.row(0))
	}
}

func TestCellStyle(t *testing.T) {
	fg, _, attrs := cellStyle(render.Style{Fg: "#ff0000", Bold: true, Code: true}).Decompose()
	if fg != tcell.GetColor("#ff0000") {
		t.Fatalf("expected red foreground, got %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Fatalf("expected bold attribute")
	}
	fg, _, _ = cellStyle(render.Style{Code: true}).Decompose()
	if fg != tcell.ColorTeal {
		t.Fatalf("expected code colour, got %v", fg)
	}
}

func TestFeedView_ScrollPosts(t *testing.T) {
	c := newContainer(t, store.BackendReducer)
	posts := make([]model.Post, 10)
	for i := range posts {
		posts[i] = model.Post{ID: fmt.Sprintf("p%d", i), Title: fmt.Sprintf("Title %d", i), Body: "body"}
	}
	c.Submit(action.SetPosts{Posts: posts})

	v := NewFeedView(c)
	screen := newFakeScreen(60, 8)
	v.Draw(screen)
	if !strings.Contains(screen.text(), "Title 0") {
		t.Fatalf("expected first post on screen:\n%s", screen.text())
	}
	if !strings.Contains(screen.text(), "┃") {
		t.Fatalf("expected scrollbar thumb:\n%s", screen.text())
	}

	if dirty, _ := v.Update(KeyMsg{Key: tcell.KeyEnd}); !dirty {
		t.Fatalf("expected end key to scroll")
	}
	screen = newFakeScreen(60, 8)
	v.Draw(screen)
	if strings.Contains(screen.text(), "Title 0") || !strings.Contains(screen.text(), "Title 9") {
		t.Fatalf("expected last post on screen:\n%s", screen.text())
	}
	if dirty, _ := v.Update(KeyMsg{Key: tcell.KeyPgDn}); dirty {
		t.Fatalf("expected no movement past the end")
	}
	v.Update(KeyMsg{Key: tcell.KeyHome})
	if v.viewport.Offset() != 0 {
		t.Fatalf("expected home to return to the top")
	}
}
