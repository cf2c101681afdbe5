package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-feed/action"
	"github.com/odvcencio/furry-feed/model"
	"github.com/odvcencio/furry-feed/render"
	"github.com/odvcencio/furry-feed/scroll"
	"github.com/odvcencio/furry-feed/store"
)

// Canvas is the drawing surface the view paints into. tcell.Screen
// satisfies it.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// StatusTimeout is how long a status note stays in the footer.
const StatusTimeout = 2 * time.Second

const helpText = "q quit  r reload  n new post  j/k user  e clear error  PgUp/PgDn scroll"

var spinner = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

var (
	headerStyle = tcell.StyleDefault.Reverse(true).Bold(true)
	footerStyle = tcell.StyleDefault.Reverse(true)
	errorStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	dimStyle    = tcell.StyleDefault.Dim(true)
	selStyle    = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
)

// clearStatusMsg drops the footer status note it was created for.
type clearStatusMsg struct{ seq int }

func (clearStatusMsg) isMessage() {}

// FeedView draws the container state and turns keys into actions.
// It is owned by the UI goroutine.
type FeedView struct {
	container store.Container
	renderer  *render.Renderer
	logger    *slog.Logger

	bodies    map[string][]render.Line
	viewport  *scroll.Viewport
	frame     int
	status    string
	statusSeq int
}

// ViewOption configures a FeedView.
type ViewOption func(*FeedView)

// WithViewLogger sets the view logger.
func WithViewLogger(logger *slog.Logger) ViewOption {
	return func(v *FeedView) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithRenderer sets the markdown renderer used for post bodies.
func WithRenderer(r *render.Renderer) ViewOption {
	return func(v *FeedView) {
		if r != nil {
			v.renderer = r
		}
	}
}

// NewFeedView creates a view over container.
func NewFeedView(container store.Container, opts ...ViewOption) *FeedView {
	v := &FeedView{
		container: container,
		renderer:  render.NewRenderer(render.DefaultCodeStyle),
		logger:    slog.New(slog.DiscardHandler),
		bodies:    make(map[string][]render.Line),
		viewport:  scroll.NewViewport(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Status returns the current footer note.
func (v *FeedView) Status() string {
	return v.status
}

// Update handles a view-level message and reports whether a render is
// needed along with any commands for the app.
func (v *FeedView) Update(msg Message) (bool, []Command) {
	switch m := msg.(type) {
	case KeyMsg:
		return v.handleKey(m)
	case TickMsg:
		if v.container.Snapshot().Loading {
			v.frame = (v.frame + 1) % len(spinner)
			return true, nil
		}
		return false, nil
	case clearStatusMsg:
		if m.seq != v.statusSeq || v.status == "" {
			return false, nil
		}
		v.status = ""
		return true, nil
	}
	return false, nil
}

func (v *FeedView) handleKey(msg KeyMsg) (bool, []Command) {
	switch msg.Key {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return false, []Command{Quit{}}
	case tcell.KeyDown:
		return v.moveUser(1), nil
	case tcell.KeyUp:
		return v.moveUser(-1), nil
	case tcell.KeyPgDn:
		return v.scrollPosts(func() { v.viewport.PageBy(1) }), nil
	case tcell.KeyPgUp:
		return v.scrollPosts(func() { v.viewport.PageBy(-1) }), nil
	case tcell.KeyHome:
		return v.scrollPosts(v.viewport.ScrollToStart), nil
	case tcell.KeyEnd:
		return v.scrollPosts(v.viewport.ScrollToEnd), nil
	case tcell.KeyRune:
	default:
		return false, nil
	}

	switch msg.Rune {
	case 'q':
		return false, []Command{Quit{}}
	case 'r':
		return true, []Command{Send(ReloadMsg{}), v.note("reloading")}
	case 'j':
		return v.moveUser(1), nil
	case 'k':
		return v.moveUser(-1), nil
	case 'e':
		if v.container.Snapshot().Error == nil {
			return false, nil
		}
		v.container.Submit(action.ClearError())
		return true, nil
	case 'n':
		return true, v.newPost()
	}
	return false, nil
}

// scrollPosts applies move to the post pane and reports whether it moved.
func (v *FeedView) scrollPosts(move func()) bool {
	before := v.viewport.Offset()
	move()
	return v.viewport.Offset() != before
}

// moveUser selects the user delta rows away from the current user.
func (v *FeedView) moveUser(delta int) bool {
	s := v.container.Snapshot()
	if len(s.Users) == 0 {
		return false
	}
	idx := currentIndex(s)
	next := idx + delta
	if idx < 0 {
		next = 0
	}
	next = max(0, min(next, len(s.Users)-1))
	if next == idx {
		return false
	}
	u := s.Users[next]
	v.logger.Debug("select user", "user_id", u.ID)
	v.container.Submit(action.CurrentUser(u))
	return true
}

func (v *FeedView) newPost() []Command {
	s := v.container.Snapshot()
	if s.CurrentUser == nil {
		v.container.Submit(action.Error("select a user with j/k before posting"))
		return nil
	}
	post := model.NewPost(
		s.CurrentUser.ID,
		fmt.Sprintf("Post %d", len(s.Posts)+1),
		"Written from the **terminal**.",
	)
	v.logger.Debug("add post", "post_id", post.ID, "author_id", post.AuthorID)
	v.container.Submit(action.AddPost{Post: post})
	v.viewport.ScrollToStart()
	return []Command{v.note("post added")}
}

// note sets the footer status and returns the effect that clears it.
func (v *FeedView) note(text string) Command {
	v.statusSeq++
	v.status = text
	return After(StatusTimeout, clearStatusMsg{seq: v.statusSeq})
}

func currentIndex(s model.AppState) int {
	if s.CurrentUser == nil {
		return -1
	}
	for i, u := range s.Users {
		if u.ID == s.CurrentUser.ID {
			return i
		}
	}
	return -1
}

// Draw paints the whole view.
func (v *FeedView) Draw(c Canvas) {
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return
	}
	s := v.container.Snapshot()

	v.drawHeader(c, s, w)
	if h == 1 {
		return
	}
	footer := helpText
	if v.status != "" {
		footer = v.status + "  │  " + helpText
	}
	drawText(c, 0, h-1, w, " "+footer, footerStyle, true)

	top, bottom := 1, h-1
	if s.Error != nil && bottom > top {
		drawText(c, 0, top, w, "error: "+*s.Error+"  (e to clear)", errorStyle, true)
		top++
	}
	if bottom <= top {
		return
	}

	usersW := 0
	if w >= 40 {
		usersW = max(12, min(28, w/4))
		v.drawUsers(c, s, 0, top, usersW, bottom)
		for y := top; y < bottom; y++ {
			c.SetContent(usersW, y, '│', nil, dimStyle)
		}
		usersW++
	}
	v.drawPosts(c, s, usersW+1, top, w-usersW-1, bottom)
}

func (v *FeedView) drawHeader(c Canvas, s model.AppState, w int) {
	user := "none"
	if s.CurrentUser != nil {
		user = s.CurrentUser.Name
	}
	text := fmt.Sprintf(" furryfeed │ user: %s │ posts: %d", user, len(s.Posts))
	if s.Loading {
		text += fmt.Sprintf(" │ %c loading", spinner[v.frame])
	}
	drawText(c, 0, 0, w, text, headerStyle, true)
}

func (v *FeedView) drawUsers(c Canvas, s model.AppState, x, top, width, bottom int) {
	drawText(c, x, top, width, " Users", tcell.StyleDefault.Bold(true), false)
	cur := currentIndex(s)
	for i, u := range s.Users {
		y := top + 1 + i
		if y >= bottom {
			break
		}
		style, mark := tcell.StyleDefault, "  "
		if i == cur {
			style, mark = selStyle, "▶ "
		}
		drawText(c, x, y, width, mark+u.Name, style, false)
	}
}

// feedRow is one laid-out row of the post pane.
type feedRow struct {
	indent int
	line   render.Line
}

// layoutPosts flattens posts into rows that fit width.
func (v *FeedView) layoutPosts(s model.AppState, width int) []feedRow {
	var rows []feedRow
	for i, p := range s.Posts {
		if i > 0 {
			rows = append(rows, feedRow{})
		}
		author := p.AuthorID
		if u, ok := s.FindUser(p.AuthorID); ok {
			author = u.Name
		}
		rows = append(rows, feedRow{line: render.Line{
			{Text: p.Title, Style: render.Style{Bold: true}},
			{Text: " · " + author + " · " + p.CreatedAt.Format(time.DateTime)},
		}})
		for _, body := range v.body(p.Body) {
			for _, row := range render.Wrap(body, max(1, width-2)) {
				rows = append(rows, feedRow{indent: 2, line: row})
			}
		}
	}
	return rows
}

func (v *FeedView) drawPosts(c Canvas, s model.AppState, x, top, width, bottom int) {
	if width <= 1 {
		return
	}
	if len(s.Posts) == 0 {
		v.viewport.SetContentHeight(0)
		drawText(c, x, top, width, "No posts yet.", dimStyle, false)
		return
	}
	// Reserve the last column for the scrollbar.
	width--
	rows := v.layoutPosts(s, width)
	v.viewport.SetViewHeight(bottom - top)
	v.viewport.SetContentHeight(len(rows))

	start, end := v.viewport.Visible()
	for i, row := range rows[start:end] {
		drawLine(c, x+row.indent, top+i, width-row.indent, row.line)
	}
	if !v.viewport.Scrollable() {
		return
	}
	chars := scroll.DefaultScrollbarChars()
	pos, size := v.viewport.Thumb(bottom-top, 1)
	for y := 0; y < bottom-top; y++ {
		r := chars.Track
		if y >= pos && y < pos+size {
			r = chars.Thumb
		}
		c.SetContent(x+width, top+y, r, nil, dimStyle)
	}
}

// body renders and caches a post body.
func (v *FeedView) body(src string) []render.Line {
	if lines, ok := v.bodies[src]; ok {
		return lines
	}
	if len(v.bodies) >= 512 {
		clear(v.bodies)
	}
	lines := v.renderer.Render(src)
	v.bodies[src] = lines
	return lines
}

// drawText writes s at (x, y) clipped to width cells. fill pads the rest of
// the row with the same style.
func drawText(c Canvas, x, y, width int, s string, style tcell.Style, fill bool) int {
	col := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if col+rw > width {
			break
		}
		c.SetContent(x+col, y, r, nil, style)
		col += rw
	}
	if fill {
		for ; col < width; col++ {
			c.SetContent(x+col, y, ' ', nil, style)
		}
	}
	return col
}

func drawLine(c Canvas, x, y, width int, line render.Line) {
	col := 0
	for _, span := range line {
		if col >= width {
			return
		}
		n := drawText(c, x+col, y, width-col, span.Text, cellStyle(span.Style), false)
		if n < runewidth.StringWidth(span.Text) {
			return
		}
		col += n
	}
}

// cellStyle maps a render style onto a tcell style.
func cellStyle(s render.Style) tcell.Style {
	st := tcell.StyleDefault.Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
	switch {
	case s.Fg != "":
		st = st.Foreground(tcell.GetColor(s.Fg))
	case s.Code:
		st = st.Foreground(tcell.ColorTeal)
	}
	return st
}
