// Package render turns post bodies into styled terminal lines.
package render

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultCodeStyle is the chroma style used for fenced code.
const DefaultCodeStyle = "monokai"

// Style describes how a span is drawn. Fg is a "#rrggbb" colour or empty
// for the terminal default.
type Style struct {
	Fg        string
	Bold      bool
	Italic    bool
	Underline bool
	Code      bool
}

// Span is a run of text with one style.
type Span struct {
	Text  string
	Style Style
}

// Line is one rendered row.
type Line []Span

// String returns the line text without styling.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Renderer converts markdown to lines.
type Renderer struct {
	md        goldmark.Markdown
	codeStyle *chroma.Style
}

// NewRenderer creates a renderer using the named chroma style for code
// blocks. Unknown names fall back to chroma's default style.
func NewRenderer(codeStyle string) *Renderer {
	style := styles.Get(codeStyle)
	if style == nil {
		style = styles.Fallback
	}
	return &Renderer{md: goldmark.New(), codeStyle: style}
}

// Render parses body and returns its lines. Blocks are separated by one
// empty line.
func (r *Renderer) Render(body string) []Line {
	source := []byte(body)
	doc := r.md.Parser().Parse(text.NewReader(source))
	w := &walker{source: source, r: r}
	_ = ast.Walk(doc, w.visit)
	w.flush()
	return trimBlank(w.lines)
}

type walker struct {
	source []byte
	r      *Renderer

	lines   []Line
	current Line
	styles  []Style
	prefix  []string
	quote   int
	ordinal []int
}

func (w *walker) style() Style {
	if len(w.styles) == 0 {
		return Style{}
	}
	return w.styles[len(w.styles)-1]
}

func (w *walker) push(fn func(*Style)) {
	s := w.style()
	fn(&s)
	w.styles = append(w.styles, s)
}

func (w *walker) pop() {
	if len(w.styles) > 0 {
		w.styles = w.styles[:len(w.styles)-1]
	}
}

func (w *walker) add(text string) {
	if text == "" {
		return
	}
	w.current = append(w.current, Span{Text: text, Style: w.style()})
}

func (w *walker) flush() {
	if len(w.current) == 0 {
		return
	}
	w.emit(w.current)
	w.current = nil
}

func (w *walker) emit(line Line) {
	lead := strings.Repeat("│ ", w.quote) + strings.Join(w.prefix, "")
	if lead != "" {
		line = append(Line{{Text: lead}}, line...)
		w.clearPrefix()
	}
	w.lines = append(w.lines, line)
}

// clearPrefix turns list markers into indentation after their first line.
func (w *walker) clearPrefix() {
	for i, p := range w.prefix {
		w.prefix[i] = strings.Repeat(" ", len([]rune(p)))
	}
}

func (w *walker) blank() {
	w.flush()
	if n := len(w.lines); n > 0 && len(w.lines[n-1]) > 0 {
		w.lines = append(w.lines, Line{})
	}
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			w.flush()
			w.push(func(s *Style) { s.Bold = true })
			w.add(strings.Repeat("#", node.Level) + " ")
		} else {
			w.pop()
			w.blank()
		}
	case *ast.Paragraph:
		if !entering {
			if _, tight := n.Parent().(*ast.ListItem); tight {
				w.flush()
			} else {
				w.blank()
			}
		}
	case *ast.TextBlock:
		if !entering {
			w.flush()
		}
	case *ast.List:
		if entering {
			w.flush()
			w.ordinal = append(w.ordinal, node.Start)
		} else {
			w.ordinal = w.ordinal[:len(w.ordinal)-1]
			if _, nested := n.Parent().(*ast.ListItem); !nested {
				w.blank()
			}
		}
	case *ast.ListItem:
		if entering {
			w.flush()
			w.prefix = append(w.prefix, w.marker(node))
		} else {
			w.flush()
			w.prefix = w.prefix[:len(w.prefix)-1]
		}
	case *ast.Blockquote:
		if entering {
			w.flush()
			w.quote++
		} else {
			w.flush()
			w.quote--
			w.blank()
		}
	case *ast.Emphasis:
		if entering {
			w.push(func(s *Style) {
				if node.Level >= 2 {
					s.Bold = true
				} else {
					s.Italic = true
				}
			})
		} else {
			w.pop()
		}
	case *ast.CodeSpan:
		if entering {
			w.push(func(s *Style) { s.Code = true })
		} else {
			w.pop()
		}
	case *ast.Link:
		if entering {
			w.push(func(s *Style) { s.Underline = true })
		} else {
			w.pop()
		}
	case *ast.AutoLink:
		if entering {
			w.push(func(s *Style) { s.Underline = true })
			w.add(string(node.URL(w.source)))
			w.pop()
		}
		return ast.WalkSkipChildren, nil
	case *ast.Text:
		if entering {
			w.add(string(node.Segment.Value(w.source)))
			if node.HardLineBreak() {
				w.flush()
			} else if node.SoftLineBreak() {
				w.add(" ")
			}
		}
	case *ast.String:
		if entering {
			w.add(string(node.Value))
		}
	case *ast.ThematicBreak:
		if entering {
			w.flush()
			w.emit(Line{{Text: strings.Repeat("─", 8)}})
			w.blank()
		}
	case *ast.FencedCodeBlock:
		if entering {
			w.flush()
			w.code(string(node.Language(w.source)), w.blockText(node))
			w.blank()
		}
		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock:
		if entering {
			w.flush()
			w.code("", w.blockText(node))
			w.blank()
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (w *walker) marker(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return "• "
	}
	i := len(w.ordinal) - 1
	n := w.ordinal[i]
	w.ordinal[i]++
	return strconv.Itoa(n) + string(list.Marker) + " "
}

func (w *walker) blockText(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(w.source))
	}
	return b.String()
}

func (w *walker) code(lang, code string) {
	for _, line := range w.r.Highlight(lang, code) {
		w.emit(line)
	}
}

// Highlight tokenises code with chroma and returns one line per source
// line. An empty lang asks chroma to guess.
func (r *Renderer) Highlight(lang, code string) []Line {
	code = strings.TrimRight(code, "\n")
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plainCode(code)
	}

	lines := []Line{{}}
	for _, tok := range iter.Tokens() {
		entry := r.codeStyle.Get(tok.Type)
		style := Style{
			Code:      true,
			Bold:      entry.Bold == chroma.Yes,
			Italic:    entry.Italic == chroma.Yes,
			Underline: entry.Underline == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			style.Fg = entry.Colour.String()
		}
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, Line{})
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], Span{Text: part, Style: style})
			}
		}
	}
	return trimBlank(lines)
}

func plainCode(code string) []Line {
	var out []Line
	for _, l := range strings.Split(code, "\n") {
		out = append(out, Line{{Text: l, Style: Style{Code: true}}})
	}
	return out
}

func trimBlank(lines []Line) []Line {
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}
