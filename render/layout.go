package render

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width returns the terminal cell width of s.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width cells, ending with Ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// Pad truncates or right-pads s to exactly width cells.
func Pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(s, width), width)
}

// Wrap breaks line into rows of at most width cells. Breaks prefer the
// last space; words wider than width are split.
func Wrap(line Line, width int) []Line {
	if width <= 0 {
		return nil
	}
	if len(line) == 0 {
		return []Line{{}}
	}

	var (
		rows []Line
		row  Line
		used int
	)
	newRow := func() {
		rows = append(rows, row)
		row = nil
		used = 0
	}
	put := func(text string, style Style) {
		if text == "" {
			return
		}
		if n := len(row); n > 0 && row[n-1].Style == style {
			row[n-1].Text += text
		} else {
			row = append(row, Span{Text: text, Style: style})
		}
		used += runewidth.StringWidth(text)
	}

	for _, span := range line {
		for _, tok := range tokens(span.Text) {
			w := runewidth.StringWidth(tok)
			isSpace := strings.TrimSpace(tok) == ""
			switch {
			case used+w <= width:
				put(tok, span.Style)
			case isSpace:
				newRow()
			case w <= width:
				newRow()
				put(tok, span.Style)
			default:
				for _, r := range tok {
					rw := runewidth.RuneWidth(r)
					if used+rw > width {
						newRow()
					}
					put(string(r), span.Style)
				}
			}
		}
	}
	if len(row) > 0 || len(rows) == 0 {
		rows = append(rows, row)
	}
	for i := range rows {
		rows[i] = trimRight(rows[i])
	}
	return rows
}

// tokens splits s into alternating runs of spaces and non-spaces.
func tokens(s string) []string {
	var out []string
	start := 0
	inSpace := false
	for i, r := range s {
		sp := unicode.IsSpace(r)
		if i > start && sp != inSpace {
			out = append(out, s[start:i])
			start = i
		}
		inSpace = sp
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func trimRight(line Line) Line {
	for len(line) > 0 {
		last := &line[len(line)-1]
		trimmed := strings.TrimRightFunc(last.Text, unicode.IsSpace)
		if trimmed != "" {
			last.Text = trimmed
			return line
		}
		line = line[:len(line)-1]
	}
	return line
}
