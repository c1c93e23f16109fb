package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/burntcarrot/richpad/commons"
	"github.com/burntcarrot/richpad/policy"
)

// Cursor is drawn where a collapsed selection is.
const Cursor = "▏"

var (
	header1Color = lipgloss.Color("#FF5F87")
	header2Color = lipgloss.Color("#5FAFFF")
)

type textStyle struct {
	bold    bool
	italic  bool
	header  int
	reverse bool
}

func (s textStyle) render(text string) string {
	if text == "" {
		return ""
	}
	st := lipgloss.NewStyle().Bold(s.bold).Italic(s.italic).Reverse(s.reverse)
	switch s.header {
	case 1:
		st = st.Bold(true).Underline(true).Foreground(header1Color)
	case 2:
		st = st.Bold(true).Foreground(header2Color)
	}
	return st.Render(text)
}

// with applies the display class of an element.
func (s textStyle) with(class string) textStyle {
	for _, c := range strings.Fields(class) {
		switch c {
		case policy.BoldClass:
			s.bold = true
		case policy.ItalicClass:
			s.italic = true
		case policy.Header1Class:
			s.header = 1
		case policy.Header2Class:
			s.header = 2
		}
	}
	return s
}

type renderer struct {
	sb        strings.Builder
	sel       *commons.Span
	offset    int
	lineStart bool
	cursorOut bool
}

// Render draws document markup as styled terminal text: blocks start new
// lines and formatting classes become terminal attributes. The selection
// is drawn reversed, or as a cursor when collapsed.
func Render(markup string, sel *commons.Span) (string, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return "", err
	}

	r := &renderer{sel: sel, lineStart: true}
	for _, n := range nodes {
		r.walk(n, textStyle{})
	}
	out := strings.TrimRight(r.sb.String(), "\n")
	if sel != nil && sel.Collapsed() && !r.cursorOut {
		out += Cursor
	}
	return out, nil
}

func isBlock(n *html.Node) bool {
	switch n.DataAtom {
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func (r *renderer) newline() {
	if !r.lineStart {
		r.sb.WriteByte('\n')
		r.lineStart = true
	}
}

func (r *renderer) walk(n *html.Node, st textStyle) {
	switch n.Type {
	case html.TextNode:
		r.text(n.Data, st)
		return
	case html.ElementNode:
		if n.DataAtom == atom.Br {
			r.sb.WriteByte('\n')
			r.lineStart = true
			return
		}
		class, _ := policy.ClassFor(n.Data)
		for _, a := range n.Attr {
			if a.Key == "class" {
				class = a.Val
			}
		}
		st = st.with(class)
	}

	block := isBlock(n)
	if block {
		r.newline()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c, st)
	}
	if block {
		r.newline()
	}
}

// text writes a text node, split where the selection starts and ends.
func (r *renderer) text(data string, st textStyle) {
	runes := []rune(data)
	from, to := r.offset, r.offset+len(runes)
	r.offset = to
	if len(runes) == 0 {
		return
	}
	r.lineStart = false

	if r.sel == nil {
		r.sb.WriteString(st.render(data))
		return
	}

	if r.sel.Collapsed() {
		at := r.sel.Start - from
		if r.cursorOut || at < 0 || at > len(runes) {
			r.sb.WriteString(st.render(data))
			return
		}
		r.sb.WriteString(st.render(string(runes[:at])))
		r.sb.WriteString(Cursor)
		r.sb.WriteString(st.render(string(runes[at:])))
		r.cursorOut = true
		return
	}

	cut := func(i int) int {
		switch {
		case i < from:
			return 0
		case i > to:
			return len(runes)
		}
		return i - from
	}
	a, b := cut(r.sel.Start), cut(r.sel.End)
	selected := st
	selected.reverse = true

	r.sb.WriteString(st.render(string(runes[:a])))
	r.sb.WriteString(selected.render(string(runes[a:b])))
	r.sb.WriteString(st.render(string(runes[b:])))
}
