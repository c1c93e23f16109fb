package tui

import (
	"errors"
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/burntcarrot/richpad/commons"
	"github.com/burntcarrot/richpad/policy"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.text, c.err }

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		description string
		line        string
		expected    Command
		err         bool
	}{
		{description: "plain text", line: "hello  world", expected: Command{Name: "type", Text: "hello  world"}},
		{description: "type", line: ":type  spaced", expected: Command{Name: "type", Text: " spaced"}},
		{description: "select", line: ":select 1 4", expected: Command{Name: "select", Args: []string{"1", "4"}, Text: "1 4"}},
		{description: "cursor", line: ":select 2", expected: Command{Name: "select", Args: []string{"2"}, Text: "2"}},
		{description: "bold", line: ":bold", expected: Command{Name: "bold", Args: []string{}}},
		{description: "load", line: ":load a.html", expected: Command{Name: "load", Args: []string{"a.html"}, Text: "a.html"}},
		{description: "empty line", line: "", err: true},
		{description: "unknown", line: ":underline", err: true},
		{description: "too many arguments", line: ":select 1 2 3", err: true},
		{description: "missing argument", line: ":load", err: true},
		{description: "type without text", line: ":type", err: true},
	}

	for _, tc := range tests {
		got, err := ParseCommand(tc.line)
		if (err != nil) != tc.err {
			t.Errorf("(%s) unexpected error: %v", tc.description, err)
			continue
		}
		if tc.err {
			continue
		}
		if !cmp.Equal(got, tc.expected, cmpEmptySlices) {
			t.Errorf("(%s) got != expected, diff: %v\n", tc.description, cmp.Diff(got, tc.expected, cmpEmptySlices))
		}
	}
}

// cmpEmptySlices treats nil and empty argument lists alike.
var cmpEmptySlices = cmp.Transformer("args", func(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
})

func TestRender(t *testing.T) {
	tests := []struct {
		description string
		markup      string
		sel         *commons.Span
		expected    string
	}{
		{description: "blocks", markup: "<p>ab</p><div>cd</div>", expected: "ab\ncd"},
		{description: "line breaks", markup: `<h1 class="header1-text">ab<br/>cd<br/></h1>x`, expected: "ab\ncd\nx"},
		{description: "cursor", markup: "<p>abc</p>", sel: &commons.Span{Start: 1, End: 1}, expected: "a" + Cursor + "bc"},
		{description: "cursor at a seam", markup: "<p>ab</p><p>cd</p>", sel: &commons.Span{Start: 2, End: 2}, expected: "ab" + Cursor + "\ncd"},
		{description: "cursor in empty document", markup: "<div><br/></div>", sel: &commons.Span{}, expected: Cursor},
		{description: "selection keeps text", markup: "<p>a<b>bc</b>d</p>", sel: &commons.Span{Start: 1, End: 3}, expected: "abcd"},
	}

	for _, tc := range tests {
		got, err := Render(tc.markup, tc.sel)
		if err != nil {
			t.Fatalf("(%s) failed to render: %v", tc.description, err)
		}
		if got = plain(got); got != tc.expected {
			t.Errorf("(%s) got != expected, diff: %v\n", tc.description, cmp.Diff(got, tc.expected))
		}
	}
}

func TestTextStyleWithClass(t *testing.T) {
	got := textStyle{}.with(policy.BoldClass + " " + policy.Header2Class)
	expected := textStyle{bold: true, header: 2}
	if got != expected {
		t.Errorf("got != expected; got = %+v, expected = %+v\n", got, expected)
	}
}

type harness struct {
	model     Model
	sent      []commons.Message
	clipboard *fakeClipboard
}

func newHarness() *harness {
	h := &harness{clipboard: &fakeClipboard{}}
	h.model = New(Config{
		Send: func(msg commons.Message) error {
			h.sent = append(h.sent, msg)
			return nil
		},
		Clipboard: h.clipboard,
		ReadFile: func(name string) ([]byte, error) {
			if name == "doc.html" {
				return []byte("<p>loaded</p>"), nil
			}
			return nil, errors.New("no such file")
		},
	})
	return h
}

func (h *harness) update(msg tea.Msg) tea.Cmd {
	m, cmd := h.model.Update(msg)
	h.model = m.(Model)
	return cmd
}

func (h *harness) run(line string) tea.Cmd {
	h.model.input.SetValue(line)
	return h.update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestToolbarKeys(t *testing.T) {
	h := newHarness()

	for _, k := range []tea.KeyType{tea.KeyCtrlB, tea.KeyCtrlT, tea.KeyCtrlG, tea.KeyCtrlR} {
		h.update(tea.KeyMsg{Type: k})
	}

	var got []string
	for _, msg := range h.sent {
		if msg.Type != commons.FormatMessage {
			t.Errorf("expected format messages, got %v", msg.Type)
		}
		got = append(got, msg.Action)
	}
	expected := []string{"bold", "italic", "header-1", "header-2"}
	if !cmp.Equal(got, expected) {
		t.Errorf("got != expected, diff: %v\n", cmp.Diff(got, expected))
	}
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		description string
		line        string
		expected    commons.Message
	}{
		{description: "text", line: "hi", expected: commons.Message{Type: commons.InputMessage, Text: "hi"}},
		{description: "select", line: ":select 4 1", expected: commons.Message{Type: commons.SelectMessage, Selection: &commons.Span{Start: 1, End: 4}}},
		{description: "focus", line: ":focus", expected: commons.Message{Type: commons.FocusMessage}},
		{description: "copy", line: ":copy", expected: commons.Message{Type: commons.CopyMessage}},
		{description: "cut", line: ":cut", expected: commons.Message{Type: commons.CutMessage}},
		{description: "italic", line: ":italic", expected: commons.Message{Type: commons.FormatMessage, Action: "italic"}},
		{description: "h2", line: ":h2", expected: commons.Message{Type: commons.FormatMessage, Action: "header-2"}},
		{description: "load", line: ":load doc.html", expected: commons.Message{Type: commons.LoadMessage, HTML: "<p>loaded</p>"}},
	}

	for _, tc := range tests {
		h := newHarness()
		h.run(tc.line)

		if len(h.sent) != 1 {
			t.Fatalf("(%s) expected one message, got %+v (status %q)", tc.description, h.sent, h.model.Status())
		}
		if !cmp.Equal(h.sent[0], tc.expected) {
			t.Errorf("(%s) got != expected, diff: %v\n", tc.description, cmp.Diff(h.sent[0], tc.expected))
		}
		if h.model.input.Value() != "" {
			t.Errorf("(%s) expected the command line to be cleared", tc.description)
		}
	}
}

func TestCommandLineErrors(t *testing.T) {
	for _, line := range []string{":select x", ":load missing.html", ":paste-html", ":nope"} {
		h := newHarness()
		h.run(line)

		if len(h.sent) != 0 {
			t.Errorf("(%s) expected nothing to be sent, got %+v", line, h.sent)
		}
		if !h.model.failed || h.model.Status() == "" {
			t.Errorf("(%s) expected an error status", line)
		}
	}
}

func TestQuit(t *testing.T) {
	h := newHarness()

	if cmd := h.run(":q"); cmd == nil || !h.model.Quitting {
		t.Errorf("expected :q to quit")
	}
	if got := h.model.View(); got != "\n  See you later!\n\n" {
		t.Errorf("unexpected view %q", got)
	}
}

func TestClipboardRoundTrip(t *testing.T) {
	h := newHarness()
	data := map[string]string{policy.PlainMimeType: "bc", policy.HTMLMimeType: "b<b>c</b>"}

	h.update(ServerMsg{Type: commons.ClipboardMessage, Clipboard: data})
	if h.clipboard.text != "bc" {
		t.Errorf("expected the system clipboard to hold the text, got %q", h.clipboard.text)
	}

	h.run(":paste-html")
	h.run(":paste")

	expected := []commons.Message{
		{Type: commons.PasteMessage, Clipboard: data},
		{Type: commons.PasteMessage, Clipboard: map[string]string{policy.PlainMimeType: "bc"}},
	}
	if !cmp.Equal(h.sent, expected) {
		t.Errorf("got != expected, diff: %v\n", cmp.Diff(h.sent, expected))
	}
}

func TestClipboardFailure(t *testing.T) {
	h := newHarness()
	h.clipboard.err = errors.New("no xclip")

	h.update(ServerMsg{Type: commons.ClipboardMessage, Clipboard: map[string]string{policy.PlainMimeType: "x"}})
	if !h.model.failed {
		t.Errorf("expected an error status")
	}

	h.run(":paste")
	if len(h.sent) != 0 {
		t.Errorf("expected nothing to be sent, got %+v", h.sent)
	}
}

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		description string
		sel         *commons.Span
		key         tea.KeyType
		expected    int
	}{
		{description: "right", sel: &commons.Span{Start: 1, End: 1}, key: tea.KeyRight, expected: 2},
		{description: "left", sel: &commons.Span{Start: 1, End: 1}, key: tea.KeyLeft, expected: 0},
		{description: "left at start", sel: &commons.Span{Start: 0, End: 0}, key: tea.KeyLeft, expected: 0},
		{description: "right at end", sel: &commons.Span{Start: 3, End: 3}, key: tea.KeyRight, expected: 3},
		{description: "collapse right", sel: &commons.Span{Start: 0, End: 2}, key: tea.KeyRight, expected: 2},
		{description: "collapse left", sel: &commons.Span{Start: 1, End: 2}, key: tea.KeyLeft, expected: 1},
		{description: "no selection", key: tea.KeyRight, expected: 0},
	}

	for _, tc := range tests {
		h := newHarness()
		h.update(ServerMsg{Type: commons.DocMessage, HTML: "<p>abc</p>", Text: "abc", Selection: tc.sel})
		h.update(tea.KeyMsg{Type: tc.key})

		if len(h.sent) != 1 || h.sent[0].Selection == nil {
			t.Fatalf("(%s) expected a select message, got %+v", tc.description, h.sent)
		}
		expected := commons.Span{Start: tc.expected, End: tc.expected}
		if got := *h.sent[0].Selection; got != expected {
			t.Errorf("(%s) got != expected; got = %+v, expected = %+v\n", tc.description, got, expected)
		}
	}
}

func TestViewShowsDocumentAndErrors(t *testing.T) {
	h := newHarness()
	h.update(ServerMsg{Type: commons.DocMessage, HTML: `<p>a<b class="bold-text">b</b></p>`, Text: "ab"})
	h.update(ServerMsg{Type: commons.ErrorMessage, Error: "unknown format action"})

	view := plain(h.model.View())
	for _, want := range []string{"richpad", "ab", "server: unknown format action"} {
		if !regexp.MustCompile(regexp.QuoteMeta(want)).MatchString(view) {
			t.Errorf("expected %q in view %q", want, view)
		}
	}
}
