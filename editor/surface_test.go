package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/burntcarrot/richpad/dom"
	"github.com/burntcarrot/richpad/style"
)

func newSurface(t *testing.T, markup string) *Surface {
	t.Helper()
	s, err := New(Config{InitialHTML: markup})
	if err != nil {
		t.Fatalf("failed to create surface: %v", err)
	}
	return s
}

// cursor returns the start of the current range.
func cursor(t *testing.T, s *Surface) dom.Point {
	t.Helper()
	_, rng := s.Highlight()
	if rng == nil {
		t.Fatalf("expected an active range")
	}
	return rng.Start()
}

func TestNewSanitizesInitialContent(t *testing.T) {
	s := newSurface(t, `<p style="color: red" onclick="x()">a<a href="/">b</a></p><!-- note -->`)

	want := "<p>ab</p>"
	if got := s.HTML(); got != want {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got, want))
	}
	if got := s.doc.TextOffset(s.Root(), cursor(t, s)); got != 2 {
		t.Errorf("expected the cursor at the end of the text, got offset %d", got)
	}
}

func TestHighlight(t *testing.T) {
	s := newSurface(t, `<p>abc</p>`)

	sel, rng := s.Highlight()
	if sel == nil || rng == nil {
		t.Fatalf("expected a selection inside the surface")
	}

	outside := s.doc.CreateElement("p", "")
	if err := s.Select(dom.Point{Node: outside, Offset: 0}, dom.Point{Node: outside, Offset: 0}); err != nil {
		t.Fatalf("failed to select: %v", err)
	}
	sel, rng = s.Highlight()
	if sel != nil || rng != nil {
		t.Errorf("expected no highlight for a selection outside the surface, got %v %v", sel, rng)
	}

	s.Selection().RemoveAllRanges()
	sel, rng = s.Highlight()
	if sel == nil || rng != nil {
		t.Errorf("expected a selection without range, got %v %v", sel, rng)
	}
}

func TestSelectText(t *testing.T) {
	s := newSurface(t, `<p>ab</p><p>cd</p>`)

	if err := s.SelectText(3, 1); err != nil {
		t.Fatalf("failed to select: %v", err)
	}
	_, rng := s.Highlight()
	if got := rng.String(); got != "bc" {
		t.Errorf("got != want; got = %v, expected = %v\n", got, "bc")
	}
}

func TestFocusWrapsEmptySurface(t *testing.T) {
	s := newSurface(t, "")

	s.Focus()
	if !s.Focused() {
		t.Errorf("expected the surface to be focused")
	}
	if got := s.HTML(); got != "<div><br/></div>" {
		t.Errorf("got != want; got = %v, expected = %v\n", got, "<div><br/></div>")
	}

	want := dom.Point{Node: s.doc.FirstChild(s.Root()), Offset: 0}
	if got := cursor(t, s); got != want {
		t.Errorf("got != want; got = %v, expected = %v\n", got, want)
	}

	s.Input()
	if got := len(s.doc.Children(s.Root())); got != 1 {
		t.Errorf("expected input on a wrapped surface to be a no-op, got %d children", got)
	}
}

func TestInsertText(t *testing.T) {
	tests := []struct {
		description string
		markup      string
		start, end  int
		text        string
		want        string
		wantCursor  int
	}{
		{description: "inside text", markup: "<p>ac</p>", start: 1, end: 1, text: "b", want: "<p>abc</p>", wantCursor: 2},
		{description: "replace selection", markup: "<p>axxd</p>", start: 1, end: 3, text: "bc", want: "<p>abcd</p>", wantCursor: 3},
		{description: "multibyte", markup: "<p>ñ</p>", start: 1, end: 1, text: "é", want: "<p>ñé</p>", wantCursor: 2},
	}

	for _, tc := range tests {
		s := newSurface(t, tc.markup)
		if err := s.SelectText(tc.start, tc.end); err != nil {
			t.Fatalf("(%s) failed to select: %v", tc.description, err)
		}

		if !s.InsertText(tc.text) {
			t.Errorf("(%s) expected text to be inserted", tc.description)
		}
		if got := s.HTML(); got != tc.want {
			t.Errorf("(%s) got != want; diff = %v\n", tc.description, cmp.Diff(got, tc.want))
		}
		if got := s.doc.TextOffset(s.Root(), cursor(t, s)); got != tc.wantCursor {
			t.Errorf("(%s) got != want; got = %v, expected = %v\n", tc.description, got, tc.wantCursor)
		}
	}
}

func TestInsertTextReplacesPlaceholder(t *testing.T) {
	s := newSurface(t, "")
	s.Focus()

	s.InsertText("hi")
	s.InsertText("!")

	if got := s.HTML(); got != "<div>hi!</div>" {
		t.Errorf("got != want; got = %v, expected = %v\n", got, "<div>hi!</div>")
	}
}

func TestInsertTextWithoutRange(t *testing.T) {
	s := newSurface(t, "<p>a</p>")
	s.Selection().RemoveAllRanges()

	if s.InsertText("b") {
		t.Errorf("expected no insertion without a range")
	}
}

func TestDeleteSelection(t *testing.T) {
	s := newSurface(t, "<p>abc</p>")

	if s.DeleteSelection() {
		t.Errorf("expected a collapsed selection to delete nothing")
	}

	_ = s.SelectText(0, 2)
	if !s.DeleteSelection() {
		t.Errorf("expected the selection to be deleted")
	}
	if got := s.Text(); got != "c" {
		t.Errorf("got != want; got = %v, expected = %v\n", got, "c")
	}
}

func TestDropIsRefused(t *testing.T) {
	s := newSurface(t, "<p>abc</p>")

	if s.Drop() {
		t.Errorf("expected drop to be refused")
	}
	if got := s.HTML(); got != "<p>abc</p>" {
		t.Errorf("expected content to be unchanged, got %v", got)
	}
}

func TestCommandStylesAreStrippedOnFlush(t *testing.T) {
	s := newSurface(t, "<p>abc</p>")
	_ = s.SelectText(0, 3)

	s.Apply(ActionBold)

	if !style.HasInlineStyles(s.doc, s.Root()) {
		t.Errorf("expected resolved styles until the next flush")
	}
	if s.Pending() != 1 {
		t.Errorf("expected one deferred task, got %d", s.Pending())
	}

	// the next event flushes first
	s.Input()
	if style.HasInlineStyles(s.doc, s.Root()) {
		t.Errorf("expected no inline styles after the next event: %s", s.HTML())
	}
	if s.Pending() != 0 {
		t.Errorf("expected no deferred task, got %d", s.Pending())
	}
}
