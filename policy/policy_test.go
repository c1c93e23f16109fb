package policy

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCategoriesAreDisjoint(t *testing.T) {
	for tag := range formatting {
		if IsDisallowed(tag) {
			t.Errorf("%s is both formatting and disallowed", tag)
		}
		if _, ok := Placeholder(tag); ok {
			t.Errorf("%s is both formatting and media", tag)
		}
	}
	for tag := range placeholders {
		if IsDisallowed(tag) {
			t.Errorf("%s is both media and disallowed", tag)
		}
	}
}

func TestLookups(t *testing.T) {
	tests := []struct {
		description string
		tag         string
		class       string
		disallowed  bool
		glyph       string
	}{
		{description: "bold", tag: "b", class: BoldClass},
		{description: "strong maps to bold", tag: "STRONG", class: BoldClass},
		{description: "italic", tag: "i", class: ItalicClass},
		{description: "header 1", tag: "h1", class: Header1Class},
		{description: "header 2", tag: "h2", class: Header2Class},
		{description: "script", tag: "script", disallowed: true},
		{description: "link", tag: "a", disallowed: true},
		{description: "image", tag: "img", glyph: "📺"},
		{description: "video", tag: "Video", glyph: "🎬"},
		{description: "audio", tag: "audio", glyph: "🎹"},
		{description: "pass through", tag: "p"},
	}

	for _, tc := range tests {
		class, _ := ClassFor(tc.tag)
		glyph, _ := Placeholder(tc.tag)
		got := []interface{}{class, IsDisallowed(tc.tag), glyph, IsFormatting(tc.tag)}
		want := []interface{}{tc.class, tc.disallowed, tc.glyph, tc.class != ""}
		if !cmp.Equal(got, want) {
			t.Errorf("(%s) got != want; diff = %v\n", tc.description, cmp.Diff(got, want))
		}
	}
}

func TestFormattingTags(t *testing.T) {
	want := []string{"b", "h1", "h2", "i", "strong"}
	if got := FormattingTags(); !cmp.Equal(got, want) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got, want))
	}
}

func TestClipboardPropertiesExtendEditorProperties(t *testing.T) {
	if len(ClipboardStyleProperties) != len(EditorStyleProperties)+1 {
		t.Fatalf("unexpected clipboard whitelist: %v", ClipboardStyleProperties)
	}
	if got := ClipboardStyleProperties[len(ClipboardStyleProperties)-1]; got != "margin" {
		t.Errorf("got != want; got = %v, expected = %v\n", got, "margin")
	}
}

func TestSanitizeExport(t *testing.T) {
	tests := []struct {
		description string
		input       string
		contains    []string
		absent      []string
	}{
		{
			description: "formatting survives",
			input:       `<b class="bold-text" style="font-weight: 700">x</b>`,
			contains:    []string{"<b", `class="bold-text"`, "font-weight", ">x</b>"},
		},
		{
			description: "scripts are removed",
			input:       `<div>a<script>alert(1)</script></div>`,
			contains:    []string{"<div>a</div>"},
			absent:      []string{"script", "alert"},
		},
		{
			description: "event handlers are removed",
			input:       `<p onclick="evil()">a</p>`,
			contains:    []string{"<p>a</p>"},
			absent:      []string{"onclick"},
		},
		{
			description: "unknown properties are removed",
			input:       `<span style="position: fixed">a</span>`,
			absent:      []string{"position"},
		},
	}

	for _, tc := range tests {
		got := SanitizeExport(tc.input)
		for _, s := range tc.contains {
			if !strings.Contains(got, s) {
				t.Errorf("(%s) %q does not contain %q", tc.description, got, s)
			}
		}
		for _, s := range tc.absent {
			if strings.Contains(got, s) {
				t.Errorf("(%s) %q should not contain %q", tc.description, got, s)
			}
		}
	}

	if got := SanitizeExport(""); got != "" {
		t.Errorf("got != want; got = %v, expected = %v\n", got, "")
	}
}
