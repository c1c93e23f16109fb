// Package policy holds the fixed vocabulary of the editing surface: which
// tags format text and with which display class, which tags are stripped
// from pasted content, which media tags become placeholder glyphs, and
// which style properties are resolved when formatting must survive outside
// the live document.
package policy

import (
	"sort"
	"strings"
)

const (
	BoldClass    = "bold-text"
	ItalicClass  = "italic-text"
	Header1Class = "header1-text"
	Header2Class = "header2-text"
)

const (
	PlainMimeType = "text/plain"
	HTMLMimeType  = "text/html"
)

var formatting = map[string]string{
	"b":      BoldClass,
	"strong": BoldClass,
	"i":      ItalicClass,
	"h1":     Header1Class,
	"h2":     Header2Class,
}

var disallowed = map[string]struct{}{
	"body":   {},
	"a":      {},
	"script": {},
	"style":  {},
	"button": {},
	"input":  {},
}

var placeholders = map[string]string{
	"img":   "📺",
	"video": "🎬",
	"audio": "🎹",
}

// EditorStyleProperties are resolved onto formatting elements of the live
// surface.
var EditorStyleProperties = []string{
	"color",
	"font-size",
	"font-style",
	"font-weight",
	"font-family",
	"font-variant",
	"text-transform",
	"text-decoration",
	"line-height",
}

// ClipboardStyleProperties are resolved onto every element written to the
// clipboard.
var ClipboardStyleProperties = append(append([]string(nil), EditorStyleProperties...), "margin")

// ClassFor returns the display class of a formatting tag.
func ClassFor(tag string) (string, bool) {
	class, ok := formatting[strings.ToLower(tag)]
	return class, ok
}

// IsFormatting reports whether tag is a formatting tag.
func IsFormatting(tag string) bool {
	_, ok := formatting[strings.ToLower(tag)]
	return ok
}

// IsDisallowed reports whether tag is dropped (keeping its content) from
// pasted content.
func IsDisallowed(tag string) bool {
	_, ok := disallowed[strings.ToLower(tag)]
	return ok
}

// Placeholder returns the glyph replacing a media tag.
func Placeholder(tag string) (string, bool) {
	glyph, ok := placeholders[strings.ToLower(tag)]
	return glyph, ok
}

// FormattingTags lists the formatting tags in lexical order.
func FormattingTags() []string {
	tags := make([]string, 0, len(formatting))
	for tag := range formatting {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
