// Package sanitize rebuilds untrusted node trees into the vocabulary
// allowed on the editing surface.
package sanitize

import (
	"github.com/burntcarrot/richpad/dom"
	"github.com/burntcarrot/richpad/policy"
)

// Sanitize rebuilds the subtree of src rooted at node inside dst and returns
// the new detached node. src and dst may be the same document.
//
//   - text is copied;
//   - media tags become a text node holding their placeholder glyph, and
//     their content is discarded;
//   - disallowed tags (and fragments) become a fragment carrying their
//     sanitized children, so the tag goes and the content stays;
//   - other elements are rebuilt with the same tag and no attributes except
//     the display class of formatting tags;
//   - anything else becomes an empty fragment.
func Sanitize(dst, src *dom.Document, node dom.NodeID) dom.NodeID {
	n := src.Node(node)
	if n == nil {
		return dst.CreateFragment()
	}

	var out dom.NodeID
	switch n.Type {
	case dom.TextNode:
		return dst.CreateText(n.Data)
	case dom.ElementNode:
		if glyph, ok := policy.Placeholder(n.Tag); ok {
			return dst.CreateText(glyph)
		}
		if policy.IsDisallowed(n.Tag) {
			out = dst.CreateFragment()
		} else {
			class, _ := policy.ClassFor(n.Tag)
			out = dst.CreateElement(n.Tag, class)
		}
	case dom.FragmentNode:
		out = dst.CreateFragment()
	default:
		return dst.CreateFragment()
	}

	for _, c := range src.Children(node) {
		_ = dst.AppendChild(out, Sanitize(dst, src, c))
	}
	return out
}
