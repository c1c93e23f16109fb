package editor

import "github.com/burntcarrot/richpad/dom"

var blockTags = []string{"p", "div", "h1", "h2", "h3", "h4", "h5", "h6"}

// IsBlockNode reports whether a node is a paragraph, a div or a heading.
func IsBlockNode(doc *dom.Document, node dom.NodeID) bool {
	return doc.IsElement(node, blockTags...)
}

// GetParentBlockNode returns the closest block node at or above node,
// stopping at root. It returns dom.None when root is reached first or when
// node is not inside root.
func GetParentBlockNode(doc *dom.Document, node, root dom.NodeID) dom.NodeID {
	if !doc.Contains(root, node) {
		return dom.None
	}
	for n := node; n != dom.None && n != root; n = doc.Parent(n) {
		if IsBlockNode(doc, n) {
			return n
		}
	}
	return dom.None
}

// EnsureContentWrapped gives an empty surface a single empty block, holding
// a line break placeholder, and moves sel (when not nil) to its start. It
// reports whether the surface was changed.
func EnsureContentWrapped(doc *dom.Document, surface dom.NodeID, sel *dom.Selection) bool {
	if doc.FirstChild(surface) != dom.None {
		return false
	}

	div := doc.CreateElement("div", "")
	_ = doc.AppendChild(div, doc.CreateElement("br", ""))
	if err := doc.AppendChild(surface, div); err != nil {
		return false
	}

	if sel != nil {
		if rng, err := doc.NewRange(div, 0); err == nil {
			sel.RemoveAllRanges()
			sel.AddRange(rng)
		}
	}
	return true
}

// placeholder returns the line break of a block that holds nothing else.
func placeholder(doc *dom.Document, node dom.NodeID) dom.NodeID {
	if !IsBlockNode(doc, node) || len(doc.Children(node)) != 1 {
		return dom.None
	}
	if br := doc.FirstChild(node); doc.IsElement(br, "br") {
		return br
	}
	return dom.None
}
