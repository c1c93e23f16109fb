package style

import (
	"github.com/burntcarrot/richpad/dom"
	"github.com/burntcarrot/richpad/policy"
)

// InlineComputedStyles writes the resolved editor properties as inline
// declarations on every formatting element below (and including) node.
// Children are visited whether or not their parent matched.
func (r *Resolver) InlineComputedStyles(doc *dom.Document, node dom.NodeID) {
	r.inline(doc, node, r.parentStyle(doc, node), policy.EditorStyleProperties, true)
}

// InlineAllComputedStyles writes the resolved clipboard properties as inline
// declarations on every element below (and including) node.
func (r *Resolver) InlineAllComputedStyles(doc *dom.Document, node dom.NodeID) {
	r.inline(doc, node, r.parentStyle(doc, node), policy.ClipboardStyleProperties, false)
}

func (r *Resolver) parentStyle(doc *dom.Document, node dom.NodeID) Computed {
	if p := doc.Parent(node); p != dom.None {
		return r.Compute(doc, p)
	}
	return nil
}

func (r *Resolver) inline(doc *dom.Document, id dom.NodeID, parent Computed, props []string, formattingOnly bool) {
	n := doc.Node(id)
	if n == nil {
		return
	}

	computed := r.computeWith(doc, id, parent)
	if n.Type == dom.ElementNode && (!formattingOnly || policy.IsFormatting(n.Tag)) {
		for _, prop := range props {
			n.Style.Set(prop, computed[prop])
		}
	}

	for _, c := range doc.Children(id) {
		r.inline(doc, c, computed, props, formattingOnly)
	}
}

// StripInlineStyles removes every inline declaration below (and including)
// node.
func StripInlineStyles(doc *dom.Document, node dom.NodeID) {
	doc.Walk(node, func(id dom.NodeID) bool {
		if n := doc.Node(id); n.Type == dom.ElementNode {
			n.Style = nil
		}
		return true
	})
}

// HasInlineStyles reports whether any element below (and including) node
// carries inline declarations.
func HasInlineStyles(doc *dom.Document, node dom.NodeID) bool {
	found := false
	doc.Walk(node, func(id dom.NodeID) bool {
		if len(doc.Node(id).Style) > 0 {
			found = true
		}
		return !found
	})
	return found
}
