package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses markup into a new Document and returns its body element.
func ParseHTML(r io.Reader) (*Document, NodeID, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, None, err
	}

	d := New()
	body := findBody(root)
	if body == nil {
		return d, d.CreateElement("body", ""), nil
	}
	return d, d.Import(body), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// Import copies an x/net/html subtree into the document and returns the new
// detached node. Only the class and style attributes survive; doctype and
// document nodes become fragments.
func (d *Document) Import(n *html.Node) NodeID {
	var id NodeID
	switch n.Type {
	case html.TextNode:
		return d.CreateText(n.Data)
	case html.CommentNode:
		return d.CreateComment(n.Data)
	case html.ElementNode:
		id = d.CreateElement(n.Data, "")
		for _, a := range n.Attr {
			switch a.Key {
			case "class":
				d.nodes[id].Class = a.Val
			case "style":
				d.nodes[id].Style = ParseDeclarations(a.Val)
			}
		}
	default:
		id = d.CreateFragment()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = d.AppendChild(id, d.Import(c))
	}
	return id
}

// Export converts a node into x/net/html nodes. A fragment yields its
// children.
func (d *Document) Export(id NodeID) []*html.Node {
	n := d.nodes[id]
	switch n.Type {
	case TextNode:
		return []*html.Node{{Type: html.TextNode, Data: n.Data}}
	case CommentNode:
		return []*html.Node{{Type: html.CommentNode, Data: n.Data}}
	case FragmentNode:
		var out []*html.Node
		for _, c := range n.children {
			out = append(out, d.Export(c)...)
		}
		return out
	}

	el := &html.Node{Type: html.ElementNode, Data: n.Tag, DataAtom: atom.Lookup([]byte(n.Tag))}
	if n.Class != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: n.Class})
	}
	if len(n.Style) > 0 {
		el.Attr = append(el.Attr, html.Attribute{Key: "style", Val: n.Style.String()})
	}
	for _, c := range n.children {
		for _, h := range d.Export(c) {
			el.AppendChild(h)
		}
	}
	return []*html.Node{el}
}

// Render writes the markup of a node. Fragments render their children.
func (d *Document) Render(w io.Writer, id NodeID) error {
	for _, h := range d.Export(id) {
		if err := html.Render(w, h); err != nil {
			return err
		}
	}
	return nil
}

// OuterHTML returns the markup of a node.
func (d *Document) OuterHTML(id NodeID) string {
	var sb strings.Builder
	_ = d.Render(&sb, id)
	return sb.String()
}

// InnerHTML returns the markup of the children of a node.
func (d *Document) InnerHTML(id NodeID) string {
	var sb strings.Builder
	for _, c := range d.nodes[id].children {
		_ = d.Render(&sb, c)
	}
	return sb.String()
}
