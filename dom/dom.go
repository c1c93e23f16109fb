// Package dom is the document tree edited by richpad.
//
// A Document is an arena: every node lives in one slice and is addressed by
// its NodeID, and each node keeps an ordered list of child IDs plus the ID of
// its single parent. Nodes are never freed; a node that is removed from the
// tree simply becomes unreachable from the surface root.
package dom

import (
	"strings"
	"unicode/utf8"
)

// NodeID addresses a node inside a Document.
type NodeID int

// None is the NodeID of a missing node.
const None NodeID = -1

// NodeType is the kind of a node.
type NodeType uint8

const (
	TextNode NodeType = iota
	ElementNode
	CommentNode
	FragmentNode
)

// Node is a single entry of a Document.
type Node struct {
	Type NodeType

	// Tag is the lower-case tag name of an element.
	Tag string

	// Class is the class attribute of an element.
	Class string

	// Style holds the inline style declarations of an element.
	Style Declarations

	// Data is the content of a text or comment node.
	Data string

	parent   NodeID
	children []NodeID
}

// Document owns every node of a tree.
type Document struct {
	nodes []Node
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

func (d *Document) add(n Node) NodeID {
	n.parent = None
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag, class string) NodeID {
	return d.add(Node{Type: ElementNode, Tag: strings.ToLower(tag), Class: class})
}

// CreateText creates a detached text node.
func (d *Document) CreateText(data string) NodeID {
	return d.add(Node{Type: TextNode, Data: data})
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(data string) NodeID {
	return d.add(Node{Type: CommentNode, Data: data})
}

// CreateFragment creates an empty document fragment.
func (d *Document) CreateFragment() NodeID {
	return d.add(Node{Type: FragmentNode})
}

func (d *Document) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(d.nodes)
}

// Node returns the node addressed by id, or nil.
func (d *Document) Node(id NodeID) *Node {
	if !d.valid(id) {
		return nil
	}
	return &d.nodes[id]
}

// Type returns the type of a node.
func (d *Document) Type(id NodeID) NodeType {
	return d.nodes[id].Type
}

// IsElement reports whether id is an element, optionally with one of tags.
func (d *Document) IsElement(id NodeID, tags ...string) bool {
	if !d.valid(id) || d.nodes[id].Type != ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if d.nodes[id].Tag == tag {
			return true
		}
	}
	return false
}

func (d *Document) isCharacterData(id NodeID) bool {
	t := d.nodes[id].Type
	return t == TextNode || t == CommentNode
}

// Parent returns the parent of a node, or None.
func (d *Document) Parent(id NodeID) NodeID {
	if !d.valid(id) {
		return None
	}
	return d.nodes[id].parent
}

// Children returns a copy of the child list of a node.
func (d *Document) Children(id NodeID) []NodeID {
	if !d.valid(id) {
		return nil
	}
	return append([]NodeID(nil), d.nodes[id].children...)
}

// ChildAt returns the i-th child of a node, or None.
func (d *Document) ChildAt(id NodeID, i int) NodeID {
	if !d.valid(id) || i < 0 || i >= len(d.nodes[id].children) {
		return None
	}
	return d.nodes[id].children[i]
}

// FirstChild returns the first child of a node, or None.
func (d *Document) FirstChild(id NodeID) NodeID {
	return d.ChildAt(id, 0)
}

// LastChild returns the last child of a node, or None.
func (d *Document) LastChild(id NodeID) NodeID {
	if !d.valid(id) {
		return None
	}
	return d.ChildAt(id, len(d.nodes[id].children)-1)
}

// NextSibling returns the node following id in its parent, or None.
func (d *Document) NextSibling(id NodeID) NodeID {
	p := d.Parent(id)
	if p == None {
		return None
	}
	return d.ChildAt(p, d.Index(id)+1)
}

// Index returns the position of a node among its siblings, or -1.
func (d *Document) Index(id NodeID) int {
	p := d.Parent(id)
	if p == None {
		return -1
	}
	for i, c := range d.nodes[p].children {
		if c == id {
			return i
		}
	}
	return -1
}

// Len returns the length of a node: the rune count of character data and
// the child count of anything else.
func (d *Document) Len(id NodeID) int {
	if !d.valid(id) {
		return 0
	}
	if d.isCharacterData(id) {
		return utf8.RuneCountInString(d.nodes[id].Data)
	}
	return len(d.nodes[id].children)
}

// Root returns the topmost ancestor of a node (the node itself when detached).
func (d *Document) Root(id NodeID) NodeID {
	for d.Parent(id) != None {
		id = d.Parent(id)
	}
	return id
}

// Contains reports whether node is ancestor or ancestor's inclusive descendant.
func (d *Document) Contains(ancestor, node NodeID) bool {
	if !d.valid(ancestor) || !d.valid(node) {
		return false
	}
	for n := node; n != None; n = d.nodes[n].parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// AppendChild appends child to parent. Appending a fragment moves its
// children instead.
func (d *Document) AppendChild(parent, child NodeID) error {
	return d.InsertBefore(parent, child, None)
}

// InsertBefore inserts child into parent before ref (at the end when ref is
// None). A node that is already attached is moved.
func (d *Document) InsertBefore(parent, child, ref NodeID) error {
	if !d.valid(parent) || !d.valid(child) {
		return ErrInvalidNode
	}
	if t := d.nodes[parent].Type; t != ElementNode && t != FragmentNode {
		return ErrHierarchyRequest
	}
	if d.Contains(child, parent) {
		return ErrHierarchyRequest
	}
	if ref != None && d.Parent(ref) != parent {
		return ErrNotFound
	}

	var moving []NodeID
	if d.nodes[child].Type == FragmentNode {
		moving = d.nodes[child].children
		d.nodes[child].children = nil
	} else {
		if ref == child {
			ref = d.NextSibling(child)
		}
		d.Remove(child)
		moving = []NodeID{child}
	}

	at := len(d.nodes[parent].children)
	if ref != None {
		at = d.Index(ref)
	}

	children := make([]NodeID, 0, len(d.nodes[parent].children)+len(moving))
	children = append(children, d.nodes[parent].children[:at]...)
	children = append(children, moving...)
	children = append(children, d.nodes[parent].children[at:]...)
	d.nodes[parent].children = children

	for _, m := range moving {
		d.nodes[m].parent = parent
	}
	return nil
}

// Remove detaches a node from its parent. It is a no-op for detached nodes.
func (d *Document) Remove(id NodeID) {
	p := d.Parent(id)
	if p == None {
		return
	}
	i := d.Index(id)
	d.nodes[p].children = append(d.nodes[p].children[:i:i], d.nodes[p].children[i+1:]...)
	d.nodes[id].parent = None
}

// ReplaceWith puts replacement where old is and detaches old.
func (d *Document) ReplaceWith(old, replacement NodeID) error {
	p := d.Parent(old)
	if p == None {
		return ErrNotFound
	}
	if err := d.InsertBefore(p, replacement, old); err != nil {
		return err
	}
	d.Remove(old)
	return nil
}

// TextContent concatenates the text nodes below id.
func (d *Document) TextContent(id NodeID) string {
	if !d.valid(id) {
		return ""
	}
	switch d.nodes[id].Type {
	case TextNode, CommentNode:
		return d.nodes[id].Data
	}
	var sb strings.Builder
	d.Walk(id, func(n NodeID) bool {
		if d.nodes[n].Type == TextNode {
			sb.WriteString(d.nodes[n].Data)
		}
		return true
	})
	return sb.String()
}

// SetTextContent replaces the children of an element with a single text node
// (none at all for an empty string), or the data of character data.
func (d *Document) SetTextContent(id NodeID, text string) {
	if !d.valid(id) {
		return
	}
	if d.isCharacterData(id) {
		d.nodes[id].Data = text
		return
	}
	for _, c := range d.Children(id) {
		d.Remove(c)
	}
	if text != "" {
		_ = d.AppendChild(id, d.CreateText(text))
	}
}

// ReplaceData replaces the runes [from, to) of character data with s.
func (d *Document) ReplaceData(id NodeID, from, to int, s string) {
	data := []rune(d.nodes[id].Data)
	d.nodes[id].Data = string(data[:from]) + s + string(data[to:])
}

// Substring returns the runes [from, to) of character data.
func (d *Document) Substring(id NodeID, from, to int) string {
	data := []rune(d.nodes[id].Data)
	return string(data[from:to])
}

// CloneNode copies a node. Deep clones copy the whole subtree. Clones are
// detached.
func (d *Document) CloneNode(id NodeID, deep bool) NodeID {
	src := d.nodes[id]
	clone := d.add(Node{
		Type:  src.Type,
		Tag:   src.Tag,
		Class: src.Class,
		Style: append(Declarations(nil), src.Style...),
		Data:  src.Data,
	})
	if deep {
		for _, c := range src.children {
			_ = d.AppendChild(clone, d.CloneNode(c, true))
		}
	}
	return clone
}

// Walk visits id and its descendants in tree order. Returning false from fn
// skips the children of the visited node.
func (d *Document) Walk(id NodeID, fn func(NodeID) bool) {
	if !d.valid(id) {
		return
	}
	if !fn(id) {
		return
	}
	for _, c := range d.Children(id) {
		d.Walk(c, fn)
	}
}
