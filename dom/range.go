package dom

import "strings"

// Point is a boundary point: a container and an offset into it. Offsets
// count runes for character data and children for everything else.
type Point struct {
	Node   NodeID
	Offset int
}

// Range is a span between two boundary points of one tree. Ranges are not
// live: mutations made through the Range itself keep it consistent, other
// mutations may leave it pointing at stale positions.
type Range struct {
	doc   *Document
	start Point
	end   Point
}

// NewRange returns a range collapsed at (node, offset).
func (d *Document) NewRange(node NodeID, offset int) (*Range, error) {
	if err := d.checkPoint(node, offset); err != nil {
		return nil, err
	}
	p := Point{Node: node, Offset: offset}
	return &Range{doc: d, start: p, end: p}, nil
}

func (d *Document) checkPoint(node NodeID, offset int) error {
	if !d.valid(node) {
		return ErrInvalidNode
	}
	if offset < 0 || offset > d.Len(node) {
		return ErrIndexSize
	}
	return nil
}

func (r *Range) Start() Point            { return r.start }
func (r *Range) End() Point              { return r.end }
func (r *Range) StartContainer() NodeID { return r.start.Node }
func (r *Range) StartOffset() int       { return r.start.Offset }
func (r *Range) EndContainer() NodeID   { return r.end.Node }
func (r *Range) EndOffset() int         { return r.end.Offset }

// Collapsed reports whether the range is a bare cursor position.
func (r *Range) Collapsed() bool {
	return r.start == r.end
}

// SetStart moves the start of the range. If the new start is after the end,
// or in a different tree, the range collapses to it.
func (r *Range) SetStart(node NodeID, offset int) error {
	if err := r.doc.checkPoint(node, offset); err != nil {
		return err
	}
	p := Point{Node: node, Offset: offset}
	if r.doc.Root(node) != r.doc.Root(r.end.Node) || r.doc.ComparePoints(p, r.end) > 0 {
		r.end = p
	}
	r.start = p
	return nil
}

// SetEnd moves the end of the range. If the new end is before the start, or
// in a different tree, the range collapses to it.
func (r *Range) SetEnd(node NodeID, offset int) error {
	if err := r.doc.checkPoint(node, offset); err != nil {
		return err
	}
	p := Point{Node: node, Offset: offset}
	if r.doc.Root(node) != r.doc.Root(r.start.Node) || r.doc.ComparePoints(p, r.start) < 0 {
		r.start = p
	}
	r.end = p
	return nil
}

// Collapse collapses the range to one of its ends.
func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.end = r.start
	} else {
		r.start = r.end
	}
}

// SelectNode makes the range span exactly node.
func (r *Range) SelectNode(node NodeID) error {
	p := r.doc.Parent(node)
	if p == None {
		return ErrInvalidNode
	}
	i := r.doc.Index(node)
	r.start = Point{Node: p, Offset: i}
	r.end = Point{Node: p, Offset: i + 1}
	return nil
}

// SelectNodeContents makes the range span the contents of node.
func (r *Range) SelectNodeContents(node NodeID) error {
	if !r.doc.valid(node) {
		return ErrInvalidNode
	}
	r.start = Point{Node: node, Offset: 0}
	r.end = Point{Node: node, Offset: r.doc.Len(node)}
	return nil
}

// CommonAncestor returns the deepest node containing both boundary points.
func (r *Range) CommonAncestor() NodeID {
	for n := r.start.Node; n != None; n = r.doc.Parent(n) {
		if r.doc.Contains(n, r.end.Node) {
			return n
		}
	}
	return None
}

// ExtractContents moves the contents of the range into a new fragment and
// collapses the range where the contents were. Partially selected nodes are
// split: the fragment receives shallow copies holding the selected part.
func (r *Range) ExtractContents() NodeID {
	return r.process(false)
}

// CloneContents copies the contents of the range into a new fragment.
func (r *Range) CloneContents() NodeID {
	return r.process(true)
}

// DeleteContents removes the contents of the range.
func (r *Range) DeleteContents() {
	r.process(false)
}

// String returns the text covered by the range. It reads the tree in place
// and creates no nodes.
func (r *Range) String() string {
	d := r.doc
	sc, so := r.start.Node, r.start.Offset
	ec, eo := r.end.Node, r.end.Offset

	if sc == ec && d.nodes[sc].Type == TextNode {
		return d.Substring(sc, so, eo)
	}

	var sb strings.Builder
	if d.nodes[sc].Type == TextNode {
		sb.WriteString(d.Substring(sc, so, d.Len(sc)))
	}
	d.Walk(r.CommonAncestor(), func(n NodeID) bool {
		if d.nodes[n].Type == TextNode && n != sc && n != ec && r.containsNode(n) {
			sb.WriteString(d.nodes[n].Data)
		}
		return true
	})
	if d.nodes[ec].Type == TextNode {
		sb.WriteString(d.Substring(ec, 0, eo))
	}
	return sb.String()
}

func (r *Range) process(clone bool) NodeID {
	d := r.doc
	frag := d.CreateFragment()
	if r.Collapsed() {
		return frag
	}

	sc, so := r.start.Node, r.start.Offset
	ec, eo := r.end.Node, r.end.Offset

	if sc == ec && d.isCharacterData(sc) {
		n := d.CloneNode(sc, false)
		d.nodes[n].Data = d.Substring(sc, so, eo)
		_ = d.AppendChild(frag, n)
		if !clone {
			d.ReplaceData(sc, so, eo, "")
			r.end = r.start
		}
		return frag
	}

	common := r.CommonAncestor()

	firstPartial, lastPartial := None, None
	if !d.Contains(sc, ec) {
		firstPartial = d.childOnPath(common, sc)
	}
	if !d.Contains(ec, sc) {
		lastPartial = d.childOnPath(common, ec)
	}

	var contained []NodeID
	for _, c := range d.nodes[common].children {
		if r.containsNode(c) {
			contained = append(contained, c)
		}
	}

	collapseTo := Point{Node: sc, Offset: so}
	if !d.Contains(sc, ec) {
		ref := sc
		for !d.Contains(d.Parent(ref), ec) {
			ref = d.Parent(ref)
		}
		collapseTo = Point{Node: d.Parent(ref), Offset: d.Index(ref) + 1}
	}

	if firstPartial != None {
		if d.isCharacterData(firstPartial) {
			n := d.CloneNode(sc, false)
			d.nodes[n].Data = d.Substring(sc, so, d.Len(sc))
			_ = d.AppendChild(frag, n)
			if !clone {
				d.ReplaceData(sc, so, d.Len(sc), "")
			}
		} else {
			n := d.CloneNode(firstPartial, false)
			_ = d.AppendChild(frag, n)
			sub := &Range{doc: d, start: r.start, end: Point{Node: firstPartial, Offset: d.Len(firstPartial)}}
			_ = d.AppendChild(n, sub.process(clone))
		}
	}

	for _, c := range contained {
		if clone {
			_ = d.AppendChild(frag, d.CloneNode(c, true))
		} else {
			_ = d.AppendChild(frag, c)
		}
	}

	if lastPartial != None {
		if d.isCharacterData(lastPartial) {
			n := d.CloneNode(ec, false)
			d.nodes[n].Data = d.Substring(ec, 0, eo)
			_ = d.AppendChild(frag, n)
			if !clone {
				d.ReplaceData(ec, 0, eo, "")
			}
		} else {
			n := d.CloneNode(lastPartial, false)
			_ = d.AppendChild(frag, n)
			sub := &Range{doc: d, start: Point{Node: lastPartial, Offset: 0}, end: r.end}
			_ = d.AppendChild(n, sub.process(clone))
		}
	}

	if !clone {
		r.start, r.end = collapseTo, collapseTo
	}
	return frag
}

// InsertNode inserts node at the start of the range, splitting a text
// container when needed. Afterwards the range starts in front of the
// inserted content; a collapsed range is extended over it, and the end of
// any other range keeps covering what it covered before.
func (r *Range) InsertNode(node NodeID) error {
	d := r.doc
	if !d.valid(node) {
		return ErrInvalidNode
	}
	sc, so := r.start.Node, r.start.Offset
	if sc == node || d.nodes[sc].Type == CommentNode {
		return ErrHierarchyRequest
	}

	var parent, ref NodeID
	if d.nodes[sc].Type == TextNode {
		parent = d.Parent(sc)
		if parent == None {
			return ErrHierarchyRequest
		}
		switch {
		case so == 0:
			ref = sc
		case so == d.Len(sc):
			ref = d.NextSibling(sc)
		default:
			ref = d.splitText(sc, so)
			if r.end.Node == sc && r.end.Offset > so {
				r.end = Point{Node: ref, Offset: r.end.Offset - so}
			} else if r.end.Node == parent && r.end.Offset > d.Index(sc) {
				r.end.Offset++
			}
		}
	} else {
		parent = sc
		ref = d.ChildAt(sc, so)
	}
	if ref == node {
		ref = d.NextSibling(node)
	}

	count, first := 1, node
	if d.nodes[node].Type == FragmentNode {
		count, first = len(d.nodes[node].children), d.FirstChild(node)
	}
	collapsed := r.Collapsed()

	if err := d.InsertBefore(parent, node, ref); err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	i := d.Index(first)
	if !collapsed && r.end.Node == parent && r.end.Offset > i {
		r.end.Offset += count
	}
	r.start = Point{Node: parent, Offset: i}
	if collapsed || d.ComparePoints(r.end, r.start) < 0 {
		r.end = Point{Node: parent, Offset: i + count}
	}
	return nil
}

// splitText cuts a text node at offset and returns the new node holding the
// tail, inserted right after the original.
func (d *Document) splitText(id NodeID, offset int) NodeID {
	tail := d.CreateText(d.Substring(id, offset, d.Len(id)))
	d.ReplaceData(id, offset, d.Len(id), "")
	if p := d.Parent(id); p != None {
		_ = d.InsertBefore(p, tail, d.NextSibling(id))
	}
	return tail
}

// containsNode reports whether node lies entirely inside the range.
func (r *Range) containsNode(node NodeID) bool {
	d := r.doc
	return d.ComparePoints(Point{Node: node, Offset: 0}, r.start) > 0 &&
		d.ComparePoints(Point{Node: node, Offset: d.Len(node)}, r.end) < 0
}

// childOnPath returns the child of ancestor that contains node.
func (d *Document) childOnPath(ancestor, node NodeID) NodeID {
	for n := node; n != None; n = d.Parent(n) {
		if d.Parent(n) == ancestor {
			return n
		}
	}
	return None
}

// ComparePoints returns -1, 0 or 1 when a is before, equal to or after b.
// Both points must be in the same tree.
func (d *Document) ComparePoints(a, b Point) int {
	if a.Node == b.Node {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	}
	if d.treeOrder(a.Node, b.Node) > 0 {
		return -d.ComparePoints(b, a)
	}
	if d.Contains(a.Node, b.Node) {
		child := d.childOnPath(a.Node, b.Node)
		if d.Index(child) < a.Offset {
			return 1
		}
	}
	return -1
}

// treeOrder compares two nodes in preorder, depth-first traversal order.
func (d *Document) treeOrder(a, b NodeID) int {
	if a == b {
		return 0
	}
	pa, pb := d.path(a), d.path(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	if len(pa) < len(pb) {
		return -1
	}
	return 1
}

// path returns the child indices leading from the root down to id.
func (d *Document) path(id NodeID) []int {
	var rev []int
	for n := id; d.Parent(n) != None; n = d.Parent(n) {
		rev = append(rev, d.Index(n))
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// Selection is the set of ranges a user has highlighted.
type Selection struct {
	ranges []*Range
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Anchor returns the node the selection starts in, or None.
func (s *Selection) Anchor() NodeID {
	if s == nil || len(s.ranges) == 0 {
		return None
	}
	return s.ranges[0].start.Node
}

// RangeCount returns the number of ranges.
func (s *Selection) RangeCount() int {
	if s == nil {
		return 0
	}
	return len(s.ranges)
}

// RangeAt returns the i-th range, or nil.
func (s *Selection) RangeAt(i int) *Range {
	if s == nil || i < 0 || i >= len(s.ranges) {
		return nil
	}
	return s.ranges[i]
}

// AddRange appends a range.
func (s *Selection) AddRange(r *Range) {
	s.ranges = append(s.ranges, r)
}

// RemoveAllRanges empties the selection.
func (s *Selection) RemoveAllRanges() {
	s.ranges = nil
}

// String returns the text of every range.
func (s *Selection) String() string {
	if s == nil {
		return ""
	}
	var out string
	for _, r := range s.ranges {
		out += r.String()
	}
	return out
}
