package dom

// PointAtText maps a rune offset into the text content of root to a boundary
// point. Offsets on the seam between two text nodes resolve to the end of
// the earlier one. Offsets past the end clamp to the end of the last text
// node. When root holds no text, the point is the start of its first element
// child, or of root itself.
func (d *Document) PointAtText(root NodeID, offset int) Point {
	if offset < 0 {
		offset = 0
	}

	last := None
	found := None
	remaining := offset
	d.Walk(root, func(n NodeID) bool {
		if found != None {
			return false
		}
		if d.nodes[n].Type != TextNode {
			return true
		}
		l := d.Len(n)
		if remaining <= l {
			found = n
			return false
		}
		remaining -= l
		last = n
		return true
	})

	switch {
	case found != None:
		return Point{Node: found, Offset: remaining}
	case last != None:
		return Point{Node: last, Offset: d.Len(last)}
	}
	for _, c := range d.nodes[root].children {
		if d.nodes[c].Type == ElementNode {
			return Point{Node: c, Offset: 0}
		}
	}
	return Point{Node: root, Offset: 0}
}

// TextOffset is the inverse of PointAtText: it counts the runes of text
// content between the start of root and p.
func (d *Document) TextOffset(root NodeID, p Point) int {
	total := 0
	d.Walk(root, func(n NodeID) bool {
		if d.nodes[n].Type != TextNode {
			return true
		}
		if n == p.Node {
			total += p.Offset
			return false
		}
		if d.ComparePoints(Point{Node: n, Offset: d.Len(n)}, p) <= 0 {
			total += d.Len(n)
		}
		return true
	})
	return total
}
