package editor

import (
	"strings"
	"testing"

	"github.com/burntcarrot/richpad/dom"
)

func parse(t *testing.T, markup string) (*dom.Document, dom.NodeID) {
	t.Helper()
	d, body, err := dom.ParseHTML(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("failed to parse %q: %v", markup, err)
	}
	return d, body
}

func TestIsBlockNode(t *testing.T) {
	d, body := parse(t, `<p></p><div></div><h1></h1><h6></h6><b></b><span></span><h7></h7>text`)

	want := []bool{true, true, true, true, false, false, false, false}
	for i, c := range d.Children(body) {
		if got := IsBlockNode(d, c); got != want[i] {
			t.Errorf("(%s) got != want; got = %v, expected = %v\n", d.OuterHTML(c), got, want[i])
		}
	}
}

func TestGetParentBlockNode(t *testing.T) {
	d, body := parse(t, `<p>a<b>b</b></p><i>c</i>`)
	p := d.FirstChild(body)
	b := d.ChildAt(p, 1)
	i := d.ChildAt(body, 1)

	tests := []struct {
		description string
		node        dom.NodeID
		want        dom.NodeID
	}{
		{description: "root itself", node: body, want: dom.None},
		{description: "block itself", node: p, want: p},
		{description: "text in block", node: d.FirstChild(p), want: p},
		{description: "nested inline", node: d.FirstChild(b), want: p},
		{description: "inline in root", node: d.FirstChild(i), want: dom.None},
	}

	for _, tc := range tests {
		if got := GetParentBlockNode(d, tc.node, body); got != tc.want {
			t.Errorf("(%s) got != want; got = %v, expected = %v\n", tc.description, got, tc.want)
		}
	}
}

func TestGetParentBlockNodeStopsAtRoot(t *testing.T) {
	d, body := parse(t, `<div><span>x</span></div>`)
	div := d.FirstChild(body)
	span := d.FirstChild(div)

	// the div is a block, but it is the root here
	if got := GetParentBlockNode(d, d.FirstChild(span), div); got != dom.None {
		t.Errorf("walked past root, got %v", got)
	}
}

func TestGetParentBlockNodeOutsideRoot(t *testing.T) {
	d, body := parse(t, `<div class="edit-area"></div><p><b>x</b></p>`)
	root := d.FirstChild(body)
	outside := d.FirstChild(d.ChildAt(body, 1))
	detached := d.CreateElement("p", "")

	tests := []struct {
		description string
		node        dom.NodeID
	}{
		{description: "sibling of the root", node: outside},
		{description: "block of the sibling", node: d.Parent(outside)},
		{description: "detached block", node: detached},
		{description: "missing node", node: dom.None},
	}

	for _, tc := range tests {
		if got := GetParentBlockNode(d, tc.node, root); got != dom.None {
			t.Errorf("(%s) got != want; got = %v, expected = %v\n", tc.description, got, dom.None)
		}
	}
}

func TestEnsureContentWrapped(t *testing.T) {
	d := dom.New()
	root := d.CreateElement("div", RootClass)
	sel := dom.NewSelection()

	if !EnsureContentWrapped(d, root, sel) {
		t.Fatalf("expected the empty surface to be wrapped")
	}
	if got := d.InnerHTML(root); got != "<div><br/></div>" {
		t.Errorf("got != want; got = %v, expected = %v\n", got, "<div><br/></div>")
	}

	want := dom.Point{Node: d.FirstChild(root), Offset: 0}
	rng := sel.RangeAt(0)
	if sel.RangeCount() != 1 || rng.Start() != want || !rng.Collapsed() {
		t.Errorf("expected a cursor at the start of the new block, got %+v", rng)
	}

	if EnsureContentWrapped(d, root, sel) {
		t.Errorf("expected a surface with children to be left alone")
	}
	if got := len(d.Children(root)); got != 1 {
		t.Errorf("expected exactly one child, got %d", got)
	}
}

func TestEnsureContentWrappedWithoutSelection(t *testing.T) {
	d := dom.New()
	root := d.CreateElement("div", RootClass)

	if !EnsureContentWrapped(d, root, nil) {
		t.Fatalf("expected the empty surface to be wrapped")
	}
	if got := d.InnerHTML(root); got != "<div><br/></div>" {
		t.Errorf("got != want; got = %v, expected = %v\n", got, "<div><br/></div>")
	}
}
