// Package editor implements the rich text editing surface: selection
// helpers, the toolbar format commands and the clipboard transforms.
//
// A Surface is driven by one host at a time. Each entry point first runs the
// tasks deferred by the previous one, then resolves the current highlight
// from the host's selection; ranges are never cached across calls.
package editor

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/burntcarrot/richpad/dom"
	"github.com/burntcarrot/richpad/sanitize"
	"github.com/burntcarrot/richpad/style"
)

// RootClass is the class of the surface root element.
const RootClass = "edit-area"

// Config configures a Surface.
type Config struct {
	// Stylesheet is used to resolve styles. The embedded default stylesheet
	// is used when nil.
	Stylesheet *style.Stylesheet

	// Logger receives debug output about commands. Logs are discarded when
	// nil.
	Logger logrus.FieldLogger

	// InitialHTML is loaded into the surface on creation.
	InitialHTML string
}

// Surface is an editable rich text area.
type Surface struct {
	doc      *dom.Document
	root     dom.NodeID
	sel      *dom.Selection
	resolver *style.Resolver
	queue    Queue
	log      logrus.FieldLogger
	focused  bool
}

// New returns a surface loaded with cfg.InitialHTML.
func New(cfg Config) (*Surface, error) {
	logger := cfg.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	doc := dom.New()
	s := &Surface{
		doc:      doc,
		root:     doc.CreateElement("div", RootClass),
		sel:      dom.NewSelection(),
		resolver: style.NewResolver(cfg.Stylesheet),
		log:      logger,
	}

	if cfg.InitialHTML != "" {
		if err := s.SetHTML(cfg.InitialHTML); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Document returns the document holding the surface.
func (s *Surface) Document() *dom.Document { return s.doc }

// Root returns the surface root element.
func (s *Surface) Root() dom.NodeID { return s.root }

// Selection returns the selection the host manipulates.
func (s *Surface) Selection() *dom.Selection { return s.sel }

// Focused reports whether the surface has been focused.
func (s *Surface) Focused() bool { return s.focused }

// HTML returns the markup of the surface content.
func (s *Surface) HTML() string {
	return s.doc.InnerHTML(s.root)
}

// Text returns the text content of the surface.
func (s *Surface) Text() string {
	return s.doc.TextContent(s.root)
}

// Flush runs the tasks deferred by the last command. Hosts call it once they
// are done serializing the surface.
func (s *Surface) Flush() {
	if n := s.queue.Flush(); n > 0 {
		s.log.WithField("tasks", n).Debug("flushed deferred tasks")
	}
}

// Pending returns the number of deferred tasks.
func (s *Surface) Pending() int {
	return s.queue.Len()
}

// SetHTML replaces the content of the surface with sanitized markup and puts
// the cursor at its end.
func (s *Surface) SetHTML(markup string) error {
	s.Flush()

	src, body, err := dom.ParseHTML(strings.NewReader(markup))
	if err != nil {
		return err
	}

	for _, c := range s.doc.Children(s.root) {
		s.doc.Remove(c)
	}
	if err := s.doc.AppendChild(s.root, sanitize.Sanitize(s.doc, src, body)); err != nil {
		return err
	}

	p := s.doc.PointAtText(s.root, utf8.RuneCountInString(s.Text()))
	return s.Select(p, p)
}

// Highlight resolves the current selection and its first range. Both are
// nil when the selection starts outside the surface; the range is nil when
// the selection is empty.
func (s *Surface) Highlight() (*dom.Selection, *dom.Range) {
	if a := s.sel.Anchor(); a != dom.None && !s.doc.Contains(s.root, a) {
		return nil, nil
	}
	return s.sel, s.sel.RangeAt(0)
}

// Select replaces the selection with a single range from start to end.
func (s *Surface) Select(start, end dom.Point) error {
	rng, err := s.doc.NewRange(start.Node, start.Offset)
	if err != nil {
		return err
	}
	if err := rng.SetEnd(end.Node, end.Offset); err != nil {
		return err
	}

	s.sel.RemoveAllRanges()
	s.sel.AddRange(rng)
	return nil
}

// SelectText selects the runes [start, end) of the surface text.
func (s *Surface) SelectText(start, end int) error {
	if end < start {
		start, end = end, start
	}
	return s.Select(s.doc.PointAtText(s.root, start), s.doc.PointAtText(s.root, end))
}

// Focus handles the surface gaining focus.
func (s *Surface) Focus() {
	s.Flush()
	s.focused = true

	sel, _ := s.Highlight()
	if EnsureContentWrapped(s.doc, s.root, sel) {
		s.log.Debug("wrapped empty surface")
	}
}

// Input handles the surface content having been edited by the user.
func (s *Surface) Input() {
	s.Flush()

	sel, _ := s.Highlight()
	if EnsureContentWrapped(s.doc, s.root, sel) {
		s.log.Debug("wrapped empty surface")
	}
}

// Drop refuses content dropped on the surface.
func (s *Surface) Drop() bool {
	s.Flush()
	s.log.Debug("refused drop")
	return false
}

// InsertText types text at the cursor, replacing the selected content.
func (s *Surface) InsertText(text string) bool {
	s.Flush()

	_, rng := s.Highlight()
	if rng == nil || text == "" {
		return false
	}
	if !rng.Collapsed() {
		rng.DeleteContents()
	}

	sc, so := rng.StartContainer(), rng.StartOffset()
	if s.doc.Type(sc) == dom.TextNode {
		s.doc.ReplaceData(sc, so, so, text)
		_ = rng.SetStart(sc, so+utf8.RuneCountInString(text))
		rng.Collapse(true)
		return true
	}

	br := placeholder(s.doc, sc)
	t := s.doc.CreateText(text)
	if err := rng.InsertNode(t); err != nil {
		s.log.WithError(err).Debug("unable to insert text")
		return false
	}
	if br != dom.None {
		s.doc.Remove(br)
	}
	_ = rng.SetStart(t, s.doc.Len(t))
	rng.Collapse(true)
	return true
}

// DeleteSelection removes the selected content.
func (s *Surface) DeleteSelection() bool {
	s.Flush()

	_, rng := s.Highlight()
	if rng == nil || rng.Collapsed() {
		return false
	}
	rng.DeleteContents()
	return true
}

// afterCommand resolves formatting styles inline on the whole surface and
// defers their removal, so that whatever reads the surface before the next
// event sees them.
func (s *Surface) afterCommand() {
	s.resolver.InlineComputedStyles(s.doc, s.root)
	s.queue.Defer(func() {
		style.StripInlineStyles(s.doc, s.root)
	})
	s.focused = true
}
