package editor

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/burntcarrot/richpad/dom"
	"github.com/burntcarrot/richpad/policy"
	"github.com/burntcarrot/richpad/sanitize"
	"github.com/burntcarrot/richpad/style"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// ClipboardData maps a MIME type to the representation stored under it.
type ClipboardData map[string]string

// Text returns the text/plain representation.
func (c ClipboardData) Text() string { return c[policy.PlainMimeType] }

// HTML returns the text/html representation.
func (c ClipboardData) HTML() string { return c[policy.HTMLMimeType] }

// RangeToFragmentWithStyles returns the content of rng as a detached
// fragment whose elements carry their resolved styles inline. Cutting
// removes the content from the surface. No inline style is left on the
// surface afterwards.
func (s *Surface) RangeToFragmentWithStyles(rng *dom.Range, cut bool) dom.NodeID {
	s.resolver.InlineAllComputedStyles(s.doc, s.root)

	var frag dom.NodeID
	if cut {
		frag = rng.ExtractContents()
	} else {
		frag = rng.CloneContents()
	}

	style.StripInlineStyles(s.doc, s.root)
	return frag
}

// Copy returns the selected content as clipboard data. It reports false
// when nothing is selected.
func (s *Surface) Copy() (ClipboardData, bool) {
	return s.toClipboard(false)
}

// Cut returns the selected content as clipboard data and removes it from the
// surface. It reports false when nothing is selected.
func (s *Surface) Cut() (ClipboardData, bool) {
	data, ok := s.toClipboard(true)
	if ok {
		sel, _ := s.Highlight()
		EnsureContentWrapped(s.doc, s.root, sel)
	}
	return data, ok
}

func (s *Surface) toClipboard(cut bool) (ClipboardData, bool) {
	s.Flush()

	_, rng := s.Highlight()
	if rng == nil || rng.Collapsed() {
		return nil, false
	}

	// the text goes first, a cut empties the range
	text := rng.String()
	frag := s.RangeToFragmentWithStyles(rng, cut)
	markup := policy.SanitizeExport(s.doc.OuterHTML(frag))

	s.log.WithFields(logrus.Fields{"cut": cut, "runes": len([]rune(text))}).Debug("wrote clipboard")
	return ClipboardData{
		policy.PlainMimeType: text,
		policy.HTMLMimeType:  markup,
	}, true
}

// Paste inserts clipboard data at the cursor, replacing the selected
// content. HTML is preferred and sanitized; plain text becomes one div per
// line. The cursor ends up after the inserted content.
func (s *Surface) Paste(data ClipboardData) bool {
	s.Flush()

	_, rng := s.Highlight()
	if rng == nil {
		return false
	}

	var frag dom.NodeID
	if markup := data.HTML(); markup != "" {
		src, body, err := dom.ParseHTML(strings.NewReader(markup))
		if err != nil {
			s.log.WithError(err).Warn("unable to parse pasted markup")
			return false
		}
		frag = s.doc.CreateFragment()
		_ = s.doc.AppendChild(frag, sanitize.Sanitize(s.doc, src, body))
	} else {
		text := data.Text()
		if text == "" {
			return false
		}
		frag = s.doc.CreateFragment()
		for _, line := range lineBreak.Split(text, -1) {
			div := s.doc.CreateElement("div", "")
			s.doc.SetTextContent(div, line)
			_ = s.doc.AppendChild(frag, div)
		}
	}

	deleted := !rng.Collapsed()
	if deleted {
		rng.DeleteContents()
	}

	inserted := s.doc.Len(frag)
	if inserted == 0 {
		s.log.Debug("nothing to paste")
		return deleted
	}
	if err := rng.InsertNode(frag); err != nil {
		s.log.WithError(err).Warn("unable to insert pasted content")
		return false
	}
	rng.Collapse(false)

	s.log.WithField("nodes", inserted).Debug("pasted")
	s.afterCommand()
	return true
}
