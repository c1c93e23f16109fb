package editor

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/burntcarrot/richpad/dom"
	"github.com/burntcarrot/richpad/policy"
)

// Action is a toolbar format command.
type Action string

const (
	ActionBold    Action = "bold"
	ActionItalic  Action = "italic"
	ActionHeader1 Action = "header-1"
	ActionHeader2 Action = "header-2"
)

// Actions lists the toolbar actions in toolbar order.
var Actions = []Action{ActionBold, ActionItalic, ActionHeader1, ActionHeader2}

// ParseAction returns the action named s.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown format action %q", s)
}

// Apply runs the format command bound to a toolbar action and reports
// whether the surface changed.
func (s *Surface) Apply(a Action) bool {
	switch a {
	case ActionBold:
		return s.FormatInline("b", class("b"))
	case ActionItalic:
		return s.FormatInline("i", class("i"))
	case ActionHeader1:
		return s.FormatHeader("h1", class("h1"))
	case ActionHeader2:
		return s.FormatHeader("h2", class("h2"))
	}
	return false
}

func class(tag string) string {
	c, _ := policy.ClassFor(tag)
	return c
}

// FormatInline wraps the selected content in a new tag element. It does
// nothing when there is no selection or when it is collapsed.
func (s *Surface) FormatInline(tag, className string) bool {
	s.Flush()

	_, rng := s.Highlight()
	if rng == nil || rng.Collapsed() {
		return false
	}

	node := s.doc.CreateElement(tag, className)
	_ = s.doc.AppendChild(node, rng.ExtractContents())
	if err := rng.InsertNode(node); err != nil {
		s.log.WithError(err).WithField("tag", tag).Warn("unable to insert formatted content")
		return false
	}

	s.log.WithFields(logrus.Fields{"tag": tag, "class": className}).Debug("formatted inline")
	s.afterCommand()
	return true
}

// FormatHeader turns content into a header.
//
// With a cursor, the enclosing block is replaced by a header holding its
// content; without an enclosing block the node under the cursor is wrapped.
// The cursor stays where it was when that point is still inside the surface
// below the root, otherwise it moves to the end of the header.
//
// With a selection, the selected content is moved into a new header. Blocks
// found at the top of the selection are flattened to their text, each
// followed by a line break, since headers do not hold blocks.
func (s *Surface) FormatHeader(tag, className string) bool {
	s.Flush()

	_, rng := s.Highlight()
	if rng == nil {
		return false
	}

	header := s.doc.CreateElement(tag, className)
	if rng.Collapsed() {
		if !s.headerAtCursor(rng, header) {
			return false
		}
	} else {
		frag := rng.ExtractContents()
		for _, c := range s.doc.Children(frag) {
			if IsBlockNode(s.doc, c) {
				_ = s.doc.AppendChild(header, s.doc.CreateText(s.doc.TextContent(c)))
				_ = s.doc.AppendChild(header, s.doc.CreateElement("br", ""))
				continue
			}
			_ = s.doc.AppendChild(header, c)
		}
		if err := rng.InsertNode(header); err != nil {
			s.log.WithError(err).WithField("tag", tag).Warn("unable to insert header")
			return false
		}
	}

	s.log.WithFields(logrus.Fields{"tag": tag, "class": className}).Debug("formatted header")
	s.afterCommand()
	return true
}

func (s *Surface) headerAtCursor(rng *dom.Range, header dom.NodeID) bool {
	doc := s.doc
	cursor := rng.Start()

	target := cursor.Node
	if target == s.root {
		// cursor between children of the root: use the child next to it
		target = doc.ChildAt(s.root, cursor.Offset)
		if target == dom.None {
			target = doc.ChildAt(s.root, cursor.Offset-1)
		}
		if target == dom.None {
			return false
		}
	}

	if block := GetParentBlockNode(doc, target, s.root); block != dom.None {
		if err := rng.SelectNodeContents(block); err != nil {
			return false
		}
		_ = doc.AppendChild(header, rng.ExtractContents())
		if err := doc.ReplaceWith(block, header); err != nil {
			s.log.WithError(err).Warn("unable to replace block")
			return false
		}
	} else {
		if err := doc.InsertBefore(doc.Parent(target), header, target); err != nil {
			s.log.WithError(err).Warn("unable to wrap node")
			return false
		}
		_ = doc.AppendChild(header, target)
	}

	if cursor.Node != s.root && doc.Contains(s.root, cursor.Node) && rng.SetStart(cursor.Node, cursor.Offset) == nil {
		rng.Collapse(true)
		return true
	}
	s.log.Debug("cursor lost, moving it to the end of the header")
	_ = rng.SelectNodeContents(header)
	rng.Collapse(false)
	return true
}
