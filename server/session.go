package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/burntcarrot/richpad/commons"
	"github.com/burntcarrot/richpad/editor"
)

var errNoSelection = errors.New("select message without selection")

// session is the editing surface of one connected client. Messages of a
// session are handled one at a time.
type session struct {
	id      uuid.UUID
	surface *editor.Surface
	log     logrus.FieldLogger
}

func newSession(id uuid.UUID, cfg editor.Config) (*session, error) {
	s, err := editor.New(cfg)
	if err != nil {
		return nil, err
	}
	return &session{id: id, surface: s, log: cfg.Logger}, nil
}

// handle applies a client message to the surface and returns the replies.
// The last reply is always the document, unless the message was rejected.
// Callers flush the surface once the replies have been written.
func (s *session) handle(msg commons.Message) []commons.Message {
	var (
		changed bool
		err     error
		replies []commons.Message
	)

	switch msg.Type {
	case commons.FocusMessage:
		s.surface.Focus()
		changed = true

	case commons.InputMessage:
		changed = s.surface.InsertText(msg.Text)
		s.surface.Input()

	case commons.DropMessage:
		changed = s.surface.Drop()

	case commons.SelectMessage:
		if msg.Selection == nil {
			err = errNoSelection
			break
		}
		span := msg.Selection.Normalize()
		err = s.surface.SelectText(span.Start, span.End)

	case commons.FormatMessage:
		var a editor.Action
		if a, err = editor.ParseAction(msg.Action); err == nil {
			changed = s.surface.Apply(a)
		}

	case commons.CopyMessage, commons.CutMessage:
		var (
			data editor.ClipboardData
			ok   bool
		)
		if msg.Type == commons.CutMessage {
			data, ok = s.surface.Cut()
		} else {
			data, ok = s.surface.Copy()
		}
		if ok {
			replies = append(replies, commons.Message{Type: commons.ClipboardMessage, ID: s.id, Clipboard: data})
		}
		changed = ok && msg.Type == commons.CutMessage

	case commons.PasteMessage:
		changed = s.surface.Paste(editor.ClipboardData(msg.Clipboard))

	case commons.LoadMessage:
		err = s.surface.SetHTML(msg.HTML)
		changed = err == nil

	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}

	if err != nil {
		s.log.WithError(err).WithField("type", msg.Type).Warn("rejected message")
		return []commons.Message{{Type: commons.ErrorMessage, ID: s.id, Error: err.Error()}}
	}

	s.log.WithFields(logrus.Fields{"type": msg.Type, "changed": changed}).Debug("handled message")
	return append(replies, s.doc(changed))
}

// doc returns the document message of the surface as it is now.
func (s *session) doc(changed bool) commons.Message {
	return commons.Message{
		Type:      commons.DocMessage,
		ID:        s.id,
		HTML:      s.surface.HTML(),
		Text:      s.surface.Text(),
		Selection: s.selection(),
		Changed:   changed,
	}
}

func (s *session) selection() *commons.Span {
	_, rng := s.surface.Highlight()
	if rng == nil {
		return nil
	}

	doc, root := s.surface.Document(), s.surface.Root()
	return &commons.Span{
		Start: doc.TextOffset(root, rng.Start()),
		End:   doc.TextOffset(root, rng.End()),
	}
}
