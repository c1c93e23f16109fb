package commons

import (
	"github.com/google/uuid"
)

// Message represents the message sent over the wire.
type Message struct {
	// Type represents the message type.
	Type MessageType `json:"type"`

	// ID represents the client's UUID, assigned by the server.
	ID uuid.UUID `json:"ID"`

	// Text is the text to type for input messages, and the plain text of the
	// document for doc messages.
	Text string `json:"text,omitempty"`

	// HTML is the markup to load for load messages, and the rendered document
	// for doc messages.
	HTML string `json:"html,omitempty"`

	// Action names the toolbar action of a format message.
	Action string `json:"action,omitempty"`

	// Selection is the range selected by a select message, in runes of the
	// document text. Doc messages carry the current selection.
	Selection *Span `json:"selection,omitempty"`

	// Clipboard maps MIME types to clipboard representations, for paste and
	// clipboard messages.
	Clipboard map[string]string `json:"clipboard,omitempty"`

	// Changed reports whether the last message changed the document.
	Changed bool `json:"changed,omitempty"`

	// Error describes why a message was rejected.
	Error string `json:"error,omitempty"`
}

// MessageType represents the type of the message.
type MessageType string

// Clients send:
// - focus, input, drop (editing surface events)
// - select (for moving the selection)
// - format (for the toolbar actions)
// - copy, cut, paste (for clipboard transfers)
// - load (for replacing the document)
//
// The server answers with:
// - doc (the document after the message)
// - clipboard (the data written by copy and cut)
// - error (for rejected messages)

const (
	FocusMessage     MessageType = "focus"
	InputMessage     MessageType = "input"
	DropMessage      MessageType = "drop"
	SelectMessage    MessageType = "select"
	FormatMessage    MessageType = "format"
	CopyMessage      MessageType = "copy"
	CutMessage       MessageType = "cut"
	PasteMessage     MessageType = "paste"
	LoadMessage      MessageType = "load"
	DocMessage       MessageType = "doc"
	ClipboardMessage MessageType = "clipboard"
	ErrorMessage     MessageType = "error"
)
