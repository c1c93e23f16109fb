package tui

import "github.com/atotto/clipboard"

// Clipboard is the system clipboard. It only holds plain text.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard is the clipboard of the host system.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Unsupported reports whether the host system has no clipboard utility.
func (SystemClipboard) Unsupported() bool {
	return clipboard.Unsupported
}
