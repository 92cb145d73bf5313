package editor

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/iw2rmb/textkit/textview"
)

// SystemClipboard reads and writes the operating system clipboard.
//
// Errors must not crash the UI; the text view treats a failed read as an
// empty clipboard.
type SystemClipboard struct{}

var _ textview.Clipboard = SystemClipboard{}

func (SystemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("system clipboard: unsupported platform")
	}
	s, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("system clipboard: read: %w", err)
	}
	return s, nil
}

func (SystemClipboard) WriteText(s string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("system clipboard: unsupported platform")
	}
	if err := clipboard.WriteAll(s); err != nil {
		return fmt.Errorf("system clipboard: write: %w", err)
	}
	return nil
}
