// Package clipboard provides access to the system clipboard using
// github.com/atotto/clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/chatwatch"
)

// Ensure Clipboard implements chatwatch.Clipboard at compile time.
var _ chatwatch.Clipboard = (*Clipboard)(nil)

// Clipboard is the process-wide system clipboard. It needs xclip, xsel or
// wl-clipboard on Linux; macOS and Windows work out of the box.
//
// Callers should go through chatwatch.WithClipboard so the operator's
// clipboard is restored after use.
type Clipboard struct{}

// New returns a handle to the system clipboard.
// Returns EINVALID if no clipboard utility is available.
func New() (*Clipboard, error) {
	if clipboard.Unsupported {
		return nil, chatwatch.Errorf(chatwatch.EINVALID, "system clipboard unavailable: install xclip, xsel or wl-clipboard")
	}
	return &Clipboard{}, nil
}

// ReadAll returns the current clipboard text.
func (c *Clipboard) ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// WriteAll replaces the clipboard text.
func (c *Clipboard) WriteAll(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
