package platform

import (
	"github.com/atotto/clipboard"
)

// Clipboard accepts text for the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// SystemClipboard writes through the OS clipboard utilities (pbcopy, xclip,
// xsel, wl-copy or the Windows API). It is used where no GUI window exists.
type SystemClipboard struct{}

// WriteText copies text to the clipboard
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// ClipboardFunc adapts a function to the Clipboard interface.
type ClipboardFunc func(text string) error

// WriteText calls f(text)
func (f ClipboardFunc) WriteText(text string) error {
	return f(text)
}
