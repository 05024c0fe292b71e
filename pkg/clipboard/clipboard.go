// Package clipboard writes text to the user's clipboard.
package clipboard

import (
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Writer puts text on the clipboard.
type Writer interface {
	WriteText(text string) error
}

// OSC52Writer copies through the terminal with an OSC 52 escape sequence,
// which also works across SSH sessions when the local terminal supports
// it.
type OSC52Writer struct {
	Out io.Writer
}

// NewOSC52Writer returns a writer that emits to stderr, keeping stdout
// clean for piped output.
func NewOSC52Writer() OSC52Writer {
	return OSC52Writer{Out: os.Stderr}
}

func (w OSC52Writer) WriteText(text string) error {
	out := w.Out
	if out == nil {
		out = os.Stderr
	}
	_, err := osc52.New(text).WriteTo(out)
	return err
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc func(text string) error

func (f WriterFunc) WriteText(text string) error {
	return f(text)
}
