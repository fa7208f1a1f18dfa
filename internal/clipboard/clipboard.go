// Package clipboard copies text to the system clipboard of the terminal the
// program writes to, using the OSC 52 escape sequence. Terminals that do not
// support OSC 52 silently ignore it.
package clipboard

import (
	"encoding/base64"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	ErrNothingToCopy = errors.New("no password to copy")
	ErrNotTerminal   = errors.New("output is not a terminal")
)

// Writer emits OSC 52 sequences to Out.
type Writer struct {
	Out io.Writer

	// Force skips the terminal check.
	Force bool
	// Tmux wraps the sequence in a tmux passthrough.
	Tmux bool
}

// NewWriter returns a Writer for out, enabling tmux passthrough when running inside tmux.
func NewWriter(out io.Writer) *Writer {
	return &Writer{Out: out, Tmux: os.Getenv("TMUX") != ""}
}

// Copy places text on the clipboard.
func (c *Writer) Copy(text string) error {
	if text == "" {
		return ErrNothingToCopy
	}
	if !c.Force && !IsTerminal(c.Out) {
		return ErrNotTerminal
	}
	_, err := io.WriteString(c.Out, Sequence(text, c.Tmux))
	return err
}

// Sequence builds the OSC 52 "set clipboard" sequence for text.
func Sequence(text string, tmux bool) string {
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	if !tmux {
		return seq
	}
	return "\x1bPtmux;" + strings.ReplaceAll(seq, "\x1b", "\x1b\x1b") + "\x1b\\"
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
