package host

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	CaptureNone   = "none"
	CaptureLocked = "locked"

	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

var ErrNotTerminal = errors.New("input is not a terminal")

// InputCapture is the host's pointer lock. It is configured once at
// startup and released on shutdown; the controller never touches it.
type InputCapture interface {
	Capture() error
	Release() error
	// Wrap adapts an output stream to the captured mode.
	Wrap(w io.Writer) io.Writer
}

// NewCapture returns the capture for mode. An empty mode means none.
func NewCapture(mode string, in *os.File, out io.Writer) (InputCapture, error) {
	switch mode {
	case "", CaptureNone:
		return NoCapture{}, nil
	case CaptureLocked:
		return NewTerminalCapture(in, out), nil
	default:
		return nil, fmt.Errorf("unknown capture mode %q", mode)
	}
}

type NoCapture struct{}

func (NoCapture) Capture() error             { return nil }
func (NoCapture) Release() error             { return nil }
func (NoCapture) Wrap(w io.Writer) io.Writer { return w }

// TerminalCapture puts the controlling terminal into raw mode and hides
// the cursor, the terminal's version of a locked and hidden pointer.
type TerminalCapture struct {
	fd  int
	out io.Writer

	mu       sync.Mutex
	oldState *term.State
}

func NewTerminalCapture(in *os.File, out io.Writer) *TerminalCapture {
	return &TerminalCapture{fd: int(in.Fd()), out: out}
}

func (c *TerminalCapture) Capture() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.oldState != nil {
		return nil
	}
	if !term.IsTerminal(c.fd) {
		return ErrNotTerminal
	}
	state, err := term.MakeRaw(c.fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	c.oldState = state
	_, _ = io.WriteString(c.out, hideCursor)
	return nil
}

func (c *TerminalCapture) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.oldState == nil {
		return nil
	}
	_, _ = io.WriteString(c.out, showCursor)
	err := term.Restore(c.fd, c.oldState)
	c.oldState = nil
	if err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

func (c *TerminalCapture) Captured() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.oldState != nil
}

// Wrap translates bare newlines to CRLF, since raw mode stops the
// terminal from returning the carriage itself.
func (c *TerminalCapture) Wrap(w io.Writer) io.Writer {
	return &crlfWriter{w: w}
}

type crlfWriter struct {
	w io.Writer
}

func (cw *crlfWriter) Write(p []byte) (int, error) {
	if bytes.IndexByte(p, '\n') < 0 {
		return cw.w.Write(p)
	}
	out := make([]byte, 0, len(p)+8)
	for i, b := range p {
		if b == '\n' && (i == 0 || p[i-1] != '\r') {
			out = append(out, '\r')
		}
		out = append(out, b)
	}
	if _, err := cw.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
