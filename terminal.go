package inquire

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// Terminal abstracts the terminal a prompt session runs on.
//
// A session puts the terminal in raw mode for its lifetime, reads runes from
// it through a single background reader, queries its width before every
// redraw and restores it once the prompt is answered. Closing the terminal
// is left to whoever opened it.
//
// Implementations:
//   - NewTerminal: the controlling TTY (go-tty + golang.org/x/term)
//   - NewStreamTerminal: arbitrary reader/writer pairs such as a pty
type Terminal interface {
	SetRaw() error                        // Enter raw mode for immediate key processing
	Restore() error                       // Restore original terminal settings
	Size() (width, height int, err error) // Terminal dimensions, 80x24 when unknown
	ReadRune() (rune, int, error)         // Read a single Unicode character from input
	Output() io.Writer                    // Writer the renderer draws on
	Close() error                         // Release the underlying resources
}

// realTerminal implements Terminal on the controlling TTY.
//
// go-tty gives cross-platform rune input and size detection, golang.org/x/term
// handles raw mode, and go-colorable translates ANSI sequences on Windows.
// Close is idempotent since closing a Windows console twice panics.
type realTerminal struct {
	tty           *tty.TTY
	output        io.Writer
	closed        bool
	stdinFd       int
	originalState *term.State
}

// NewTerminal opens the controlling terminal.
func NewTerminal() (Terminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	var output io.Writer = os.Stdout
	if runtime.GOOS == "windows" {
		output = colorable.NewColorableStdout()
	}

	return &realTerminal{
		tty:     t,
		output:  output,
		stdinFd: int(os.Stdin.Fd()),
	}, nil
}

func (t *realTerminal) SetRaw() error {
	// Capture the state on every call so nested prompts restore correctly.
	if term.IsTerminal(t.stdinFd) {
		state, err := term.GetState(t.stdinFd)
		if err != nil {
			return err
		}
		t.originalState = state

		if _, err := term.MakeRaw(t.stdinFd); err != nil {
			return err
		}
	}
	return nil
}

func (t *realTerminal) Restore() error {
	if t.originalState != nil && term.IsTerminal(t.stdinFd) {
		err := term.Restore(t.stdinFd, t.originalState)
		t.originalState = nil
		return err
	}
	return nil
}

func (t *realTerminal) Size() (width, height int, err error) {
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, 24, err
	}
	return w, h, nil
}

func (t *realTerminal) ReadRune() (rune, int, error) {
	r, err := t.tty.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	return r, 1, nil
}

func (t *realTerminal) Output() io.Writer {
	return t.output
}

func (t *realTerminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	releaseInput(t)
	if t.tty != nil {
		return t.tty.Close()
	}
	return nil
}

// streamTerminal implements Terminal on top of a reader and a writer.
//
// When the reader is an *os.File attached to a terminal (a pty in tests, or
// stdin) raw mode and size queries go through golang.org/x/term; otherwise
// raw mode is a no-op and the size falls back to 80x24.
type streamTerminal struct {
	in            io.RuneReader
	file          *os.File
	out           io.Writer
	originalState *term.State
}

// NewStreamTerminal creates a terminal reading keys from in and drawing on out.
func NewStreamTerminal(in io.Reader, out io.Writer) Terminal {
	st := &streamTerminal{out: out}
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		st.file = f
	}
	if rr, ok := in.(io.RuneReader); ok {
		st.in = rr
	} else {
		st.in = &byteRuneReader{r: in}
	}
	return st
}

func (s *streamTerminal) SetRaw() error {
	if s.file == nil {
		return nil
	}
	state, err := term.MakeRaw(int(s.file.Fd()))
	if err != nil {
		return err
	}
	s.originalState = state
	return nil
}

func (s *streamTerminal) Restore() error {
	if s.file == nil || s.originalState == nil {
		return nil
	}
	err := term.Restore(int(s.file.Fd()), s.originalState)
	s.originalState = nil
	return err
}

func (s *streamTerminal) Size() (width, height int, err error) {
	if s.file == nil {
		return defaultWidth, 24, nil
	}
	w, h, err := term.GetSize(int(s.file.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, 24, err
	}
	return w, h, nil
}

func (s *streamTerminal) ReadRune() (rune, int, error) {
	return s.in.ReadRune()
}

func (s *streamTerminal) Output() io.Writer {
	return s.out
}

func (s *streamTerminal) Close() error {
	releaseInput(s)
	return nil
}
