package inquire

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// muteWriter drops every write while muted. Only the screen manager unmutes
// it, so nothing else can draw over a frame between two redraws.
type muteWriter struct {
	mu    sync.Mutex
	w     io.Writer
	muted bool
}

func (m *muteWriter) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.muted {
		return len(p), nil
	}
	return m.w.Write(p)
}

func (m *muteWriter) mute() {
	m.mu.Lock()
	m.muted = true
	m.mu.Unlock()
}

func (m *muteWriter) unmute() {
	m.mu.Lock()
	m.muted = false
	m.mu.Unlock()
}

// screenManager redraws a prompt in place.
//
// Every frame erases exactly the rows drawn by the previous frame, then
// writes the new one and moves the cursor back onto the input line at the
// column of the line editor's cursor.
type screenManager struct {
	out    *muteWriter
	editor *lineEditor
	width  func() int

	// prompt is the text on the input line before the editable buffer.
	prompt string

	height                int // rows drawn by the previous frame
	extraLinesUnderPrompt int // rows of that frame below the cursor
}

func newScreenManager(out io.Writer, editor *lineEditor, width func() int) *screenManager {
	return &screenManager{
		out:    &muteWriter{w: out, muted: true},
		editor: editor,
		width:  width,
	}
}

func (s *screenManager) currentWidth() int {
	if s.width == nil {
		return defaultWidth
	}
	return safeWidth(s.width())
}

// write sends raw-mode output; the terminal does not translate "\n" into
// "\r\n" by itself while raw.
func (s *screenManager) write(frame string) error {
	_, err := io.WriteString(s.out, strings.ReplaceAll(frame, "\n", "\r\n"))
	return err
}

// render draws content with bottomContent below it.
func (s *screenManager) render(content, bottomContent string) error {
	s.out.unmute()
	defer s.out.mute()

	var b strings.Builder
	b.WriteString(s.clean(s.extraLinesUnderPrompt))

	// The last line of content is the input line: the editor prompt followed
	// by the live buffer.
	rawPromptLine := ansi.Strip(lastLine(content))
	line := s.editor.line()
	prompt := rawPromptLine
	if n := len([]rune(line)); n > 0 {
		runes := []rune(rawPromptLine)
		if n <= len(runes) {
			prompt = string(runes[:len(runes)-n])
		}
	}
	s.prompt = prompt

	width := s.currentWidth()
	cursorRows, cursorCols := s.cursorPos(width)

	content = breakLines(content, width)
	bottomContent = breakLines(bottomContent, width)

	// A line filling the terminal exactly leaves the cursor in a pending
	// wrap state; start a new row so the following moves stay predictable.
	promptWidth := runewidth.StringWidth(rawPromptLine)
	if promptWidth > 0 && promptWidth%width == 0 {
		content += "\n"
	}

	frame := content
	if bottomContent != "" {
		frame += "\n" + bottomContent
	}
	b.WriteString(frame)

	up := promptWidth/width - cursorRows
	if bottomContent != "" {
		up += lineCount(bottomContent)
	}
	if up > 0 {
		b.WriteString(ansi.CursorUp(up))
	}
	b.WriteString("\r")
	if cursorCols > 0 {
		b.WriteString(ansi.CursorForward(cursorCols))
	}

	s.extraLinesUnderPrompt = up
	s.height = lineCount(frame)

	return s.write(b.String())
}

// cursorPos returns the row and column of the editor cursor relative to the
// start of the input line, wrapped at width.
func (s *screenManager) cursorPos(width int) (rows, cols int) {
	w := runewidth.StringWidth(s.prompt) + s.editor.cursorWidth()
	return w / width, w % width
}

// clean returns the sequence erasing the previous frame, starting
// extraLines rows below the cursor.
func (s *screenManager) clean(extraLines int) string {
	var b strings.Builder
	if extraLines > 0 {
		b.WriteString(ansi.CursorDown(extraLines))
	}
	b.WriteString(eraseLines(s.height))
	return b.String()
}

// eraseLines erases count lines from the current one upwards and leaves the
// cursor at column 0 of the topmost.
func eraseLines(count int) string {
	var b strings.Builder
	for i := range count {
		b.WriteString(ansi.EraseEntireLine)
		if i < count-1 {
			b.WriteString(ansi.CursorUp(1))
		}
	}
	if count > 0 {
		b.WriteString("\r")
	}
	return b.String()
}

// done releases the lines below the cursor and leaves the cursor on a fresh
// line after the final frame.
func (s *screenManager) done() error {
	s.prompt = ""
	s.out.unmute()

	var b strings.Builder
	if s.extraLinesUnderPrompt > 0 {
		b.WriteString(ansi.CursorDown(s.extraLinesUnderPrompt))
	}
	b.WriteString("\n")
	b.WriteString(ansi.ShowCursor)
	s.extraLinesUnderPrompt = 0
	s.height = 0

	return s.write(b.String())
}
