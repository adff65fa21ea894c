package inquire

import "github.com/mattn/go-runewidth"

// lineEditor is the editable input line shared by the session and the screen.
//
// Key bindings:
//   - Left/Right, Ctrl+B/Ctrl+F: move by character
//   - Home/End, Ctrl+A/Ctrl+E: move to beginning/end of line
//   - Ctrl+Left/Right, Alt+B/Alt+F: move by word
//   - Backspace/Delete: delete character backwards/forwards
//   - Ctrl+W, Alt+Backspace: delete word backwards
//   - Ctrl+U: delete entire line
//   - Ctrl+K: delete from cursor to end of line
type lineEditor struct {
	buffer []rune
	cursor int
}

func (e *lineEditor) line() string {
	return string(e.buffer)
}

// set replaces the buffer and puts the cursor at its end.
func (e *lineEditor) set(text string) {
	e.buffer = []rune(text)
	e.cursor = len(e.buffer)
}

func (e *lineEditor) clear() {
	e.buffer = e.buffer[:0]
	e.cursor = 0
}

func (e *lineEditor) insertRune(r rune) {
	e.buffer = append(e.buffer[:e.cursor], append([]rune{r}, e.buffer[e.cursor:]...)...)
	e.cursor++
}

// cursorWidth returns the number of cells between the start of the line and
// the cursor.
func (e *lineEditor) cursorWidth() int {
	return runewidth.StringWidth(string(e.buffer[:e.cursor]))
}

// apply performs the editing action bound to k. It reports whether the
// buffer or the cursor changed.
func (e *lineEditor) apply(k Key) bool {
	before, cursor := e.line(), e.cursor

	switch {
	case k.printable():
		e.insertRune(k.Rune)
	case k.Name == "backspace" && k.Meta, k.Ctrl && k.Name == "w":
		e.deleteWordBack()
	case k.Name == "backspace":
		if e.cursor > 0 {
			e.buffer = append(e.buffer[:e.cursor-1], e.buffer[e.cursor:]...)
			e.cursor--
		}
	case k.Name == "delete":
		if e.cursor < len(e.buffer) {
			e.buffer = append(e.buffer[:e.cursor], e.buffer[e.cursor+1:]...)
		}
	case k.Name == "left" && (k.Ctrl || k.Meta), k.Meta && k.Name == "b":
		e.cursor = e.findWordBoundary(-1)
	case k.Name == "right" && (k.Ctrl || k.Meta), k.Meta && k.Name == "f":
		e.cursor = e.findWordBoundary(1)
	case k.Name == "left", k.Ctrl && k.Name == "b":
		if e.cursor > 0 {
			e.cursor--
		}
	case k.Name == "right", k.Ctrl && k.Name == "f":
		if e.cursor < len(e.buffer) {
			e.cursor++
		}
	case k.Name == "home", k.Ctrl && k.Name == "a":
		e.cursor = 0
	case k.Name == "end", k.Ctrl && k.Name == "e":
		e.cursor = len(e.buffer)
	case k.Ctrl && k.Name == "u":
		e.clear()
	case k.Ctrl && k.Name == "k":
		e.buffer = e.buffer[:e.cursor]
	}

	return e.line() != before || e.cursor != cursor
}

func (e *lineEditor) deleteWordBack() {
	if e.cursor == 0 {
		return
	}
	newPos := e.findWordBoundary(-1)
	e.buffer = append(e.buffer[:newPos], e.buffer[e.cursor:]...)
	e.cursor = newPos
}

// findWordBoundary finds the next word boundary in the given direction.
//
// Moving forward skips separators then the word itself; moving backward
// steps over separators to the start of the previous word.
func (e *lineEditor) findWordBoundary(direction int) int {
	if direction > 0 {
		pos := e.cursor
		for pos < len(e.buffer) && !isWordChar(e.buffer[pos]) {
			pos++
		}
		for pos < len(e.buffer) && isWordChar(e.buffer[pos]) {
			pos++
		}
		return pos
	}
	pos := e.cursor
	if pos > 0 {
		pos--
	}
	for pos > 0 && !isWordChar(e.buffer[pos]) {
		pos--
	}
	for pos > 0 && isWordChar(e.buffer[pos-1]) {
		pos--
	}
	return pos
}

// isWordChar determines if a character is part of a word: letters, digits
// and the underscore.
func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}
