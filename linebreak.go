package inquire

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// defaultWidth is used whenever the terminal cannot report its column count.
const defaultWidth = 80

// breakLines forces line returns at the given display width.
//
// Escape sequences are kept intact and do not count towards the width, wide
// runes count as two cells. Leading spaces are preserved so that indented
// choice lines keep their alignment after wrapping.
func breakLines(content string, width int) string {
	if width < 1 {
		return content
	}
	return ansi.Hardwrap(content, width, true)
}

// lastLine returns the text after the final newline.
func lastLine(content string) string {
	if i := strings.LastIndexByte(content, '\n'); i >= 0 {
		return content[i+1:]
	}
	return content
}

// lineCount returns how many terminal rows the content occupies once written.
func lineCount(content string) int {
	return strings.Count(content, "\n") + 1
}

// visibleWidth returns the number of cells the content occupies, ignoring
// escape sequences.
func visibleWidth(content string) int {
	return ansi.StringWidth(content)
}

// safeWidth substitutes the default width for unknown or zero widths.
func safeWidth(width int) int {
	if width <= 0 {
		return defaultWidth
	}
	return width
}
