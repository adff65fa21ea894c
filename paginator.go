package inquire

import "strings"

// DefaultPageSize is the number of choice lines shown when a prompt does not
// configure one.
const DefaultPageSize = 7

// paginationHint is appended below a truncated window.
const paginationHint = "(Move up and down to reveal more choices)"

// Paginator keeps track of a pointer index in a list and returns a window of
// the rendered choices when the list is taller than the page size.
//
// The window scrolls smoothly: while the user moves down the active line
// drifts towards the middle of the page, after which the page scrolls under
// it. The list wraps around at both ends, giving the look of an infinite list.
type Paginator struct {
	pointer   int
	lastIndex int
	width     func() int
	theme     *Theme
}

// NewPaginator creates a paginator that wraps lines at the width returned by
// width. A nil width source means the default width of 80 columns.
func NewPaginator(width func() int) *Paginator {
	return &Paginator{width: width}
}

func (p *Paginator) currentWidth() int {
	if p.width == nil {
		return defaultWidth
	}
	return safeWidth(p.width())
}

// Paginate returns the window of block to display for the given active line.
// Blocks that fit in pageSize lines are returned unchanged.
//
// active is a line index of the unwrapped block. Lines wider than the
// terminal take several rows once wrapped, so the window is computed from the
// first row of the active line.
func (p *Paginator) Paginate(block string, active, pageSize int) string {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	middle := pageSize / 2

	width := p.currentWidth()
	lines := strings.Split(breakLines(block, width), "\n")
	total := len(lines)
	if total <= pageSize {
		return block
	}
	active = firstRow(block, active, width)

	// Move the pointer only when the user goes down, and never past the middle.
	if p.pointer < middle && p.lastIndex < active && active-p.lastIndex < pageSize {
		p.pointer = min(middle, p.pointer+active-p.lastIndex)
	}
	p.lastIndex = active

	// Row i of the window shows line (start+i) of the list repeated three
	// times; rows past the third copy are dropped.
	start := max(0, active+total-p.pointer)
	window := make([]string, 0, pageSize)
	for i := range pageSize {
		idx := start + i
		if idx >= 3*total {
			break
		}
		window = append(window, lines[idx%total])
	}

	return strings.Join(window, "\n") + "\n" + p.theme.dim(paginationHint)
}

// firstRow returns the wrapped row at which the given line of block starts.
func firstRow(block string, line, width int) int {
	row := 0
	for i, l := range strings.Split(block, "\n") {
		if i >= line {
			break
		}
		row += lineCount(breakLines(l, width))
	}
	return row
}
