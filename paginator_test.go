package inquire

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		width   int
		want    string
	}{
		{name: "fits", content: "abc", width: 10, want: "abc"},
		{name: "wraps", content: "abcdef", width: 3, want: "abc\ndef"},
		{name: "keeps newlines", content: "ab\n\ncd", width: 10, want: "ab\n\ncd"},
		{name: "wide runes", content: "日本語", width: 4, want: "日本\n語"},
		{name: "keeps leading spaces", content: "  abcd", width: 4, want: "  ab\ncd"},
		{name: "zero width", content: "abcdef", width: 0, want: "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, breakLines(tt.content, tt.width))
		})
	}
}

func TestBreakLinesIgnoresEscapes(t *testing.T) {
	t.Parallel()

	styled := "\x1b[1mabcdef\x1b[0m"
	got := breakLines(styled, 3)
	assert.Equal(t, "abc\ndef", ansi.Strip(got))
}

func TestLineHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "c", lastLine("a\nb\nc"))
	assert.Equal(t, "abc", lastLine("abc"))
	assert.Empty(t, lastLine("abc\n"))

	assert.Equal(t, 1, lineCount(""))
	assert.Equal(t, 3, lineCount("a\nb\nc"))

	assert.Equal(t, 3, visibleWidth("\x1b[36mabc\x1b[0m"))
	assert.Equal(t, 4, visibleWidth("日本"))

	assert.Equal(t, defaultWidth, safeWidth(0))
	assert.Equal(t, defaultWidth, safeWidth(-1))
	assert.Equal(t, 120, safeWidth(120))
}

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line%d", i)
	}
	return strings.Join(lines, "\n")
}

// window returns the lines of a paginated block without the hint.
func window(t *testing.T, out string) []string {
	t.Helper()
	lines := strings.Split(out, "\n")
	if !assert.Equal(t, paginationHint, lines[len(lines)-1]) {
		return lines
	}
	return lines[:len(lines)-1]
}

func TestPaginator(t *testing.T) {
	t.Parallel()

	t.Run("short lists are not paginated", func(t *testing.T) {
		t.Parallel()

		p := NewPaginator(nil)
		block := numberedLines(5)
		assert.Equal(t, block, p.Paginate(block, 4, 7))
	})

	t.Run("window follows the active line", func(t *testing.T) {
		t.Parallel()

		p := NewPaginator(func() int { return 80 })
		block := numberedLines(20)

		assert.Equal(t,
			[]string{"line0", "line1", "line2", "line3", "line4", "line5", "line6"},
			window(t, p.Paginate(block, 0, 7)))

		// The active line moves down until the middle of the page.
		assert.Equal(t,
			[]string{"line0", "line1", "line2", "line3", "line4", "line5", "line6"},
			window(t, p.Paginate(block, 1, 7)))
		assert.Equal(t,
			[]string{"line2", "line3", "line4", "line5", "line6", "line7", "line8"},
			window(t, p.Paginate(block, 5, 7)))

		// Past the end the list wraps around.
		assert.Equal(t,
			[]string{"line16", "line17", "line18", "line19", "line0", "line1", "line2"},
			window(t, p.Paginate(block, 19, 7)))
	})

	t.Run("stepping down one line at a time", func(t *testing.T) {
		t.Parallel()

		p := NewPaginator(func() int { return 80 })
		block := numberedLines(20)
		for active := range 20 {
			rows := window(t, p.Paginate(block, active, 7))
			require.Len(t, rows, 7, "active %d", active)

			pos := slices.Index(rows, fmt.Sprintf("line%d", active))
			require.Equal(t, min(active, 3), pos, "active %d", active)
			for i, row := range rows {
				want := fmt.Sprintf("line%d", (active-pos+i+20)%20)
				assert.Equal(t, want, row, "active %d row %d", active, i)
			}
		}
	})

	t.Run("wrapped lines keep the active line visible", func(t *testing.T) {
		t.Parallel()

		// Every entry takes two rows at this width.
		p := NewPaginator(func() int { return 10 })
		for active := range 10 {
			entries := make([]string, 10)
			for i := range entries {
				mark := " "
				if i == active {
					mark = ">"
				}
				entries[i] = fmt.Sprintf("%s choice-long-%02d", mark, i)
			}
			rows := window(t, p.Paginate(strings.Join(entries, "\n"), active, 7))

			pos := slices.Index(rows, "> choice-l")
			require.GreaterOrEqual(t, pos, 0, "active %d is out of view: %q", active, rows)
			require.Less(t, pos+1, len(rows))
			assert.Equal(t, fmt.Sprintf("ong-%02d", active), rows[pos+1])
		}
	})

	t.Run("default page size", func(t *testing.T) {
		t.Parallel()

		p := NewPaginator(nil)
		assert.Len(t, window(t, p.Paginate(numberedLines(10), 0, 0)), DefaultPageSize)
	})

	t.Run("long lines count once wrapped", func(t *testing.T) {
		t.Parallel()

		// Four entries of two rows each exceed a page of seven rows.
		p := NewPaginator(func() int { return 5 })
		block := strings.Join([]string{"aaaaaaaa", "bbbbbbbb", "cccccccc", "dddddddd"}, "\n")
		assert.Len(t, window(t, p.Paginate(block, 0, 7)), 7)
	})
}
