package inquire

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runeSource feeds decodeKey from a string.
func runeSource(s string) func() (rune, error) {
	runes := []rune(s)
	return func() (rune, error) {
		if len(runes) == 0 {
			return 0, io.EOF
		}
		r := runes[0]
		runes = runes[1:]
		return r, nil
	}
}

func decode(t *testing.T, input string) Key {
	t.Helper()
	next := runeSource(input)
	r, err := next()
	require.NoError(t, err)
	k, err := decodeKey(r, next)
	require.NoError(t, err)
	return k
}

func TestDecodeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		chord string
		rune  rune
	}{
		{name: "letter", input: "a", chord: "a", rune: 'a'},
		{name: "upper case letter", input: "A", chord: "shift+a", rune: 'A'},
		{name: "digit", input: "7", chord: "7", rune: '7'},
		{name: "wide rune", input: "日", chord: "日", rune: '日'},
		{name: "space", input: " ", chord: "space", rune: ' '},
		{name: "carriage return", input: "\r", chord: "return"},
		{name: "line feed", input: "\n", chord: "enter"},
		{name: "tab", input: "\t", chord: "tab"},
		{name: "backspace", input: "\x7f", chord: "backspace"},
		{name: "ctrl+h", input: "\b", chord: "backspace"},
		{name: "ctrl+c", input: "\x03", chord: "ctrl+c"},
		{name: "ctrl+p", input: "\x10", chord: "ctrl+p"},
		{name: "arrow up", input: "\x1b[A", chord: "up"},
		{name: "arrow down in application mode", input: "\x1bOB", chord: "down"},
		{name: "home", input: "\x1b[H", chord: "home"},
		{name: "end", input: "\x1b[4~", chord: "end"},
		{name: "delete", input: "\x1b[3~", chord: "delete"},
		{name: "page down", input: "\x1b[6~", chord: "pagedown"},
		{name: "shift+tab", input: "\x1b[Z", chord: "shift+tab"},
		{name: "ctrl+right", input: "\x1b[1;5C", chord: "ctrl+right"},
		{name: "alt+left", input: "\x1b[1;3D", chord: "alt+left"},
		{name: "shift+delete", input: "\x1b[3;2~", chord: "shift+delete"},
		{name: "alt+b", input: "\x1bb", chord: "alt+b", rune: 'b'},
		{name: "alt+backspace", input: "\x1b\x7f", chord: "alt+backspace"},
		{name: "double escape", input: "\x1b\x1b", chord: "alt+escape"},
		{name: "unknown sequence", input: "\x1b[99x", chord: "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			k := decode(t, tt.input)
			assert.Equal(t, tt.chord, k.String())
			assert.Equal(t, tt.rune, k.Rune)
			assert.Equal(t, tt.input, k.Sequence)
		})
	}
}

func TestDecodeKeyTruncatedSequence(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"\x1b", "\x1b[", "\x1b[1;5"} {
		next := runeSource(input)
		r, err := next()
		require.NoError(t, err)

		_, err = decodeKey(r, next)
		assert.ErrorIs(t, err, io.EOF, "input %q", input)
	}
}

func TestReadEscapeSequenceLimit(t *testing.T) {
	t.Parallel()

	// A CSI sequence that never terminates stops after the limit.
	seq, err := readEscapeSequence('[', runeSource("1234567890123456789"))
	require.NoError(t, err)
	assert.Len(t, seq, 11)
}

func TestKeyPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, decode(t, "\r").IsEnter())
	assert.True(t, decode(t, "\n").IsEnter())
	assert.False(t, decode(t, "\x1b\r").IsEnter(), "alt+enter does not submit")

	assert.True(t, decode(t, "x").printable())
	assert.False(t, decode(t, "\x01").printable())
	assert.False(t, decode(t, "\x1bx").printable())

	n, ok := decode(t, "3").Number()
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	_, ok = decode(t, "0").Number()
	assert.False(t, ok)
	_, ok = decode(t, "\x1b3").Number()
	assert.False(t, ok)
}

func TestKeyMap(t *testing.T) {
	t.Parallel()

	t.Run("default bindings", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			input  string
			action Action
		}{
			{"\x1b[A", ActionUp},
			{"k", ActionUp},
			{"\x10", ActionUp},
			{"\x1b[B", ActionDown},
			{"j", ActionDown},
			{"\x0e", ActionDown},
			{" ", ActionSpace},
			{"a", ActionSelectAll},
			{"i", ActionInvert},
			{"1", ActionNumber},
			{"9", ActionNumber},
			{"0", ActionNone},
			{"A", ActionNone},
			{"x", ActionNone},
		}
		km := NewDefaultKeyMap()
		for _, tt := range tests {
			assert.Equal(t, tt.action, km.Classify(decode(t, tt.input)), "input %q", tt.input)
		}
	})

	t.Run("custom bindings", func(t *testing.T) {
		t.Parallel()

		km := NewDefaultKeyMap()
		km.Bind("W", ActionUp)
		km.Bind("k", ActionNone)

		assert.Equal(t, ActionUp, km.Classify(decode(t, "w")))
		assert.Equal(t, ActionNone, km.Classify(decode(t, "k")))
		assert.Equal(t, ActionNone, defaultKeyMap.Classify(decode(t, "w")), "default map is untouched")
	})

	t.Run("nil map", func(t *testing.T) {
		t.Parallel()

		var km *KeyMap
		assert.Equal(t, ActionNone, km.Classify(decode(t, "k")))
	})

	t.Run("helpers", func(t *testing.T) {
		t.Parallel()

		assert.True(t, IsUpKey(decode(t, "\x1b[A")))
		assert.True(t, IsDownKey(decode(t, "j")))
		assert.True(t, IsSpaceKey(decode(t, " ")))
		assert.True(t, IsNumberKey(decode(t, "5")))
		assert.False(t, IsUpKey(decode(t, "j")))
	})
}
