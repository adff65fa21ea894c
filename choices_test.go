package inquire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChoices(t *testing.T) {
	t.Parallel()

	choices := NewChoices([]any{
		"a",
		1,
		Choice{Name: "b", Value: 2},
		&Choice{Value: "c", Short: "C"},
		NewSeparator(),
		map[string]any{"type": "separator", "line": "--"},
		map[string]any{"name": "d", "value": 4, "disabled": "soon"},
		Separator{Line: "=="},
		Choice{Name: "e", Disabled: true},
		time.Second,
	}, nil)

	assert.Equal(t, 10, choices.Len())
	assert.Equal(t, 5, choices.RealLen())
	assert.Equal(t, []any{"a", "1", "b", "c", "d", "e", "1s"}, choices.Pluck("name"))
	assert.Equal(t, []any{"a", 1, 2, "c", 4, "e", time.Second}, choices.Pluck("value"))
	assert.Equal(t, []any{"a", "1", "b", "C", "d", "e", "1s"}, choices.Pluck("short"))

	sep, ok := choices.Get(4)
	require.True(t, ok)
	assert.Equal(t, separatorLine, sep.(*Separator).Line)
	sep, _ = choices.Get(5)
	assert.Equal(t, "--", sep.(*Separator).Line)

	disabled, ok := choices.Find(func(ch *Choice) bool { return ch.Name == "d" })
	require.True(t, ok)
	assert.True(t, disabled.IsDisabled())
	assert.Equal(t, "soon", disabled.DisabledReason())

	e, _ := choices.Find(func(ch *Choice) bool { return ch.Name == "e" })
	assert.Equal(t, "Disabled", e.DisabledReason())
}

func TestNewChoicesIsIdempotent(t *testing.T) {
	t.Parallel()

	first := NewChoices([]any{"a", NewSeparator(), Choice{Name: "b", Value: 2, Disabled: "no"}, 3}, nil)

	entries := first.Entries()
	raw := make([]any, len(entries))
	for i, e := range entries {
		raw[i] = e
	}
	second := NewChoices(raw, nil)

	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.RealLen(), second.RealLen())
	for _, field := range []string{"name", "value", "short", "checked", "key"} {
		assert.Equal(t, first.Pluck(field), second.Pluck(field), field)
	}
}

func TestNewChoicesDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	orig := &Choice{Name: "a"}
	choices := NewChoices([]any{orig}, nil)

	ch, _ := choices.GetChoice(0)
	ch.Name = "changed"
	assert.Equal(t, "a", orig.Name)
}

func TestChoicesDisabledFunc(t *testing.T) {
	t.Parallel()

	answers := Answers{"admin": false}
	choices := NewChoices([]any{
		Choice{Name: "delete", Disabled: func(a Answers) bool { return a["admin"] != true }},
		Choice{Name: "reset", Disabled: func(a Answers) string { return "" }},
		Choice{Name: "view", Disabled: func(Answers) any { return "read only" }},
	}, answers)

	assert.Equal(t, []any{"reset"}, pluckReal(choices))

	view, _ := choices.Find(func(ch *Choice) bool { return ch.Name == "view" })
	assert.Equal(t, "read only", view.DisabledReason())
}

func pluckReal(c *Choices) []any {
	var names []any
	for _, ch := range c.RealChoices() {
		names = append(names, ch.Name)
	}
	return names
}

func TestChoicesAccessors(t *testing.T) {
	t.Parallel()

	choices := NewChoices([]any{"foo", NewSeparator(), Choice{Name: "off", Disabled: true}, "bar", []int{1}}, nil)

	t.Run("real choices skip separators and disabled", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []any{"foo", "bar", "[1]"}, pluckReal(choices))
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		_, ok := choices.Get(-1)
		assert.False(t, ok)
		_, ok = choices.Get(choices.Len())
		assert.False(t, ok)

		ch, ok := choices.GetChoice(1)
		require.True(t, ok)
		assert.Equal(t, "bar", ch.Name)
		_, ok = choices.GetChoice(3)
		assert.False(t, ok)
	})

	t.Run("indexes", func(t *testing.T) {
		t.Parallel()

		bar, _ := choices.GetChoice(1)
		assert.Equal(t, 3, choices.IndexOf(bar))
		assert.Equal(t, 1, choices.RealIndexOf(bar))
		assert.Equal(t, -1, choices.IndexOf(&Choice{Name: "bar"}))

		assert.Equal(t, 2, choices.IndexOfValue([]int{1}))
		assert.Equal(t, -1, choices.IndexOfValue("off"), "disabled choices cannot be defaults")
	})

	t.Run("where", func(t *testing.T) {
		t.Parallel()

		all := choices.Where(func(*Choice) bool { return true })
		assert.Len(t, all, 4)
	})

	t.Run("number shortcuts", func(t *testing.T) {
		t.Parallel()

		i, ok := choices.NumberShortcut(1)
		assert.True(t, ok)
		assert.Equal(t, 0, i)
		i, ok = choices.NumberShortcut(3)
		assert.True(t, ok)
		assert.Equal(t, 2, i)
		_, ok = choices.NumberShortcut(4)
		assert.False(t, ok)
		_, ok = choices.NumberShortcut(0)
		assert.False(t, ok)
	})
}

func TestChoicesPush(t *testing.T) {
	t.Parallel()

	choices := NewChoices([]any{"a"}, nil)
	choices.Push(NewSeparator(), "b", Choice{Name: "c", Disabled: true})

	assert.Equal(t, 4, choices.Len())
	assert.Equal(t, []any{"a", "b"}, pluckReal(choices))
}
