package inquire

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

var errInvalidIndex = errors.New("Please enter a valid index")

// RawListConfig configures a single choice question answered by typing the
// number of a choice.
type RawListConfig struct {
	Common
	Choices *Choices
	// Default is the index of a real choice, or the value of one. It is the
	// answer of an empty line.
	Default  any
	PageSize int
	Filter   func(ctx context.Context, value any) (any, error)
	Validate func(ctx context.Context, value any) error

	// Transformer changes how the short name of the answer is displayed.
	Transformer func(answer string) string
}

type rawListState struct {
	selected   int // -1 when the typed index matches nothing
	rawDefault int
}

// RawList shows numbered choices and reads the number of the answer. Up
// and Down cycle through the numbers.
func RawList(ctx context.Context, t Terminal, cfg RawListConfig) (any, error) {
	return run(ctx, t, func(t Terminal) (Config[rawListState, any], error) {
		return rawListConfig(cfg, t)
	})
}

// rawListIndex converts the typed line into a real choice index. An empty
// line means def.
func rawListIndex(line string, def int) int {
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return -1
	}
	return n - 1
}

func rawListConfig(c RawListConfig, t Terminal) (Config[rawListState, any], error) {
	if c.Choices == nil || c.Choices.RealLen() == 0 {
		return Config[rawListState, any]{}, &ConfigError{Field: "choices", Msg: "must contain at least one selectable choice"}
	}
	theme := resolveTheme(c.Theme)
	choices := c.Choices

	paginator := NewPaginator(terminalWidth(t))
	paginator.theme = theme

	def := realIndexDefault(choices, c.Default)

	cfg := Config[rawListState, any]{
		Initial:     rawListState{selected: def, rawDefault: def},
		Filter:      c.Filter,
		Validate:    wrapValidate[rawListState](c.Validate),
		Transformer: answerTransformer(c.Transformer),
		OnKeypress: func(st State[rawListState], k Key) State[rawListState] {
			if k.Name == "up" || k.Name == "down" {
				n := choices.RealLen()
				index := 0
				if st.Value != "" {
					index = rawListIndex(st.Value, 0)
				}
				if k.Name == "up" {
					index--
				} else {
					index++
				}
				index = ((index % n) + n) % n
				st.Value = strconv.Itoa(index + 1)
			}

			index := 0
			if st.Value != "" {
				index = rawListIndex(st.Value, 0)
			}
			if _, ok := choices.GetChoice(index); ok {
				st.Ext.selected = index
			} else {
				st.Ext.selected = -1
			}
			return st
		},
		MapStateToValue: func(st State[rawListState]) any {
			ch, ok := choices.GetChoice(rawListIndex(st.Value, st.Ext.rawDefault))
			if !ok {
				return nil
			}
			return ch.Value
		},
		Check: func(v any, st State[rawListState]) error {
			if _, ok := choices.GetChoice(rawListIndex(st.Value, st.Ext.rawDefault)); !ok {
				return errInvalidIndex
			}
			return nil
		},
		OnAnswer: func(st State[rawListState], _ any) State[rawListState] {
			ch, _ := choices.GetChoice(rawListIndex(st.Value, st.Ext.rawDefault))
			st.Value = ch.Short
			return st
		},
		Render: func(st State[rawListState]) string {
			line := question(st)
			if st.Status == StatusAnswered {
				return line + theme.highlight(st.Value)
			}
			block := renderRawList(choices, st.Ext.selected, theme)
			ch, _ := choices.GetChoice(max(st.Ext.selected, 0))
			return line + "\n" +
				paginator.Paginate(block, choices.IndexOf(ch), c.PageSize) +
				"\n  Answer: " + st.Value
		},
	}
	applyCommon(c.Common, &cfg)
	return cfg, nil
}

// renderRawList numbers the real choices from 1. Disabled choices are
// listed without a number.
func renderRawList(choices *Choices, pointer int, theme *Theme) string {
	var b strings.Builder
	idx := 0
	for i, e := range choices.Entries() {
		if i > 0 {
			b.WriteString("\n")
		}
		switch v := e.(type) {
		case *Separator:
			b.WriteString("   " + theme.dim(v.Line))
		case *Choice:
			if v.IsDisabled() {
				b.WriteString(theme.dim("  - " + v.Name + " (" + v.DisabledReason() + ")"))
				continue
			}
			display := strconv.Itoa(idx+1) + ") " + v.Name
			if idx == pointer {
				display = theme.highlight(display)
			}
			b.WriteString("  " + display)
			idx++
		}
	}
	return b.String()
}
