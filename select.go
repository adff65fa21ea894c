package inquire

import (
	"context"
	"strings"
)

// pointerMark marks the active choice of a list.
const pointerMark = "❯"

// SelectConfig configures a single choice question on a scrolling list.
type SelectConfig struct {
	Common
	Choices *Choices
	// Default is the index of a real choice, or the value of one.
	Default  any
	PageSize int
	Filter   func(ctx context.Context, value any) (any, error)
	Validate func(ctx context.Context, value any) error

	// Transformer changes how the short name of the answer is displayed.
	Transformer func(answer string) string
}

type selectState struct {
	selected    int
	firstRender bool
}

// Select asks the user to pick one of the choices with the arrow keys,
// j/k, Ctrl+N/Ctrl+P or the number of the choice.
func Select(ctx context.Context, t Terminal, cfg SelectConfig) (any, error) {
	return run(ctx, t, func(t Terminal) (Config[selectState, any], error) {
		return selectConfig(cfg, t)
	})
}

func selectConfig(c SelectConfig, t Terminal) (Config[selectState, any], error) {
	if c.Choices == nil || c.Choices.RealLen() == 0 {
		return Config[selectState, any]{}, &ConfigError{Field: "choices", Msg: "must contain at least one selectable choice"}
	}
	theme := resolveTheme(c.Theme)
	keys := c.keyMap()
	choices := c.Choices

	paginator := NewPaginator(terminalWidth(t))
	paginator.theme = theme

	cfg := Config[selectState, any]{
		ClearLine: true,
		Initial: selectState{
			selected:    realIndexDefault(choices, c.Default),
			firstRender: true,
		},
		Filter:      c.Filter,
		Validate:    wrapValidate[selectState](c.Validate),
		Transformer: answerTransformer(c.Transformer),
		OnKeypress: func(st State[selectState], k Key) State[selectState] {
			n := choices.RealLen()
			switch keys.Classify(k) {
			case ActionUp:
				st.Ext.selected = (st.Ext.selected - 1 + n) % n
			case ActionDown:
				st.Ext.selected = (st.Ext.selected + 1) % n
			case ActionNumber:
				if d, ok := k.Number(); ok {
					if i, ok := choices.NumberShortcut(d); ok {
						st.Ext.selected = i
					}
				}
			}
			st.Ext.firstRender = false
			return st
		},
		MapStateToValue: func(st State[selectState]) any {
			ch, _ := choices.GetChoice(st.Ext.selected)
			return ch.Value
		},
		OnAnswer: func(st State[selectState], _ any) State[selectState] {
			ch, _ := choices.GetChoice(st.Ext.selected)
			st.Value = ch.Short
			return st
		},
		Render: func(st State[selectState]) string {
			line := question(st)
			if st.Status == StatusAnswered {
				return line + theme.highlight(st.Value)
			}
			if st.Ext.firstRender {
				line += theme.dim("(Use arrow keys)")
			}
			ch, _ := choices.GetChoice(st.Ext.selected)
			block := renderList(choices, st.Ext.selected, theme)
			return line + "\n" + paginator.Paginate(block, choices.IndexOf(ch), c.PageSize)
		},
	}
	applyCommon(c.Common, &cfg)
	return cfg, nil
}

// renderList draws every entry, the active real choice highlighted.
func renderList(choices *Choices, pointer int, theme *Theme) string {
	var b strings.Builder
	idx := 0
	for i, e := range choices.Entries() {
		if i > 0 {
			b.WriteString("\n")
		}
		switch v := e.(type) {
		case *Separator:
			b.WriteString("  " + theme.dim(v.Line))
		case *Choice:
			if v.IsDisabled() {
				b.WriteString(theme.dim("  - " + v.Name + " (" + v.DisabledReason() + ")"))
				continue
			}
			if idx == pointer {
				b.WriteString(theme.highlight(pointerMark + " " + v.Name))
			} else {
				b.WriteString("  " + v.Name)
			}
			idx++
		}
	}
	return b.String()
}
