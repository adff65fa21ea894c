package inquire

import (
	"context"
	"reflect"
	"slices"
	"strings"
)

const (
	radioOn  = "◉"
	radioOff = "◯"
)

// CheckboxConfig configures a multiple choice question.
type CheckboxConfig struct {
	Common
	Choices *Choices
	// Default lists the values checked initially, on top of the choices
	// marked Checked.
	Default  []any
	PageSize int
	Filter   func(ctx context.Context, values []any) ([]any, error)
	Validate func(ctx context.Context, values []any) error

	// Transformer changes how the comma separated short names of the
	// answer are displayed.
	Transformer func(answer string) string
}

type checkboxState struct {
	pointer         int
	checked         []bool // indexed like the real choices
	spaceKeyPressed bool
}

// Checkbox lets the user check any number of choices. Space toggles the
// active choice, a checks or unchecks everything, i inverts the selection
// and 1-9 toggle the nth choice.
func Checkbox(ctx context.Context, t Terminal, cfg CheckboxConfig) ([]any, error) {
	return run(ctx, t, func(t Terminal) (Config[checkboxState, []any], error) {
		return checkboxConfig(cfg, t)
	})
}

func checkboxConfig(c CheckboxConfig, t Terminal) (Config[checkboxState, []any], error) {
	if c.Choices == nil || c.Choices.RealLen() == 0 {
		return Config[checkboxState, []any]{}, &ConfigError{Field: "choices", Msg: "must contain at least one selectable choice"}
	}
	theme := resolveTheme(c.Theme)
	keys := c.keyMap()
	choices := c.Choices
	selectable := choices.RealChoices()

	paginator := NewPaginator(terminalWidth(t))
	paginator.theme = theme

	initial := make([]bool, len(selectable))
	for i, ch := range selectable {
		initial[i] = ch.Checked || slices.ContainsFunc(c.Default, func(v any) bool {
			return reflect.DeepEqual(v, ch.Value)
		})
	}

	selection := func(st State[checkboxState]) []*Choice {
		var out []*Choice
		for i, ch := range selectable {
			if st.Ext.checked[i] {
				out = append(out, ch)
			}
		}
		return out
	}

	cfg := Config[checkboxState, []any]{
		ClearLine:   true,
		Initial:     checkboxState{checked: initial},
		Filter:      c.Filter,
		Validate:    wrapValidate[checkboxState](c.Validate),
		Transformer: answerTransformer(c.Transformer),
		OnKeypress: func(st State[checkboxState], k Key) State[checkboxState] {
			n := len(selectable)
			checked := slices.Clone(st.Ext.checked)
			switch keys.Classify(k) {
			case ActionUp:
				st.Ext.pointer = (st.Ext.pointer - 1 + n) % n
			case ActionDown:
				st.Ext.pointer = (st.Ext.pointer + 1) % n
			case ActionNumber:
				if d, ok := k.Number(); ok {
					if i, ok := choices.NumberShortcut(d); ok {
						st.Ext.pointer = i
						checked[i] = !checked[i]
					}
				}
			case ActionSpace:
				st.Ext.spaceKeyPressed = true
				checked[st.Ext.pointer] = !checked[st.Ext.pointer]
			case ActionSelectAll:
				all := !slices.Contains(checked, false)
				for i := range checked {
					checked[i] = !all
				}
			case ActionInvert:
				for i := range checked {
					checked[i] = !checked[i]
				}
			}
			st.Ext.checked = checked
			return st
		},
		MapStateToValue: func(st State[checkboxState]) []any {
			values := []any{}
			for _, ch := range selection(st) {
				values = append(values, ch.Value)
			}
			return values
		},
		OnAnswer: func(st State[checkboxState], _ []any) State[checkboxState] {
			shorts := []string{}
			for _, ch := range selection(st) {
				shorts = append(shorts, ch.Short)
			}
			st.Value = strings.Join(shorts, ", ")
			return st
		},
		Render: func(st State[checkboxState]) string {
			line := question(st)
			if !st.Ext.spaceKeyPressed && st.Status != StatusAnswered {
				line += "(Press " + theme.help("<space>") + " to select, " +
					theme.help("<a>") + " to toggle all, " +
					theme.help("<i>") + " to invert selection)"
			}
			if st.Status == StatusAnswered {
				return line + theme.highlight(st.Value)
			}
			block := renderCheckbox(choices, st.Ext, theme)
			ch, _ := choices.GetChoice(st.Ext.pointer)
			return line + "\n" + paginator.Paginate(block, choices.IndexOf(ch), c.PageSize)
		},
	}
	applyCommon(c.Common, &cfg)
	return cfg, nil
}

func renderCheckbox(choices *Choices, st checkboxState, theme *Theme) string {
	var b strings.Builder
	idx := 0
	for i, e := range choices.Entries() {
		if i > 0 {
			b.WriteString("\n")
		}
		switch v := e.(type) {
		case *Separator:
			b.WriteString(" " + theme.dim(v.Line))
		case *Choice:
			if v.IsDisabled() {
				b.WriteString(theme.dim(" - " + v.Name + " (" + v.DisabledReason() + ")"))
				continue
			}
			box := radioOff
			if st.checked[idx] {
				box = theme.checked(radioOn)
			}
			if idx == st.pointer {
				b.WriteString(theme.highlight(pointerMark+box+" "+v.Name))
			} else {
				b.WriteString(" " + box + " " + v.Name)
			}
			idx++
		}
	}
	return b.String()
}
