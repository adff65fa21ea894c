package inquire

import (
	"context"
	"errors"
	"slices"
	"strings"
	"unicode/utf8"
)

// helpKey is reserved for the entry listing every option.
const helpKey = "h"

var errInvalidCommand = errors.New("Please enter a valid command")

// ExpandConfig configures a question answered with a single letter.
type ExpandConfig struct {
	Common
	// Choices need a unique single letter Key each; "h" is reserved.
	Choices *Choices
	// Default is the index of a real choice, or the value of one. Without
	// it an empty line expands the help.
	Default  any
	PageSize int
	Filter   func(ctx context.Context, value any) (any, error)
	Validate func(ctx context.Context, value any) error

	// Transformer changes how the short name of the answer is displayed.
	Transformer func(answer string) string
}

type expandState struct {
	selectedKey string
}

// Expand shows the choice keys in a compact hint, e.g. "(yAdH)", and
// expands to the full list when the user asks for help.
func Expand(ctx context.Context, t Terminal, cfg ExpandConfig) (any, error) {
	return run(ctx, t, func(t Terminal) (Config[expandState, any], error) {
		return expandConfig(cfg, t)
	})
}

// validateExpandKeys lower-cases the choice keys and rejects missing,
// malformed, reserved or duplicated ones.
func validateExpandKeys(choices []*Choice) error {
	seen := map[string]bool{}
	var dups []string
	for _, ch := range choices {
		if utf8.RuneCountInString(ch.Key) != 1 {
			return &ConfigError{Field: "key", Msg: "must be a single letter and is required"}
		}
		ch.Key = strings.ToLower(ch.Key)
		if seen[ch.Key] && !slices.Contains(dups, ch.Key) {
			dups = append(dups, ch.Key)
		}
		seen[ch.Key] = true
	}
	if seen[helpKey] {
		return &ConfigError{Field: "key", Msg: "cannot be `h`, this value is reserved"}
	}
	if len(dups) > 0 {
		return &ConfigError{Field: "key", Msg: "must be unique, duplicates: " + strings.Join(dups, ", ")}
	}
	return nil
}

func expandConfig(c ExpandConfig, t Terminal) (Config[expandState, any], error) {
	if c.Choices == nil || c.Choices.RealLen() == 0 {
		return Config[expandState, any]{}, &ConfigError{Field: "choices", Msg: "must contain at least one selectable choice"}
	}
	theme := resolveTheme(c.Theme)

	// Work on a copy so the help entry does not leak into the caller's list.
	entries := c.Choices.Entries()
	raw := make([]any, len(entries))
	for i, e := range entries {
		raw[i] = e
	}
	choices := NewChoices(raw, nil)
	if err := validateExpandKeys(choices.Where(func(*Choice) bool { return true })); err != nil {
		return Config[expandState, any]{}, err
	}
	choices.Push(&Choice{Key: helpKey, Name: "Help, list all options", Value: "help"})

	// The default letter is shown upper-cased in the hint.
	keys := make([]string, 0, choices.RealLen())
	for _, ch := range choices.RealChoices() {
		keys = append(keys, ch.Key)
	}
	defIndex := choices.RealLen() - 1
	switch d := c.Default.(type) {
	case nil:
	case int:
		if d >= 0 && d < choices.RealLen() {
			defIndex = d
		}
	default:
		if i := choices.IndexOfValue(d); i >= 0 {
			defIndex = i
		}
	}
	rawDefault := keys[defIndex]
	keys[defIndex] = strings.ToUpper(keys[defIndex])
	hint := "(" + strings.Join(keys, "") + ")"

	paginator := NewPaginator(terminalWidth(t))
	paginator.theme = theme

	find := func(line string) (*Choice, bool) {
		key := strings.ToLower(strings.TrimSpace(line))
		if key == "" {
			key = rawDefault
		}
		return choices.Find(func(ch *Choice) bool { return ch.Key == key })
	}

	cfg := Config[expandState, any]{
		OnKeypress: func(st State[expandState], _ Key) State[expandState] {
			st.Ext.selectedKey = strings.ToLower(st.Value)
			return st
		},
		OnLine: func(st State[expandState]) (State[expandState], bool) {
			if ch, ok := find(st.Value); ok && ch.Key == helpKey {
				st.Status = StatusExpanded
				st.Ext.selectedKey = ""
				st.Value = ""
				st.Error = ""
				return st, false
			}
			return st, true
		},
		MapStateToValue: func(st State[expandState]) any {
			if ch, ok := find(st.Value); ok {
				return ch.Value
			}
			return nil
		},
		Check: func(_ any, st State[expandState]) error {
			if _, ok := find(st.Value); !ok {
				return errInvalidCommand
			}
			return nil
		},
		Filter:      c.Filter,
		Validate:    wrapValidate[expandState](c.Validate),
		Transformer: answerTransformer(c.Transformer),
		OnAnswer: func(st State[expandState], _ any) State[expandState] {
			ch, _ := find(st.Value)
			st.Value = ch.Short
			return st
		},
		Render: func(st State[expandState]) string {
			line := question(st)
			switch st.Status {
			case StatusAnswered:
				return line + theme.highlight(st.Value)
			case StatusExpanded:
				// The block starts with a newline, entry i is on line i+1.
				active := 0
				if ch, ok := choices.Find(func(ch *Choice) bool { return ch.Key == st.Ext.selectedKey }); ok {
					active = choices.IndexOf(ch) + 1
				}
				block := renderExpand(choices, st.Ext.selectedKey, theme)
				return line + paginator.Paginate(block, active, c.PageSize) + "\n  Answer: " + st.Value
			}
			return line + theme.dim(hint) + " " + st.Value
		},
		RenderBottom: func(st State[expandState]) string {
			if st.Status != StatusIdle || st.Ext.selectedKey == "" {
				return ""
			}
			if ch, ok := choices.Find(func(ch *Choice) bool { return ch.Key == st.Ext.selectedKey }); ok {
				return theme.highlight(">>") + " " + ch.Name
			}
			return ""
		},
	}
	applyCommon(c.Common, &cfg)
	return cfg, nil
}

// renderExpand lists the choices with their keys, one per line, each line
// starting with a newline.
func renderExpand(choices *Choices, selectedKey string, theme *Theme) string {
	var b strings.Builder
	for _, e := range choices.Entries() {
		b.WriteString("\n  ")
		switch v := e.(type) {
		case *Separator:
			b.WriteString(" " + theme.dim(v.Line))
		case *Choice:
			display := v.Key + ") " + v.Name
			if v.Key == selectedKey {
				display = theme.highlight(display)
			}
			b.WriteString(display)
		}
	}
	return b.String()
}
