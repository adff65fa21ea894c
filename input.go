package inquire

import "context"

// InputConfig configures a free text question.
type InputConfig struct {
	Common
	// Default is the answer given by an empty line. It is shown dimmed
	// until the user types, and Backspace on an empty line removes it.
	Default string
	// Transformer changes how the typed text is displayed, not the answer.
	Transformer func(value string, final bool) string
	Filter      func(ctx context.Context, value string) (string, error)
	Validate    func(ctx context.Context, value string) error
}

type inputState struct {
	defaultValue string
}

// Input asks for a line of text.
//
// Example:
//
//	name, err := inquire.Input(ctx, nil, inquire.InputConfig{
//		Common:  inquire.Common{Message: "What's your name?"},
//		Default: "anonymous",
//	})
func Input(ctx context.Context, t Terminal, cfg InputConfig) (string, error) {
	return run(ctx, t, fixed(inputConfig(cfg)))
}

func inputConfig(c InputConfig) Config[inputState, string] {
	theme := resolveTheme(c.Theme)

	cfg := Config[inputState, string]{
		Initial:     inputState{defaultValue: c.Default},
		Transformer: c.Transformer,
		Filter:      c.Filter,
		Validate:    wrapValidate[inputState](c.Validate),
		OnKeypress: func(st State[inputState], k Key) State[inputState] {
			switch {
			case k.Name == "backspace" && st.Value == "":
				st.Ext.defaultValue = ""
			case k.Name == "tab" && st.Value == "" && st.Ext.defaultValue != "":
				st.Value = st.Ext.defaultValue
			case st.Value != "":
				st.Ext.defaultValue = ""
			}
			return st
		},
		MapStateToValue: func(st State[inputState]) string {
			if st.Value == "" {
				return st.Ext.defaultValue
			}
			return st.Value
		},
		OnAnswer: func(st State[inputState], answer string) State[inputState] {
			st.Value = answer
			return st
		},
		Render: func(st State[inputState]) string {
			line := question(st)
			if st.Status == StatusAnswered {
				return line + theme.highlight(st.Value)
			}
			if st.Ext.defaultValue != "" {
				line += theme.dim("("+st.Ext.defaultValue+")") + " "
			}
			return line + st.Value
		},
	}
	applyCommon(c.Common, &cfg)
	return cfg
}
