package inquire

import (
	"context"
	"strings"
	"unicode/utf8"
)

// PasswordConfig configures a hidden text question.
type PasswordConfig struct {
	Common
	// Mask is echoed once per typed character. Zero hides the input
	// entirely and shows a hint instead.
	Mask     rune
	Default  string
	Filter   func(ctx context.Context, value string) (string, error)
	Validate func(ctx context.Context, value string) error
}

type passwordState struct {
	defaultValue string
}

// Password asks for a secret. The typed text is never displayed.
func Password(ctx context.Context, t Terminal, cfg PasswordConfig) (string, error) {
	return run(ctx, t, fixed(passwordConfig(cfg)))
}

func maskString(s string, mask rune) string {
	return strings.Repeat(string(mask), utf8.RuneCountInString(s))
}

func passwordConfig(c PasswordConfig) Config[passwordState, string] {
	theme := resolveTheme(c.Theme)

	cfg := Config[passwordState, string]{
		Initial:  passwordState{defaultValue: c.Default},
		Filter:   c.Filter,
		Validate: wrapValidate[passwordState](c.Validate),
		OnKeypress: func(st State[passwordState], _ Key) State[passwordState] {
			st.Ext.defaultValue = ""
			return st
		},
		MapStateToValue: func(st State[passwordState]) string {
			if st.Value == "" {
				return st.Ext.defaultValue
			}
			return st.Value
		},
		OnAnswer: func(st State[passwordState], answer string) State[passwordState] {
			st.Value = answer
			return st
		},
		Render: func(st State[passwordState]) string {
			line := question(st)
			if st.Ext.defaultValue != "" && st.Status != StatusAnswered {
				line += theme.dim("[hidden]") + " "
			}
			switch {
			case st.Status == StatusAnswered && c.Mask != 0:
				return line + theme.highlight(maskString(st.Value, c.Mask))
			case st.Status == StatusAnswered:
				return line + theme.dim("[hidden]")
			case c.Mask != 0:
				return line + maskString(st.Value, c.Mask)
			}
			return line + theme.dim("[input is hidden]") + " "
		},
	}
	applyCommon(c.Common, &cfg)
	return cfg
}
