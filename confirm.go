package inquire

import (
	"context"
	"regexp"
)

var yesPattern = regexp.MustCompile(`(?i)^y(es)?`)

// ConfirmConfig configures a yes/no question.
type ConfirmConfig struct {
	Common
	// Default is the answer of an empty line. Nil means yes.
	Default     *bool
	Transformer func(value string, final bool) string
}

// Confirm asks a yes/no question.
func Confirm(ctx context.Context, t Terminal, cfg ConfirmConfig) (bool, error) {
	return run(ctx, t, fixed(confirmConfig(cfg)))
}

// parseConfirm reads "y" or "yes" in any case as true, any other text as
// false and an empty line as def.
func parseConfirm(input string, def bool) bool {
	if input == "" {
		return def
	}
	return yesPattern.MatchString(input)
}

func confirmConfig(c ConfirmConfig) Config[struct{}, bool] {
	theme := resolveTheme(c.Theme)

	def := true
	if c.Default != nil {
		def = *c.Default
	}
	hint := "(Y/n)"
	if !def {
		hint = "(y/N)"
	}

	cfg := Config[struct{}, bool]{
		Transformer: c.Transformer,
		MapStateToValue: func(st State[struct{}]) bool {
			return parseConfirm(st.Value, def)
		},
		OnAnswer: func(st State[struct{}], answer bool) State[struct{}] {
			st.Value = "No"
			if answer {
				st.Value = "Yes"
			}
			return st
		},
		Render: func(st State[struct{}]) string {
			line := question(st)
			if st.Status == StatusAnswered {
				return line + theme.highlight(st.Value)
			}
			return line + theme.dim(hint) + " " + st.Value
		},
	}
	applyCommon(c.Common, &cfg)
	return cfg
}
