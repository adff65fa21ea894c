package inquire

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches integers, decimals with either side of the point
// omitted, and an optional positive exponent.
var numberPattern = regexp.MustCompile(`^(-?\d+|\d+\.\d*|\d*\.\d+)(e\d+)?$`)

var errNotANumber = errors.New("Please enter a valid number")

// NumberConfig configures a numeric question.
type NumberConfig struct {
	Common
	// Default is the answer when the input is empty or not a number.
	Default     *float64
	Transformer func(value string, final bool) string
	Filter      func(ctx context.Context, value float64) (float64, error)
	Validate    func(ctx context.Context, value float64) error
}

// Number asks for a number.
func Number(ctx context.Context, t Terminal, cfg NumberConfig) (float64, error) {
	return run(ctx, t, fixed(numberConfig(cfg)))
}

// parseNumber parses the typed text. Anything that is not a number yields
// def, or NaN without a default.
func parseNumber(input string, def *float64) float64 {
	input = strings.TrimSpace(input)
	if numberPattern.MatchString(input) {
		if v, err := strconv.ParseFloat(input, 64); err == nil {
			return v
		}
	}
	if def != nil {
		return *def
	}
	return math.NaN()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numberConfig(c NumberConfig) Config[inputState, float64] {
	theme := resolveTheme(c.Theme)

	var def string
	if c.Default != nil {
		def = formatNumber(*c.Default)
	}

	cfg := Config[inputState, float64]{
		Initial:     inputState{defaultValue: def},
		Transformer: c.Transformer,
		Filter:      c.Filter,
		Validate:    wrapValidate[inputState](c.Validate),
		OnKeypress: func(st State[inputState], _ Key) State[inputState] {
			st.Ext.defaultValue = ""
			return st
		},
		MapStateToValue: func(st State[inputState]) float64 {
			return parseNumber(st.Value, c.Default)
		},
		Check: func(v float64, _ State[inputState]) error {
			if math.IsNaN(v) {
				return errNotANumber
			}
			return nil
		},
		OnAnswer: func(st State[inputState], answer float64) State[inputState] {
			st.Value = formatNumber(answer)
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
