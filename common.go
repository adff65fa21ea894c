package inquire

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Common holds the settings shared by every prompt.
type Common struct {
	// Message is the question. MessageFunc, when set, resolves it
	// asynchronously and the prompt shows a loader meanwhile.
	Message     string
	MessageFunc func(ctx context.Context) (string, error)
	// Prefix replaces the "?" in front of the message, Suffix is appended
	// to it.
	Prefix string
	Suffix string
	Theme  *Theme
	Logger *log.Logger
	// KeyMap customizes list navigation. Nil means NewDefaultKeyMap.
	KeyMap *KeyMap
}

func applyCommon[S, T any](c Common, cfg *Config[S, T]) {
	cfg.Prefix = c.Prefix
	cfg.Message = c.Message + c.Suffix
	if c.MessageFunc != nil {
		cfg.MessageFunc = func(ctx context.Context) (string, error) {
			msg, err := c.MessageFunc(ctx)
			return msg + c.Suffix, err
		}
	}
	cfg.Theme = resolveTheme(c.Theme)
	cfg.Logger = c.Logger
}

func (c Common) keyMap() *KeyMap {
	if c.KeyMap == nil {
		return defaultKeyMap
	}
	return c.KeyMap
}

// question formats the first line of a prompt: prefix, message and a
// trailing space before whatever follows.
func question[S any](st State[S]) string {
	return st.Prefix + " " + st.Message + " "
}

// run opens the controlling terminal when t is nil, builds the session
// configuration for it and runs the session.
func run[S, T any](ctx context.Context, t Terminal, build func(Terminal) (Config[S, T], error)) (T, error) {
	var zero T
	if t == nil {
		tt, err := NewTerminal()
		if err != nil {
			return zero, fmt.Errorf("failed to create terminal: %w", err)
		}
		defer tt.Close()
		t = tt
	}

	cfg, err := build(t)
	if err != nil {
		return zero, err
	}
	s, err := NewSession(t, cfg)
	if err != nil {
		return zero, err
	}
	return s.Run(ctx)
}

// fixed is a configuration builder that does not depend on the terminal.
func fixed[S, T any](cfg Config[S, T]) func(Terminal) (Config[S, T], error) {
	return func(Terminal) (Config[S, T], error) {
		return cfg, nil
	}
}

// wrapValidate adapts a single-argument validator to the engine signature.
func wrapValidate[S, T any](fn func(ctx context.Context, value T) error) func(context.Context, T, State[S]) error {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, value T, _ State[S]) error {
		return fn(ctx, value)
	}
}

// answerTransformer applies fn to the answer shown once the question is
// answered. List prompts have no typed text to transform before that.
func answerTransformer(fn func(answer string) string) func(string, bool) string {
	if fn == nil {
		return nil
	}
	return func(value string, final bool) string {
		if !final {
			return value
		}
		return fn(value)
	}
}

// realIndexDefault resolves a list default: an int selects that real
// choice when in range, any other value selects the first choice holding
// it. Everything else falls back to the first choice.
func realIndexDefault(choices *Choices, def any) int {
	switch d := def.(type) {
	case nil:
		return 0
	case int:
		if d >= 0 && d < choices.RealLen() {
			return d
		}
		return 0
	}
	return max(choices.IndexOfValue(def), 0)
}
