package inquire

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"unicode/utf8"
)

// PromptFunc asks a question on t and returns the answer.
type PromptFunc func(ctx context.Context, t Terminal, q Question, answers Answers) (any, error)

// Registry maps question types to prompts.
//
// A new registry knows the built-in types: input, password, number,
// confirm, list (also registered as select), rawlist, checkbox, expand and
// editor. Registries are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	prompts map[string]PromptFunc
}

// NewRegistry creates a registry holding the built-in prompts.
func NewRegistry() *Registry {
	r := &Registry{}
	r.RestoreDefaults()
	return r
}

// Register adds a prompt type or replaces an existing one.
func (r *Registry) Register(name string, fn PromptFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts[name] = fn
}

// Lookup returns the prompt registered for name.
func (r *Registry) Lookup(name string) (PromptFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.prompts[name]
	return fn, ok
}

// Names returns the registered types in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.prompts))
}

// RestoreDefaults drops every custom registration.
func (r *Registry) RestoreDefaults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = map[string]PromptFunc{
		"input":    promptInput,
		"password": promptPassword,
		"number":   promptNumber,
		"confirm":  promptConfirm,
		"list":     promptSelect,
		"select":   promptSelect,
		"rawlist":  promptRawList,
		"checkbox": promptCheckbox,
		"expand":   promptExpand,
		"editor":   promptEditor,
	}
}

// stringFilter adapts a question filter to a text prompt. Non-string
// results are formatted with fmt.Sprint.
func stringFilter(q Question, answers Answers) func(context.Context, string) (string, error) {
	if q.Filter == nil {
		return nil
	}
	return func(ctx context.Context, v string) (string, error) {
		out, err := q.Filter(ctx, v, answers)
		if err != nil {
			return "", err
		}
		if s, ok := out.(string); ok {
			return s, nil
		}
		return fmt.Sprint(out), nil
	}
}

func stringValidate(q Question, answers Answers) func(context.Context, string) error {
	if q.Validate == nil {
		return nil
	}
	return func(ctx context.Context, v string) error {
		return q.Validate(ctx, v, answers)
	}
}

func anyFilter(q Question, answers Answers) func(context.Context, any) (any, error) {
	if q.Filter == nil {
		return nil
	}
	return func(ctx context.Context, v any) (any, error) {
		return q.Filter(ctx, v, answers)
	}
}

func anyValidate(q Question, answers Answers) func(context.Context, any) error {
	if q.Validate == nil {
		return nil
	}
	return func(ctx context.Context, v any) error {
		return q.Validate(ctx, v, answers)
	}
}

// answerTransformerOf adapts a question transformer to list prompts, which
// only display the answer.
func answerTransformerOf(q Question, answers Answers) func(string) string {
	if q.Transformer == nil {
		return nil
	}
	return func(v string) string {
		return q.Transformer(v, answers, true)
	}
}

func stringTransformer(q Question, answers Answers) func(string, bool) string {
	if q.Transformer == nil {
		return nil
	}
	return func(v string, final bool) string {
		return q.Transformer(v, answers, final)
	}
}

func defaultString(q Question) string {
	if q.Default == nil {
		return ""
	}
	return fmt.Sprint(q.Default)
}

func promptInput(ctx context.Context, t Terminal, q Question, answers Answers) (any, error) {
	return Input(ctx, t, InputConfig{
		Common:      q.Common(answers),
		Default:     defaultString(q),
		Transformer: stringTransformer(q, answers),
		Filter:      stringFilter(q, answers),
		Validate:    stringValidate(q, answers),
	})
}

func promptPassword(ctx context.Context, t Terminal, q Question, answers Answers) (any, error) {
	if q.Transformer != nil {
		return nil, &ConfigError{Field: "transformer", Msg: "is not supported by password questions"}
	}
	var mask rune
	if q.Mask != "" {
		mask, _ = utf8.DecodeRuneInString(q.Mask)
	}
	return Password(ctx, t, PasswordConfig{
		Common:   q.Common(answers),
		Mask:     mask,
		Default:  defaultString(q),
		Filter:   stringFilter(q, answers),
		Validate: stringValidate(q, answers),
	})
}

func promptNumber(ctx context.Context, t Terminal, q Question, answers Answers) (any, error) {
	cfg := NumberConfig{
		Common:      q.Common(answers),
		Transformer: stringTransformer(q, answers),
	}
	switch d := q.Default.(type) {
	case int:
		f := float64(d)
		cfg.Default = &f
	case float64:
		cfg.Default = &d
	}
	if q.Filter != nil {
		cfg.Filter = func(ctx context.Context, v float64) (float64, error) {
			out, err := q.Filter(ctx, v, answers)
			if err != nil {
				return 0, err
			}
			f, ok := out.(float64)
			if !ok {
				return 0, fmt.Errorf("filter returned %T, want float64", out)
			}
			return f, nil
		}
	}
	if q.Validate != nil {
		cfg.Validate = func(ctx context.Context, v float64) error {
			return q.Validate(ctx, v, answers)
		}
	}
	return Number(ctx, t, cfg)
}

func promptConfirm(ctx context.Context, t Terminal, q Question, answers Answers) (any, error) {
	cfg := ConfirmConfig{
		Common:      q.Common(answers),
		Transformer: stringTransformer(q, answers),
	}
	if d, ok := q.Default.(bool); ok {
		cfg.Default = &d
	}
	return Confirm(ctx, t, cfg)
}

func promptSelect(ctx context.Context, t Terminal, q Question, answers Answers) (any, error) {
	if q.Choices == nil {
		return nil, &ConfigError{Field: "choices", Msg: "is required"}
	}
	return Select(ctx, t, SelectConfig{
		Common:      q.Common(answers),
		Choices:     NewChoices(q.Choices, answers),
		Default:     q.Default,
		PageSize:    q.PageSize,
		Filter:      anyFilter(q, answers),
		Validate:    anyValidate(q, answers),
		Transformer: answerTransformerOf(q, answers),
	})
}

func promptRawList(ctx context.Context, t Terminal, q Question, answers Answers) (any, error) {
	if q.Choices == nil {
		return nil, &ConfigError{Field: "choices", Msg: "is required"}
	}
	return RawList(ctx, t, RawListConfig{
		Common:      q.Common(answers),
		Choices:     NewChoices(q.Choices, answers),
		Default:     q.Default,
		PageSize:    q.PageSize,
		Filter:      anyFilter(q, answers),
		Validate:    anyValidate(q, answers),
		Transformer: answerTransformerOf(q, answers),
	})
}

func promptCheckbox(ctx context.Context, t Terminal, q Question, answers Answers) (any, error) {
	if q.Choices == nil {
		return nil, &ConfigError{Field: "choices", Msg: "is required"}
	}
	cfg := CheckboxConfig{
		Common:      q.Common(answers),
		Choices:     NewChoices(q.Choices, answers),
		PageSize:    q.PageSize,
		Transformer: answerTransformerOf(q, answers),
	}
	if d, ok := q.Default.([]any); ok {
		cfg.Default = d
	}
	if q.Filter != nil {
		cfg.Filter = func(ctx context.Context, v []any) ([]any, error) {
			out, err := q.Filter(ctx, v, answers)
			if err != nil {
				return nil, err
			}
			values, ok := out.([]any)
			if !ok {
				return nil, fmt.Errorf("filter returned %T, want []any", out)
			}
			return values, nil
		}
	}
	if q.Validate != nil {
		cfg.Validate = func(ctx context.Context, v []any) error {
			return q.Validate(ctx, v, answers)
		}
	}
	return Checkbox(ctx, t, cfg)
}

func promptExpand(ctx context.Context, t Terminal, q Question, answers Answers) (any, error) {
	if q.Choices == nil {
		return nil, &ConfigError{Field: "choices", Msg: "is required"}
	}
	return Expand(ctx, t, ExpandConfig{
		Common:      q.Common(answers),
		Choices:     NewChoices(q.Choices, answers),
		Default:     q.Default,
		PageSize:    q.PageSize,
		Filter:      anyFilter(q, answers),
		Validate:    anyValidate(q, answers),
		Transformer: answerTransformerOf(q, answers),
	})
}

func promptEditor(ctx context.Context, t Terminal, q Question, answers Answers) (any, error) {
	return Editor(ctx, t, EditorConfig{
		Common:   q.Common(answers),
		Default:  defaultString(q),
		Launcher: q.editor,
		Filter:   stringFilter(q, answers),
		Validate: stringValidate(q, answers),
	})
}
