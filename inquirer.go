package inquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Answers collects the answers of a questionnaire by question name.
type Answers map[string]any

// Set stores value under name. Dotted names create nested maps, so
// "user.name" is stored as answers["user"]["name"].
func (a Answers) Set(name string, value any) {
	parts := strings.Split(name, ".")
	m := map[string]any(a)
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// Get returns the value stored under a possibly dotted name.
func (a Answers) Get(name string) (any, bool) {
	parts := strings.Split(name, ".")
	m := map[string]any(a)
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			return nil, false
		}
		m = next
	}
	v, ok := m[parts[len(parts)-1]]
	return v, ok
}

// Question is one question of a questionnaire. The function fields receive
// the answers collected so far.
type Question struct {
	// Type is a registered prompt type. Empty or unknown types ask for text.
	Type string `yaml:"type"`
	// Name is the key of the answer, required.
	Name string `yaml:"name"`
	// Message defaults to the name followed by a colon.
	Message     string                                                     `yaml:"message"`
	MessageFunc func(ctx context.Context, answers Answers) (string, error) `yaml:"-"`
	Default     any                                                        `yaml:"default"`
	DefaultFunc func(ctx context.Context, answers Answers) (any, error)    `yaml:"-"`
	Choices     []any                                                      `yaml:"choices"`
	ChoicesFunc func(ctx context.Context, answers Answers) ([]any, error)  `yaml:"-"`
	// When skips the question when it returns false.
	When        func(answers Answers) bool                                         `yaml:"-"`
	Validate    func(ctx context.Context, value any, answers Answers) error        `yaml:"-"`
	Filter      func(ctx context.Context, value any, answers Answers) (any, error) `yaml:"-"`
	Transformer func(value string, answers Answers, final bool) string             `yaml:"-"`
	PageSize    int                                                                `yaml:"pageSize"`
	Mask        string                                                             `yaml:"mask"`
	Prefix      string                                                             `yaml:"prefix"`
	Suffix      string                                                             `yaml:"suffix"`
	// AskAnswered asks the question even when the answers already hold it.
	AskAnswered bool `yaml:"askAnswered"`

	theme  *Theme
	logger *log.Logger
	keyMap *KeyMap
	editor EditorLauncher
}

// Common returns the prompt settings of the question.
func (q Question) Common(answers Answers) Common {
	c := Common{
		Message: q.Message,
		Prefix:  q.Prefix,
		Suffix:  q.Suffix,
		Theme:   q.theme,
		Logger:  q.logger,
		KeyMap:  q.keyMap,
	}
	if c.Message == "" {
		c.Message = q.Name + ":"
	}
	if q.MessageFunc != nil {
		c.MessageFunc = func(ctx context.Context) (string, error) {
			return q.MessageFunc(ctx, answers)
		}
	}
	return c
}

// LoadQuestions decodes a YAML list of questions.
//
// Example:
//
//   - type: list
//     name: size
//     message: What size do you need?
//     choices: [Large, Medium, Small]
//     default: 1
func LoadQuestions(r io.Reader) ([]Question, error) {
	var questions []Question
	if err := yaml.NewDecoder(r).Decode(&questions); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	return questions, nil
}

// Inquirer asks questionnaires, one question at a time.
type Inquirer struct {
	registry *Registry
	term     Terminal
	theme    *Theme
	logger   *log.Logger
	keyMap   *KeyMap
	editor   EditorLauncher
}

// Option configures an Inquirer.
type Option func(*Inquirer)

// WithRegistry sets the registry resolving question types.
func WithRegistry(r *Registry) Option {
	return func(in *Inquirer) {
		in.registry = r
	}
}

// WithTerminal runs the prompts on t instead of the controlling terminal.
func WithTerminal(t Terminal) Option {
	return func(in *Inquirer) {
		in.term = t
	}
}

// WithTheme sets the theme of every prompt.
func WithTheme(theme *Theme) Option {
	return func(in *Inquirer) {
		in.theme = theme
	}
}

// WithLogger sets the logger of the inquirer and its prompts.
func WithLogger(logger *log.Logger) Option {
	return func(in *Inquirer) {
		in.logger = logger
	}
}

// WithKeyMap sets the list navigation bindings.
func WithKeyMap(keyMap *KeyMap) Option {
	return func(in *Inquirer) {
		in.keyMap = keyMap
	}
}

// WithEditor sets the launcher used by editor questions.
func WithEditor(e EditorLauncher) Option {
	return func(in *Inquirer) {
		in.editor = e
	}
}

// New creates an Inquirer.
func New(options ...Option) *Inquirer {
	in := &Inquirer{}
	for _, opt := range options {
		opt(in)
	}
	if in.registry == nil {
		in.registry = NewRegistry()
	}
	if in.logger == nil {
		in.logger = log.New(io.Discard)
	}
	return in
}

// Prompt asks the questions in order and returns the answers.
func (in *Inquirer) Prompt(ctx context.Context, questions ...Question) (Answers, error) {
	return in.PromptWith(ctx, Answers{}, questions...)
}

// PromptWith asks the questions in order, starting from answers. Questions
// already answered are skipped unless AskAnswered is set.
//
// On failure the answers collected so far are returned with the error.
func (in *Inquirer) PromptWith(ctx context.Context, answers Answers, questions ...Question) (Answers, error) {
	if answers == nil {
		answers = Answers{}
	}
	for _, q := range questions {
		if q.Name == "" {
			return answers, &ConfigError{Field: "name", Msg: "is required"}
		}
	}

	t := in.term
	if t == nil {
		tt, err := NewTerminal()
		if err != nil {
			return answers, fmt.Errorf("failed to create terminal: %w", err)
		}
		defer tt.Close()
		t = tt
	}

	for _, q := range questions {
		if err := in.ask(ctx, t, q, answers); err != nil {
			return answers, err
		}
	}
	return answers, nil
}

func (in *Inquirer) ask(ctx context.Context, t Terminal, q Question, answers Answers) error {
	logger := in.logger.With("question", q.Name)

	if _, ok := answers.Get(q.Name); ok && !q.AskAnswered {
		logger.Debug("already answered")
		return nil
	}
	if q.When != nil && !q.When(answers) {
		logger.Debug("skipped")
		return nil
	}

	if q.DefaultFunc != nil {
		def, err := q.DefaultFunc(ctx, answers)
		if err != nil {
			return fmt.Errorf("%w %q: default: %w", ErrResolve, q.Name, err)
		}
		q.Default = def
	}
	if q.ChoicesFunc != nil {
		choices, err := q.ChoicesFunc(ctx, answers)
		if err != nil {
			return fmt.Errorf("%w %q: choices: %w", ErrResolve, q.Name, err)
		}
		q.Choices = choices
	}

	fn, ok := in.registry.Lookup(q.Type)
	if !ok {
		if q.Type != "" {
			logger.Debug("unknown question type, asking for text", "type", q.Type)
		}
		fn, _ = in.registry.Lookup("input")
	}
	if fn == nil {
		fn = promptInput
	}

	q.theme = in.theme
	q.logger = logger
	q.keyMap = in.keyMap
	q.editor = in.editor

	answer, err := fn(ctx, t, q, answers)
	if err != nil {
		return err
	}
	logger.Debug("answered")
	answers.Set(q.Name, answer)
	return nil
}
