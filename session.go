package inquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/log"
)

// Status is the lifecycle phase of a prompt session.
type Status int

// Session statuses.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusExpanded
	StatusAnswered
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusExpanded:
		return "expanded"
	case StatusAnswered:
		return "answered"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// State is the state of a prompt session. The common fields are owned by
// the engine, Ext holds the fields specific to a kind of prompt.
//
// States are values: hooks receive a copy and return the next state.
type State[S any] struct {
	Status           Status
	Prefix           string // decorated "?" or spinner frame, set before each render
	Message          string // decorated question, set before each render
	Value            string // live input line, or the transformed answer once answered
	Error            string // validation message shown under the prompt
	LoadingIncrement int
	Ext              S
}

// Config describes a prompt built on the session engine.
//
// Render and MapStateToValue are required, everything else is optional.
// S is the prompt-specific part of the state, T the type of the answer.
// The engine edits the input line and keeps the common state fields; the
// hooks only derive the next state from the current one.
//
// Example:
//
//	// A prompt answering with the length of the typed line
//	cfg := inquire.Config[struct{}, int]{
//		Message: "Type something:",
//		MapStateToValue: func(st inquire.State[struct{}]) int {
//			return len(st.Value)
//		},
//		Validate: func(_ context.Context, n int, _ inquire.State[struct{}]) error {
//			if n == 0 {
//				return errors.New("Type at least one character")
//			}
//			return nil
//		},
//		Render: func(st inquire.State[struct{}]) string {
//			return st.Prefix + " " + st.Message + " " + st.Value
//		},
//	}
type Config[S, T any] struct {
	// Prefix replaces the "?" in front of the message.
	Prefix      string
	Message     string
	MessageFunc func(ctx context.Context) (string, error)
	Initial     S

	// OnKeypress runs after every key that is not Enter, once the line
	// editor has applied it and Value holds the new line. A returned Value
	// different from the line replaces the editor buffer.
	OnKeypress func(st State[S], k Key) State[S]
	// OnLine runs when Enter is pressed and reports whether to submit.
	OnLine func(st State[S]) (State[S], bool)
	// OnAnswer adjusts the state for the final render.
	OnAnswer func(st State[S], answer T) State[S]

	MapStateToValue func(st State[S]) T
	// Check is the structural validation of the unfiltered value.
	Check    func(value T, st State[S]) error
	Filter   func(ctx context.Context, value T) (T, error)
	Validate func(ctx context.Context, value T, st State[S]) error

	Transformer  func(value string, final bool) string
	Render       func(st State[S]) string
	RenderBottom func(st State[S]) string

	// ClearLine keeps the line editor out of the key handling, for prompts
	// that navigate rather than type.
	ClearLine bool

	Theme  *Theme
	Logger *log.Logger

	// loaderDelay overrides the 500ms loader threshold in tests.
	loaderDelay time.Duration
}

// loaderDelay is how long a resolver may run before the spinner shows.
const loaderDelay = 500 * time.Millisecond

var loadingSpinner = spinner.Dot

// Session runs a single prompt on a terminal.
//
// A session puts the terminal in raw mode, redraws the prompt after every
// key and returns once the answer passed Filter, Check and Validate. The
// terminal is restored on every return path, so several sessions can run
// one after another on the same terminal.
//
// Example:
//
//	term, err := inquire.NewTerminal()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer term.Close()
//
//	s, err := inquire.NewSession(term, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	n, err := s.Run(ctx)
//	if errors.Is(err, inquire.ErrInterrupted) {
//		return
//	}
type Session[S, T any] struct {
	term    Terminal
	cfg     Config[S, T]
	theme   *Theme
	logger  *log.Logger
	editor  *lineEditor
	screen  *screenManager
	state   State[S]
	started atomic.Bool

	messageResolved bool
}

type submitResult[T any] struct {
	value T
	err   error
}

type messageResult struct {
	message string
	err     error
}

// NewSession validates cfg and prepares a session on term.
func NewSession[S, T any](term Terminal, cfg Config[S, T]) (*Session[S, T], error) {
	if term == nil {
		return nil, &ConfigError{Field: "terminal", Msg: "is required"}
	}
	if cfg.Render == nil {
		return nil, &ConfigError{Field: "Render", Msg: "is required"}
	}
	if cfg.MapStateToValue == nil {
		return nil, &ConfigError{Field: "MapStateToValue", Msg: "is required"}
	}
	if cfg.loaderDelay <= 0 {
		cfg.loaderDelay = loaderDelay
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session[S, T]{
		term:   term,
		cfg:    cfg,
		theme:  resolveTheme(cfg.Theme),
		logger: logger,
		editor: &lineEditor{},
		state: State[S]{
			Status:  StatusIdle,
			Message: cfg.Message,
			Ext:     cfg.Initial,
		},
		messageResolved: cfg.MessageFunc == nil,
	}
	s.screen = newScreenManager(term.Output(), s.editor, terminalWidth(term))
	return s, nil
}

// terminalWidth returns a width source querying the terminal on every call.
func terminalWidth(term Terminal) func() int {
	return func() int {
		w, _, err := term.Size()
		if err != nil {
			return defaultWidth
		}
		return safeWidth(w)
	}
}

// Run draws the prompt and handles input until the question is answered.
//
// The answer is the value produced by MapStateToValue after Filter, once
// Check and Validate accepted it. Run returns ErrInterrupted on Ctrl+C,
// ErrEOF on Ctrl+D with an empty line or when the input ends, and the
// context error on cancellation. A session can only be run once.
func (s *Session[S, T]) Run(ctx context.Context) (T, error) {
	var zero T
	if !s.started.CompareAndSwap(false, true) {
		return zero, ErrSessionStarted
	}

	if err := s.term.SetRaw(); err != nil {
		return zero, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	s.logger.Debug("session started", "message", s.cfg.Message)

	value, err := s.loop(ctx)

	if derr := s.screen.done(); derr != nil {
		s.logger.Warn("failed to release screen", "err", derr)
	}
	if rerr := s.term.Restore(); rerr != nil {
		s.logger.Warn("failed to restore terminal state", "err", rerr)
	}
	return value, err
}

func (s *Session[S, T]) loop(ctx context.Context) (T, error) {
	var zero T

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := inputFor(s.term)
	submits := make(chan submitResult[T], 1)
	messages := make(chan messageResult, 1)

	// Nil channels block forever: keys stays nil while the message is
	// unresolved or a submission is pending, which pauses the input.
	var keys <-chan Key
	listen := func() {
		keys = input.keys
		input.request()
	}
	var loader <-chan time.Time
	var ticks <-chan time.Time
	var ticker *time.Ticker
	stopSpinner := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
		}
		ticks = nil
	}
	defer stopSpinner()

	if s.messageResolved {
		listen()
	} else {
		go func() {
			msg, err := s.cfg.MessageFunc(ctx)
			messages <- messageResult{message: msg, err: err}
		}()
		timer := time.NewTimer(s.cfg.loaderDelay)
		defer timer.Stop()
		loader = timer.C
	}

	if err := s.render(); err != nil {
		return zero, err
	}

	for {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()

		case <-loader:
			loader = nil
			s.setStatus(StatusLoading)
			ticker = time.NewTicker(loadingSpinner.FPS)
			ticks = ticker.C
			s.logger.Debug("loader started")
			if err := s.render(); err != nil {
				return zero, err
			}

		case <-ticks:
			if s.state.Status != StatusLoading {
				stopSpinner()
				continue
			}
			s.state.LoadingIncrement++
			if err := s.render(); err != nil {
				return zero, err
			}

		case res := <-messages:
			loader = nil
			stopSpinner()
			if res.err != nil {
				return zero, fmt.Errorf("%w: message: %w", ErrResolve, res.err)
			}
			s.messageResolved = true
			s.state.Message = res.message
			if s.state.Status == StatusLoading {
				s.setStatus(StatusIdle)
			}
			listen()
			if err := s.render(); err != nil {
				return zero, err
			}

		case k, ok := <-keys:
			if !ok {
				if err := input.failure(); !errors.Is(err, io.EOF) {
					return zero, fmt.Errorf("failed to read input: %w", err)
				}
				return zero, ErrEOF
			}
			if k.Ctrl && k.Name == "c" {
				return zero, ErrInterrupted
			}
			if k.Ctrl && k.Name == "d" && s.editor.line() == "" {
				return zero, ErrEOF
			}

			if k.IsEnter() {
				if s.handleLine(ctx, submits) {
					keys = nil
					continue
				}
			} else {
				s.handleKeypress(k)
			}
			input.request()
			if err := s.render(); err != nil {
				return zero, err
			}

		case res := <-submits:
			if res.err != nil {
				s.state.Error = validationMessage(res.err)
				if s.state.Status != StatusExpanded {
					s.setStatus(StatusIdle)
				}
				s.logger.Debug("submission rejected", "error", s.state.Error)
				listen()
				if err := s.render(); err != nil {
					return zero, err
				}
				continue
			}

			s.state.Error = ""
			s.setStatus(StatusAnswered)
			if s.cfg.OnAnswer != nil {
				s.state = s.cfg.OnAnswer(s.state, res.value)
			}
			s.logger.Debug("submission accepted")
			if err := s.render(); err != nil {
				return zero, err
			}
			return res.value, nil
		}
	}
}

func (s *Session[S, T]) setStatus(status Status) {
	if s.state.Status == status {
		return
	}
	s.logger.Debug("status changed", "from", s.state.Status, "to", status)
	s.state.Status = status
}

// handleKeypress applies a key that is not Enter.
func (s *Session[S, T]) handleKeypress(k Key) {
	if !s.cfg.ClearLine {
		s.editor.apply(k)
	}
	s.state.Value = s.editor.line()
	s.state.Error = ""

	if s.cfg.OnKeypress == nil {
		return
	}
	next := s.cfg.OnKeypress(s.state, k)
	if next.Value != s.state.Value {
		s.editor.set(next.Value)
	}
	s.state = next
}

// handleLine runs the line hook and starts the submission when asked to.
// It reports whether a submission is now pending.
func (s *Session[S, T]) handleLine(ctx context.Context, submits chan<- submitResult[T]) bool {
	s.state.Value = s.editor.line()

	submit := true
	if s.cfg.OnLine != nil {
		s.state, submit = s.cfg.OnLine(s.state)
		if s.state.Value != s.editor.line() {
			s.editor.set(s.state.Value)
		}
	}
	if !submit {
		return false
	}

	candidate := s.cfg.MapStateToValue(s.state)
	st := s.state
	s.logger.Debug("submission started")
	go s.runPipeline(ctx, candidate, st, submits)
	return true
}

// runPipeline filters then validates candidate, stopping at the first
// failure. A panic in any stage is reported as a failure.
func (s *Session[S, T]) runPipeline(ctx context.Context, candidate T, st State[S], submits chan<- submitResult[T]) {
	var res submitResult[T]
	defer func() {
		if r := recover(); r != nil {
			res = submitResult[T]{err: fmt.Errorf("%v\n%s", r, debug.Stack())}
		}
		submits <- res
	}()

	filtered := candidate
	if s.cfg.Filter != nil {
		v, err := s.cfg.Filter(ctx, candidate)
		if err != nil {
			res.err = err
			return
		}
		filtered = v
	}
	if s.cfg.Check != nil {
		if err := s.cfg.Check(candidate, st); err != nil {
			res.err = err
			return
		}
	}
	if s.cfg.Validate != nil {
		if err := s.cfg.Validate(ctx, filtered, st); err != nil {
			res.err = err
			return
		}
	}
	res.value = filtered
}

// render decorates the state and draws it.
func (s *Session[S, T]) render() error {
	st := s.state
	final := st.Status == StatusAnswered

	if st.Status == StatusLoading {
		frame := loadingSpinner.Frames[st.LoadingIncrement%len(loadingSpinner.Frames)]
		st.Prefix = s.theme.loading(strings.TrimSpace(frame))
	} else if s.cfg.Prefix != "" {
		st.Prefix = s.cfg.Prefix
	} else {
		st.Prefix = s.theme.prefix("?")
	}
	if s.messageResolved {
		st.Message = s.theme.bold(st.Message)
	} else {
		st.Message = "Loading..."
	}
	if s.cfg.Transformer != nil {
		st.Value = s.cfg.Transformer(st.Value, final)
	}

	content := s.cfg.Render(st)
	bottom := ""
	if s.cfg.RenderBottom != nil {
		bottom = s.cfg.RenderBottom(st)
	}
	if st.Error != "" && !final {
		bottom = s.theme.errorMark(">>") + " " + st.Error
	}

	if err := s.screen.render(content, bottom); err != nil {
		return fmt.Errorf("failed to render prompt: %w", err)
	}
	return nil
}
