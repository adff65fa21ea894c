package inquire

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTerminal returns a mock terminal fed with input, closed when the
// test ends.
func newTestTerminal(t *testing.T, input string) *mockTerminal {
	t.Helper()
	m := newMockTerminal(input)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// textConfig is the smallest prompt: the answer is the typed line.
func textConfig() Config[struct{}, string] {
	return Config[struct{}, string]{
		Message: "Name",
		Theme:   ThemePlain,
		MapStateToValue: func(st State[struct{}]) string {
			return st.Value
		},
		Render: func(st State[struct{}]) string {
			return question(st) + st.Value
		},
	}
}

func runText(t *testing.T, input string, cfg Config[struct{}, string]) (string, *mockTerminal, error) {
	t.Helper()
	term := newTestTerminal(t, input)
	s, err := NewSession(term, cfg)
	require.NoError(t, err)
	v, err := s.Run(testContext(t))
	return v, term, err
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		term  Terminal
		cfg   Config[struct{}, string]
		field string
	}{
		{
			name:  "nil terminal",
			term:  nil,
			cfg:   textConfig(),
			field: "terminal",
		},
		{
			name: "missing render",
			term: newMockTerminal(""),
			cfg: Config[struct{}, string]{
				MapStateToValue: func(State[struct{}]) string { return "" },
			},
			field: "Render",
		},
		{
			name: "missing value mapping",
			term: newMockTerminal(""),
			cfg: Config[struct{}, string]{
				Render: func(State[struct{}]) string { return "" },
			},
			field: "MapStateToValue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := NewSession(tt.term, tt.cfg)
			assert.Nil(t, s)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), "invalid prompt configuration")
		})
	}
}

func TestSessionRun(t *testing.T) {
	t.Parallel()

	t.Run("returns the typed line", func(t *testing.T) {
		t.Parallel()

		v, term, err := runText(t, "hello\r", textConfig())
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
		assert.False(t, term.IsRaw(), "terminal should be restored")
		assert.Equal(t, 1, term.rawCalls)
		assert.Contains(t, term.Written(), "? Name hello")
	})

	t.Run("line feed submits too", func(t *testing.T) {
		t.Parallel()

		v, _, err := runText(t, "hi\n", textConfig())
		require.NoError(t, err)
		assert.Equal(t, "hi", v)
	})

	t.Run("line editing keys", func(t *testing.T) {
		t.Parallel()

		// "helo", left, insert "l", end, backspace, "o"
		v, _, err := runText(t, "helo\x1b[Dl\x1b[F\x7fo\r", textConfig())
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
	})

	t.Run("ctrl+c interrupts", func(t *testing.T) {
		t.Parallel()

		_, term, err := runText(t, "ab\x03", textConfig())
		require.ErrorIs(t, err, ErrInterrupted)
		assert.False(t, term.IsRaw())
	})

	t.Run("ctrl+d on empty line", func(t *testing.T) {
		t.Parallel()

		_, _, err := runText(t, "\x04", textConfig())
		require.ErrorIs(t, err, ErrEOF)
	})

	t.Run("ctrl+d with text is ignored", func(t *testing.T) {
		t.Parallel()

		v, _, err := runText(t, "a\x04\r", textConfig())
		require.NoError(t, err)
		assert.Equal(t, "a", v)
	})

	t.Run("end of input", func(t *testing.T) {
		t.Parallel()

		_, _, err := runText(t, "abc", textConfig())
		require.ErrorIs(t, err, ErrEOF)
	})

	t.Run("cannot run twice", func(t *testing.T) {
		t.Parallel()

		term := newTestTerminal(t, "x\r")
		s, err := NewSession(term, textConfig())
		require.NoError(t, err)

		_, err = s.Run(testContext(t))
		require.NoError(t, err)
		_, err = s.Run(testContext(t))
		require.ErrorIs(t, err, ErrSessionStarted)
	})
}

func TestSessionContextCancel(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	term := NewStreamTerminal(pr, io.Discard)
	t.Cleanup(func() {
		_ = pw.Close()
		_ = term.Close()
	})

	s, err := NewSession(term, textConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = s.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSessionValidation(t *testing.T) {
	t.Parallel()

	t.Run("rejected value can be corrected", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		cfg := textConfig()
		cfg.Validate = func(_ context.Context, v string, _ State[struct{}]) error {
			calls.Add(1)
			if v == "bad" {
				return errors.New("nope")
			}
			return nil
		}

		// "bad", Enter, Ctrl+U, "good", Enter
		v, term, err := runText(t, "bad\r\x15good\r", cfg)
		require.NoError(t, err)
		assert.Equal(t, "good", v)
		assert.Equal(t, int32(2), calls.Load())
		assert.Contains(t, term.Written(), ">> nope")
	})

	t.Run("generic message", func(t *testing.T) {
		t.Parallel()

		cfg := textConfig()
		cfg.Validate = func(_ context.Context, v string, _ State[struct{}]) error {
			if v == "" {
				return ErrInvalid
			}
			return nil
		}

		v, term, err := runText(t, "\rok\r", cfg)
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.Contains(t, term.Written(), ">> "+defaultValidationMessage)
	})

	t.Run("panic is reported as an error", func(t *testing.T) {
		t.Parallel()

		cfg := textConfig()
		cfg.Validate = func(_ context.Context, v string, _ State[struct{}]) error {
			if v == "panic" {
				panic("boom")
			}
			return nil
		}

		v, term, err := runText(t, "panic\r\x15ok\r", cfg)
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.Contains(t, term.Written(), "boom")
	})

	t.Run("filter runs before validation", func(t *testing.T) {
		t.Parallel()

		var checked, validated atomic.Value
		cfg := textConfig()
		cfg.Filter = func(_ context.Context, v string) (string, error) {
			return strings.ToUpper(v), nil
		}
		cfg.Check = func(v string, _ State[struct{}]) error {
			checked.Store(v)
			return nil
		}
		cfg.Validate = func(_ context.Context, v string, _ State[struct{}]) error {
			validated.Store(v)
			return nil
		}

		v, _, err := runText(t, "abc\r", cfg)
		require.NoError(t, err)
		assert.Equal(t, "ABC", v)
		assert.Equal(t, "abc", checked.Load(), "check sees the unfiltered value")
		assert.Equal(t, "ABC", validated.Load(), "validate sees the filtered value")
	})

	t.Run("filter error", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		cfg := textConfig()
		cfg.Filter = func(_ context.Context, v string) (string, error) {
			if calls.Add(1) == 1 {
				return "", errors.New("try again")
			}
			return v, nil
		}

		v, term, err := runText(t, "x\r\r", cfg)
		require.NoError(t, err)
		assert.Equal(t, "x", v)
		assert.Contains(t, term.Written(), ">> try again")
	})
}

func TestSessionOnLine(t *testing.T) {
	t.Parallel()

	var lines atomic.Int32
	cfg := textConfig()
	cfg.OnLine = func(st State[struct{}]) (State[struct{}], bool) {
		// The first Enter only clears the line.
		if lines.Add(1) == 1 {
			st.Value = ""
			return st, false
		}
		return st, true
	}

	v, _, err := runText(t, "first\rsecond\r", cfg)
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestSessionOnKeypressRewritesLine(t *testing.T) {
	t.Parallel()

	cfg := textConfig()
	cfg.OnKeypress = func(st State[struct{}], k Key) State[struct{}] {
		if k.Name == "tab" {
			st.Value = "completed"
		}
		return st
	}

	v, _, err := runText(t, "c\t!\r", cfg)
	require.NoError(t, err)
	assert.Equal(t, "completed!", v)
}

func TestSessionMessageFunc(t *testing.T) {
	t.Parallel()

	t.Run("loader is shown while resolving", func(t *testing.T) {
		t.Parallel()

		cfg := textConfig()
		cfg.loaderDelay = time.Millisecond
		cfg.MessageFunc = func(ctx context.Context) (string, error) {
			select {
			case <-time.After(100 * time.Millisecond):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			return "Resolved?", nil
		}

		v, term, err := runText(t, "yes\r", cfg)
		require.NoError(t, err)
		assert.Equal(t, "yes", v)

		out := term.Written()
		assert.Contains(t, out, "Loading...")
		assert.Contains(t, out, strings.TrimSpace(spinner.Dot.Frames[0]))
		assert.Contains(t, out, "Resolved? yes")
	})

	t.Run("fast resolvers skip the loader", func(t *testing.T) {
		t.Parallel()

		cfg := textConfig()
		cfg.loaderDelay = time.Hour
		cfg.MessageFunc = func(context.Context) (string, error) {
			return "Quick?", nil
		}

		v, term, err := runText(t, "y\r", cfg)
		require.NoError(t, err)
		assert.Equal(t, "y", v)
		assert.NotContains(t, term.Written(), strings.TrimSpace(spinner.Dot.Frames[0]))
	})

	t.Run("failure ends the session", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("offline")
		cfg := textConfig()
		cfg.MessageFunc = func(context.Context) (string, error) {
			return "", cause
		}

		_, _, err := runText(t, "y\r", cfg)
		require.ErrorIs(t, err, ErrResolve)
		require.ErrorIs(t, err, cause)
	})
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "expanded", StatusExpanded.String())
	assert.Equal(t, "answered", StatusAnswered.String())
	assert.Equal(t, "Status(42)", Status(42).String())
}

func TestValidationMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, defaultValidationMessage, validationMessage(ErrInvalid))
	assert.Equal(t, defaultValidationMessage, validationMessage(errors.New("")))
	assert.Equal(t, "Too short", validationMessage(errors.New("Too short")))
}
