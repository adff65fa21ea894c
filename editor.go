package inquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/google/shlex"
)

// EditorLauncher edits text in an external program.
type EditorLauncher interface {
	Edit(ctx context.Context, text string) (string, error)
}

// ExternalEditor launches the user's preferred editor on a temporary file.
//
// The command is Command when set, else $VISUAL, else $EDITOR, else vi
// (notepad on Windows). It is split like a POSIX shell would, so
// "code --wait" works.
type ExternalEditor struct {
	Command string
	// Postfix is the temporary file extension, ".txt" by default.
	Postfix string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

func (e ExternalEditor) command() string {
	if e.Command != "" {
		return e.Command
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// Edit writes text to a temporary file, waits for the editor to exit and
// returns the file contents.
func (e ExternalEditor) Edit(ctx context.Context, text string) (string, error) {
	argv, err := shlex.Split(e.command())
	if err != nil {
		return "", fmt.Errorf("splitting editor command: %w", err)
	}
	if len(argv) == 0 {
		return "", errors.New("editor command produced empty argv")
	}

	postfix := e.Postfix
	if postfix == "" {
		postfix = ".txt"
	}
	f, err := os.CreateTemp("", "inquire-*"+postfix)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if e.Stdin != nil {
		cmd.Stdin = e.Stdin
	}
	if e.Stdout != nil {
		cmd.Stdout = e.Stdout
	}
	if e.Stderr != nil {
		cmd.Stderr = e.Stderr
	}
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s failed: %w", argv[0], err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read temporary file: %w", err)
	}
	return string(data), nil
}

// EditorConfig configures a question answered in an external editor.
type EditorConfig struct {
	Common
	// Default seeds the temporary file.
	Default string
	// Launcher runs the editor. Nil means ExternalEditor{}.
	Launcher EditorLauncher
	Filter   func(ctx context.Context, value string) (string, error)
	Validate func(ctx context.Context, value string) error
}

type editorState struct {
	text string
}

// Editor asks for a longer text: Enter opens the user's editor and the
// saved contents become the answer.
func Editor(ctx context.Context, t Terminal, cfg EditorConfig) (string, error) {
	return run(ctx, t, func(t Terminal) (Config[editorState, string], error) {
		return editorConfig(cfg, t), nil
	})
}

func editorConfig(c EditorConfig, t Terminal) Config[editorState, string] {
	theme := resolveTheme(c.Theme)
	launcher := c.Launcher
	if launcher == nil {
		launcher = ExternalEditor{}
	}

	cfg := Config[editorState, string]{
		ClearLine: true,
		Initial:   editorState{text: c.Default},
		MapStateToValue: func(st State[editorState]) string {
			return st.Ext.text
		},
		// The editor runs in the filter stage, while the session does not
		// read keys, with the terminal back in cooked mode.
		Filter: func(ctx context.Context, text string) (string, error) {
			if err := t.Restore(); err != nil {
				return "", fmt.Errorf("failed to restore terminal state: %w", err)
			}
			edited, err := launcher.Edit(ctx, text)
			if rerr := t.SetRaw(); rerr != nil && err == nil {
				err = fmt.Errorf("failed to enter raw mode: %w", rerr)
			}
			if err != nil {
				return "", err
			}
			if c.Filter != nil {
				return c.Filter(ctx, edited)
			}
			return edited, nil
		},
		Validate: wrapValidate[editorState](c.Validate),
		Render: func(st State[editorState]) string {
			line := question(st)
			if st.Status == StatusAnswered {
				return line + theme.dim("Received")
			}
			return line + theme.dim("Press <enter> to launch your preferred editor.")
		},
	}
	applyCommon(c.Common, &cfg)
	return cfg
}
