// Package inquire provides interactive command line questionnaires for Go.
//
// A questionnaire is a list of questions asked one after another on the
// terminal. Each question is answered through a prompt: free text, hidden
// text, numbers, yes/no, lists, checkboxes, single letter shortcuts or an
// external editor. Answers are collected by question name and later
// questions can depend on earlier answers.
//
// Key Features:
//
//   - Nine built-in prompt types, extendable through a Registry
//   - In-place redraws that survive line wrapping and wide characters
//   - Asynchronous messages, defaults and validation with a loading spinner
//   - Paginated, infinitely scrolling choice lists
//   - Themes rendered for the color profile of the terminal
//   - Questionnaires loadable from YAML
//   - Context support for timeouts and cancellation
//
// Quick Start:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/nao1215/inquire"
//	)
//
//	func main() {
//		answers, err := inquire.New().Prompt(context.Background(),
//			inquire.Question{Type: "input", Name: "name", Message: "What's your name?"},
//			inquire.Question{Type: "list", Name: "size", Message: "Size?",
//				Choices: []any{"Large", "Medium", "Small"}},
//		)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(answers["name"], answers["size"])
//	}
//
// Single prompts:
//
// Every prompt type can also be used on its own. A nil Terminal opens the
// controlling terminal for the duration of the call:
//
//	ok, err := inquire.Confirm(ctx, nil, inquire.ConfirmConfig{
//		Common: inquire.Common{Message: "Continue?"},
//	})
//
// Custom prompts:
//
// Prompts are built on Session, a small state machine that owns the
// terminal, the line editor and the renderer. A prompt describes its state,
// how keys change it, how the state maps to an answer and how it is drawn:
//
//	s, err := inquire.NewSession(t, inquire.Config[struct{}, string]{
//		Message: "Echo?",
//		MapStateToValue: func(st inquire.State[struct{}]) string {
//			return st.Value
//		},
//		Render: func(st inquire.State[struct{}]) string {
//			return st.Prefix + " " + st.Message + " " + st.Value
//		},
//	})
//
// Register it under a type name to use it in questionnaires:
//
//	registry := inquire.NewRegistry()
//	registry.Register("echo", func(ctx context.Context, t inquire.Terminal,
//		q inquire.Question, answers inquire.Answers) (any, error) {
//		...
//	})
//	in := inquire.New(inquire.WithRegistry(registry))
//
// Key Bindings:
//
//   - Enter: Submit the answer
//   - Ctrl+C: Cancel and return ErrInterrupted
//   - Ctrl+D: ErrEOF when the line is empty
//   - Left/Right, Ctrl+B/Ctrl+F: Move the cursor
//   - Ctrl+A / Home, Ctrl+E / End: Move to the beginning/end of line
//   - Ctrl+K, Ctrl+U, Ctrl+W: Delete to end of line, the line, a word
//   - Up/Down, k/j, Ctrl+P/Ctrl+N: Move in lists (see KeyMap)
//   - Space, a, i, 1-9: Toggle, toggle all, invert, toggle the nth checkbox
//
// Error Handling:
//
//	answers, err := in.Prompt(ctx, questions...)
//	switch {
//	case errors.Is(err, inquire.ErrInterrupted):
//		// User pressed Ctrl+C
//	case errors.Is(err, inquire.ErrEOF):
//		// User pressed Ctrl+D or the input ended
//	case errors.Is(err, context.DeadlineExceeded):
//		// Timed out
//	}
//
// Validation errors never end a prompt: the message is shown under the
// question and the user can correct the answer.
package inquire
