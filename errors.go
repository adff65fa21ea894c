package inquire

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrEOF is returned when the user presses Ctrl+D on an empty line or
	// the terminal input ends
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when the user presses Ctrl+C
	ErrInterrupted = errors.New("interrupted")
	// ErrSessionStarted is returned when Run is called twice on a session
	ErrSessionStarted = errors.New("session already started")
	// ErrInvalid can be returned by a validator to reject a value with the
	// generic "You must provide a valid value" message
	ErrInvalid = errors.New("invalid value")
	// ErrResolve wraps failures of asynchronous message, default or choices
	// resolvers
	ErrResolve = errors.New("failed to resolve question")
)

// defaultValidationMessage is shown when a validator gives no message.
const defaultValidationMessage = "You must provide a valid value"

// ConfigError reports an invalid prompt configuration. It is returned before
// anything is drawn on the terminal.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid prompt configuration: %s %s", e.Field, e.Msg)
}

// validationMessage turns a rejected value into the text shown under the prompt.
func validationMessage(err error) string {
	msg := err.Error()
	if msg == "" || msg == ErrInvalid.Error() {
		return defaultValidationMessage
	}
	return msg
}
