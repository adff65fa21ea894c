package inquire

import (
	"bytes"
	"io"
	"sync"
)

// mockTerminal implements Terminal for testing and development.
//
// This implementation provides predictable, deterministic behavior for unit tests
// and development scenarios. It simulates terminal behavior without requiring
// actual terminal interaction, allowing for automated testing of prompts.
//
// Features:
//   - Deterministic input: Pre-configured input sequence for reproducible tests
//   - Configurable size: Fixed terminal dimensions for consistent layout testing
//   - Mode tracking: Tracks raw mode state for verification in tests
//   - Captured output: Everything the renderer draws is kept for assertions
type mockTerminal struct {
	mu           sync.Mutex
	input        []rune       // Pre-configured input sequence for testing
	inputPos     int          // Current position in the input sequence
	rawMode      bool         // Track raw mode state for test verification
	rawCalls     int          // Number of SetRaw calls
	terminalSize [2]int       // Fixed terminal dimensions [width, height]
	output       bytes.Buffer // Everything written by the renderer
}

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{
		input:        []rune(input),
		terminalSize: [2]int{80, 24},
	}
}

func (m *mockTerminal) SetRaw() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawMode = true
	m.rawCalls++
	return nil
}

func (m *mockTerminal) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawMode = false
	return nil
}

func (m *mockTerminal) Size() (width, height int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.terminalSize[0], m.terminalSize[1], nil
}

func (m *mockTerminal) ReadRune() (rune, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inputPos >= len(m.input) {
		return 0, 0, io.EOF
	}
	r := m.input[m.inputPos]
	m.inputPos++
	return r, 1, nil
}

func (m *mockTerminal) Output() io.Writer {
	return mockWriter{m}
}

func (m *mockTerminal) Close() error {
	releaseInput(m)
	return nil
}

// Written returns everything drawn so far.
func (m *mockTerminal) Written() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.output.String()
}

// IsRaw reports whether the terminal is in raw mode.
func (m *mockTerminal) IsRaw() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rawMode
}

type mockWriter struct {
	m *mockTerminal
}

func (w mockWriter) Write(p []byte) (int, error) {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	return w.m.output.Write(p)
}
