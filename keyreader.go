package inquire

import (
	"errors"
	"io"
	"sync"
	"unicode/utf8"
)

// keyReader owns the only goroutine reading from a terminal.
//
// Prompts run one after another on the same terminal, and a blocked
// ReadRune cannot be interrupted portably, so the reader outlives the
// session that started it. It reads a rune only after a session asked for
// a key with request, which leaves the terminal alone while a submission is
// pending, for instance when an external editor owns it. Once the terminal
// fails (io.EOF included) keys is closed and err holds the cause.
type keyReader struct {
	keys chan Key
	want chan struct{}
	once sync.Once
	err  error

	mu     sync.Mutex
	closed bool
}

var keyReaders sync.Map // Terminal -> *keyReader

// inputFor returns the key reader of t, starting it on first use.
// Terminal implementations must be comparable, which pointer receivers are.
func inputFor(t Terminal) *keyReader {
	v, _ := keyReaders.LoadOrStore(t, &keyReader{
		keys: make(chan Key),
		want: make(chan struct{}, 1),
	})
	kr := v.(*keyReader)
	kr.once.Do(func() { go kr.run(t) })
	return kr
}

// releaseInput stops and forgets the reader of a closed terminal.
func releaseInput(t Terminal) {
	v, ok := keyReaders.LoadAndDelete(t)
	if !ok {
		return
	}
	kr := v.(*keyReader)
	kr.mu.Lock()
	defer kr.mu.Unlock()
	if !kr.closed {
		kr.closed = true
		close(kr.want)
	}
}

func (kr *keyReader) run(t Terminal) {
	defer close(kr.keys)

	next := func() (rune, error) {
		r, _, err := t.ReadRune()
		return r, err
	}
	for range kr.want {
		r, err := next()
		if err != nil {
			kr.err = err
			return
		}
		k, err := decodeKey(r, next)
		if err != nil {
			kr.err = err
			return
		}
		kr.keys <- k
	}
}

// request asks the reader for one more key. Requests do not accumulate.
func (kr *keyReader) request() {
	kr.mu.Lock()
	defer kr.mu.Unlock()
	if kr.closed {
		return
	}
	select {
	case kr.want <- struct{}{}:
	default:
	}
}

// failure returns the error that stopped the reader. It must only be called
// after keys has been observed closed.
func (kr *keyReader) failure() error {
	if kr.err == nil {
		return io.EOF
	}
	return kr.err
}

// byteRuneReader decodes UTF-8 from a plain io.Reader one byte at a time so
// that no input is buffered past the current rune.
type byteRuneReader struct {
	r   io.Reader
	buf [utf8.UTFMax]byte
}

func (b *byteRuneReader) ReadRune() (rune, int, error) {
	n := 0
	for {
		if _, err := io.ReadFull(b.r, b.buf[n:n+1]); err != nil {
			if n > 0 && errors.Is(err, io.EOF) {
				return utf8.RuneError, n, nil
			}
			return 0, 0, err
		}
		n++
		if utf8.FullRune(b.buf[:n]) || n == utf8.UTFMax {
			r, size := utf8.DecodeRune(b.buf[:n])
			return r, size, nil
		}
	}
}
