package inquire

import (
	"strconv"
	"strings"
	"unicode"
)

// Key is a decoded keystroke.
//
// Names follow the usual terminal convention: "up", "down", "left", "right",
// "home", "end", "delete", "backspace", "tab", "escape", "space", "return",
// "enter", "pageup", "pagedown", "insert", the lower-cased letter for letter
// keys and the character itself for everything else. Control letters carry
// Ctrl and the letter as name, so Ctrl+C is {Name: "c", Ctrl: true}.
type Key struct {
	Name     string
	Rune     rune // printable rune, 0 for special keys
	Ctrl     bool
	Meta     bool
	Shift    bool
	Sequence string // raw input that produced the key
}

// String returns the key chord, e.g. "ctrl+p", "alt+b", "shift+tab" or "x".
// KeyMap bindings use the same notation.
func (k Key) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Meta {
		b.WriteString("alt+")
	}
	if k.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(k.Name)
	return b.String()
}

// IsEnter reports whether the key submits the current line.
func (k Key) IsEnter() bool {
	return !k.Meta && (k.Name == "return" || k.Name == "enter")
}

// printable reports whether the key inserts text into the line.
func (k Key) printable() bool {
	return k.Rune != 0 && !k.Ctrl && !k.Meta && unicode.IsPrint(k.Rune)
}

// Number returns the 1-9 digit carried by the key.
func (k Key) Number() (int, bool) {
	if k.Ctrl || k.Meta || len(k.Name) != 1 {
		return 0, false
	}
	c := k.Name[0]
	if c < '1' || c > '9' {
		return 0, false
	}
	return int(c - '0'), true
}

// escapeSequences maps the bytes following ESC to key names.
var escapeSequences = map[string]string{
	"[A": "up", "[B": "down", "[C": "right", "[D": "left",
	"OA": "up", "OB": "down", "OC": "right", "OD": "left",
	"[H": "home", "OH": "home", "[1~": "home", "[7~": "home",
	"[F": "end", "OF": "end", "[4~": "end", "[8~": "end",
	"[2~": "insert", "[3~": "delete",
	"[5~": "pageup", "[6~": "pagedown",
	"[Z": "tab",
	"OP": "f1", "OQ": "f2", "OR": "f3", "OS": "f4",
}

// decodeKey turns the rune r, plus whatever escape sequence follows it, into
// a Key. next reads the following rune from the terminal.
func decodeKey(r rune, next func() (rune, error)) (Key, error) {
	if r != '\x1b' {
		return decodeRune(r), nil
	}

	r2, err := next()
	if err != nil {
		return Key{}, err
	}
	switch r2 {
	case '[', 'O':
		seq, err := readEscapeSequence(r2, next)
		if err != nil {
			return Key{}, err
		}
		return decodeSequence(seq), nil
	case '\x1b':
		return Key{Name: "escape", Meta: true, Sequence: "\x1b\x1b"}, nil
	}

	// ESC followed by a plain key is the Meta (Alt) variant of that key.
	k := decodeRune(r2)
	k.Meta = true
	k.Sequence = "\x1b" + k.Sequence
	return k, nil
}

// readEscapeSequence reads the rest of a CSI ("[") or SS3 ("O") sequence.
// CSI sequences end at the first byte in the 0x40-0x7e range, SS3 sequences
// are always a single byte long.
func readEscapeSequence(intro rune, next func() (rune, error)) (string, error) {
	seq := make([]rune, 1, 10)
	seq[0] = intro
	for range 10 { // Limit to prevent infinite loop
		r, err := next()
		if err != nil {
			return "", err
		}
		seq = append(seq, r)
		if intro == 'O' {
			break
		}
		if r >= 0x40 && r <= 0x7e {
			break
		}
	}
	return string(seq), nil
}

func decodeSequence(seq string) Key {
	k := Key{Sequence: "\x1b" + seq}
	if name, ok := escapeSequences[seq]; ok {
		k.Name = name
		k.Shift = seq == "[Z"
		return k
	}

	// Modified keys: ESC [ 1 ; <mod> <final> or ESC [ <n> ; <mod> ~
	if params, ok := strings.CutPrefix(seq, "["); ok && strings.Contains(params, ";") {
		final := params[len(params)-1:]
		fields := strings.Split(params[:len(params)-1], ";")
		base := "[" + final
		if final == "~" {
			base = "[" + fields[0] + "~"
		}
		if mod, err := strconv.Atoi(fields[len(fields)-1]); err == nil && mod > 1 {
			if name, ok := escapeSequences[base]; ok {
				k.Name = name
				k.Shift = (mod-1)&1 != 0
				k.Meta = (mod-1)&2 != 0
				k.Ctrl = (mod-1)&4 != 0
				return k
			}
		}
	}

	k.Name = "undefined"
	return k
}

func decodeRune(r rune) Key {
	k := Key{Sequence: string(r)}
	switch {
	case r == '\r':
		k.Name = "return"
	case r == '\n':
		k.Name = "enter"
	case r == '\t':
		k.Name = "tab"
	case r == '\x7f' || r == '\b':
		k.Name = "backspace"
	case r == '\x1b':
		k.Name = "escape"
	case r == ' ':
		k.Name = "space"
		k.Rune = r
	case r == 0:
		k.Name = "space"
		k.Ctrl = true
	case r < 0x20:
		k.Name = string(rune('a' + r - 1))
		k.Ctrl = true
	case r >= 'A' && r <= 'Z':
		k.Name = string(unicode.ToLower(r))
		k.Rune = r
		k.Shift = true
	default:
		k.Name = string(r)
		k.Rune = r
	}
	return k
}

// Action is the list navigation meaning of a keystroke.
type Action int

// Actions recognized by the list prompts.
const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionSpace
	ActionNumber
	ActionSelectAll
	ActionInvert
)

// KeyMap holds the key binding configuration of the list prompts.
type KeyMap struct {
	bindings map[string]Action
}

// NewDefaultKeyMap creates the default list bindings.
//
// Default key bindings:
//   - Up, k, Ctrl+P: move up
//   - Down, j, Ctrl+N: move down
//   - Space: toggle
//   - 1-9: jump to (or toggle) the nth choice
//   - a: select all, i: invert selection
//
// Example:
//
//	keyMap := inquire.NewDefaultKeyMap()
//	// Use w/s as an additional pair of arrows
//	keyMap.Bind("w", inquire.ActionUp)
//	keyMap.Bind("s", inquire.ActionDown)
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{bindings: make(map[string]Action)}

	km.bindings["up"] = ActionUp
	km.bindings["k"] = ActionUp      // vim
	km.bindings["ctrl+p"] = ActionUp // emacs
	km.bindings["down"] = ActionDown
	km.bindings["j"] = ActionDown
	km.bindings["ctrl+n"] = ActionDown
	km.bindings["space"] = ActionSpace
	km.bindings["a"] = ActionSelectAll
	km.bindings["i"] = ActionInvert
	for d := '1'; d <= '9'; d++ {
		km.bindings[string(d)] = ActionNumber
	}

	return km
}

// Bind adds or updates the binding for a key chord in Key.String notation.
func (km *KeyMap) Bind(chord string, action Action) {
	km.bindings[strings.ToLower(chord)] = action
}

// Classify returns the action bound to k, or ActionNone.
func (km *KeyMap) Classify(k Key) Action {
	if km == nil || km.bindings == nil {
		return ActionNone
	}
	if action, exists := km.bindings[k.String()]; exists {
		return action
	}
	return ActionNone
}

var defaultKeyMap = NewDefaultKeyMap()

// IsUpKey reports whether k moves a list selection up.
func IsUpKey(k Key) bool { return defaultKeyMap.Classify(k) == ActionUp }

// IsDownKey reports whether k moves a list selection down.
func IsDownKey(k Key) bool { return defaultKeyMap.Classify(k) == ActionDown }

// IsSpaceKey reports whether k is the space bar.
func IsSpaceKey(k Key) bool { return defaultKeyMap.Classify(k) == ActionSpace }

// IsNumberKey reports whether k is one of the digits 1 to 9.
func IsNumberKey(k Key) bool { return defaultKeyMap.Classify(k) == ActionNumber }
