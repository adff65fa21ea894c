package inquire

import (
	"fmt"
	"reflect"
	"strings"
)

// Entry is an element of a Choices collection: a *Choice or a *Separator.
type Entry interface {
	isEntry()
}

// Choice is one selectable entry of a list prompt.
//
// Either Name or Value may be omitted, the missing one is derived from the
// other when the collection is built. Short defaults to Name.
type Choice struct {
	Name    string `yaml:"name"`
	Value   any    `yaml:"value"`
	Short   string `yaml:"short"`
	Checked bool   `yaml:"checked"`
	// Disabled is a bool, a string giving the reason, or a func(Answers) any
	// evaluated once against the answers collected so far.
	Disabled any    `yaml:"disabled"`
	Key      string `yaml:"key"` // expand shortcut
}

func (*Choice) isEntry() {}

// IsDisabled reports whether the choice cannot be selected.
func (c *Choice) IsDisabled() bool {
	switch d := c.Disabled.(type) {
	case nil:
		return false
	case bool:
		return d
	case string:
		return d != ""
	}
	return true
}

// DisabledReason returns the text shown next to a disabled choice.
func (c *Choice) DisabledReason() string {
	if s, ok := c.Disabled.(string); ok && s != "" {
		return s
	}
	return "Disabled"
}

// separatorLine is the default separator: a horizontal rule.
var separatorLine = strings.Repeat("─", 14)

// Separator is a non-selectable line between choices.
type Separator struct {
	Line string
}

func (*Separator) isEntry() {}

// NewSeparator creates a separator showing line, or a horizontal rule.
func NewSeparator(line ...string) *Separator {
	if len(line) > 0 && line[0] != "" {
		return &Separator{Line: line[0]}
	}
	return &Separator{Line: separatorLine}
}

// Choices is the normalized choice list of a prompt.
//
// Indexing through Get addresses every entry, separators included.
// GetChoice and the shortcuts address only the real choices, which leave
// out separators and disabled choices.
//
// Example:
//
//	choices := inquire.NewChoices([]any{
//		"Pepperoni",
//		inquire.NewSeparator(),
//		inquire.Choice{Name: "Mushroom", Value: "mush"},
//		inquire.Choice{Name: "Olives", Disabled: "out of stock"},
//	}, nil)
//
//	choices.Len()     // 4
//	choices.RealLen() // 2: Pepperoni and Mushroom
type Choices struct {
	entries []Entry
	real    []*Choice
}

// NewChoices normalizes raw into a choice list.
//
// Accepted entries: strings, numbers, booleans and fmt.Stringer values
// become a choice named after their text; Choice, *Choice and maps with
// name/value/short/checked/disabled/key fields become choices; Separator,
// *Separator and maps with type "separator" become separators.
// Function-valued Disabled fields are evaluated against answers.
func NewChoices(raw []any, answers Answers) *Choices {
	c := &Choices{}
	c.push(raw, answers)
	return c
}

// Push appends normalized entries.
func (c *Choices) Push(items ...any) {
	c.push(items, nil)
}

func (c *Choices) push(items []any, answers Answers) {
	for _, item := range items {
		c.entries = append(c.entries, normalizeEntry(item, answers))
	}
	c.updateReal()
}

func (c *Choices) updateReal() {
	c.real = c.real[:0]
	for _, e := range c.entries {
		if ch, ok := e.(*Choice); ok && !ch.IsDisabled() {
			c.real = append(c.real, ch)
		}
	}
}

func normalizeEntry(item any, answers Answers) Entry {
	switch v := item.(type) {
	case *Separator:
		return v
	case Separator:
		return &v
	case *Choice:
		return normalizeChoice(*v, answers)
	case Choice:
		return normalizeChoice(v, answers)
	case map[string]any:
		return normalizeMap(v, answers)
	case string:
		return &Choice{Name: v, Value: v, Short: v}
	case fmt.Stringer:
		s := v.String()
		return &Choice{Name: s, Value: v, Short: s}
	}
	s := fmt.Sprint(item)
	return &Choice{Name: s, Value: item, Short: s}
}

func normalizeMap(m map[string]any, answers Answers) Entry {
	if t, _ := m["type"].(string); t == "separator" {
		line, _ := m["line"].(string)
		return NewSeparator(line)
	}

	var ch Choice
	if name, ok := m["name"]; ok {
		ch.Name = fmt.Sprint(name)
	}
	ch.Value = m["value"]
	if short, ok := m["short"]; ok {
		ch.Short = fmt.Sprint(short)
	}
	ch.Checked, _ = m["checked"].(bool)
	ch.Disabled = m["disabled"]
	if key, ok := m["key"]; ok {
		ch.Key = fmt.Sprint(key)
	}
	return normalizeChoice(ch, answers)
}

func normalizeChoice(ch Choice, answers Answers) *Choice {
	if ch.Name == "" && ch.Value != nil {
		ch.Name = fmt.Sprint(ch.Value)
	}
	if ch.Value == nil {
		ch.Value = ch.Name
	}
	if ch.Short == "" {
		ch.Short = ch.Name
	}

	switch d := ch.Disabled.(type) {
	case func(Answers) any:
		ch.Disabled = d(answers)
	case func(Answers) bool:
		ch.Disabled = d(answers)
	case func(Answers) string:
		ch.Disabled = d(answers)
	}
	return &ch
}

// Len returns the number of entries, separators included.
func (c *Choices) Len() int {
	return len(c.entries)
}

// RealLen returns the number of selectable choices.
func (c *Choices) RealLen() int {
	return len(c.real)
}

// Get returns the entry at index i of the full list.
func (c *Choices) Get(i int) (Entry, bool) {
	if i < 0 || i >= len(c.entries) {
		return nil, false
	}
	return c.entries[i], true
}

// GetChoice returns the real choice at index i.
func (c *Choices) GetChoice(i int) (*Choice, bool) {
	if i < 0 || i >= len(c.real) {
		return nil, false
	}
	return c.real[i], true
}

// Entries returns every entry, separators included.
func (c *Choices) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// RealChoices returns the selectable choices.
func (c *Choices) RealChoices() []*Choice {
	return append([]*Choice(nil), c.real...)
}

// Where returns the choices, disabled ones included, matching pred.
func (c *Choices) Where(pred func(*Choice) bool) []*Choice {
	var out []*Choice
	for _, e := range c.entries {
		if ch, ok := e.(*Choice); ok && pred(ch) {
			out = append(out, ch)
		}
	}
	return out
}

// Find returns the first choice matching pred.
func (c *Choices) Find(pred func(*Choice) bool) (*Choice, bool) {
	for _, e := range c.entries {
		if ch, ok := e.(*Choice); ok && pred(ch) {
			return ch, true
		}
	}
	return nil, false
}

// Pluck returns the given field ("name", "value", "short", "checked" or
// "key") of every choice, separators excluded.
func (c *Choices) Pluck(field string) []any {
	var out []any
	for _, e := range c.entries {
		ch, ok := e.(*Choice)
		if !ok {
			continue
		}
		switch field {
		case "name":
			out = append(out, ch.Name)
		case "value":
			out = append(out, ch.Value)
		case "short":
			out = append(out, ch.Short)
		case "checked":
			out = append(out, ch.Checked)
		case "key":
			out = append(out, ch.Key)
		}
	}
	return out
}

// IndexOf returns the position of ch in the full list, or -1.
func (c *Choices) IndexOf(ch *Choice) int {
	for i, e := range c.entries {
		if e == Entry(ch) {
			return i
		}
	}
	return -1
}

// RealIndexOf returns the position of ch among the real choices, or -1.
func (c *Choices) RealIndexOf(ch *Choice) int {
	for i, rc := range c.real {
		if rc == ch {
			return i
		}
	}
	return -1
}

// IndexOfValue returns the real index of the first choice whose value
// equals v, or -1.
func (c *Choices) IndexOfValue(v any) int {
	for i, ch := range c.real {
		if reflect.DeepEqual(ch.Value, v) {
			return i
		}
	}
	return -1
}

// NumberShortcut converts the 1-based number typed by the user into a real
// choice index. Numbers outside the real choices are ignored.
func (c *Choices) NumberShortcut(n int) (int, bool) {
	if n < 1 || n > len(c.real) {
		return 0, false
	}
	return n - 1, true
}
