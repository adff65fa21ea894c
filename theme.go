package inquire

import (
	"fmt"

	"github.com/muesli/termenv"
)

// Theme defines the colors used by the prompts.
//
// Colors are downsampled to whatever the terminal supports through the
// termenv color profile. A nil *Theme in a prompt configuration selects
// ThemeDefault.
type Theme struct {
	Name      string `json:"name"`
	Prefix    Color  `json:"prefix"`    // "?" in front of every question
	Loading   Color  `json:"loading"`   // spinner frames while resolving
	Highlight Color  `json:"highlight"` // active choice, pointer, answers
	Error     Color  `json:"error"`     // ">>" marker of validation errors
	Checked   Color  `json:"checked"`   // filled checkbox
	Help      Color  `json:"help"`      // key names in help tips

	profile termenv.Profile
}

// Color represents an RGB color with optional formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
}

// Hex returns the color in #rrggbb notation.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ThemeDefault is the default theme: green prefix, cyan highlight, red errors.
var ThemeDefault = &Theme{
	Name:      "default",
	Prefix:    Color{R: 0, G: 205, B: 0},
	Loading:   Color{R: 205, G: 205, B: 0},
	Highlight: Color{R: 0, G: 205, B: 205},
	Error:     Color{R: 205, G: 0, B: 0},
	Checked:   Color{R: 0, G: 205, B: 0},
	Help:      Color{R: 0, G: 205, B: 205, Bold: true},
	profile:   termenv.EnvColorProfile(),
}

// ThemePlain renders every prompt without escape sequences. Useful for
// logs, CI output and golden tests.
var ThemePlain = &Theme{
	Name:    "plain",
	profile: termenv.Ascii,
}

// ThemeDracula is the Dracula color scheme
var ThemeDracula = &Theme{
	Name:      "Dracula",
	Prefix:    Color{R: 80, G: 250, B: 123, Bold: true},
	Loading:   Color{R: 241, G: 250, B: 140},
	Highlight: Color{R: 139, G: 233, B: 253},
	Error:     Color{R: 255, G: 85, B: 85},
	Checked:   Color{R: 80, G: 250, B: 123},
	Help:      Color{R: 255, G: 121, B: 198, Bold: true},
	profile:   termenv.EnvColorProfile(),
}

// ThemeAccessible is a colorblind-safe theme with high contrast
var ThemeAccessible = &Theme{
	Name:      "Accessible",
	Prefix:    Color{R: 0, G: 114, B: 178, Bold: true},
	Loading:   Color{R: 240, G: 228, B: 66},
	Highlight: Color{R: 230, G: 159, B: 0, Bold: true},
	Error:     Color{R: 213, G: 94, B: 0, Bold: true},
	Checked:   Color{R: 0, G: 158, B: 115},
	Help:      Color{R: 86, G: 180, B: 233, Bold: true},
	profile:   termenv.EnvColorProfile(),
}

// WithProfile returns a copy of the theme that renders for the given color
// profile instead of the one detected from the environment.
func (t *Theme) WithProfile(p termenv.Profile) *Theme {
	if t == nil {
		return nil
	}
	cp := *t
	cp.profile = p
	return &cp
}

func (t *Theme) paint(c Color, s string) string {
	if t == nil {
		return s
	}
	style := t.profile.String(s).Foreground(t.profile.Color(c.Hex()))
	if c.Bold {
		style = style.Bold()
	}
	return style.String()
}

func (t *Theme) prefix(s string) string {
	if t == nil {
		return s
	}
	return t.paint(t.Prefix, s)
}

func (t *Theme) loading(s string) string {
	if t == nil {
		return s
	}
	return t.paint(t.Loading, s)
}

func (t *Theme) highlight(s string) string {
	if t == nil {
		return s
	}
	return t.paint(t.Highlight, s)
}

func (t *Theme) errorMark(s string) string {
	if t == nil {
		return s
	}
	return t.paint(t.Error, s)
}

func (t *Theme) checked(s string) string {
	if t == nil {
		return s
	}
	return t.paint(t.Checked, s)
}

func (t *Theme) help(s string) string {
	if t == nil {
		return s
	}
	return t.paint(t.Help, s)
}

func (t *Theme) bold(s string) string {
	if t == nil {
		return s
	}
	return t.profile.String(s).Bold().String()
}

func (t *Theme) dim(s string) string {
	if t == nil {
		return s
	}
	return t.profile.String(s).Faint().String()
}

func resolveTheme(t *Theme) *Theme {
	if t == nil {
		return ThemeDefault
	}
	return t
}
