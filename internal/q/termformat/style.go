package termformat

import (
	"strconv"
	"strings"
)

// ANSIReset resets all SGR attributes.
const ANSIReset = "\x1b[0m"

// Color is one of the eight basic ANSI foreground colors. The zero value is the terminal's default color.
type Color int

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
)

// sgr returns the SGR parameter for c, or 0 for ColorDefault.
func (c Color) sgr() int {
	switch c {
	case ColorRed:
		return 31
	case ColorGreen:
		return 32
	case ColorYellow:
		return 33
	case ColorBlue:
		return 34
	case ColorMagenta:
		return 35
	case ColorCyan:
		return 36
	}
	return 0
}

// Style is a set of SGR attributes. The zero Style prints text unchanged.
type Style struct {
	Foreground Color
	Bold       bool
	Faint      bool
	Reverse    bool
}

// Open returns the escape sequence that turns s on, or "" for the zero Style.
func (s Style) Open() string {
	var params []string
	if s.Bold {
		params = append(params, "1")
	}
	if s.Faint {
		params = append(params, "2")
	}
	if s.Reverse {
		params = append(params, "7")
	}
	if code := s.Foreground.sgr(); code != 0 {
		params = append(params, strconv.Itoa(code))
	}
	if len(params) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(params, ";") + "m"
}

// Apply returns str wrapped in s. str must not contain newlines. Empty str and the zero Style return str as-is.
func (s Style) Apply(str string) string {
	open := s.Open()
	if open == "" || str == "" {
		return str
	}
	return open + str + ANSIReset
}
