package termformat

import (
	"strings"
	"unicode/utf8"

	"github.com/codalotl/mergediff/internal/q/uni"
)

const hexDigits = "0123456789ABCDEF"

// SanitizeLine makes one line of document text safe to print in a terminal cell:
//   - If tabWidth > 0, \t advances to the next multiple of tabWidth columns. Otherwise, \t is escaped like other control characters.
//   - ASCII control characters (<= 0x1F and 0x7F), including \r and \n, are replaced with "\\xXX" (ex: []byte{'\', 'x', '1', 'B'} for ESC).
//   - Invalid UTF-8 is replaced by U+FFFD.
func SanitizeLine(s string, tabWidth int) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	col := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			b.WriteRune('\uFFFD')
			col++
			continue
		}

		switch {
		case r == '\t' && tabWidth > 0:
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case r <= 0x7F && (r < 0x20 || r == 0x7F):
			code := byte(r)
			b.WriteByte('\\')
			b.WriteByte('x')
			b.WriteByte(hexDigits[code>>4])
			b.WriteByte(hexDigits[code&0x0F])
			col += 4
		default:
			b.WriteRune(r)
			col += uni.TextWidth(string(r), nil)
		}
	}

	return b.String()
}
