package termformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyle_Apply(t *testing.T) {
	assert.Equal(t, "plain", Style{}.Apply("plain"))
	assert.Equal(t, "", Style{Foreground: ColorRed}.Apply(""))
	assert.Equal(t, "\x1b[31mx\x1b[0m", Style{Foreground: ColorRed}.Apply("x"))
	assert.Equal(t, "\x1b[1;7;32mx\x1b[0m", Style{Foreground: ColorGreen, Bold: true, Reverse: true}.Apply("x"))
	assert.Equal(t, "\x1b[2m", Style{Faint: true}.Open())
	assert.Equal(t, "\x1b[36m", Style{Foreground: ColorCyan}.Open())
}
