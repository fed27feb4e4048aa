package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/codalotl/mergediff/internal/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linesDoc returns total lines "l01\n", "l02\n", ..., with line n replaced by repl when n > 0.
func linesDoc(total, n int, repl string) string {
	var b strings.Builder
	for i := 1; i <= total; i++ {
		if i == n {
			b.WriteString(repl + "\n")
			continue
		}
		fmt.Fprintf(&b, "l%02d\n", i)
	}
	return b.String()
}

func twentyLines(n int, repl string) string {
	return linesDoc(20, n, repl)
}

func TestUnchanged(t *testing.T) {
	a, b := NewText(twentyLines(0, "")), NewText(twentyLines(10, "XYZ"))
	chunks := Build(a, b, diff.Config{})
	require.Len(t, chunks, 1)
	require.Equal(t, 36, chunks[0].FromA)

	got := Unchanged(chunks, a, b, 3, 4)
	want := []Range{
		{FromA: 0, ToA: 23, FromB: 0, ToB: 23, Lines: 6},   // lines 1-6
		{FromA: 52, ToA: 79, FromB: 52, ToB: 79, Lines: 7}, // lines 14-20
	}
	assert.Equal(t, want, got)

	assert.Empty(t, Unchanged(chunks, a, b, 3, 8))
	assert.Equal(t, want[1:], Unchanged(chunks, a, b, 3, 7))
}

func TestUnchanged_NoChunks(t *testing.T) {
	a := NewText(twentyLines(0, ""))
	got := Unchanged(nil, a, a, 3, 5)
	assert.Equal(t, []Range{{FromA: 0, ToA: 79, FromB: 0, ToB: 79, Lines: 20}}, got)
}

func TestUnchanged_ZeroMargin(t *testing.T) {
	a, b := NewText(twentyLines(0, "")), NewText(twentyLines(20, "end"))
	chunks := Build(a, b, diff.Config{})
	require.Len(t, chunks, 1)

	got := Unchanged(chunks, a, b, 0, 1)
	assert.Equal(t, []Range{{FromA: 0, ToA: 75, FromB: 0, ToB: 75, Lines: 19}}, got)
}

func TestUnchanged_DifferentLineNumbers(t *testing.T) {
	// b has two extra lines at the top, so the unchanged tail is at different positions in each document.
	a := NewText(twentyLines(0, ""))
	b := NewText("new1\nnew2\n" + twentyLines(0, ""))
	chunks := Build(a, b, diff.Config{})
	require.Len(t, chunks, 1)

	got := Unchanged(chunks, a, b, 2, 5)
	require.Len(t, got, 1)
	assert.Equal(t, Range{FromA: 8, ToA: 79, FromB: 18, ToB: 89, Lines: 18}, got[0])
}
