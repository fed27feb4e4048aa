package chunk

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/codalotl/mergediff/internal/diff"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want []Chunk
	}{
		{
			name: "changed middle line",
			a:    "line1\nline2\nline3",
			b:    "line1\nlineX\nline3",
			want: []Chunk{{Changes: []diff.Span{{FromA: 0, ToA: 5, FromB: 0, ToB: 5}}, FromA: 6, ToA: 12, FromB: 6, ToB: 12, Precise: true}},
		},
		{
			name: "identical",
			a:    "same\n",
			b:    "same\n",
			want: nil,
		},
		{
			name: "inserted line",
			a:    "x\nz\n",
			b:    "x\ny\nz\n",
			want: []Chunk{{Changes: []diff.Span{{FromA: 0, ToA: 0, FromB: 0, ToB: 2}}, FromA: 2, ToA: 2, FromB: 2, ToB: 4, Precise: true}},
		},
		{
			name: "insert into empty document",
			a:    "",
			b:    "abc",
			want: []Chunk{{Changes: []diff.Span{{FromA: 0, ToA: 0, FromB: 0, ToB: 3}}, FromA: 0, ToA: 0, FromB: 0, ToB: 3, Precise: true}},
		},
		{
			name: "delete whole document",
			a:    "abc",
			b:    "",
			want: []Chunk{{Changes: []diff.Span{{FromA: 0, ToA: 3, FromB: 0, ToB: 0}}, FromA: 0, ToA: 3, FromB: 0, ToB: 0, Precise: true}},
		},
		{
			name: "last line without line break",
			a:    "a\nb",
			b:    "a\nc",
			want: []Chunk{{Changes: []diff.Span{{FromA: 0, ToA: 1, FromB: 0, ToB: 1}}, FromA: 2, ToA: 3, FromB: 2, ToB: 3, Precise: true}},
		},
		{
			name: "separate chunks",
			a:    "a\nb\nx\ny\nc\n",
			b:    "a\nB\nx\ny\nC\n",
			want: []Chunk{
				{Changes: []diff.Span{{FromA: 0, ToA: 1, FromB: 0, ToB: 1}}, FromA: 2, ToA: 4, FromB: 2, ToB: 4, Precise: true},
				{Changes: []diff.Span{{FromA: 0, ToA: 1, FromB: 0, ToB: 1}}, FromA: 8, ToA: 10, FromB: 8, ToB: 10, Precise: true},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b := NewText(tc.a), NewText(tc.b)
			got := Build(a, b, diff.Config{})
			if d := cmp.Diff(tc.want, got); d != "" {
				t.Errorf("Build mismatch (-want +got):\n%s", d)
			}
			require.NoError(t, Validate(got, a, b))
		})
	}
}

func TestBuild_AdjacentLinesShareChunk(t *testing.T) {
	a, b := NewText("a\nb\nc\n"), NewText("a\nB\nC\n")
	chunks := Build(a, b, diff.Config{})
	require.Len(t, chunks, 1)
	assert.Equal(t, 2, chunks[0].FromA)
	assert.Equal(t, 6, chunks[0].ToA)
}

func TestChunk_End(t *testing.T) {
	c := Chunk{FromA: 2, ToA: 2, FromB: 2, ToB: 4}
	assert.Equal(t, 2, c.EndA())
	assert.Equal(t, 3, c.EndB())

	// A chunk running to the end of a document without a trailing line break stays inside it.
	chunks := Build(NewText("a\nb"), NewText("a\nc"), diff.Config{})
	require.Len(t, chunks, 1)
	assert.Equal(t, 3, chunks[0].ToA)
	assert.Equal(t, 2, chunks[0].EndA())
}

func TestChunk_Offset(t *testing.T) {
	c := Chunk{Changes: []diff.Span{{FromA: 0, ToA: 1, FromB: 0, ToB: 2}}, FromA: 2, ToA: 4, FromB: 2, ToB: 5, Precise: true}
	got := c.Offset(10, -1)
	assert.Equal(t, Chunk{Changes: c.Changes, FromA: 12, ToA: 14, FromB: 1, ToB: 4, Precise: true}, got)
	assert.Equal(t, "A[12,14)->B[1,4) 1 changes", got.String())
}

func TestBuild_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 50; i++ {
		a := randomDoc(rng, 20)
		b := editDoc(rng, a, 3)
		first := Build(NewText(a), NewText(b), diff.Config{})
		second := Build(NewText(a), NewText(b), diff.Config{})
		if d := cmp.Diff(first, second); d != "" {
			t.Fatalf("Build not idempotent (-first +second):\n%s", d)
		}
	}
}

func TestBuild_Valid(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	for i := 0; i < 200; i++ {
		a := randomDoc(rng, 1+rng.IntN(30))
		b := editDoc(rng, a, 1+rng.IntN(5))
		ta, tb := NewText(a), NewText(b)
		chunks := Build(ta, tb, diff.Config{ScanLimit: diff.DefaultScanLimit})
		require.NoError(t, Validate(chunks, ta, tb), "a=%q b=%q chunks=%v", a, b, chunks)

		spans := Spans(chunks)
		require.NoError(t, diff.ValidateSpans(a, b, spans))
		require.Equal(t, b, diff.Apply(a, b, spans))
	}
}

// words are the building blocks of random documents.
var words = []string{"alpha", "beta", "gamma", "x", "y", "zz", "é", "世界", "", "  "}

// randomDoc returns a document of n lines of random words. It may or may not end with a line break.
func randomDoc(rng *rand.Rand, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		for j := rng.IntN(4); j > 0; j-- {
			b.WriteString(words[rng.IntN(len(words))])
			b.WriteByte(' ')
		}
		if i < n-1 || rng.IntN(2) == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// editDoc applies n random line-level edits to s: replacing, inserting, or deleting a line.
func editDoc(rng *rand.Rand, s string, n int) string {
	lines := strings.SplitAfter(s, "\n")
	for i := 0; i < n; i++ {
		at := rng.IntN(len(lines) + 1)
		line := fmt.Sprintf("%s %d\n", words[rng.IntN(len(words))], rng.IntN(100))
		switch {
		case rng.IntN(3) == 0 || at == len(lines):
			lines = append(lines[:at], append([]string{line}, lines[at:]...)...)
		case rng.IntN(2) == 0:
			lines = append(lines[:at], lines[at+1:]...)
		default:
			lines[at] = line
		}
	}
	return strings.Join(lines, "")
}
