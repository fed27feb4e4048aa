package chunk

import (
	"sort"
	"strings"
)

// Doc is a read-only document. Positions are byte offsets.
type Doc interface {
	// Len returns the document length in bytes.
	Len() int

	// Slice returns the text in [from, to).
	Slice(from, to int) string

	// LineAt returns the line containing pos. pos == Len() is in the last line.
	LineAt(pos int) Line

	// Line returns line n (1-based).
	Line(n int) Line

	// Lines returns the number of lines. An empty document has one (empty) line, and so does the text after a trailing line break.
	Lines() int
}

// Line is one line of a Doc. [From, To) is the line's text, excluding its '\n'.
type Line struct {
	Number int // 1-based
	From   int
	To     int
}

// Text is a Doc backed by a string.
type Text struct {
	s      string
	starts []int // start offset of every line
}

var _ Doc = (*Text)(nil)

// NewText returns a Text for s.
func NewText(s string) *Text {
	starts := make([]int, 1, strings.Count(s, "\n")+1)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Text{s: s, starts: starts}
}

func (t *Text) Len() int { return len(t.s) }

func (t *Text) Slice(from, to int) string { return t.s[from:to] }

func (t *Text) String() string { return t.s }

func (t *Text) Lines() int { return len(t.starts) }

func (t *Text) LineAt(pos int) Line {
	// The first line starting after pos, minus one.
	i := sort.Search(len(t.starts), func(i int) bool { return t.starts[i] > pos }) - 1
	return t.Line(max(i, 0) + 1)
}

func (t *Text) Line(n int) Line {
	from := t.starts[n-1]
	to := len(t.s)
	if n < len(t.starts) {
		to = t.starts[n] - 1
	}
	return Line{Number: n, From: from, To: to}
}

// docString returns the whole text of d.
func docString(d Doc) string {
	if t, ok := d.(*Text); ok {
		return t.s
	}
	return d.Slice(0, d.Len())
}
