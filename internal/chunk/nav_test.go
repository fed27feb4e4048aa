package chunk

import (
	"testing"

	"github.com/codalotl/mergediff/internal/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPrev(t *testing.T) {
	chunks := Build(NewText("a\nb\nx\ny\nc\n"), NewText("a\nB\nx\ny\nC\n"), diff.Config{})
	require.Len(t, chunks, 2)
	first, second := chunks[0], chunks[1]

	tests := []struct {
		name string
		fn   func([]Chunk, int, Side) (Chunk, bool)
		pos  int
		want Chunk
	}{
		{"next from start", Next, 0, first},
		{"next from first chunk", Next, 2, second},
		{"next wraps", Next, 9, first},
		{"prev inside second", Prev, 9, second},
		{"prev from second start", Prev, 8, first},
		{"prev wraps", Prev, 2, second},
		{"prev wraps from start", Prev, 0, second},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.fn(chunks, tc.pos, SideA)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextPrev_SideB(t *testing.T) {
	c1 := Chunk{FromA: 2, ToA: 4, FromB: 6, ToB: 8}
	c2 := Chunk{FromA: 10, ToA: 12, FromB: 12, ToB: 14}
	chunks := []Chunk{c1, c2}

	got, _ := Next(chunks, 4, SideA)
	assert.Equal(t, c2, got)
	got, _ = Next(chunks, 4, SideB)
	assert.Equal(t, c1, got)
	got, _ = Prev(chunks, 11, SideA)
	assert.Equal(t, c2, got)
	got, _ = Prev(chunks, 11, SideB)
	assert.Equal(t, c1, got)
}

func TestNextPrev_Empty(t *testing.T) {
	_, ok := Next(nil, 0, SideA)
	assert.False(t, ok)
	_, ok = Prev(nil, 0, SideB)
	assert.False(t, ok)
}

func TestSide_String(t *testing.T) {
	assert.Equal(t, "a", SideA.String())
	assert.Equal(t, "b", SideB.String())
}
