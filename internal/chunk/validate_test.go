package chunk

import (
	"testing"

	"github.com/codalotl/mergediff/internal/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	a, b := NewText("a\nb\n"), NewText("a\nc\n")
	good := Chunk{Changes: []diff.Span{{FromA: 0, ToA: 1, FromB: 0, ToB: 1}}, FromA: 2, ToA: 4, FromB: 2, ToB: 4, Precise: true}
	require.Equal(t, []Chunk{good}, Build(a, b, diff.Config{}))

	with := func(f func(c *Chunk)) []Chunk {
		c := good
		f(&c)
		return []Chunk{c}
	}
	tests := []struct {
		name    string
		chunks  []Chunk
		wantErr string
	}{
		{name: "valid", chunks: []Chunk{good}},
		{name: "A out of bounds", chunks: with(func(c *Chunk) { c.ToA = 9 }), wantErr: "A range out of bounds"},
		{name: "B reversed", chunks: with(func(c *Chunk) { c.FromB = 4; c.ToB = 2 }), wantErr: "B range out of bounds"},
		{name: "not line-aligned", chunks: with(func(c *Chunk) { c.FromA = 3 }), wantErr: "A range is not line-aligned"},
		{name: "no changes", chunks: with(func(c *Chunk) { c.Changes = nil }), wantErr: "no changes"},
		{name: "change outside chunk", chunks: with(func(c *Chunk) { c.Changes = []diff.Span{{FromA: 0, ToA: 5, FromB: 0, ToB: 1}} }), wantErr: "outside the chunk"},
		{name: "overlapping", chunks: []Chunk{good, good}, wantErr: "overlaps or touches"},
		{name: "missing chunk", chunks: nil, wantErr: "chunk changes"},
		{name: "wrong changes", chunks: with(func(c *Chunk) { c.Changes = []diff.Span{{FromA: 0, ToA: 2, FromB: 0, ToB: 1}} }), wantErr: "chunk changes"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.chunks, a, b)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestValidateEdits(t *testing.T) {
	tests := []struct {
		name    string
		edits   []Edit
		oldLen  int
		newLen  int
		wantErr string
	}{
		{name: "none", oldLen: 5, newLen: 5},
		{name: "valid", edits: []Edit{{1, 2, 1, 4}, {5, 5, 7, 8}}, oldLen: 10, newLen: 13},
		{name: "adjacent", edits: []Edit{{1, 2, 1, 1}, {2, 3, 1, 3}}, oldLen: 10, newLen: 10},
		{name: "reversed", edits: []Edit{{3, 2, 3, 3}}, oldLen: 10, newLen: 11, wantErr: "reversed range"},
		{name: "overlapping", edits: []Edit{{1, 5, 1, 5}, {3, 4, 3, 4}}, oldLen: 10, newLen: 10, wantErr: "overlaps"},
		{name: "out of bounds", edits: []Edit{{8, 12, 8, 12}}, oldLen: 10, newLen: 10, wantErr: "out of bounds"},
		{name: "inconsistent FromNew", edits: []Edit{{1, 2, 1, 4}, {5, 5, 5, 6}}, oldLen: 10, newLen: 13, wantErr: "FromNew should be 7"},
		{name: "length mismatch", edits: []Edit{{1, 2, 1, 4}}, oldLen: 10, newLen: 10, wantErr: "change the length by 2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEdits(tc.edits, tc.oldLen, tc.newLen)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
