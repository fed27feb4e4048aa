package chunk

import (
	"fmt"

	"github.com/codalotl/mergediff/internal/diff"
)

// Validate checks that chunks is a well-formed chunk list for a and b, returning the first problem found. It checks that chunks are in bounds, line-aligned,
// sorted, and disjoint; that each chunk's changes fit inside it; and that the changes reproduce b from a.
func Validate(chunks []Chunk, a, b Doc) error {
	var spans []diff.Span
	prevA, prevB := -1, -1
	for i, c := range chunks {
		if c.FromA < 0 || c.FromA > c.ToA || c.ToA > a.Len() {
			return fmt.Errorf("chunk[%d] %v: A range out of bounds (len %d)", i, c, a.Len())
		}
		if c.FromB < 0 || c.FromB > c.ToB || c.ToB > b.Len() {
			return fmt.Errorf("chunk[%d] %v: B range out of bounds (len %d)", i, c, b.Len())
		}
		if !lineBoundary(a, c.FromA, false) || !lineBoundary(a, c.ToA, true) {
			return fmt.Errorf("chunk[%d] %v: A range is not line-aligned", i, c)
		}
		if !lineBoundary(b, c.FromB, false) || !lineBoundary(b, c.ToB, true) {
			return fmt.Errorf("chunk[%d] %v: B range is not line-aligned", i, c)
		}
		if c.FromA <= prevA || c.FromB <= prevB {
			return fmt.Errorf("chunk[%d] %v: overlaps or touches the previous chunk", i, c)
		}
		if len(c.Changes) == 0 {
			return fmt.Errorf("chunk[%d] %v: no changes", i, c)
		}
		for j, s := range c.Changes {
			if s.FromA < 0 || s.ToA > c.ToA-c.FromA || s.FromB < 0 || s.ToB > c.ToB-c.FromB {
				return fmt.Errorf("chunk[%d] %v: change[%d] %v outside the chunk", i, c, j, s)
			}
			spans = append(spans, s.Offset(c.FromA, c.FromB))
		}
		prevA, prevB = c.ToA, c.ToB
	}
	if err := diff.ValidateSpans(docString(a), docString(b), spans); err != nil {
		return fmt.Errorf("chunk changes: %w", err)
	}
	return nil
}

// lineBoundary reports whether pos is a line start in d. If end is true, the document end also counts.
func lineBoundary(d Doc, pos int, end bool) bool {
	return d.LineAt(pos).From == pos || end && pos == d.Len()
}

// ValidateEdits checks that edits is a sorted list of disjoint edits that turns a document of oldLen bytes into one of newLen bytes.
func ValidateEdits(edits []Edit, oldLen, newLen int) error {
	prevOld, delta := 0, 0
	for i, e := range edits {
		if e.FromOld > e.ToOld || e.FromNew > e.ToNew {
			return fmt.Errorf("edit[%d] %+v: reversed range", i, e)
		}
		if e.FromOld < prevOld {
			return fmt.Errorf("edit[%d] %+v: overlaps or precedes the previous edit", i, e)
		}
		if e.ToOld > oldLen {
			return fmt.Errorf("edit[%d] %+v: out of bounds (old len %d)", i, e, oldLen)
		}
		if e.FromNew != e.FromOld+delta {
			return fmt.Errorf("edit[%d] %+v: FromNew should be %d", i, e, e.FromOld+delta)
		}
		prevOld = e.ToOld
		delta += e.delta()
	}
	if oldLen+delta != newLen {
		return fmt.Errorf("edits change the length by %d, but %d -> %d", delta, oldLen, newLen)
	}
	return nil
}
