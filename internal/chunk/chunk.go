package chunk

import (
	"fmt"

	"github.com/codalotl/mergediff/internal/diff"
)

// debug enables precondition and invariant checks in this package. Failures panic.
const debug bool = false

// Chunk is a run of changed lines. [FromA, ToA) and [FromB, ToB) are the lines it covers in each document. A side with no lines touched has From == To.
//
// To is the start of the line after the chunk, or the document length when the chunk runs to the end of a document without a trailing line break.
type Chunk struct {
	// Changes are the character-level changes inside the chunk, relative to FromA and FromB.
	Changes []diff.Span

	FromA int
	ToA   int
	FromB int
	ToB   int

	// Precise is false if the diff this chunk came from hit its scan limit or timeout, so Changes may not be minimal.
	Precise bool
}

// EndA returns the last position in A covered by the chunk: ToA-1 (the line break closing its last line), or FromA for a chunk with no lines in A. Unlike ToA,
// EndA is always inside the chunk's last line.
func (c Chunk) EndA() int { return max(c.FromA, c.ToA-1) }

// EndB is EndA for document B.
func (c Chunk) EndB() int { return max(c.FromB, c.ToB-1) }

// Offset returns c translated by dA in A and dB in B. Changes are relative, so they are shared with c.
func (c Chunk) Offset(dA, dB int) Chunk {
	c.FromA += dA
	c.ToA += dA
	c.FromB += dB
	c.ToB += dB
	return c
}

// String returns c in "A[0,6)->B[0,12) 2 changes" form.
func (c Chunk) String() string {
	return fmt.Sprintf("A[%d,%d)->B[%d,%d) %d changes", c.FromA, c.ToA, c.FromB, c.ToB, len(c.Changes))
}

// Build diffs a and b and returns their chunks. See UpdateA and UpdateB for incremental updates.
func Build(a, b Doc, cfg diff.Config) []Chunk {
	spans, precise := diff.PresentableDiff(docString(a), docString(b), cfg)
	chunks := toChunks(spans, a, b, precise)
	if debug {
		if err := Validate(chunks, a, b); err != nil {
			panic("Build: " + err.Error())
		}
	}
	return chunks
}

// Spans returns the changes of chunks as document-level spans, a diff from a to b.
func Spans(chunks []Chunk) []diff.Span {
	var out []diff.Span
	for _, c := range chunks {
		for _, s := range c.Changes {
			out = append(out, s.Offset(c.FromA, c.FromB))
		}
	}
	return out
}

// toChunks groups spans into chunks.
func toChunks(spans []diff.Span, a, b Doc, precise bool) []Chunk {
	var chunks []Chunk
	for i := 0; i < len(spans); i++ {
		s := spans[i]
		fromA, fromB := fromLine(s.FromA, s.FromB, a, b)
		toA, toB := toLine(s.ToA, s.ToB, a, b)
		changes := []diff.Span{s.Offset(-fromA, -fromB)}

		// Absorb following spans whose lines touch this chunk's lines on either side.
		for i+1 < len(spans) {
			next := spans[i+1]
			nextA, nextB := fromLine(next.FromA, next.FromB, a, b)
			if nextA > toA+1 && nextB > toB+1 {
				break
			}
			changes = append(changes, next.Offset(-fromA, -fromB))
			toA, toB = toLine(next.ToA, next.ToB, a, b)
			i++
		}

		chunks = append(chunks, Chunk{
			Changes: changes,
			FromA:   fromA,
			ToA:     min(toA, a.Len()),
			FromB:   fromB,
			ToB:     min(toB, b.Len()),
			Precise: precise,
		})
	}
	return chunks
}

// fromLine returns the starts of the lines containing posA and posB.
func fromLine(posA, posB int, a, b Doc) (int, int) {
	return a.LineAt(posA).From, b.LineAt(posB).From
}

// toLine returns the end of a chunk whose last change ends at posA/posB: posA/posB themselves if both are line starts, otherwise the starts of the lines after
// them. The result can be one past the document end; callers clamp.
func toLine(posA, posB int, a, b Doc) (int, int) {
	lineA, lineB := a.LineAt(posA), b.LineAt(posB)
	if lineA.From == posA && lineB.From == posB {
		return posA, posB
	}
	return lineA.To + 1, lineB.To + 1
}
