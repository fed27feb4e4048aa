package chunk

import (
	"github.com/codalotl/mergediff/internal/diff"
)

// DefaultMargin is how far, in bytes, UpdateA and UpdateB extend the re-diffed window beyond each edit.
const DefaultMargin = 1000

// Edit describes one changed range of a document: [FromOld, ToOld) in the document before the edit became [FromNew, ToNew) after it. A list of edits is sorted
// and disjoint, and each FromNew is FromOld shifted by the length change of the edits before it.
type Edit struct {
	FromOld int
	ToOld   int
	FromNew int
	ToNew   int
}

// delta returns how much e changed the document length.
func (e Edit) delta() int { return (e.ToNew - e.FromNew) - (e.ToOld - e.FromOld) }

// UpdateA returns the chunks for a and b, given chunks (the chunks before a was edited) and edits (what changed in a). The result is always the same as
// Build(a, b, cfg). When every old chunk lies within the margin of an edit, only the stretch of the documents from the first edit window to the last is
// diffed; otherwise the chunks are rebuilt.
//
// If the edits don't describe the change from the old a to the new one, the result is unspecified.
func UpdateA(chunks []Chunk, a, b Doc, edits []Edit, cfg diff.Config) []Chunk {
	return UpdateAWithMargin(chunks, a, b, edits, cfg, DefaultMargin)
}

// UpdateB is UpdateA for edits to b.
func UpdateB(chunks []Chunk, a, b Doc, edits []Edit, cfg diff.Config) []Chunk {
	return UpdateBWithMargin(chunks, a, b, edits, cfg, DefaultMargin)
}

// UpdateAWithMargin is UpdateA with an explicit margin. A negative margin rebuilds all chunks.
func UpdateAWithMargin(chunks []Chunk, a, b Doc, edits []Edit, cfg diff.Config, margin int) []Chunk {
	return update(chunks, a, b, edits, cfg, margin, true)
}

// UpdateBWithMargin is UpdateB with an explicit margin. A negative margin rebuilds all chunks.
func UpdateBWithMargin(chunks []Chunk, a, b Doc, edits []Edit, cfg diff.Config, margin int) []Chunk {
	return update(chunks, a, b, edits, cfg, margin, false)
}

// sides is a chunk seen from the edited document ("self") and the other one.
type sides struct {
	fromSelf, toSelf, fromOther, toOther int
}

func sidesOf(c Chunk, editedA bool) sides {
	if editedA {
		return sides{c.FromA, c.ToA, c.FromB, c.ToB}
	}
	return sides{c.FromB, c.ToB, c.FromA, c.ToA}
}

// window is a range to re-diff. Positions are in the edited document before the edits (self) and in the other document, which did not change.
type window struct {
	fromSelf, toSelf   int
	fromOther, toOther int

	// Old chunks [firstChunk, endChunk) lie inside the window.
	firstChunk, endChunk int
}

func update(chunks []Chunk, a, b Doc, edits []Edit, cfg diff.Config, margin int, editedA bool) []Chunk {
	if len(edits) == 0 {
		return chunks
	}
	if margin < 0 {
		return Build(a, b, cfg)
	}

	self, other := a, b
	if !editedA {
		self, other = b, a
	}
	oldLen := self.Len()
	for _, e := range edits {
		oldLen -= e.delta()
	}
	if debug {
		if err := ValidateEdits(edits, oldLen, self.Len()); err != nil {
			panic("update: " + err.Error())
		}
	}

	old := make([]sides, len(chunks))
	for i, c := range chunks {
		old[i] = sidesOf(c, editedA)
	}
	windows := findWindows(old, other, edits, oldLen, margin)

	// A chunk left outside every window means the documents also differ elsewhere. A diff confined to the windows could then align text differently from
	// a diff of the whole documents.
	inside := 0
	for _, w := range windows {
		inside += w.endChunk - w.firstChunk
	}
	if inside < len(chunks) {
		return Build(a, b, cfg)
	}

	// Otherwise the documents agree before the first window and after the last one, and the text in between is diffed in place.
	first, last := windows[0], windows[len(windows)-1]
	fromSelf, toSelf := first.fromSelf, last.toSelf+self.Len()-oldLen
	var spans []diff.Span
	var precise bool
	if editedA {
		spans, precise = diff.PresentableDiffRange(docString(a), docString(b), fromSelf, toSelf, first.fromOther, last.toOther, cfg)
	} else {
		spans, precise = diff.PresentableDiffRange(docString(a), docString(b), first.fromOther, last.toOther, fromSelf, toSelf, cfg)
	}
	out := toChunks(spans, a, b, precise)

	if debug {
		if err := Validate(out, a, b); err != nil {
			panic("update: " + err.Error())
		}
	}
	return out
}

// findWindows returns the sorted, disjoint windows covering edits. old are the chunks before the edits; oldLen is the edited document's length before the edits.
func findWindows(old []sides, other Doc, edits []Edit, oldLen, margin int) []window {
	windows := make([]window, 0, len(edits))
	for _, e := range edits {
		w := window{fromSelf: max(e.FromOld-margin, 0), toSelf: min(e.ToOld+margin, oldLen)}
		settle(&w, old, other)
		windows = append(windows, w)
	}

	for {
		merged := false
		out := windows[:1]
		for _, w := range windows[1:] {
			last := &out[len(out)-1]
			if w.fromSelf <= last.toSelf+1 {
				last.toSelf = max(last.toSelf, w.toSelf)
				settle(last, old, other)
				merged = true
				continue
			}
			out = append(out, w)
		}
		windows = out
		if !merged {
			return windows
		}
	}
}

// settle grows w until it stops changing: it absorbs every old chunk within one byte of it, maps its bounds into the other document, and moves both bounds
// outward to line starts.
func settle(w *window, old []sides, other Doc) {
	for {
		fromSelf, toSelf := w.fromSelf, w.toSelf

		// Chunks are sorted and disjoint, so their ends are nondecreasing.
		w.firstChunk = 0
		for w.firstChunk < len(old) && old[w.firstChunk].toSelf < w.fromSelf-1 {
			w.firstChunk++
		}
		w.endChunk = w.firstChunk
		for w.endChunk < len(old) && old[w.endChunk].fromSelf <= w.toSelf+1 {
			w.endChunk++
		}
		if w.endChunk > w.firstChunk {
			w.fromSelf = min(w.fromSelf, old[w.firstChunk].fromSelf)
			w.toSelf = max(w.toSelf, old[w.endChunk-1].toSelf)
		}

		// Between chunks the documents are identical, so a position there maps across by the offset left by the chunk before it.
		before := sides{}
		if w.firstChunk > 0 {
			before = old[w.firstChunk-1]
		}
		last := before
		if w.endChunk > w.firstChunk {
			last = old[w.endChunk-1]
		}
		w.fromOther = w.fromSelf + before.toOther - before.toSelf
		w.toOther = w.toSelf + last.toOther - last.toSelf

		// Snap to line starts without leaving the gap between chunks.
		if start := max(other.LineAt(w.fromOther).From, before.toOther); start < w.fromOther {
			w.fromSelf -= w.fromOther - start
			w.fromOther = start
		}
		if line := other.LineAt(w.toOther); line.From != w.toOther {
			gapEnd := other.Len()
			if w.endChunk < len(old) {
				gapEnd = old[w.endChunk].fromOther
			}
			if end := min(line.To+1, gapEnd); end > w.toOther {
				w.toSelf += end - w.toOther
				w.toOther = end
			}
		}

		if w.fromSelf == fromSelf && w.toSelf == toSelf {
			return
		}
	}
}
