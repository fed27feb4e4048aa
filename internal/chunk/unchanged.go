package chunk

// Range is a run of unchanged lines, present in both documents. [FromA, ToA) and [FromB, ToB) run from the start of the first line to the end of the last line,
// excluding its line break.
type Range struct {
	FromA int
	ToA   int
	FromB int
	ToB   int
	Lines int
}

// Unchanged returns the runs of unchanged lines that a viewer can collapse: the lines between chunks, minus margin lines of context next to each chunk, when at
// least minLines remain.
func Unchanged(chunks []Chunk, a, b Doc, margin, minLines int) []Range {
	margin = max(margin, 0)
	minLines = max(minLines, 1)

	var out []Range
	prevA, prevB := 1, 1 // first line after the previous chunk
	for i := 0; ; i++ {
		var c *Chunk
		if i < len(chunks) {
			c = &chunks[i]
		}

		fromA, fromB := prevA, prevB
		if i > 0 {
			fromA += margin
			fromB += margin
		}
		toA, toB := realLines(a), realLines(b)
		if c != nil {
			toA = a.LineAt(c.FromA).Number - 1 - margin
			toB = b.LineAt(c.FromB).Number - 1 - margin
		}

		if n := toA - fromA + 1; n >= minLines && toB-fromB+1 == n {
			out = append(out, Range{
				FromA: a.Line(fromA).From,
				ToA:   a.Line(toA).To,
				FromB: b.Line(fromB).From,
				ToB:   b.Line(toB).To,
				Lines: n,
			})
		}

		if c == nil {
			return out
		}
		prevA, prevB = lineAfter(a, c.ToA), lineAfter(b, c.ToB)
	}
}

// lineAfter returns the number of the first line starting at or after pos. It can be one past the last line.
func lineAfter(d Doc, pos int) int {
	line := d.LineAt(pos)
	if line.From == pos {
		return line.Number
	}
	return line.Number + 1
}
