package chunk

import (
	"fmt"
	"strings"

	"github.com/codalotl/mergediff/internal/q/termformat"
	"github.com/codalotl/mergediff/internal/q/uni"
)

var (
	styleHunk           = termformat.Style{Foreground: termformat.ColorCyan}
	styleDeleted        = termformat.Style{Foreground: termformat.ColorRed}
	styleInserted       = termformat.Style{Foreground: termformat.ColorGreen}
	styleDeletedChange  = termformat.Style{Foreground: termformat.ColorRed, Reverse: true}
	styleInsertedChange = termformat.Style{Foreground: termformat.ColorGreen, Reverse: true}
)

const noNewline = "\\ No newline at end of file\n"

// RenderUnified prints chunks as unified diff hunks ("@@ -l,n +l,n @@" headers) with context lines of unchanged text around each chunk. Chunks whose context
// would touch share a hunk. File headers ("---"/"+++") are left to the caller.
//
// If color is true, the output has ANSI colors, and the changed text inside each removed or added line is highlighted.
func RenderUnified(a, b Doc, chunks []Chunk, context int, color bool) string {
	context = max(context, 0)
	r := unifiedRenderer{a: a, b: b, color: color}
	for i := 0; i < len(chunks); {
		j := i + 1
		for j < len(chunks) && a.LineAt(chunks[j].FromA).Number-lineAfter(a, chunks[j-1].ToA) <= 2*context {
			j++
		}
		r.hunk(chunks[i:j], context)
		i = j
	}
	return r.out.String()
}

type unifiedRenderer struct {
	a, b  Doc
	color bool
	out   strings.Builder
}

func (r *unifiedRenderer) hunk(group []Chunk, context int) {
	first, last := group[0], group[len(group)-1]
	firstA, firstB := r.a.LineAt(first.FromA).Number, r.b.LineAt(first.FromB).Number
	afterA, afterB := lineAfter(r.a, last.ToA), lineAfter(r.b, last.ToB)

	startA := max(1, firstA-context)
	startB := startA + firstB - firstA
	endA := min(realLines(r.a)+1, afterA+context)
	endB := endA + afterB - afterA

	header := fmt.Sprintf("@@ -%s +%s @@", hunkRange(startA, endA-startA), hunkRange(startB, endB-startB))
	r.style(styleHunk, header)
	r.out.WriteByte('\n')

	lineA := startA
	for _, c := range group {
		fromA, nA := lineSpan(r.a, c.FromA, c.ToA)
		fromB, nB := lineSpan(r.b, c.FromB, c.ToB)
		for ; lineA < fromA; lineA++ {
			r.line(' ', r.a, lineA, termformat.Style{}, termformat.Style{}, nil)
		}
		deleted, inserted := changedRanges(c)
		for n := fromA; n < fromA+nA; n++ {
			r.line('-', r.a, n, styleDeleted, styleDeletedChange, deleted)
		}
		for n := fromB; n < fromB+nB; n++ {
			r.line('+', r.b, n, styleInserted, styleInsertedChange, inserted)
		}
		lineA = fromA + nA
	}
	for ; lineA < endA; lineA++ {
		r.line(' ', r.a, lineA, termformat.Style{}, termformat.Style{}, nil)
	}
}

// line prints line n of d. Parts of the line inside changed are printed with hi, the rest with base.
func (r *unifiedRenderer) line(prefix byte, d Doc, n int, base, hi termformat.Style, changed [][2]int) {
	line := d.Line(n)
	if !r.color {
		r.out.WriteByte(prefix)
		r.out.WriteString(d.Slice(line.From, line.To))
	} else {
		r.style(base, string(prefix))
		pos := line.From
		for _, rg := range changed {
			from, to := max(rg[0], line.From), min(rg[1], line.To)
			if from >= to {
				continue
			}
			r.style(base, d.Slice(pos, from))
			r.style(hi, d.Slice(from, to))
			pos = to
		}
		r.style(base, d.Slice(pos, line.To))
	}
	r.out.WriteByte('\n')
	if n == realLines(d) && !endsWithNewline(d) {
		r.out.WriteString(noNewline)
	}
}

func (r *unifiedRenderer) style(s termformat.Style, text string) {
	if r.color {
		text = s.Apply(text)
	}
	r.out.WriteString(text)
}

// changedRanges returns the absolute ranges of c's changes in A and in B.
func changedRanges(c Chunk) (inA, inB [][2]int) {
	for _, s := range c.Changes {
		if s.ToA > s.FromA {
			inA = append(inA, [2]int{c.FromA + s.FromA, c.FromA + s.ToA})
		}
		if s.ToB > s.FromB {
			inB = append(inB, [2]int{c.FromB + s.FromB, c.FromB + s.ToB})
		}
	}
	return inA, inB
}

// hunkRange formats a hunk header range the way diff -u does: "l" for one line, "l,n" otherwise, and the line before for an empty range.
func hunkRange(start, n int) string {
	switch n {
	case 0:
		return fmt.Sprintf("%d,0", start-1)
	case 1:
		return fmt.Sprint(start)
	}
	return fmt.Sprintf("%d,%d", start, n)
}

// lineSpan returns the first line number and the number of lines of the line-aligned range [from, to).
func lineSpan(d Doc, from, to int) (first, n int) {
	first = d.LineAt(from).Number
	if to == from {
		return first, 0
	}
	return first, d.LineAt(to-1).Number - first + 1
}

// realLines returns the number of lines of d with any text or line break in them. Unlike Lines, it doesn't count the empty line after a trailing line break.
func realLines(d Doc) int {
	n := d.Lines()
	if d.Line(n).From == d.Len() {
		n--
	}
	return n
}

func endsWithNewline(d Doc) bool {
	return d.Len() == 0 || d.Slice(d.Len()-1, d.Len()) == "\n"
}

const (
	sideTabWidth     = 4
	collapseMargin   = 3
	collapseMinLines = 8
)

// RenderSideBySide prints a and b in two columns, fitting each row into width terminal cells. The gutter between the columns marks changed lines ("|"), lines
// only in a ("<"), and lines only in b (">"). Long runs of unchanged lines are collapsed into one row.
func RenderSideBySide(a, b Doc, chunks []Chunk, width int) string {
	colWidth := max((width-3)/2, 1)
	collapsed := Unchanged(chunks, a, b, collapseMargin, collapseMinLines)
	lastA, lastB := realLines(a), realLines(b)

	var out strings.Builder
	row := func(left, right string, mark byte) {
		out.WriteString(cell(left, colWidth))
		out.WriteByte(' ')
		out.WriteByte(mark)
		out.WriteByte(' ')
		out.WriteString(strings.TrimRight(cell(right, colWidth), " "))
		out.WriteByte('\n')
	}
	lineText := func(d Doc, n int) string {
		line := d.Line(n)
		return d.Slice(line.From, line.To)
	}

	lineA, lineB := 1, 1
	ci, ri := 0, 0
	for {
		if ci < len(chunks) && lineA == a.LineAt(chunks[ci].FromA).Number {
			c := chunks[ci]
			fromA, nA := lineSpan(a, c.FromA, c.ToA)
			fromB, nB := lineSpan(b, c.FromB, c.ToB)
			for i := 0; i < max(nA, nB); i++ {
				var left, right string
				mark := byte('|')
				switch {
				case i >= nA:
					mark = '>'
				case i >= nB:
					mark = '<'
				}
				if i < nA {
					left = lineText(a, fromA+i)
				}
				if i < nB {
					right = lineText(b, fromB+i)
				}
				row(left, right, mark)
			}
			lineA, lineB = fromA+nA, fromB+nB
			ci++
			continue
		}
		if ri < len(collapsed) && lineA == a.LineAt(collapsed[ri].FromA).Number {
			out.WriteString(collapsedLabel(collapsed[ri].Lines, width))
			out.WriteByte('\n')
			lineA += collapsed[ri].Lines
			lineB += collapsed[ri].Lines
			ri++
			continue
		}
		if lineA > lastA || lineB > lastB {
			break
		}
		row(lineText(a, lineA), lineText(b, lineB), ' ')
		lineA++
		lineB++
	}
	return out.String()
}

// collapsedLabel describes n hidden lines in at most width cells, dropping "unchanged" before cutting the label.
func collapsedLabel(n, width int) string {
	label := fmt.Sprintf("... %d unchanged lines ...", n)
	if uni.TextWidth(label, nil) > width {
		label = fmt.Sprintf("... %d lines ...", n)
	}
	fitted, _ := uni.Fit(label, max(width, 1), nil)
	return fitted
}

// cell returns text sanitized, cut, and padded to exactly width terminal cells.
func cell(text string, width int) string {
	text = termformat.SanitizeLine(strings.TrimSuffix(text, "\r"), sideTabWidth)
	fitted, w := uni.Fit(text, width, nil)
	return fitted + strings.Repeat(" ", width-w)
}
