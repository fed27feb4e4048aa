package diff

import "github.com/codalotl/mergediff/internal/q/uni"

// maxWordScan is how many word units makePresentable looks at on either side of a span when searching for a word boundary.
const maxWordScan = 8

// makePresentable moves and widens spans so that changes inside words cover whole words, and multi-line insertions/deletions start at line starts. It only ever
// moves a span over text that is identical in both documents, so the result is still a correct diff.
func makePresentable(spans []Span, a, b string) []Span {
	posA := 0
	for i := range spans {
		s := spans[i]
		lenA, lenB := s.LenA(), s.LenB()
		// Short pure insertions and deletions are left alone.
		if lenA > 0 && lenB > 0 || lenA > 3 || lenB > 3 {
			nextA := len(a)
			if i < len(spans)-1 {
				nextA = spans[i+1].FromA
			}
			maxBefore, maxAfter := s.FromA-posA, nextA-s.ToA
			boundBefore, boundAfter := s.FromA, s.ToA
			if wordAt(a, s.FromA) || wordAt(b, s.FromB) {
				boundBefore = wordBoundaryBefore(a, s.FromA, maxBefore)
			}
			if wordBefore(a, s.ToA) || wordBefore(b, s.ToB) {
				boundAfter = wordBoundaryAfter(a, s.ToA, maxAfter)
			}
			lenBefore, lenAfter := s.FromA-boundBefore, boundAfter-s.ToA

			// An insertion or deletion that falls inside a word on both sides may be movable onto a word boundary.
			if (lenA == 0 || lenB == 0) && lenBefore > 0 && lenAfter > 0 {
				changeLen := max(lenA, lenB)
				text, from, to := a, s.FromA, s.ToA
				if lenA == 0 {
					text, from, to = b, s.FromB, s.ToB
				}
				if changeLen > lenBefore && a[boundBefore:s.FromA] == text[to-lenBefore:to] {
					s = s.Offset(-lenBefore, -lenBefore)
					boundBefore = s.FromA
					boundAfter = wordBoundaryAfter(a, s.ToA, maxAfter)
				} else if changeLen > lenAfter && a[s.ToA:boundAfter] == text[from:from+lenAfter] {
					s = s.Offset(lenAfter, lenAfter)
					boundAfter = s.ToA
					boundBefore = wordBoundaryBefore(a, s.FromA, maxBefore)
				}
				lenBefore, lenAfter = s.FromA-boundBefore, boundAfter-s.ToA
			}

			switch {
			case lenBefore > 0 || lenAfter > 0:
				// Cover the whole word.
				s = Span{FromA: s.FromA - lenBefore, ToA: s.ToA + lenAfter, FromB: s.FromB - lenBefore, ToB: s.ToB + lenAfter}
			case lenA == 0:
				s = alignToLine(s, b, s.FromB, s.ToB, maxBefore, maxAfter)
			case lenB == 0:
				s = alignToLine(s, a, s.FromA, s.ToA, maxBefore, maxAfter)
			}
			spans[i] = s
		}
		posA = s.ToA
	}
	return mergeAdjacent(spans, 3)
}

// alignToLine slides a pure insertion or deletion s, whose changed text is text[from:to], so that it starts right after a line break, when the text it slides over
// is identical. Spans that already start a line are left alone.
func alignToLine(s Span, text string, from, to, maxBefore, maxAfter int) Span {
	if from == 0 || text[from-1] == '\n' {
		return s
	}
	first := lineBreakAfter(text, from, to)
	if first < 0 {
		return s
	}
	if n := first - from; n <= maxAfter && to+n <= len(text) && text[from:first] == text[to:to+n] {
		return s.Offset(n, n)
	}
	last := lineBreakBefore(text, to, from)
	if n := to - last; n <= maxBefore && text[from-n:from] == text[last:to] {
		return s.Offset(-n, -n)
	}
	return s
}

// lineBreakAfter returns the position just past the first '\n' in text[from:to], or -1.
func lineBreakAfter(text string, from, to int) int {
	for i := from; i < to; i++ {
		if text[i] == '\n' {
			return i + 1
		}
	}
	return -1
}

// lineBreakBefore returns the position just past the last '\n' in text[stop:pos], or -1.
func lineBreakBefore(text string, pos, stop int) int {
	for i := pos - 1; i >= stop; i-- {
		if text[i] == '\n' {
			return i + 1
		}
	}
	return -1
}

// wordAt reports whether the grapheme cluster starting at pos is a word unit.
func wordAt(s string, pos int) bool {
	return pos < len(s) && uni.IsWordCluster(s[pos:])
}

// wordBefore reports whether the grapheme cluster ending at pos is a word unit.
func wordBefore(s string, pos int) bool {
	return pos > 0 && uni.IsWordCluster(s[uni.PrevCluster(s, pos):])
}

// wordBoundaryAfter returns the end of the word that continues at pos, scanning at most maxWordScan word units and never past pos+limit. If pos is not inside a
// word, or no boundary is found in range, pos is returned.
func wordBoundaryAfter(s string, pos, limit int) int {
	if pos >= len(s) || !uni.IsWordCluster(s[pos:]) {
		return pos
	}
	end := pos + limit
	for cx, i := pos, 0; i < maxWordScan; i++ {
		next := uni.NextCluster(s, cx)
		if next > end {
			return pos
		}
		if next == len(s) || !uni.IsWordCluster(s[next:]) {
			return next
		}
		cx = next
	}
	return pos
}

// wordBoundaryBefore returns the start of the word that ends at pos. See wordBoundaryAfter.
func wordBoundaryBefore(s string, pos, limit int) int {
	if pos <= 0 || !uni.IsWordCluster(s[uni.PrevCluster(s, pos):]) {
		return pos
	}
	start := pos - limit
	for cx, i := pos, 0; i < maxWordScan; i++ {
		prev := uni.PrevCluster(s, cx)
		if prev < start {
			return pos
		}
		if prev == 0 || !uni.IsWordCluster(s[uni.PrevCluster(s, prev):]) {
			return prev
		}
		cx = prev
	}
	return pos
}
