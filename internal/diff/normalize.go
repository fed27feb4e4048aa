package diff

// mergeAdjacent merges consecutive spans separated by at most maxGap bytes of unchanged text. It modifies spans in place and returns the (possibly shorter) slice.
func mergeAdjacent(spans []Span, maxGap int) []Span {
	if len(spans) < 2 {
		return spans
	}
	out := spans[:1]
	for _, cur := range spans[1:] {
		prev := &out[len(out)-1]
		if cur.FromA-prev.ToA <= maxGap && cur.FromB-prev.ToB <= maxGap {
			*prev = Span{FromA: prev.FromA, ToA: cur.ToA, FromB: prev.FromB, ToB: cur.ToB}
			continue
		}
		out = append(out, cur)
	}
	return out
}

// normalize simplifies a raw diff without changing what it means: it merges nearly-adjacent spans, trims shared text off span edges (the half-match split can leave
// some), and slides pure insertions/deletions over the unchanged text next to them when that text repeats the inserted/deleted text, so they join a neighbour or
// a document edge. It repeats until nothing moves.
func normalize(a, b string, spans []Span) []Span {
	for {
		spans = mergeAdjacent(spans, 1)
		moved := false
		for i := range spans {
			s := spans[i]
			if pre := commonPrefix(a, s.FromA, s.ToA, b, s.FromB, s.ToB); pre > 0 {
				s = Span{s.FromA + pre, s.ToA, s.FromB + pre, s.ToB}
			}
			if post := commonSuffix(a, s.FromA, s.ToA, b, s.FromB, s.ToB); post > 0 {
				s = Span{s.FromA, s.ToA - post, s.FromB, s.ToB - post}
			}
			spans[i] = s

			lenA, lenB := s.LenA(), s.LenB()
			if lenA > 0 && lenB > 0 {
				continue
			}
			prevTo := 0
			if i > 0 {
				prevTo = spans[i-1].ToA
			}
			nextFrom := len(a)
			if i < len(spans)-1 {
				nextFrom = spans[i+1].FromA
			}
			beforeLen, afterLen := s.FromA-prevTo, nextFrom-s.ToA
			if beforeLen == 0 || afterLen == 0 {
				continue
			}

			text := b[s.FromB:s.ToB]
			if lenA > 0 {
				text = a[s.FromA:s.ToA]
			}
			if beforeLen <= len(text) && a[s.FromA-beforeLen:s.FromA] == text[len(text)-beforeLen:] {
				// The text before the span repeats the span's tail: slide back onto the previous span.
				spans[i] = s.Offset(-beforeLen, -beforeLen)
				moved = true
			} else if afterLen <= len(text) && a[s.ToA:s.ToA+afterLen] == text[:afterLen] {
				// The text after the span repeats the span's head: slide forward onto the next span.
				spans[i] = s.Offset(afterLen, afterLen)
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return removeEmpty(spans)
}

// removeEmpty drops spans that trimming reduced to nothing.
func removeEmpty(spans []Span) []Span {
	out := spans[:0]
	for _, s := range spans {
		if s.LenA() > 0 || s.LenB() > 0 {
			out = append(out, s)
		}
	}
	return out
}
