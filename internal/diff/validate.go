package diff

import "fmt"

// ValidateSpans checks that spans is a well-formed diff from a to b and returns an error describing the first violation:
//   - every span is in bounds with From <= To on both sides,
//   - no span is empty on both sides,
//   - spans are sorted and disjoint on both sides,
//   - every offset is a code point boundary,
//   - the unchanged text between spans is identical in a and b, including the text after the last span.
func ValidateSpans(a, b string, spans []Span) error {
	prevA, prevB := 0, 0
	for i, s := range spans {
		if s.FromA < 0 || s.FromA > s.ToA || s.ToA > len(a) {
			return fmt.Errorf("span[%d] %v: A range out of bounds (len %d)", i, s, len(a))
		}
		if s.FromB < 0 || s.FromB > s.ToB || s.ToB > len(b) {
			return fmt.Errorf("span[%d] %v: B range out of bounds (len %d)", i, s, len(b))
		}
		if s.LenA() == 0 && s.LenB() == 0 {
			return fmt.Errorf("span[%d] %v: empty span", i, s)
		}
		if s.FromA < prevA || s.FromB < prevB {
			return fmt.Errorf("span[%d] %v: overlaps or precedes the previous span", i, s)
		}
		if !validIndex(a, s.FromA) || !validIndex(a, s.ToA) {
			return fmt.Errorf("span[%d] %v: A offset splits a code point", i, s)
		}
		if !validIndex(b, s.FromB) || !validIndex(b, s.ToB) {
			return fmt.Errorf("span[%d] %v: B offset splits a code point", i, s)
		}
		if a[prevA:s.FromA] != b[prevB:s.FromB] {
			return fmt.Errorf("span[%d] %v: unchanged text before the span differs", i, s)
		}
		prevA, prevB = s.ToA, s.ToB
	}
	if a[prevA:] != b[prevB:] {
		return fmt.Errorf("diff: unchanged text after the last span differs")
	}
	return nil
}
