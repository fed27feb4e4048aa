package diff

import (
	"fmt"
	"strings"
)

// Span is one changed region: A[FromA:ToA] is replaced by B[FromB:ToB]. Offsets are byte offsets.
type Span struct {
	FromA int // Start of the region in A.
	ToA   int // End of the region in A (exclusive).
	FromB int // Start of the region in B.
	ToB   int // End of the region in B (exclusive).
}

// Offset returns s translated by dA on the A side and dB on the B side.
func (s Span) Offset(dA, dB int) Span {
	return Span{FromA: s.FromA + dA, ToA: s.ToA + dA, FromB: s.FromB + dB, ToB: s.ToB + dB}
}

// LenA returns the length of the A side of s.
func (s Span) LenA() int { return s.ToA - s.FromA }

// LenB returns the length of the B side of s.
func (s Span) LenB() int { return s.ToB - s.FromB }

// String returns s in "A[1,3)->B[1,5)" form.
func (s Span) String() string {
	return fmt.Sprintf("A[%d,%d)->B[%d,%d)", s.FromA, s.ToA, s.FromB, s.ToB)
}

// Apply rebuilds b from a and spans: unchanged text is taken from a and replaced text from b. Apply(a, b, Diff(a, b)) == b.
func Apply(a, b string, spans []Span) string {
	var out strings.Builder
	out.Grow(len(b))
	posA := 0
	for _, s := range spans {
		out.WriteString(a[posA:s.FromA])
		out.WriteString(b[s.FromB:s.ToB])
		posA = s.ToA
	}
	out.WriteString(a[posA:])
	return out.String()
}

// Revert rebuilds a from b and spans. Revert(a, b, Diff(a, b)) == a.
func Revert(a, b string, spans []Span) string {
	var out strings.Builder
	out.Grow(len(a))
	posB := 0
	for _, s := range spans {
		out.WriteString(b[posB:s.FromB])
		out.WriteString(a[s.FromA:s.ToA])
		posB = s.ToB
	}
	out.WriteString(b[posB:])
	return out.String()
}
