package diff

import "strings"

// crudeSeedMin is the smallest seed size the approximate search tries before giving up on a region.
const crudeSeedMin = 50

// sharedRun is a run of identical text at a[A:A+Len] and b[B:B+Len].
type sharedRun struct {
	A, B, Len int
}

// halfMatch looks for a run shared by both regions that covers at least half of the longer one. Splitting there turns one large problem into two small ones, at the
// cost of sometimes missing the minimal diff.
func (d *differ) halfMatch(fromA, toA, fromB, toB int) (sharedA, sharedB, sharedLen int, ok bool) {
	lenA, lenB := toA-fromA, toB-fromB
	var run sharedRun
	var found bool
	if lenA >= lenB {
		if lenA < 4 || lenB*2 < lenA {
			return 0, 0, 0, false
		}
		run, found = findMatch(d.a, fromA, toA, d.b, fromB, toB, lenA/4, -1, nil)
	} else {
		if lenB < 4 || lenA*2 < lenB {
			return 0, 0, 0, false
		}
		var inv sharedRun
		inv, found = findMatch(d.b, fromB, toB, d.a, fromA, toA, lenB/4, -1, nil)
		run = sharedRun{A: inv.B, B: inv.A, Len: inv.Len}
	}
	if !found || run.Len*2 < max(lenA, lenB) {
		return 0, 0, 0, false
	}
	return run.A, run.B, run.Len, true
}

// crudeMatch is the approximate search used once a budget is exhausted: it looks for any long shared run (seed sizes from a sixth of the shorter side, halving
// down to crudeSeedMin), splits there, and recurses. Without a shared run the region becomes one span. Once the deadline has passed, the search stops at the next
// seed, so an expired call reports whatever is left as one span.
func (d *differ) crudeMatch(fromA, toA, fromB, toB int) []Span {
	lenA, lenB := toA-fromA, toB-fromB
	d.degrade("budget", lenA, lenB)

	var run sharedRun
	var found bool
	if lenA < lenB {
		var inv sharedRun
		inv, found = findMatch(d.b, fromB, toB, d.a, fromA, toA, lenA/6, crudeSeedMin, d.expired)
		run = sharedRun{A: inv.B, B: inv.A, Len: inv.Len}
	} else {
		run, found = findMatch(d.a, fromA, toA, d.b, fromB, toB, lenB/6, crudeSeedMin, d.expired)
	}
	if !found {
		return []Span{{fromA, toA, fromB, toB}}
	}
	return d.split(fromA, run.A, toA, fromB, run.B, toB, run.Len)
}

// findMatch tries substrings ("seeds") of x[fromX:toX] of the given size and looks each up in y[fromY:toY]. Every hit is extended with the common prefix and suffix
// around it; the longest extended run wins. If nothing is found, the seed size halves until it drops below divideTo. A negative divideTo means a single pass.
// If stop is non-nil, it is polled before every seed; once it returns true, the best run so far is returned.
//
// The returned run is in x/y coordinates.
func findMatch(x string, fromX, toX int, y string, fromY, toY int, size, divideTo int, stop func() bool) (sharedRun, bool) {
	rangeY := y[fromY:toY]
	var best sharedRun
	found := false
	for {
		if found || size < divideTo || size <= 0 {
			return best, found
		}
		for start := fromX + size; ; {
			if stop != nil && stop() {
				return best, found
			}
			start = nextRuneStart(x, start)
			end := start + size
			if !validIndex(x, end) {
				if e := prevRuneStart(x, end); e > start {
					end = e
				} else {
					end = nextRuneStart(x, end)
				}
			}
			if end >= toX {
				break
			}
			seed := x[start:end]
			for pos := 0; pos <= len(rangeY); {
				i := strings.Index(rangeY[pos:], seed)
				if i < 0 {
					break
				}
				hit := fromY + pos + i
				prefixAfter := commonPrefix(x, end, toX, y, hit+len(seed), toY)
				suffixBefore := commonSuffix(x, fromX, start, y, fromY, hit)
				length := len(seed) + prefixAfter + suffixBefore
				if !found || best.Len < length {
					best = sharedRun{A: start - suffixBefore, B: hit - suffixBefore, Len: length}
					found = true
				}
				pos += i + 1
			}
			start = end
		}
		if divideTo < 0 {
			return best, found
		}
		size >>= 1
	}
}
