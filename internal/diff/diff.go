package diff

import (
	"log/slog"
	"strings"
	"time"
)

// debug enables invariant checks on every result. Failures panic.
const debug bool = false

// maxRecursion caps the divide-and-conquer depth. Deeper regions are reported as one span.
const maxRecursion = 4096

// Diff returns a minimal list of spans turning a into b. precise is false if a budget in cfg was exhausted and part of the result came from the approximate search;
// the spans are still a correct diff.
func Diff(a, b string, cfg Config) (spans []Span, precise bool) {
	if a == b {
		return nil, true
	}
	d := newDiffer(a, b, cfg)
	spans = normalize(a, b, d.findDiff(0, len(a), 0, len(b)))
	if debug {
		if err := ValidateSpans(a, b, spans); err != nil {
			panic("Diff: " + err.Error())
		}
	}
	return spans, !d.imprecise
}

// PresentableDiff is like Diff, but moves and widens spans so they line up with word and line boundaries, and merges spans separated by tiny gaps. The result is
// meant for display; it is usually not minimal.
func PresentableDiff(a, b string, cfg Config) (spans []Span, precise bool) {
	spans, precise = Diff(a, b, cfg)
	spans = makePresentable(spans, a, b)
	if debug {
		if err := ValidateSpans(a, b, spans); err != nil {
			panic("PresentableDiff: " + err.Error())
		}
	}
	return spans, precise
}

// PresentableDiffRange returns PresentableDiff(a, b, cfg) for documents that can only differ inside a[fromA:toA] and b[fromB:toB]: the text before the ranges
// must be the same in both documents, and so must the text after them. Usually only the ranges are searched. Spans are absolute.
func PresentableDiffRange(a, b string, fromA, toA, fromB, toB int, cfg Config) (spans []Span, precise bool) {
	if a[fromA:toA] == b[fromB:toB] {
		return nil, true
	}
	// If one range is a prefix of the other, the shared prefix of the whole documents runs on past it, and so would the search.
	if prefix := commonPrefix(a, fromA, toA, b, fromB, toB); fromA+prefix == toA || fromB+prefix == toB {
		return PresentableDiff(a, b, cfg)
	}

	d := newDiffer(a, b, cfg)
	spans = makePresentable(normalize(a, b, d.findDiff(fromA, toA, fromB, toB)), a, b)
	if debug {
		if err := ValidateSpans(a, b, spans); err != nil {
			panic("PresentableDiffRange: " + err.Error())
		}
	}
	return spans, !d.imprecise
}

// differ holds the state of one Diff call. It is never shared between calls.
type differ struct {
	a, b string

	scanLimit int       // 0 = unlimited
	deadline  time.Time // zero = none
	logger    *slog.Logger

	imprecise bool
	depth     int

	// Scratch frontiers for findSnake, reused across the recursion.
	forward, backward frontier
}

func newDiffer(a, b string, cfg Config) *differ {
	d := &differ{a: a, b: b, scanLimit: max(cfg.ScanLimit, 0), logger: cfg.Logger}
	if cfg.Timeout > 0 {
		d.deadline = time.Now().Add(cfg.Timeout)
	}
	return d
}

func (d *differ) expired() bool {
	return !d.deadline.IsZero() && time.Now().After(d.deadline)
}

// degrade marks the result imprecise and logs why.
func (d *differ) degrade(reason string, lenA, lenB int) {
	if !d.imprecise && d.logger != nil {
		d.logger.Debug("diff degraded", "reason", reason, "lenA", lenA, "lenB", lenB)
	}
	d.imprecise = true
}

// findDiff diffs a[fromA:toA] against b[fromB:toB]. Returned spans use absolute offsets.
func (d *differ) findDiff(fromA, toA, fromB, toB int) []Span {
	a, b := d.a, d.b
	if a[fromA:toA] == b[fromB:toB] {
		return nil
	}

	d.depth++
	defer func() { d.depth-- }()
	if d.depth > maxRecursion {
		d.degrade("recursion", toA-fromA, toB-fromB)
		return []Span{{fromA, toA, fromB, toB}}
	}

	prefix := commonPrefix(a, fromA, toA, b, fromB, toB)
	suffix := commonSuffix(a, fromA+prefix, toA, b, fromB+prefix, toB)
	fromA += prefix
	toA -= suffix
	fromB += prefix
	toB -= suffix

	lenA, lenB := toA-fromA, toB-fromB
	if lenA == 0 || lenB == 0 {
		return []Span{{fromA, toA, fromB, toB}}
	}

	// The shorter side appears verbatim inside the longer one:
	if lenA > lenB {
		if found := strings.Index(a[fromA:toA], b[fromB:toB]); found > -1 {
			return []Span{
				{fromA, fromA + found, fromB, fromB},
				{fromA + found + lenB, toA, toB, toB},
			}
		}
	} else if lenB > lenA {
		if found := strings.Index(b[fromB:toB], a[fromA:toA]); found > -1 {
			return []Span{
				{fromA, fromA, fromB, fromB + found},
				{toA, toA, fromB + found + lenA, toB},
			}
		}
	}

	if singleRune(a[fromA:toA]) || singleRune(b[fromB:toB]) {
		return []Span{{fromA, toA, fromB, toB}}
	}

	if sharedA, sharedB, sharedLen, ok := d.halfMatch(fromA, toA, fromB, toB); ok {
		return d.split(fromA, sharedA, toA, fromB, sharedB, toB, sharedLen)
	}

	return d.findSnake(fromA, toA, fromB, toB)
}

// split diffs the regions before and after a shared run of sharedLen bytes starting at sharedA/sharedB.
func (d *differ) split(fromA, sharedA, toA, fromB, sharedB, toB, sharedLen int) []Span {
	before := d.findDiff(fromA, sharedA, fromB, sharedB)
	after := d.findDiff(sharedA+sharedLen, toA, sharedB+sharedLen, toB)
	return append(before, after...)
}

// bisect splits the region at (splitA, splitB) and diffs both halves. Split points inside a multi-byte code point are moved forward to the next code point.
func (d *differ) bisect(fromA, toA, splitA, fromB, toB, splitB int) []Span {
	stop := false
	if !validIndex(d.a, splitA) {
		splitA = nextRuneStart(d.a, splitA)
		if splitA >= toA {
			stop = true
		}
	}
	if !validIndex(d.b, splitB) {
		splitB = nextRuneStart(d.b, splitB)
		if splitB >= toB {
			stop = true
		}
	}
	if stop {
		return []Span{{fromA, toA, fromB, toB}}
	}
	return d.split(fromA, splitA, toA, fromB, splitB, toB, 0)
}
