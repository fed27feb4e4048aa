package diff

// Implementation note: this is the linear-space variant of Myers' "An O(ND) Difference Algorithm and Its Variations" (1986). Two frontiers walk the edit graph, one
// from the top-left and one from the bottom-right. Each frontier stores, per diagonal k, the furthest x reached. When the paths overlap on a diagonal, that point
// lies on a shortest edit path and the problem is split there.
//
// https://blog.jcoglan.com/2017/02/12/the-myers-diff-algorithm-part-1/
// https://neil.fraser.name/writing/diff/myers.pdf

// frontier is the furthest-reaching x per diagonal for one search direction. vec is indexed by k+vOff; -1 means "not reached".
type frontier struct {
	vec   []int
	start int // Diagonals skipped at the low end because the path ran off the graph.
	end   int // Diagonals skipped at the high end.
}

func (f *frontier) reset(off int) {
	n := 2*off + 2
	if cap(f.vec) < n {
		f.vec = make([]int, n)
	}
	f.vec = f.vec[:n]
	for i := range f.vec {
		f.vec[i] = -1
	}
	f.vec[off+1] = 0
	f.start, f.end = 0, 0
}

// advance extends every diagonal of f by one edit at the given depth. When other is non-nil, each reached point is tested against other's frontier on the mirrored
// diagonal; on overlap, the split point (in forward coordinates) is returned.
func (f *frontier) advance(depth, lenX, lenY, vOff int, other *frontier, fromBack bool, match func(x, y int) bool) (int, int, bool) {
	for k := -depth + f.start; k <= depth-f.end; k += 2 {
		off := vOff + k
		var x int
		if k == -depth || (k != depth && f.vec[off-1] < f.vec[off+1]) {
			x = f.vec[off+1]
		} else {
			x = f.vec[off-1] + 1
		}
		y := x - k
		for x < lenX && y < lenY && match(x, y) {
			x++
			y++
		}
		f.vec[off] = x

		switch {
		case x > lenX:
			// Ran off the right of the graph.
			f.end += 2
		case y > lenY:
			// Ran off the bottom of the graph.
			f.start += 2
		case other != nil:
			offOther := vOff + (lenX - lenY) - k
			if offOther < 0 || offOther >= len(other.vec) || other.vec[offOther] == -1 {
				continue
			}
			if !fromBack {
				if xOther := lenX - other.vec[offOther]; x >= xOther {
					return x, y, true
				}
			} else {
				if xOther := other.vec[offOther]; xOther >= lenX-x {
					return xOther, vOff + xOther - offOther, true
				}
			}
		}
	}
	return 0, 0, false
}

// findSnake runs the bidirectional Myers search over a[fromA:toA] and b[fromB:toB], which must not share a prefix or suffix, and recurses on both sides of the
// meeting point. It is also where budgets are enforced.
func (d *differ) findSnake(fromA, toA, fromB, toB int) []Span {
	a, b := d.a, d.b
	lenA, lenB := toA-fromA, toB-fromB
	shorter := min(lenA, lenB)

	if d.scanLimit > 0 && shorter > d.scanLimit*16 || d.expired() {
		if d.scanLimit > 0 && shorter > d.scanLimit*64 {
			d.degrade("size", lenA, lenB)
			return []Span{{fromA, toA, fromB, toB}}
		}
		return d.crudeMatch(fromA, toA, fromB, toB)
	}

	off := (lenA + lenB + 1) / 2
	d.forward.reset(off)
	d.backward.reset(off)
	matchForward := func(x, y int) bool { return a[fromA+x] == b[fromB+y] }
	matchBackward := func(x, y int) bool { return a[toA-x-1] == b[toB-y-1] }

	// With an odd delta the forward path is the one that can collide; with an even delta, the backward one.
	var testForward, testBackward *frontier
	if (lenA-lenB)%2 != 0 {
		testForward = &d.backward
	} else {
		testBackward = &d.forward
	}

	for depth := 0; depth < off; depth++ {
		if d.scanLimit > 0 && depth > d.scanLimit || depth&63 == 0 && d.expired() {
			return d.crudeMatch(fromA, toA, fromB, toB)
		}
		if x, y, ok := d.forward.advance(depth, lenA, lenB, off, testForward, false, matchForward); ok {
			return d.bisect(fromA, toA, fromA+x, fromB, toB, fromB+y)
		}
		if x, y, ok := d.backward.advance(depth, lenA, lenB, off, testBackward, true, matchBackward); ok {
			return d.bisect(fromA, toA, fromA+x, fromB, toB, fromB+y)
		}
	}

	// No commonality at all.
	return []Span{{fromA, toA, fromB, toB}}
}
