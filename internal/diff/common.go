package diff

import "unicode/utf8"

// validIndex reports whether i is a code point boundary of s.
func validIndex(s string, i int) bool {
	return i <= 0 || i >= len(s) || utf8.RuneStart(s[i])
}

// nextRuneStart returns the first code point boundary of s at or after i.
func nextRuneStart(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}

// prevRuneStart returns the last code point boundary of s at or before i.
func prevRuneStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// singleRune reports whether s is exactly one code point.
func singleRune(s string) bool {
	if s == "" {
		return false
	}
	_, size := utf8.DecodeRuneInString(s)
	return size == len(s)
}

// chunkSize returns the smallest power of two that is >= min(lenA, lenB).
func chunkSize(lenA, lenB int) int {
	size, limit := 1, min(lenA, lenB)
	for size < limit {
		size <<= 1
	}
	return size
}

// commonPrefix returns the length of the common prefix of a[fromA:toA] and b[fromB:toB], cut back to a code point boundary.
//
// It compares in chunks: the chunk size starts at the next power of two above the shorter length and halves after each mismatch, so long shared runs are compared
// with a handful of memory comparisons instead of byte by byte.
func commonPrefix(a string, fromA, toA int, b string, fromB, toB int) int {
	if fromA == toA || fromB == toB || a[fromA] != b[fromB] {
		return 0
	}
	chunk := chunkSize(toA-fromA, toB-fromB)
	for pA, pB := fromA, fromB; ; {
		endA, endB := pA+chunk, pB+chunk
		if endA > toA || endB > toB || a[pA:endA] != b[pB:endB] {
			if chunk == 1 {
				return prefixBoundary(a, b, pA, pB) - fromA
			}
			chunk >>= 1
		} else if endA == toA || endB == toB {
			return prefixBoundary(a, b, endA, endB) - fromA
		} else {
			pA, pB = endA, endB
		}
	}
}

// prefixBoundary moves the end of a shared prefix (pA in a, pB in b) back until it is a code point boundary in both strings. It returns the adjusted pA.
func prefixBoundary(a, b string, pA, pB int) int {
	for pA > 0 && (!validIndex(a, pA) || !validIndex(b, pB)) {
		pA--
		pB--
	}
	return pA
}

// commonSuffix returns the length of the common suffix of a[fromA:toA] and b[fromB:toB], cut back to a code point boundary. See commonPrefix.
func commonSuffix(a string, fromA, toA int, b string, fromB, toB int) int {
	if fromA == toA || fromB == toB || a[toA-1] != b[toB-1] {
		return 0
	}
	chunk := chunkSize(toA-fromA, toB-fromB)
	for pA, pB := toA, toB; ; {
		startA, startB := pA-chunk, pB-chunk
		if startA < fromA || startB < fromB || a[startA:pA] != b[startB:pB] {
			if chunk == 1 {
				return toA - suffixBoundary(a, b, pA, pB, toA)
			}
			chunk >>= 1
		} else if startA == fromA || startB == fromB {
			return toA - suffixBoundary(a, b, startA, startB, toA)
		} else {
			pA, pB = startA, startB
		}
	}
}

// suffixBoundary moves the start of a shared suffix (pA in a, pB in b) forward until it is a code point boundary in both strings. It never moves past toA.
func suffixBoundary(a, b string, pA, pB, toA int) int {
	for pA < toA && (!validIndex(a, pA) || !validIndex(b, pB)) {
		pA++
		pB++
	}
	return pA
}
