package uni

import (
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation in TextWidth and Fit.
//
// Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats certain East Asian code points as 2 wide (e.g., Chinese, Japanese, Korean). Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// maxClusterLookback bounds how far PrevCluster looks back for the start of a cluster. Clusters longer than this (long ZWJ emoji sequences, stacked combining marks) are
// split at a code point boundary instead.
const maxClusterLookback = 64

// TextWidth returns the text width of str for monospace fonts in terminals. If opts is nil, locale is assumed to be non-East Asian.
func TextWidth(str string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(str)
}

// Fit returns the longest prefix of str, cut at a grapheme cluster boundary, whose width is at most width columns, along with the width of that prefix.
func Fit(str string, width int, opts *Options) (string, int) {
	cond := conditionFromOptions(opts)
	iter := graphemes.FromString(str)
	used := 0
	for iter.Next() {
		w := cond.StringWidth(iter.Value())
		if used+w > width {
			return str[:iter.Start()], used
		}
		used += w
	}
	return str, used
}

// NextCluster returns the byte offset just past the grapheme cluster that starts at pos. If pos is at or beyond the end of s, len(s) is returned.
func NextCluster(s string, pos int) int {
	if pos >= len(s) {
		return len(s)
	}
	iter := graphemes.FromString(s[pos:])
	if !iter.Next() {
		return len(s)
	}
	return pos + iter.End()
}

// PrevCluster returns the byte offset of the start of the grapheme cluster that ends at pos. If pos is 0, 0 is returned.
func PrevCluster(s string, pos int) int {
	if pos <= 0 {
		return 0
	}
	start := max(0, pos-maxClusterLookback)
	for start > 0 && !utf8.RuneStart(s[start]) {
		start++
	}
	if start >= pos {
		_, size := utf8.DecodeLastRuneInString(s[:pos])
		return pos - size
	}
	iter := graphemes.FromString(s[start:pos])
	last := 0
	for iter.Next() {
		last = iter.Start()
	}
	return start + last
}

// IsWordCluster reports whether the grapheme cluster at the start of s is a word unit: its first code point is a letter or a number.
func IsWordCluster(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}

	return cond
}
