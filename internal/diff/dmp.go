package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// ToDiffMatchPatch converts spans (a diff from a to b) into the equal/delete/insert form used by github.com/sergi/go-diff. Replacements become a delete followed by
// an insert.
func ToDiffMatchPatch(a, b string, spans []Span) []diffmatchpatch.Diff {
	var diffs []diffmatchpatch.Diff
	posA := 0
	for _, s := range spans {
		if s.FromA > posA {
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffEqual, Text: a[posA:s.FromA]})
		}
		if s.LenA() > 0 {
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffDelete, Text: a[s.FromA:s.ToA]})
		}
		if s.LenB() > 0 {
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffInsert, Text: b[s.FromB:s.ToB]})
		}
		posA = s.ToA
	}
	if posA < len(a) {
		diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffEqual, Text: a[posA:]})
	}
	return diffs
}

// Patch returns spans as diff-match-patch patch text (the "@@ -1,3 +1,4 @@" format with %-encoded lines). diffmatchpatch's PatchFromText and PatchApply read it
// back.
func Patch(a, b string, spans []Span) string {
	dmp := diffmatchpatch.New()
	patches := dmp.PatchMake(a, ToDiffMatchPatch(a, b, spans))
	return dmp.PatchToText(patches)
}
