// Package diff computes character-level diffs between an "A" and a "B" string.
//
// Representation: a diff is an ordered slice of Span values. Each Span names a changed region in both strings with four byte offsets: A[FromA:ToA] was replaced by
// B[FromB:ToB]. Text between consecutive spans (and before the first/after the last) is identical in A and B.
//   - FromA == ToA: pure insertion of B[FromB:ToB].
//   - FromB == ToB: pure deletion of A[FromA:ToA].
//
// Invariants:
//   - Spans are sorted and pairwise disjoint on both sides.
//   - Every offset falls on a UTF-8 code point boundary.
//   - Gap text is identical: A[prev.ToA:cur.FromA] == B[prev.ToB:cur.FromB].
//
// Getting a diff: Diff returns a minimal edit script (Myers' O(ND) algorithm, with prefix/suffix stripping and a half-match heuristic for speed). PresentableDiff
// additionally aligns spans to word and line boundaries and merges nearby spans, which is what humans want to look at:
//
//	spans, precise := diff.PresentableDiff(oldText, newText, diff.Config{ScanLimit: diff.DefaultScanLimit})
//
// Budgets: Config.ScanLimit and Config.Timeout bound the work. When a budget runs out the engine switches to a cheaper substring-seeded search, and, past a hard
// ceiling, reports the remaining region as a single span. The result is still a correct diff; the returned precise flag is false.
//
// Concurrency: every call owns its scratch state. Calls may run concurrently.
package diff
