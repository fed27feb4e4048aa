package chunk

// Replacement replaces [From, To) of a document with Text.
type Replacement struct {
	From int
	To   int
	Text string
}

// Apply returns s with r applied.
func (r Replacement) Apply(s string) string {
	return s[:r.From] + r.Text + s[r.To:]
}

// Edit returns the Edit describing r, for UpdateA or UpdateB after r has been applied.
func (r Replacement) Edit() Edit {
	return Edit{FromOld: r.From, ToOld: r.To, FromNew: r.From, ToNew: r.From + len(r.Text)}
}

// Accept returns the replacement on a that makes c's lines in a equal to its lines in b.
func Accept(a, b Doc, c Chunk) Replacement {
	return Replacement{From: c.FromA, To: c.ToA, Text: b.Slice(c.FromB, c.ToB)}
}

// Revert returns the replacement on b that makes c's lines in b equal to its lines in a.
func Revert(a, b Doc, c Chunk) Replacement {
	return Replacement{From: c.FromB, To: c.ToB, Text: a.Slice(c.FromA, c.ToA)}
}
