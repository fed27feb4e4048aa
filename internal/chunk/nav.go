package chunk

// Side selects document A or B.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideA {
		return "a"
	}
	return "b"
}

// from returns the start of c in the document selected by side.
func (s Side) from(c Chunk) int {
	if s == SideA {
		return c.FromA
	}
	return c.FromB
}

// Next returns the first chunk starting after pos in the document selected by side. Past the last chunk it wraps around to the first. ok is false if chunks is
// empty.
func Next(chunks []Chunk, pos int, side Side) (c Chunk, ok bool) {
	if len(chunks) == 0 {
		return Chunk{}, false
	}
	for _, c := range chunks {
		if side.from(c) > pos {
			return c, true
		}
	}
	return chunks[0], true
}

// Prev returns the last chunk starting before pos in the document selected by side. If pos is inside a chunk, that chunk is returned. Before the first chunk it
// wraps around to the last. ok is false if chunks is empty.
func Prev(chunks []Chunk, pos int, side Side) (c Chunk, ok bool) {
	if len(chunks) == 0 {
		return Chunk{}, false
	}
	for i := len(chunks) - 1; i >= 0; i-- {
		if side.from(chunks[i]) < pos {
			return chunks[i], true
		}
	}
	return chunks[len(chunks)-1], true
}
