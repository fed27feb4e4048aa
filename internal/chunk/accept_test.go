package chunk

import (
	"math/rand/v2"
	"testing"

	"github.com/codalotl/mergediff/internal/diff"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccept(t *testing.T) {
	a, b := NewText("line1\nline2\nline3"), NewText("line1\nlineX\nline3")
	chunks := Build(a, b, diff.Config{})
	require.Len(t, chunks, 1)

	r := Accept(a, b, chunks[0])
	assert.Equal(t, Replacement{From: 6, To: 12, Text: "lineX\n"}, r)
	assert.Equal(t, b.String(), r.Apply(a.String()))
	assert.Equal(t, Edit{FromOld: 6, ToOld: 12, FromNew: 6, ToNew: 12}, r.Edit())

	r = Revert(a, b, chunks[0])
	assert.Equal(t, Replacement{From: 6, To: 12, Text: "line2\n"}, r)
	assert.Equal(t, a.String(), r.Apply(b.String()))
}

func TestAcceptRevert_All(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	for i := 0; i < 100; i++ {
		a := randomDoc(rng, 1+rng.IntN(20))
		b := editDoc(rng, a, 1+rng.IntN(4))
		ta, tb := NewText(a), NewText(b)
		chunks := Build(ta, tb, diff.Config{})

		// Back to front, so earlier positions stay valid.
		accepted, reverted := a, b
		for j := len(chunks) - 1; j >= 0; j-- {
			accepted = Accept(ta, tb, chunks[j]).Apply(accepted)
			reverted = Revert(ta, tb, chunks[j]).Apply(reverted)
		}
		require.Equal(t, b, accepted, "a=%q b=%q", a, b)
		require.Equal(t, a, reverted, "a=%q b=%q", a, b)
	}
}

func TestAccept_ThenUpdate(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 6))
	for i := 0; i < 50; i++ {
		a := randomDoc(rng, 1+rng.IntN(20))
		b := editDoc(rng, a, 1+rng.IntN(4))
		ta, tb := NewText(a), NewText(b)
		chunks := Build(ta, tb, diff.Config{})
		if len(chunks) == 0 {
			continue
		}

		c := chunks[rng.IntN(len(chunks))]
		r := Accept(ta, tb, c)
		na := NewText(r.Apply(a))
		got := UpdateA(chunks, na, tb, []Edit{r.Edit()}, diff.Config{})
		if d := cmp.Diff(Build(na, tb, diff.Config{}), got); d != "" {
			t.Fatalf("a=%q b=%q chunk=%v (-build +update):\n%s", a, b, c, d)
		}

		r = Revert(ta, tb, c)
		nb := NewText(r.Apply(b))
		got = UpdateB(chunks, ta, nb, []Edit{r.Edit()}, diff.Config{})
		if d := cmp.Diff(Build(ta, nb, diff.Config{}), got); d != "" {
			t.Fatalf("a=%q b=%q chunk=%v (-build +update):\n%s", a, b, c, d)
		}
	}
}
