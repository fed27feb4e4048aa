package cas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBytesHasher(t *testing.T) {
	h1 := NewBytesHasher([]byte("hello"))
	h2 := NewBytesHasher([]byte("hello"))
	h3 := NewBytesHasher([]byte("hello!"))

	require.Equal(t, h1.Hash(), h2.Hash())
	require.NotEqual(t, h1.Hash(), h3.Hash())
	require.Len(t, h1.Hash(), 64)

	// Part boundaries are part of the identity.
	require.NotEqual(t, NewBytesHasher([]byte("ab"), []byte("c")).Hash(), NewBytesHasher([]byte("a"), []byte("bc")).Hash())
}

func TestStoreRetrieve(t *testing.T) {
	db := &DB{AbsRoot: t.TempDir()}
	h := NewBytesHasher([]byte("old"), []byte("new"))

	type rec struct {
		N    int
		Name string
	}

	var got rec
	found, err := db.Retrieve(h, "ns-1", &got)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, db.Store(h, "ns-1", rec{N: 3, Name: "x"}))
	found, err = db.Retrieve(h, "ns-1", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec{N: 3, Name: "x"}, got)

	// Sharded layout.
	_, err = os.Stat(filepath.Join(db.AbsRoot, "ns-1", h.Hash()[:2], h.Hash()[2:]))
	require.NoError(t, err)

	// Namespaces are separate.
	found, err = db.Retrieve(h, "ns-2", &got)
	require.NoError(t, err)
	require.False(t, found)

	// Overwrite, and storing the same record again is a no-op.
	require.NoError(t, db.Store(h, "ns-1", rec{N: 4}))
	require.NoError(t, db.Store(h, "ns-1", rec{N: 4}))
	found, err = db.Retrieve(h, "ns-1", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec{N: 4}, got)

	entries, err := os.ReadDir(filepath.Join(db.AbsRoot, "ns-1", h.Hash()[:2]))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestRetrieve_CorruptRecord(t *testing.T) {
	db := &DB{AbsRoot: t.TempDir()}
	h := NewBytesHasher([]byte("x"))
	p := filepath.Join(db.AbsRoot, "ns", h.Hash()[:2], h.Hash()[2:])
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))

	require.NoError(t, os.WriteFile(p, []byte(`{"kind":"other","metadata":{}}`), 0o644))
	var v map[string]any
	_, err := db.Retrieve(h, "ns", &v)
	require.ErrorContains(t, err, "unknown record kind")

	require.NoError(t, os.WriteFile(p, []byte(`not json`), 0o644))
	_, err = db.Retrieve(h, "ns", &v)
	require.Error(t, err)
}

func TestInvalidArguments(t *testing.T) {
	h := NewBytesHasher([]byte("x"))
	var v any

	require.Error(t, (&DB{}).Store(h, "ns", 1))
	db := &DB{AbsRoot: t.TempDir()}
	require.Error(t, db.Store(nil, "ns", 1))
	require.Error(t, db.Store(h, "", 1))
	require.Error(t, db.Store(h, "a/b", 1))
	require.Error(t, db.Store(h, "..", 1))
	require.Error(t, db.Store(stringHasher("ab"), "ns", 1))
	_, err := db.Retrieve(stringHasher(`a\bc`), "ns", &v)
	require.Error(t, err)
}
