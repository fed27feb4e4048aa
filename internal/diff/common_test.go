package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 0},
		{"abc", "abc", 3},
		{"abcdef", "abcxyz", 3},
		{"abc", "abcdef", 3},
		{"xbc", "abc", 0},
		{"héllo", "hèllo", 1}, // é and è share their first byte
		{"é", "è", 0},
		{"世界", "世纪", 3},
	}
	for _, tc := range tests {
		got := commonPrefix(tc.a, 0, len(tc.a), tc.b, 0, len(tc.b))
		assert.Equal(t, tc.want, got, "a=%q b=%q", tc.a, tc.b)
	}
}

func TestCommonPrefix_Range(t *testing.T) {
	assert.Equal(t, 2, commonPrefix("xxabc", 2, 5, "abd", 0, 3))
	assert.Equal(t, 1, commonPrefix("xxabc", 2, 3, "abd", 0, 3))
}

func TestCommonPrefix_Long(t *testing.T) {
	long := make([]byte, 5000)
	for i := range long {
		long[i] = byte('a' + i%26)
	}
	a := string(long) + "X"
	b := string(long) + "Y"
	assert.Equal(t, 5000, commonPrefix(a, 0, len(a), b, 0, len(b)))
	assert.Equal(t, 4999, commonPrefix(a, 1, len(a), b, 1, len(b)))
}

func TestCommonSuffix(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 3},
		{"xyzdef", "abcdef", 3},
		{"def", "abcdef", 3},
		{"abx", "abc", 0},
		{"héllo", "hèllo", 3},
		{"é", "©", 0}, // same trailing byte, different code points
		{"aé", "bé", 2},
	}
	for _, tc := range tests {
		got := commonSuffix(tc.a, 0, len(tc.a), tc.b, 0, len(tc.b))
		assert.Equal(t, tc.want, got, "a=%q b=%q", tc.a, tc.b)
	}
}

func TestRuneHelpers(t *testing.T) {
	s := "a世b"
	assert.True(t, validIndex(s, 0))
	assert.True(t, validIndex(s, 1))
	assert.False(t, validIndex(s, 2))
	assert.True(t, validIndex(s, 4))
	assert.True(t, validIndex(s, len(s)))

	assert.Equal(t, 4, nextRuneStart(s, 2))
	assert.Equal(t, 1, prevRuneStart(s, 3))
	assert.Equal(t, 4, prevRuneStart(s, 4))

	assert.True(t, singleRune("世"))
	assert.True(t, singleRune("a"))
	assert.False(t, singleRune(""))
	assert.False(t, singleRune("ab"))
}

func TestChunkSize(t *testing.T) {
	assert.Equal(t, 1, chunkSize(0, 10))
	assert.Equal(t, 1, chunkSize(1, 10))
	assert.Equal(t, 4, chunkSize(3, 10))
	assert.Equal(t, 8, chunkSize(20, 8))
	assert.Equal(t, 1024, chunkSize(1000, 1000))
}
