package scripture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	books := reg.Books()
	require.Len(t, books, BookCount)
	for i, b := range books {
		assert.Equal(t, i+1, b.Ordinal, b.ID)
		assert.NotEmpty(t, b.FileStem, b.ID)
		for _, lang := range Languages {
			assert.NotEmpty(t, b.Name(lang), "%s %s", b.ID, lang)
		}
	}
}

func TestResolve(t *testing.T) {
	reg := MustNewRegistry()

	tests := []struct {
		abbrev      string
		lang        Language
		wantOrdinal int
		wantName    string
	}{
		{"창", Korean, 1, "창세기"},
		{"창세기", Korean, 1, "창세기"},
		{"요", Korean, 43, "요한복음"},
		{"요일", Korean, 62, "요한일서"},
		{"계시록", Korean, 66, "요한계시록"},
		{"gen", English, 1, "Genesis"},
		{"Genesis", English, 1, "Genesis"},
		{"PS", English, 19, "Psalms"},
		{"1 Samuel", English, 9, "1 Samuel"},
		{"1samuel", English, 9, "1 Samuel"},
		{"Song of Solomon", English, 22, "Song of Solomon"},
		{"1mo", German, 1, "1. Mose"},
		{"1. Mose", German, 1, "1. Mose"},
		{"koh", German, 21, "Prediger"},
		{"OFFB", German, 66, "Offenbarung"},
		{"1Kön", German, 11, "1. Könige"},
	}

	for _, tt := range tests {
		t.Run(tt.lang.String()+"/"+tt.abbrev, func(t *testing.T) {
			book, ok := reg.Resolve(tt.abbrev, tt.lang)
			require.True(t, ok)
			assert.Equal(t, tt.wantOrdinal, book.Ordinal)
			assert.Equal(t, tt.wantName, book.Name(tt.lang))
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	reg := MustNewRegistry()

	_, ok := reg.Resolve("xyz", English)
	assert.False(t, ok)

	// Korean tables are not consulted for Latin languages and vice versa.
	_, ok = reg.Resolve("창", English)
	assert.False(t, ok)
	_, ok = reg.Resolve("gen", Korean)
	assert.False(t, ok)

	_, ok = reg.Resolve("gen", Language(42))
	assert.False(t, ok)
}

func TestResolveNormalizesDecomposedHangul(t *testing.T) {
	reg := MustNewRegistry()

	nfd := norm.NFD.String("요한복음")
	require.NotEqual(t, "요한복음", nfd)

	book, ok := reg.Resolve(nfd, Korean)
	require.True(t, ok)
	assert.Equal(t, 43, book.Ordinal)
}

func TestOrdinalsAreFixed(t *testing.T) {
	reg := MustNewRegistry()

	// Ordinals follow the canon, not any sort order of the names.
	cases := map[int]string{1: "Gen", 19: "Ps", 39: "Mal", 40: "Matt", 43: "John", 66: "Rev"}
	for ordinal, id := range cases {
		book, ok := reg.ByOrdinal(ordinal)
		require.True(t, ok)
		assert.Equal(t, id, book.ID)
	}

	_, ok := reg.ByOrdinal(0)
	assert.False(t, ok)
	_, ok = reg.ByOrdinal(67)
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	reg := MustNewRegistry()

	book, lang, ok := reg.Find("요한복음")
	require.True(t, ok)
	assert.Equal(t, Korean, lang)
	assert.Equal(t, "John", book.ID)

	book, lang, ok = reg.Find("Johannes")
	require.True(t, ok)
	assert.Equal(t, German, lang)
	assert.Equal(t, "John", book.ID)

	_, _, ok = reg.Find("Hezekiah")
	assert.False(t, ok)
}

func TestAbbreviationsIsACopy(t *testing.T) {
	reg := MustNewRegistry()
	book, _ := reg.ByOrdinal(1)

	abbrevs := book.Abbreviations(Korean)
	require.NotEmpty(t, abbrevs)
	abbrevs[0] = "changed"

	assert.Equal(t, "창", book.Abbreviations(Korean)[0])
}
