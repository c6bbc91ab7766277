package corpus

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
	"github.com/focory-beep/sermon-slide-generator/core/scripture"
)

func TestFetchVerseTextRange(t *testing.T) {
	lib := newTestLibrary(t)

	text, err := lib.FetchVerseText("창세기", 1, 27, 31)
	require.NoError(t, err)

	var want []string
	for v := 27; v <= 31; v++ {
		want = append(want, fmt.Sprintf("%d 창세기 1장 %d절 말씀", v, v))
	}
	assert.Equal(t, strings.Join(want, " "), text)
}

func TestFetchVerseTextWholeChapter(t *testing.T) {
	lib := newTestLibrary(t)

	text, err := lib.FetchVerseText("창", 2, 1, scripture.WholeChapter)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "1 창세기 2장 1절 말씀"))
	assert.True(t, strings.HasSuffix(text, "6 창세기 2장 6절 말씀"))
	assert.Equal(t, 6, strings.Count(text, "말씀"))
}

func TestFetchVerseTextAnnotationsAndWhitespace(t *testing.T) {
	lib := newTestLibrary(t)

	text, err := lib.FetchVerseText("John", 3, 16, 17)
	require.NoError(t, err)
	assert.Equal(t,
		"16 하나님이 세상을 이처럼 1)사랑하사 독생자를 주셨으니 17 하나님이 그 아들을 세상에 보내신 것은",
		text)
	assert.NotContains(t, text, "[[")
	assert.NotContains(t, text, "<")
}

func TestFetchVerseTextInvertedRange(t *testing.T) {
	lib := newTestLibrary(t)

	text, err := lib.FetchVerseText("창세기", 1, 18, 12)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestFetchVerseTextFuzzyChapterFile(t *testing.T) {
	lib := newTestLibrary(t)

	text, err := lib.FetchVerseText("시편", 117, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "1 시편 117편 1절 말씀 2 시편 117편 2절 말씀", text)
}

func TestFetchVerseTextIsIdempotent(t *testing.T) {
	lib := newTestLibrary(t)

	first, err := lib.FetchVerseText("요한복음", 3, 16, 18)
	require.NoError(t, err)
	second, err := lib.FetchVerseText("요한복음", 3, 16, 18)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFetchVerseTextNotFound(t *testing.T) {
	lib := newTestLibrary(t)

	tests := []struct {
		name    string
		book    string
		chapter int
	}{
		{"unknown book", "Hezekiah", 1},
		{"book directory missing", "출애굽기", 20},
		{"chapter file missing", "창세기", 50},
		{"chapter file absent among numbered files", "창세기", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lib.FetchVerseText(tt.book, tt.chapter, 1, 3)
			require.Error(t, err)
			assert.ErrorIs(t, err, serrors.ErrNotFound)
		})
	}
}

func TestFetchVerseTextMissingRoot(t *testing.T) {
	missing := NewContentRoot(filepath.Join(t.TempDir(), "does-not-exist"))
	lib := NewLibrary(nil, NewMarkdownBible(missing), NewMarkdownHymnal(missing))

	_, err := lib.FetchVerseText("창세기", 1, 1, 1)
	assert.ErrorIs(t, err, serrors.ErrNotFound)

	_, err = lib.FetchSong(1)
	assert.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestFetchPassage(t *testing.T) {
	lib := newTestLibrary(t)

	c, err := lib.Registry().Parse("요3:16-17", scripture.Korean)
	require.NoError(t, err)

	p, err := lib.FetchPassage(c)
	require.NoError(t, err)
	assert.Equal(t, "요한복음 3:16-17", p.Reference)
	require.Len(t, p.Verses, 2)
	assert.Equal(t, 16, p.Verses[0].Number)
	assert.Equal(t, Digest(p.Text), p.Digest)
	assert.False(t, p.Empty())

	unresolved, err := lib.Registry().Parse("xyz3:16", scripture.Korean)
	require.Error(t, err)
	_, err = lib.FetchPassage(unresolved)
	assert.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestResolveCitation(t *testing.T) {
	lib := newTestLibrary(t)

	res, err := lib.ResolveCitation("창1", scripture.Korean)
	require.NoError(t, err)
	assert.Equal(t, "창세기", res.Book)
	assert.Equal(t, 1, res.Chapter)
	assert.Empty(t, res.VerseRangeRaw)

	res, err = lib.ResolveCitation("xyz3:16", scripture.English)
	assert.ErrorIs(t, err, serrors.ErrUnresolvedBook)
	assert.False(t, res.Resolved)
	assert.Equal(t, "xyz", res.Book)
	assert.Equal(t, "xyz3:16", res.Original)

	_, err = lib.ResolveCitation("hello", scripture.English)
	assert.ErrorIs(t, err, serrors.ErrInvalidFormat)
}

func TestFetchSong(t *testing.T) {
	lib := newTestLibrary(t)

	song, err := lib.FetchSong(1)
	require.NoError(t, err)
	assert.Equal(t, "만복의 근원 하나님", song.Title)
	assert.Equal(t, []string{
		"만복의 근원 하나님\n온 백성 찬송 드리고",
		"저 천사여 찬송하세\n찬송을 드리세",
	}, song.Strophes)
	assert.Equal(t, "아멘 아멘", song.Refrain)

	song, err = lib.FetchSong(10)
	require.NoError(t, err)
	assert.Equal(t, "찬송가 10장", song.Title)
	assert.Equal(t, []string{"전능왕 오셔서"}, song.Strophes)
	assert.Equal(t, "후렴 주 이름 찬송\n영원히", song.Refrain)

	_, err = lib.FetchSong(3)
	assert.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestFetchSongOutOfRange(t *testing.T) {
	lib := newTestLibrary(t)

	for _, id := range []int{0, -1, MaxSongID + 1} {
		_, err := lib.FetchSong(id)
		assert.ErrorIs(t, err, serrors.ErrInvalidInput, "id %d", id)
	}
}

func TestNilSources(t *testing.T) {
	lib := NewLibrary(nil, nil, nil)

	_, err := lib.FetchVerseText("창세기", 1, 1, 1)
	assert.ErrorIs(t, err, serrors.ErrNotFound)
	_, err = lib.FetchSong(1)
	assert.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestFetchVerses(t *testing.T) {
	lib := newTestLibrary(t)

	p, err := lib.FetchVerses("John", 3, 17, scripture.WholeChapter)
	require.NoError(t, err)
	assert.Equal(t, "요한복음 3:17-", p.Reference)
	assert.True(t, p.Range.Whole)
	assert.Equal(t, 17, p.Range.Start)
	require.NotEmpty(t, p.Verses)
	assert.Equal(t, 17, p.Verses[0].Number)

	p, err = lib.FetchVerses("창", 1, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, "창세기 1:3", p.Reference)
	assert.Equal(t, "3 창세기 1장 3절 말씀", p.Text)

	_, err = lib.FetchVerses("Hezekiah", 1, 1, 1)
	assert.ErrorIs(t, err, serrors.ErrNotFound)

	_, err = lib.FetchVerses("창세기", 0, 1, 1)
	assert.ErrorIs(t, err, serrors.ErrInvalidInput)
}
