package corpus

import (
	"fmt"
	"sort"
	"strconv"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
	"github.com/focory-beep/sermon-slide-generator/core/scripture"
)

// ScriptureSource returns the verses of one chapter that fall inside a range.
// A chapter that exists but has no verses in the range yields an empty slice
// and no error.
type ScriptureSource interface {
	Verses(book *scripture.CanonicalBook, chapter int, r scripture.VerseRange) ([]Verse, error)
}

// HymnSource returns one song by number.
type HymnSource interface {
	Song(id int) (*Song, error)
}

// ChapterLister enumerates the chapters a source holds for a book.
type ChapterLister interface {
	Chapters(book *scripture.CanonicalBook) ([]int, error)
}

// SongLister enumerates the song numbers a source holds.
type SongLister interface {
	SongIDs() ([]int, error)
}

func chapterID(book *scripture.CanonicalBook, chapter int) string {
	return fmt.Sprintf("%s %d", book.ID, chapter)
}

// MarkdownBible reads chapters from a directory of book directories.
type MarkdownBible struct {
	root ContentRoot
}

// NewMarkdownBible returns a source over root, which holds the book
// directories directly.
func NewMarkdownBible(root ContentRoot) *MarkdownBible {
	return &MarkdownBible{root: root}
}

// Root returns the content root the source reads.
func (m *MarkdownBible) Root() ContentRoot {
	return m.root
}

// ChapterPath locates the file of a chapter.
func (m *MarkdownBible) ChapterPath(book *scripture.CanonicalBook, chapter int) (string, error) {
	id := chapterID(book, chapter)
	dir, err := Locate(m.root, ".", BookDirStrategy(book), "book", book.ID)
	if err != nil {
		return "", err
	}
	return Locate(m.root, dir, ChapterFileStrategy(book, chapter), "chapter", id)
}

// Verses implements ScriptureSource.
func (m *MarkdownBible) Verses(book *scripture.CanonicalBook, chapter int, r scripture.VerseRange) ([]Verse, error) {
	name, err := m.ChapterPath(book, chapter)
	if err != nil {
		return nil, err
	}
	if r.Inverted() {
		return nil, nil
	}

	f, err := m.root.openText(name, "chapter", chapterID(book, chapter))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	verses, err := ExtractVerses(f, r)
	if err != nil {
		return nil, withPath(err, m.root.displayPath(name))
	}
	return verses, nil
}

// Chapters implements ChapterLister.
func (m *MarkdownBible) Chapters(book *scripture.CanonicalBook) ([]int, error) {
	dir, err := Locate(m.root, ".", BookDirStrategy(book), "book", book.ID)
	if err != nil {
		return nil, err
	}
	entries, err := m.root.readDir(dir, "book", book.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var chapters []int
	for _, e := range entries {
		if e.IsDir() || !isMarkdown(e.Name()) {
			continue
		}
		if n, ok := trailingNumber(entryName(e)); ok && n > 0 && !seen[n] {
			seen[n] = true
			chapters = append(chapters, n)
		}
	}
	sort.Ints(chapters)
	return chapters, nil
}

// MarkdownHymnal reads songs from a flat directory of song files.
type MarkdownHymnal struct {
	root ContentRoot
}

// NewMarkdownHymnal returns a source over root, which holds the song files
// directly.
func NewMarkdownHymnal(root ContentRoot) *MarkdownHymnal {
	return &MarkdownHymnal{root: root}
}

// Root returns the content root the source reads.
func (m *MarkdownHymnal) Root() ContentRoot {
	return m.root
}

// Song implements HymnSource.
func (m *MarkdownHymnal) Song(id int) (*Song, error) {
	sid := strconv.Itoa(id)
	name, err := Locate(m.root, ".", SongFileStrategy(id), "song", sid)
	if err != nil {
		return nil, err
	}

	f, err := m.root.openText(name, "song", sid)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	song, err := ExtractSong(f, id)
	if err != nil {
		return nil, withPath(err, m.root.displayPath(name))
	}
	return song, nil
}

// SongIDs implements SongLister.
func (m *MarkdownHymnal) SongIDs() ([]int, error) {
	entries, err := m.root.readDir(".", "hymnal", m.root.String())
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var ids []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n, ok := songNumber(entryName(e))
		if !ok && isMarkdown(e.Name()) {
			n, ok = trailingNumber(entryName(e))
		}
		if ok && n >= 1 && n <= MaxSongID && !seen[n] {
			seen[n] = true
			ids = append(ids, n)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// withPath fills in the file path of a StorageError raised while scanning.
func withPath(err error, name string) error {
	var se *serrors.StorageError
	if serrors.As(err, &se) && se.Path == "" {
		se.Path = name
	}
	return err
}

var (
	_ ScriptureSource = (*MarkdownBible)(nil)
	_ ChapterLister   = (*MarkdownBible)(nil)
	_ HymnSource      = (*MarkdownHymnal)(nil)
	_ SongLister      = (*MarkdownHymnal)(nil)
)
