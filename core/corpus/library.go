package corpus

import (
	"strconv"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
	"github.com/focory-beep/sermon-slide-generator/core/scripture"
)

// Passage is the text of one resolved citation.
type Passage struct {
	Reference string                   `json:"reference"`
	Book      *scripture.CanonicalBook `json:"-"`
	Chapter   int                      `json:"chapter"`
	Range     scripture.VerseRange     `json:"range"`
	Verses    []Verse                  `json:"verses"`
	Text      string                   `json:"text"`
	Digest    string                   `json:"digest"`
}

// Empty reports whether the range selected no verses.
func (p *Passage) Empty() bool {
	return len(p.Verses) == 0
}

// Library answers the three core requests: resolving a citation, fetching
// verse text and fetching a song. It holds no mutable state.
type Library struct {
	registry *scripture.Registry
	bible    ScriptureSource
	hymns    HymnSource
}

// NewLibrary wires a registry to its sources. Either source may be nil, in
// which case every lookup against it reports NotFound.
func NewLibrary(registry *scripture.Registry, bible ScriptureSource, hymns HymnSource) *Library {
	if registry == nil {
		registry = scripture.MustNewRegistry()
	}
	return &Library{registry: registry, bible: bible, hymns: hymns}
}

// Registry returns the book registry the library resolves against.
func (l *Library) Registry() *scripture.Registry {
	return l.registry
}

// ResolveCitation parses a citation in lang. For an unknown book it returns
// the partial resolution, carrying the raw token, along with an
// *errors.UnresolvedBookError.
func (l *Library) ResolveCitation(text string, lang scripture.Language) (scripture.Resolution, error) {
	c, err := l.registry.Parse(text, lang)
	if c == nil {
		return scripture.Resolution{}, err
	}
	return c.Resolution(), err
}

// FetchVerseText returns verses start..end of a chapter as one string, each
// verse prefixed with its number. book may be a name or abbreviation in any
// language. An end of scripture.WholeChapter or more reads to the end of the
// chapter. A chapter that exists but has no verses in the range yields "".
func (l *Library) FetchVerseText(book string, chapter, start, end int) (string, error) {
	p, err := l.FetchVerses(book, chapter, start, end)
	if err != nil {
		return "", err
	}
	return p.Text, nil
}

// FetchVerses is FetchVerseText returning the whole Passage.
func (l *Library) FetchVerses(book string, chapter, start, end int) (*Passage, error) {
	b, _, ok := l.registry.Find(book)
	if !ok {
		return nil, serrors.NewNotFound("book", book)
	}
	r := scripture.VerseRange{Start: start, End: end}
	if end >= scripture.WholeChapter {
		r.Whole = true
	}
	return l.fetch(b, chapter, r)
}

// FetchPassage fetches the text of a parsed citation.
func (l *Library) FetchPassage(c *scripture.Citation) (*Passage, error) {
	if c == nil || c.Book == nil {
		token := ""
		if c != nil {
			token = c.Token
		}
		return nil, serrors.NewNotFound("book", token)
	}
	p, err := l.fetch(c.Book, c.Chapter, c.Verses)
	if err != nil {
		return nil, err
	}
	p.Reference = c.Formatted()
	return p, nil
}

func (l *Library) fetch(book *scripture.CanonicalBook, chapter int, r scripture.VerseRange) (*Passage, error) {
	if chapter < 1 {
		return nil, serrors.NewValidation("chapter", strconv.Itoa(chapter), "must be positive")
	}
	if r.Start < 1 {
		return nil, serrors.NewValidation("verse", strconv.Itoa(r.Start), "must be positive")
	}
	if l.bible == nil {
		return nil, serrors.NewNotFound("chapter", chapterID(book, chapter))
	}

	verses, err := l.bible.Verses(book, chapter, r)
	if err != nil {
		return nil, err
	}
	text := JoinVerses(verses)
	return &Passage{
		Reference: scripture.FormatReference(book.Name(scripture.Korean), chapter, r.String()),
		Book:      book,
		Chapter:   chapter,
		Range:     r,
		Verses:    verses,
		Text:      text,
		Digest:    Digest(text),
	}, nil
}

// FetchSong returns song id, which must lie in 1..MaxSongID.
func (l *Library) FetchSong(id int) (*Song, error) {
	if id < 1 || id > MaxSongID {
		return nil, serrors.NewValidation("id", strconv.Itoa(id), "must be between 1 and "+strconv.Itoa(MaxSongID))
	}
	if l.hymns == nil {
		return nil, serrors.NewNotFound("song", strconv.Itoa(id))
	}
	return l.hymns.Song(id)
}
