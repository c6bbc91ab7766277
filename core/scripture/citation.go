package scripture

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
)

// Citation is a parsed (book, chapter, verse-range) reference.
type Citation struct {
	// Input is the trimmed citation as given.
	Input string
	// Language is the table the book token was resolved in.
	Language Language
	// Token is the book token as written, including any numeric prefix ("요", "1Cor").
	Token string
	// Book is nil when Token is not registered for Language.
	Book *CanonicalBook
	// Chapter is always positive.
	Chapter int
	// VersesRaw is the verse token ("16", "28-30"), empty for a whole chapter.
	VersesRaw string
	// Verses is the parsed verse interval.
	Verses VerseRange
}

// Resolution is the value handed to the surrounding service layer.
type Resolution struct {
	Original      string `json:"original"`
	Book          string `json:"book"`
	BookAbbrev    string `json:"book_abbrev"`
	Chapter       int    `json:"chapter"`
	VerseRangeRaw string `json:"verses,omitempty"`
	Formatted     string `json:"formatted"`
	Resolved      bool   `json:"resolved"`
}

// Parse parses a citation and resolves its book in lang.
//
// A string that does not match the grammar yields an *errors.InvalidFormatError.
// A well-formed citation whose book token is not registered yields a Citation
// with a nil Book together with an *errors.UnresolvedBookError, so callers can
// still display the raw token.
func (r *Registry) Parse(raw string, lang Language) (*Citation, error) {
	input := norm.NFC.String(strings.TrimSpace(raw))
	if input == "" {
		return nil, serrors.NewInvalidFormat(raw, "empty citation")
	}

	parsed, err := citationParser.ParseString("", input)
	if err != nil {
		return nil, serrors.NewInvalidFormat(input, err.Error())
	}
	if parsed.Chapter < 1 {
		return nil, serrors.NewInvalidFormat(input, "chapter must be positive")
	}

	c := &Citation{
		Input:    input,
		Language: lang,
		Token:    parsed.Book,
		Chapter:  parsed.Chapter,
		Verses:   WholeChapterRange(),
	}
	if parsed.Prefix != nil {
		c.Token = strconv.Itoa(*parsed.Prefix) + parsed.Book
	}

	if v := parsed.Verses; v != nil {
		if v.Start < 1 || (v.End != nil && *v.End < 1) {
			return nil, serrors.NewInvalidFormat(input, "verse numbers must be positive")
		}
		c.Verses = VerseRange{Start: v.Start, End: v.Start}
		c.VersesRaw = strconv.Itoa(v.Start)
		if v.End != nil {
			c.Verses.End = *v.End
			c.VersesRaw += "-" + strconv.Itoa(*v.End)
		}
	}

	book, ok := r.Resolve(c.Token, lang)
	if !ok {
		return c, serrors.NewUnresolvedBook(c.Token, input, lang.String())
	}
	c.Book = book
	return c, nil
}

// BookName returns the canonical name in the citation's language, or the raw
// token when the book did not resolve.
func (c *Citation) BookName() string {
	if c.Book == nil {
		return c.Token
	}
	return c.Book.Name(c.Language)
}

// Formatted renders the citation for display, e.g. "요한복음 3:16".
func (c *Citation) Formatted() string {
	return FormatReference(c.BookName(), c.Chapter, c.VersesRaw)
}

// Resolution projects the citation for the service layer.
func (c *Citation) Resolution() Resolution {
	return Resolution{
		Original:      c.Input,
		Book:          c.BookName(),
		BookAbbrev:    c.Token,
		Chapter:       c.Chapter,
		VerseRangeRaw: c.VersesRaw,
		Formatted:     c.Formatted(),
		Resolved:      c.Book != nil,
	}
}

// FormatReference renders "book", "book chapter" or "book chapter:verses".
func FormatReference(book string, chapter int, verses string) string {
	if chapter <= 0 {
		return book
	}
	if verses == "" {
		return fmt.Sprintf("%s %d", book, chapter)
	}
	return fmt.Sprintf("%s %d:%s", book, chapter, verses)
}
