package corpus

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
	"github.com/focory-beep/sermon-slide-generator/core/scripture"
)

// Zefania XML element paths.
var (
	zefBooks    = xpath.MustCompile("//BIBLEBOOK")
	zefChapters = xpath.MustCompile("CHAPTER")
	zefVerses   = xpath.MustCompile("VERS")
	zefTitle    = xpath.MustCompile("/XMLBIBLE/INFORMATION/title")
)

// skippedVerseElements are children of VERS that are not part of the text.
var skippedVerseElements = map[string]bool{
	"NOTE": true,
	"BR":   true,
	"XREF": true,
}

// XMLBible serves verses from a Zefania XML document. The document is parsed
// once and never modified.
type XMLBible struct {
	title string
	books map[int]*xmlquery.Node
}

// OpenXMLBible parses a Zefania XML file.
func OpenXMLBible(name string) (*XMLBible, error) {
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &serrors.NotFoundError{Resource: "bible", ID: name, Err: err}
		}
		return nil, serrors.NewStorage("open", name, err)
	}
	defer f.Close()

	bible, err := ParseXMLBible(f)
	if err != nil {
		return nil, withPath(err, name)
	}
	return bible, nil
}

// ParseXMLBible parses a Zefania XML document.
func ParseXMLBible(r io.Reader) (*XMLBible, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, serrors.NewStorage("parse", "", err)
	}

	b := &XMLBible{books: make(map[int]*xmlquery.Node)}
	if t := xmlquery.QuerySelector(doc, zefTitle); t != nil {
		b.title = strings.TrimSpace(t.InnerText())
	}
	for _, book := range xmlquery.QuerySelectorAll(doc, zefBooks) {
		n, ok := intAttr(book, "bnumber")
		if !ok {
			continue
		}
		if _, dup := b.books[n]; !dup {
			b.books[n] = book
		}
	}
	return b, nil
}

// Title returns the translation title from the document header.
func (b *XMLBible) Title() string {
	return b.title
}

func (b *XMLBible) chapter(book *scripture.CanonicalBook, chapter int) (*xmlquery.Node, error) {
	bookNode, ok := b.books[book.Ordinal]
	if !ok {
		return nil, serrors.NewNotFound("book", book.ID)
	}
	for _, c := range xmlquery.QuerySelectorAll(bookNode, zefChapters) {
		if n, ok := intAttr(c, "cnumber"); ok && n == chapter {
			return c, nil
		}
	}
	return nil, serrors.NewNotFound("chapter", chapterID(book, chapter))
}

// Verses implements ScriptureSource.
func (b *XMLBible) Verses(book *scripture.CanonicalBook, chapter int, r scripture.VerseRange) ([]Verse, error) {
	c, err := b.chapter(book, chapter)
	if err != nil {
		return nil, err
	}
	if r.Inverted() {
		return nil, nil
	}

	var verses []Verse
	for _, v := range xmlquery.QuerySelectorAll(c, zefVerses) {
		n, ok := intAttr(v, "vnumber")
		if !ok {
			continue
		}
		if r.Past(n) {
			break
		}
		if r.Contains(n) {
			verses = append(verses, Verse{Number: n, Text: CollapseSpace(verseText(v))})
		}
	}
	return verses, nil
}

// Chapters implements ChapterLister.
func (b *XMLBible) Chapters(book *scripture.CanonicalBook) ([]int, error) {
	bookNode, ok := b.books[book.Ordinal]
	if !ok {
		return nil, serrors.NewNotFound("book", book.ID)
	}
	var chapters []int
	for _, c := range xmlquery.QuerySelectorAll(bookNode, zefChapters) {
		if n, ok := intAttr(c, "cnumber"); ok {
			chapters = append(chapters, n)
		}
	}
	return chapters, nil
}

// verseText concatenates the text of a VERS element, leaving out notes and
// cross references.
func verseText(n *xmlquery.Node) string {
	var sb strings.Builder
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.TextNode, xmlquery.CharDataNode:
				sb.WriteString(c.Data)
			case xmlquery.ElementNode:
				if skippedVerseElements[strings.ToUpper(c.Data)] {
					sb.WriteByte(' ')
					continue
				}
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

func intAttr(n *xmlquery.Node, name string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(n.SelectAttr(name)))
	if err != nil {
		return 0, false
	}
	return v, true
}

var (
	_ ScriptureSource = (*XMLBible)(nil)
	_ ChapterLister   = (*XMLBible)(nil)
)
