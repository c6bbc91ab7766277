package scripture

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// BookCount is the number of books in the canon.
const BookCount = 66

// CanonicalBook is the single authoritative identity of a book across all
// languages. Values are created by NewRegistry and never mutated.
type CanonicalBook struct {
	// Ordinal is the fixed canonical position (1..66), used as a storage key.
	Ordinal int
	// ID is the OSIS book identifier ("Gen", "1Cor").
	ID string
	// FileStem is the short Korean abbreviation used in chapter file names ("창", "고전").
	FileStem string

	names   [numLanguages]string
	abbrevs [numLanguages][]string
}

// Name returns the canonical full name of the book in lang.
func (b *CanonicalBook) Name(lang Language) string {
	if !lang.valid() {
		return b.names[Korean]
	}
	return b.names[lang]
}

// Abbreviations returns a copy of the registered abbreviations in lang.
func (b *CanonicalBook) Abbreviations(lang Language) []string {
	if !lang.valid() {
		return nil
	}
	return append([]string(nil), b.abbrevs[lang]...)
}

// String returns the OSIS identifier.
func (b *CanonicalBook) String() string {
	return b.ID
}

// Registry maps abbreviations to canonical books, per language.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	books []*CanonicalBook // index = ordinal-1
	keys  [numLanguages]map[string]*CanonicalBook
}

// NewRegistry builds the registry from the static canon tables. It fails if
// any key maps to two different books within one language, or if ordinals are
// not exactly 1..66 in order.
func NewRegistry() (*Registry, error) {
	r := &Registry{books: make([]*CanonicalBook, 0, len(canon))}
	for _, lang := range Languages {
		r.keys[lang] = make(map[string]*CanonicalBook)
	}

	for i, row := range canon {
		if row.ordinal != i+1 {
			return nil, fmt.Errorf("canon row %d (%s) has ordinal %d", i, row.osis, row.ordinal)
		}
		book := &CanonicalBook{Ordinal: row.ordinal, ID: row.osis, FileStem: row.stem}
		for _, lang := range Languages {
			sp := row.spellingFor(lang)
			book.names[lang] = sp.name
			book.abbrevs[lang] = append([]string(nil), sp.aliases...)

			candidates := append([]string{sp.name, compact(sp.name)}, sp.aliases...)
			for _, c := range candidates {
				if err := r.add(lang, c, book); err != nil {
					return nil, err
				}
			}
		}
		r.books = append(r.books, book)
	}

	if len(r.books) != BookCount {
		return nil, fmt.Errorf("canon has %d books, want %d", len(r.books), BookCount)
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on a malformed table.
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(fmt.Sprintf("scripture: %v", err))
	}
	return r
}

func (r *Registry) add(lang Language, key string, book *CanonicalBook) error {
	k := normalizeKey(key, lang)
	if k == "" {
		return nil
	}
	if existing, ok := r.keys[lang][k]; ok && existing != book {
		return fmt.Errorf("%s key %q maps to both %s and %s", lang, k, existing.ID, book.ID)
	}
	r.keys[lang][k] = book
	return nil
}

// Resolve looks up an abbreviation or full spelling in one language's table.
func (r *Registry) Resolve(abbrev string, lang Language) (*CanonicalBook, bool) {
	if !lang.valid() {
		return nil, false
	}
	book, ok := r.keys[lang][normalizeKey(abbrev, lang)]
	return book, ok
}

// Find resolves a book name in any language, trying languages in priority order.
func (r *Registry) Find(name string) (*CanonicalBook, Language, bool) {
	for _, lang := range Languages {
		if book, ok := r.Resolve(name, lang); ok {
			return book, lang, true
		}
	}
	return nil, Korean, false
}

// ByOrdinal returns the book at a canonical position (1..66).
func (r *Registry) ByOrdinal(ordinal int) (*CanonicalBook, bool) {
	if ordinal < 1 || ordinal > len(r.books) {
		return nil, false
	}
	return r.books[ordinal-1], true
}

// Books returns all books in canonical order.
func (r *Registry) Books() []*CanonicalBook {
	return append([]*CanonicalBook(nil), r.books...)
}

// Keys returns every lookup key registered for lang, sorted.
func (r *Registry) Keys(lang Language) []string {
	if !lang.valid() {
		return nil
	}
	keys := make([]string, 0, len(r.keys[lang]))
	for k := range r.keys[lang] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeKey puts a token in the form used as a table key: NFC, trimmed,
// and case folded for Latin-script languages.
func normalizeKey(s string, lang Language) string {
	s = strings.TrimSpace(norm.NFC.String(s))
	if lang.Latin() {
		// Casers carry state and must not be shared between goroutines.
		s = cases.Fold().String(s)
	}
	return s
}

// compact drops spaces and dots so "1. Mose" also matches "1Mose".
func compact(s string) string {
	return strings.NewReplacer(" ", "", ".", "").Replace(s)
}
