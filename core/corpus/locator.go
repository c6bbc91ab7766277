package corpus

import (
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
	"github.com/focory-beep/sermon-slide-generator/core/scripture"
)

// LocatorStrategy picks one entry from a directory listing. It may read
// below dir through fsys but must not modify anything. It returns the chosen
// entry name, or false when it has no opinion.
type LocatorStrategy func(fsys fs.FS, dir string, entries []fs.DirEntry) (string, bool)

// FirstMatch combines strategies so the first one that matches wins.
func FirstMatch(strategies ...LocatorStrategy) LocatorStrategy {
	return func(fsys fs.FS, dir string, entries []fs.DirEntry) (string, bool) {
		for _, s := range strategies {
			if name, ok := s(fsys, dir, entries); ok {
				return name, true
			}
		}
		return "", false
	}
}

// Locate lists dir in root and applies strategy. It fails closed: a missing
// directory or no match is a NotFoundError for resource.
func Locate(root ContentRoot, dir string, strategy LocatorStrategy, resource, id string) (string, error) {
	entries, err := root.readDir(dir, resource, id)
	if err != nil {
		return "", err
	}
	name, ok := strategy(root.fsys, dir, entries)
	if !ok {
		return "", serrors.NewNotFound(resource, id)
	}
	return path.Join(dir, name), nil
}

// entryName returns the NFC form of an entry name, so names written by
// file systems that store decomposed Hangul still compare equal.
func entryName(e fs.DirEntry) string {
	return norm.NFC.String(e.Name())
}

func isMarkdown(name string) bool {
	return strings.EqualFold(path.Ext(name), ".md")
}

// ExactName matches an entry whose name equals one of names.
func ExactName(dirs bool, names ...string) LocatorStrategy {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[norm.NFC.String(n)] = true
	}
	return func(_ fs.FS, _ string, entries []fs.DirEntry) (string, bool) {
		for _, e := range entries {
			if e.IsDir() == dirs && want[entryName(e)] {
				return e.Name(), true
			}
		}
		return "", false
	}
}

// OrdinalPrefixDir matches a directory named "NN_..." or "NN ..." for the
// zero-padded ordinal, or exactly "NN".
func OrdinalPrefixDir(ordinal int) LocatorStrategy {
	prefix := fmt.Sprintf("%02d", ordinal)
	return func(_ fs.FS, _ string, entries []fs.DirEntry) (string, bool) {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			name := entryName(e)
			rest, ok := strings.CutPrefix(name, prefix)
			if !ok {
				continue
			}
			if rest == "" || rest[0] == '_' || rest[0] == ' ' || rest[0] == '.' {
				return e.Name(), true
			}
		}
		return "", false
	}
}

// BookDirStrategy finds the directory of book under a bible root.
func BookDirStrategy(book *scripture.CanonicalBook) LocatorStrategy {
	return FirstMatch(
		ExactName(true, fmt.Sprintf("%02d_%s", book.Ordinal, book.Name(scripture.Korean))),
		OrdinalPrefixDir(book.Ordinal),
	)
}

// ChapterFileStrategy finds the file of a chapter inside a book directory.
// Exact names are tried first; after that any markdown file whose trailing
// number equals the chapter is accepted.
func ChapterFileStrategy(book *scripture.CanonicalBook, chapter int) LocatorStrategy {
	return FirstMatch(
		ExactName(false,
			fmt.Sprintf("%s %d.md", book.FileStem, chapter),
			fmt.Sprintf("%s%d.md", book.FileStem, chapter),
			fmt.Sprintf("%02d_%d.md", book.Ordinal, chapter),
		),
		TrailingNumber(chapter),
	)
}

// SongFileStrategy finds the file of song id inside a hymn root.
func SongFileStrategy(id int) LocatorStrategy {
	return FirstMatch(
		ExactName(false, fmt.Sprintf("%d.md", id), fmt.Sprintf("%03d.md", id)),
		UnderscoreSuffix(id),
		TrailingNumber(id),
	)
}

// UnderscoreSuffix matches a markdown file named "..._N.md".
func UnderscoreSuffix(n int) LocatorStrategy {
	suffix := "_" + strconv.Itoa(n) + ".md"
	return func(_ fs.FS, _ string, entries []fs.DirEntry) (string, bool) {
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(entryName(e), suffix) {
				return e.Name(), true
			}
		}
		return "", false
	}
}

// TrailingNumber matches a markdown file whose last run of digits is n.
// A whole digit run must match, so 1 never selects "창 12.md".
func TrailingNumber(n int) LocatorStrategy {
	return func(_ fs.FS, _ string, entries []fs.DirEntry) (string, bool) {
		for _, e := range entries {
			if e.IsDir() || !isMarkdown(e.Name()) {
				continue
			}
			if got, ok := trailingNumber(entryName(e)); ok && got == n {
				return e.Name(), true
			}
		}
		return "", false
	}
}

// trailingNumber returns the last run of ASCII digits in a file name,
// ignoring the extension.
func trailingNumber(name string) (int, bool) {
	stem := strings.TrimSuffix(name, path.Ext(name))
	end := strings.LastIndexFunc(stem, isDigit)
	if end < 0 {
		return 0, false
	}
	start := end
	for start > 0 && isDigit(rune(stem[start-1])) {
		start--
	}
	n, err := strconv.Atoi(stem[start : end+1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigit(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsDigit(r)
}
