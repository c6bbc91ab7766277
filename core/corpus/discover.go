package corpus

import (
	"io/fs"
	"path"
	"strconv"
	"strings"
)

// Directory name fragments that identify the bundled corpora.
const (
	BibleDirHint = "개역개정"
	HymnDirHint  = "찬송가"
)

// MinHymnFiles is the entry count above which a directory is taken to be a
// hymnal even when its name gives no hint.
const MinHymnFiles = 600

// NameHintDir matches the first directory whose name contains hint.
func NameHintDir(hint string) LocatorStrategy {
	return func(_ fs.FS, _ string, entries []fs.DirEntry) (string, bool) {
		for _, e := range entries {
			if e.IsDir() && strings.Contains(entryName(e), hint) {
				return e.Name(), true
			}
		}
		return "", false
	}
}

// ChildSignatureDir matches the first directory whose listing satisfies sig.
// Directories that cannot be listed are skipped.
func ChildSignatureDir(sig func(entries []fs.DirEntry) bool) LocatorStrategy {
	return func(fsys fs.FS, dir string, entries []fs.DirEntry) (string, bool) {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			children, err := fs.ReadDir(fsys, path.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			if sig(children) {
				return e.Name(), true
			}
		}
		return "", false
	}
}

// HasBookDirs reports whether a listing contains the first book directory.
func HasBookDirs(entries []fs.DirEntry) bool {
	_, ok := OrdinalPrefixDir(1)(nil, "", entries)
	return ok
}

// LooksLikeHymnal reports whether a listing has at least MinHymnFiles
// entries, or a numbered song file among its first ten entries.
func LooksLikeHymnal(entries []fs.DirEntry) bool {
	if len(entries) >= MinHymnFiles {
		return true
	}
	for i, e := range entries {
		if i >= 10 {
			break
		}
		if _, ok := songNumber(entryName(e)); ok && !e.IsDir() {
			return true
		}
	}
	return false
}

// songNumber parses the N of a "..._N.md" file name.
func songNumber(name string) (int, bool) {
	if !isMarkdown(name) {
		return 0, false
	}
	i := strings.LastIndexByte(name, '_')
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(name[i+1:], path.Ext(name)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// DiscoverBibleDir returns the directory under base that holds the book
// directories, or "." when base itself should be used.
func DiscoverBibleDir(base ContentRoot) string {
	return discover(base, FirstMatch(
		NameHintDir(BibleDirHint),
		ChildSignatureDir(HasBookDirs),
	))
}

// DiscoverHymnDir returns the directory under base that holds the song
// files, or "." when base itself should be used.
func DiscoverHymnDir(base ContentRoot) string {
	return discover(base, FirstMatch(
		NameHintDir(HymnDirHint),
		ChildSignatureDir(LooksLikeHymnal),
	))
}

func discover(base ContentRoot, strategy LocatorStrategy) string {
	name, err := Locate(base, ".", strategy, "content root", base.String())
	if err != nil {
		return "."
	}
	return name
}
