package corpus

import (
	"github.com/focory-beep/sermon-slide-generator/core/cache"
	"github.com/focory-beep/sermon-slide-generator/core/scripture"
)

// CachedBible keeps whole chapters from another source in an LRU cache and
// answers range requests from memory. Failed reads are not cached.
type CachedBible struct {
	inner    ScriptureSource
	chapters *cache.LRU[string, []Verse]
}

// NewCachedBible wraps inner.
func NewCachedBible(inner ScriptureSource, cfg cache.Config) *CachedBible {
	return &CachedBible{inner: inner, chapters: cache.New[string, []Verse](cfg)}
}

// Verses implements ScriptureSource.
func (b *CachedBible) Verses(book *scripture.CanonicalBook, chapter int, r scripture.VerseRange) ([]Verse, error) {
	key := chapterID(book, chapter)
	all, ok := b.chapters.Get(key)
	if !ok {
		var err error
		all, err = b.inner.Verses(book, chapter, scripture.WholeChapterRange())
		if err != nil {
			return nil, err
		}
		b.chapters.Put(key, all)
	}
	if r.Inverted() {
		return nil, nil
	}

	var out []Verse
	for _, v := range all {
		if r.Contains(v.Number) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Stats returns the chapter cache statistics.
func (b *CachedBible) Stats() cache.Stats {
	return b.chapters.Stats()
}

// CachedHymnal keeps parsed songs from another source in an LRU cache.
// Callers must not modify returned songs.
type CachedHymnal struct {
	inner HymnSource
	songs *cache.LRU[int, *Song]
}

// NewCachedHymnal wraps inner.
func NewCachedHymnal(inner HymnSource, cfg cache.Config) *CachedHymnal {
	return &CachedHymnal{inner: inner, songs: cache.New[int, *Song](cfg)}
}

// Song implements HymnSource.
func (h *CachedHymnal) Song(id int) (*Song, error) {
	if s, ok := h.songs.Get(id); ok {
		return s, nil
	}
	s, err := h.inner.Song(id)
	if err != nil {
		return nil, err
	}
	h.songs.Put(id, s)
	return s, nil
}

// Stats returns the song cache statistics.
func (h *CachedHymnal) Stats() cache.Stats {
	return h.songs.Stats()
}

// Clear drops every cached chapter.
func (b *CachedBible) Clear() {
	b.chapters.Clear()
}

// Clear drops every cached song.
func (h *CachedHymnal) Clear() {
	h.songs.Clear()
}
