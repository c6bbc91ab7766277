// Package library assembles a corpus.Library from process configuration:
// it unpacks a corpus bundle when needed, discovers the bible and hymn
// directories under the content root and opens the configured backend.
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/focory-beep/sermon-slide-generator/core/cache"
	"github.com/focory-beep/sermon-slide-generator/core/corpus"
	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
	"github.com/focory-beep/sermon-slide-generator/internal/archive"
	"github.com/focory-beep/sermon-slide-generator/internal/config"
	"github.com/focory-beep/sermon-slide-generator/internal/logging"
)

// Handle is an open library together with the resources behind it.
type Handle struct {
	*corpus.Library
	closers []io.Closer
	bible   *corpus.CachedBible
	hymnal  *corpus.CachedHymnal
}

// CacheStats sums the chapter and song cache statistics. It is zero when
// caching is disabled.
func (h *Handle) CacheStats() cache.Stats {
	if h.bible == nil || h.hymnal == nil {
		return cache.Stats{}
	}
	b, s := h.bible.Stats(), h.hymnal.Stats()
	return cache.Stats{
		Hits:      b.Hits + s.Hits,
		Misses:    b.Misses + s.Misses,
		Evictions: b.Evictions + s.Evictions,
		Size:      b.Size + s.Size,
		MaxSize:   b.MaxSize + s.MaxSize,
	}
}

// Close releases backend resources such as the SQLite index.
func (h *Handle) Close() error {
	var errs []error
	for _, c := range h.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Roots are the markdown roots resolved from configuration.
type Roots struct {
	Base  corpus.ContentRoot
	Bible corpus.ContentRoot
	Hymns corpus.ContentRoot
}

// Prepare unpacks the configured bundle into the content root when the root
// does not exist yet. It is a no-op without a bundle.
func Prepare(cfg config.Corpus) error {
	if cfg.BundlePath == "" {
		return nil
	}
	if entries, err := os.ReadDir(cfg.Root); err == nil && len(entries) > 0 {
		return nil
	}
	if !archive.IsBundle(cfg.BundlePath) {
		return serrors.NewValidation("corpus.bundle_path", cfg.BundlePath, "must be a .tar.xz or .tar.gz file")
	}

	start := time.Now()
	stats, err := archive.Extract(cfg.BundlePath, cfg.Root)
	if err != nil {
		return serrors.NewStorage("unpack", cfg.BundlePath, err)
	}
	logging.CorpusEvent("unpack", string(cfg.Backend), cfg.Root,
		"bundle", cfg.BundlePath,
		"files", stats.Files,
		"skipped", stats.Skipped,
		"bytes", stats.Bytes,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// ResolveRoots applies the configured directories, discovering the ones left
// empty.
func ResolveRoots(cfg config.Corpus) (Roots, error) {
	base := corpus.NewContentRoot(cfg.Root)

	bibleDir := cfg.BibleDir
	if bibleDir == "" {
		bibleDir = corpus.DiscoverBibleDir(base)
	}
	hymnDir := cfg.HymnDir
	if hymnDir == "" {
		hymnDir = corpus.DiscoverHymnDir(base)
	}

	bible, err := base.Sub(bibleDir)
	if err != nil {
		return Roots{}, err
	}
	hymns, err := base.Sub(hymnDir)
	if err != nil {
		return Roots{}, err
	}
	return Roots{Base: base, Bible: bible, Hymns: hymns}, nil
}

// Open prepares the content root and opens the configured backend. Hymns
// come from the markdown hymnal unless the SQLite index serves them.
func Open(cfg config.Corpus) (*Handle, error) {
	if err := Prepare(cfg); err != nil {
		return nil, err
	}
	roots, err := ResolveRoots(cfg)
	if err != nil {
		return nil, err
	}

	h := &Handle{}
	var (
		bible  corpus.ScriptureSource
		hymnal corpus.HymnSource = corpus.NewMarkdownHymnal(roots.Hymns)
	)

	switch cfg.Backend {
	case config.BackendXML:
		x, err := corpus.OpenXMLBible(cfg.XMLFile)
		if err != nil {
			return nil, err
		}
		bible = x
		logging.CorpusEvent("open", string(cfg.Backend), cfg.XMLFile, "title", x.Title())
	case config.BackendSQLite:
		idx, err := corpus.OpenIndex(cfg.IndexPath)
		if err != nil {
			return nil, err
		}
		h.closers = append(h.closers, idx)
		bible, hymnal = idx, idx
		warnIfStale(idx, roots.Base, cfg)
	default:
		bible = corpus.NewMarkdownBible(roots.Bible)
		logging.CorpusEvent("open", string(config.BackendMarkdown), cfg.Root,
			"bible", roots.Bible.String(),
			"hymns", roots.Hymns.String())
	}

	if cfg.CacheSize > 0 {
		cc := cache.Config{MaxSize: cfg.CacheSize, TTL: cfg.CacheTTL}
		h.bible = corpus.NewCachedBible(bible, cc)
		h.hymnal = corpus.NewCachedHymnal(hymnal, cc)
		bible, hymnal = h.bible, h.hymnal
	}

	h.Library = corpus.NewLibrary(nil, bible, hymnal)
	return h, nil
}

func warnIfStale(idx *corpus.Index, base corpus.ContentRoot, cfg config.Corpus) {
	fp, err := corpus.Fingerprint(base)
	switch {
	case err != nil:
		logging.CorpusEvent("open", string(cfg.Backend), cfg.IndexPath, "source", "unavailable")
	case idx.Stale(fp):
		logging.Warn("corpus index is stale", "index", cfg.IndexPath, "root", cfg.Root)
	default:
		logging.CorpusEvent("open", string(cfg.Backend), cfg.IndexPath,
			"fingerprint", idx.Fingerprint(),
			"built_with", idx.Driver())
	}
}

// BuildIndex writes the SQLite index for the markdown corpus to path.
func BuildIndex(ctx context.Context, cfg config.Corpus, path string, workers int) (*corpus.IndexStats, error) {
	if err := Prepare(cfg); err != nil {
		return nil, err
	}
	roots, err := ResolveRoots(cfg)
	if err != nil {
		return nil, err
	}
	fp, err := corpus.Fingerprint(roots.Base)
	if err != nil {
		return nil, err
	}

	stats, err := corpus.BuildIndex(ctx, path, corpus.BuildOptions{
		Bible:       corpus.NewMarkdownBible(roots.Bible),
		Hymnal:      corpus.NewMarkdownHymnal(roots.Hymns),
		Fingerprint: fp,
		Workers:     workers,
	})
	if err != nil {
		return nil, fmt.Errorf("build index %s: %w", path, err)
	}
	logging.CorpusEvent("index", string(config.BackendSQLite), cfg.Root,
		"path", path,
		"books", stats.Books,
		"chapters", stats.Chapters,
		"verses", stats.Verses,
		"songs", stats.Songs,
		"duration_ms", stats.Elapsed.Milliseconds())
	return stats, nil
}
