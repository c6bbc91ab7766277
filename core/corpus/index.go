package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
	"github.com/focory-beep/sermon-slide-generator/core/scripture"
	"github.com/focory-beep/sermon-slide-generator/core/sqlite"
)

// IndexSchemaVersion is bumped whenever the index tables change.
const IndexSchemaVersion = "1"

const indexSchema = `
CREATE TABLE meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE chapters (
	book    INTEGER NOT NULL,
	chapter INTEGER NOT NULL,
	PRIMARY KEY (book, chapter)
);
CREATE TABLE verses (
	book    INTEGER NOT NULL,
	chapter INTEGER NOT NULL,
	verse   INTEGER NOT NULL,
	text    TEXT NOT NULL,
	PRIMARY KEY (book, chapter, verse)
);
CREATE TABLE songs (
	id      INTEGER PRIMARY KEY,
	title   TEXT NOT NULL,
	refrain TEXT NOT NULL
);
CREATE TABLE strophes (
	song     INTEGER NOT NULL,
	position INTEGER NOT NULL,
	text     TEXT NOT NULL,
	PRIMARY KEY (song, position)
);
`

// IndexBible is a scripture source the index can be built from.
type IndexBible interface {
	ScriptureSource
	ChapterLister
}

// IndexHymnal is a song source the index can be built from.
type IndexHymnal interface {
	HymnSource
	SongLister
}

// BuildOptions configures BuildIndex. Bible and Hymnal may each be nil.
type BuildOptions struct {
	Registry    *scripture.Registry
	Bible       IndexBible
	Hymnal      IndexHymnal
	Fingerprint string
	// Workers bounds concurrent chapter reads. Zero means 4.
	Workers int
}

// IndexStats summarises a build.
type IndexStats struct {
	Books    int           `json:"books"`
	Chapters int           `json:"chapters"`
	Verses   int           `json:"verses"`
	Songs    int           `json:"songs"`
	Elapsed  time.Duration `json:"elapsed"`
}

type indexedChapter struct {
	book    int
	chapter int
	verses  []Verse
}

// BuildIndex reads every chapter and song from the sources and writes them
// to a new SQLite database at path. The database is written next to path
// and renamed into place, so readers never see a partial index.
func BuildIndex(ctx context.Context, path string, opts BuildOptions) (*IndexStats, error) {
	start := time.Now()
	if opts.Registry == nil {
		opts.Registry = scripture.MustNewRegistry()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}

	chapters, err := collectChapters(ctx, opts)
	if err != nil {
		return nil, err
	}
	songs, err := collectSongs(ctx, opts.Hymnal)
	if err != nil {
		return nil, err
	}

	tmp := path + ".tmp"
	_ = os.Remove(tmp)
	db, err := sqlite.Open(tmp)
	if err != nil {
		return nil, serrors.NewStorage("open", tmp, err)
	}

	stats := &IndexStats{Songs: len(songs)}
	err = sqlite.WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, indexSchema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if err := writeMeta(ctx, tx, opts.Fingerprint); err != nil {
			return err
		}
		books := make(map[int]bool)
		for _, c := range chapters {
			books[c.book] = true
			if err := writeChapter(ctx, tx, c); err != nil {
				return err
			}
			stats.Verses += len(c.verses)
		}
		stats.Books = len(books)
		stats.Chapters = len(chapters)
		for _, s := range songs {
			if err := writeSong(ctx, tx, s); err != nil {
				return err
			}
		}
		return nil
	})
	closeErr := db.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return nil, serrors.NewStorage("build index", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, serrors.NewStorage("rename", path, err)
	}
	stats.Elapsed = time.Since(start)
	return stats, nil
}

func collectChapters(ctx context.Context, opts BuildOptions) ([]indexedChapter, error) {
	if opts.Bible == nil {
		return nil, nil
	}

	type job struct {
		book    *scripture.CanonicalBook
		chapter int
	}
	var jobs []job
	for _, book := range opts.Registry.Books() {
		chapters, err := opts.Bible.Chapters(book)
		if errors.Is(err, serrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, ch := range chapters {
			jobs = append(jobs, job{book: book, chapter: ch})
		}
	}

	results := make([]indexedChapter, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			verses, err := opts.Bible.Verses(j.book, j.chapter, scripture.WholeChapterRange())
			if err != nil {
				return err
			}
			results[i] = indexedChapter{book: j.book.Ordinal, chapter: j.chapter, verses: verses}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func collectSongs(ctx context.Context, hymnal IndexHymnal) ([]*Song, error) {
	if hymnal == nil {
		return nil, nil
	}
	ids, err := hymnal.SongIDs()
	if err != nil {
		return nil, err
	}
	songs := make([]*Song, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		song, err := hymnal.Song(id)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, nil
}

func writeMeta(ctx context.Context, tx *sql.Tx, fingerprint string) error {
	info := sqlite.GetInfo()
	meta := map[string]string{
		"schema_version": IndexSchemaVersion,
		"fingerprint":    fingerprint,
		"built_at":       time.Now().UTC().Format(time.RFC3339),
		"driver":         info.DriverType,
		"driver_package": info.Package,
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("write meta %s: %w", k, err)
		}
	}
	return nil
}

func writeChapter(ctx context.Context, tx *sql.Tx, c indexedChapter) error {
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO chapters (book, chapter) VALUES (?, ?)`, c.book, c.chapter); err != nil {
		return fmt.Errorf("write chapter %d:%d: %w", c.book, c.chapter, err)
	}
	for _, v := range c.verses {
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO verses (book, chapter, verse, text) VALUES (?, ?, ?, ?)`,
			c.book, c.chapter, v.Number, v.Text)
		if err != nil {
			return fmt.Errorf("write verse %d:%d:%d: %w", c.book, c.chapter, v.Number, err)
		}
	}
	return nil
}

func writeSong(ctx context.Context, tx *sql.Tx, s *Song) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO songs (id, title, refrain) VALUES (?, ?, ?)`, s.Number, s.Title, s.Refrain); err != nil {
		return fmt.Errorf("write song %d: %w", s.Number, err)
	}
	for i, text := range s.Strophes {
		if _, err := tx.ExecContext(ctx, `INSERT INTO strophes (song, position, text) VALUES (?, ?, ?)`, s.Number, i+1, text); err != nil {
			return fmt.Errorf("write song %d strophe %d: %w", s.Number, i+1, err)
		}
	}
	return nil
}

// Index serves verses and songs from a SQLite index built by BuildIndex.
type Index struct {
	db   *sql.DB
	path string
	meta map[string]string
}

// OpenIndex opens an index read-only and checks its schema version.
func OpenIndex(path string) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &serrors.NotFoundError{Resource: "index", ID: path, Err: err}
		}
		return nil, serrors.NewStorage("stat", path, err)
	}

	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, serrors.NewStorage("open", path, err)
	}
	meta, err := readMeta(db)
	if err != nil {
		db.Close()
		return nil, serrors.NewStorage("read meta", path, err)
	}
	idx := &Index{db: db, path: path, meta: meta}

	if got := idx.meta["schema_version"]; got != IndexSchemaVersion {
		db.Close()
		return nil, serrors.NewStorage("open", path,
			fmt.Errorf("index schema version %q, want %q", got, IndexSchemaVersion))
	}
	return idx, nil
}

func readMeta(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM meta`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

// Close releases the database handle.
func (x *Index) Close() error {
	return x.db.Close()
}

// Fingerprint returns the corpus fingerprint recorded at build time.
func (x *Index) Fingerprint() string {
	return x.meta["fingerprint"]
}

// Driver returns the SQLite implementation that built the index,
// "purego" or "cgo".
func (x *Index) Driver() string {
	return x.meta["driver"]
}

// Stale reports whether the index was built from different content.
func (x *Index) Stale(fingerprint string) bool {
	return x.Fingerprint() != fingerprint
}

// Verses implements ScriptureSource.
func (x *Index) Verses(book *scripture.CanonicalBook, chapter int, r scripture.VerseRange) ([]Verse, error) {
	var one int
	err := x.db.QueryRow(`SELECT 1 FROM chapters WHERE book = ? AND chapter = ?`, book.Ordinal, chapter).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, serrors.NewNotFound("chapter", chapterID(book, chapter))
	}
	if err != nil {
		return nil, serrors.NewStorage("query", x.path, err)
	}
	if r.Inverted() {
		return nil, nil
	}

	query := `SELECT verse, text FROM verses WHERE book = ? AND chapter = ? AND verse >= ?`
	args := []any{book.Ordinal, chapter, r.Start}
	if !r.Whole {
		query += ` AND verse <= ?`
		args = append(args, r.End)
	}
	query += ` ORDER BY verse`

	rows, err := x.db.Query(query, args...)
	if err != nil {
		return nil, serrors.NewStorage("query", x.path, err)
	}
	defer rows.Close()

	var verses []Verse
	for rows.Next() {
		var v Verse
		if err := rows.Scan(&v.Number, &v.Text); err != nil {
			return nil, serrors.NewStorage("scan", x.path, err)
		}
		verses = append(verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, serrors.NewStorage("query", x.path, err)
	}
	return verses, nil
}

// Chapters implements ChapterLister.
func (x *Index) Chapters(book *scripture.CanonicalBook) ([]int, error) {
	rows, err := x.db.Query(`SELECT chapter FROM chapters WHERE book = ? ORDER BY chapter`, book.Ordinal)
	if err != nil {
		return nil, serrors.NewStorage("query", x.path, err)
	}
	defer rows.Close()

	var chapters []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, serrors.NewStorage("scan", x.path, err)
		}
		chapters = append(chapters, n)
	}
	if err := rows.Err(); err != nil {
		return nil, serrors.NewStorage("query", x.path, err)
	}
	if len(chapters) == 0 {
		return nil, serrors.NewNotFound("book", book.ID)
	}
	return chapters, nil
}

// Song implements HymnSource.
func (x *Index) Song(id int) (*Song, error) {
	song := &Song{Number: id}
	err := x.db.QueryRow(`SELECT title, refrain FROM songs WHERE id = ?`, id).Scan(&song.Title, &song.Refrain)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, serrors.NewNotFound("song", strconv.Itoa(id))
	}
	if err != nil {
		return nil, serrors.NewStorage("query", x.path, err)
	}

	rows, err := x.db.Query(`SELECT text FROM strophes WHERE song = ? ORDER BY position`, id)
	if err != nil {
		return nil, serrors.NewStorage("query", x.path, err)
	}
	defer rows.Close()
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, serrors.NewStorage("scan", x.path, err)
		}
		song.Strophes = append(song.Strophes, text)
	}
	if err := rows.Err(); err != nil {
		return nil, serrors.NewStorage("query", x.path, err)
	}
	return song, nil
}

// SongIDs implements SongLister.
func (x *Index) SongIDs() ([]int, error) {
	rows, err := x.db.Query(`SELECT id FROM songs ORDER BY id`)
	if err != nil {
		return nil, serrors.NewStorage("query", x.path, err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, serrors.NewStorage("scan", x.path, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, serrors.NewStorage("query", x.path, err)
	}
	return ids, nil
}

// String describes the index for logs.
func (x *Index) String() string {
	return "sqlite:" + strings.TrimSpace(x.path)
}

var (
	_ IndexBible  = (*Index)(nil)
	_ IndexHymnal = (*Index)(nil)
)
