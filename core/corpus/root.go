package corpus

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"unicode/utf8"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
)

// ContentRoot is the resolved base location of a text corpus. The core never
// discovers where a corpus lives; it only reads what is inside one.
type ContentRoot struct {
	fsys  fs.FS
	label string
}

// NewContentRoot returns a root backed by a directory on disk. The directory
// does not have to exist yet; lookups against a missing root report NotFound.
func NewContentRoot(dir string) ContentRoot {
	return ContentRoot{fsys: os.DirFS(dir), label: dir}
}

// NewContentRootFS returns a root backed by an arbitrary file system.
func NewContentRootFS(fsys fs.FS, label string) ContentRoot {
	return ContentRoot{fsys: fsys, label: label}
}

// Sub returns the root for a subdirectory.
func (r ContentRoot) Sub(dir string) (ContentRoot, error) {
	if dir == "" || dir == "." {
		return r, nil
	}
	sub, err := fs.Sub(r.fsys, dir)
	if err != nil {
		return ContentRoot{}, serrors.NewStorage("open", r.displayPath(dir), err)
	}
	return ContentRoot{fsys: sub, label: r.displayPath(dir)}, nil
}

// FS exposes the underlying file system.
func (r ContentRoot) FS() fs.FS {
	return r.fsys
}

// String returns the label the root was created with.
func (r ContentRoot) String() string {
	return r.label
}

func (r ContentRoot) displayPath(name string) string {
	if r.label == "" {
		return name
	}
	return path.Join(r.label, name)
}

// readDir lists a directory. A missing directory is a NotFoundError for
// resource; any other failure is a StorageError.
func (r ContentRoot) readDir(dir, resource, id string) ([]fs.DirEntry, error) {
	if r.fsys == nil {
		return nil, serrors.NewNotFound(resource, id)
	}
	entries, err := fs.ReadDir(r.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &serrors.NotFoundError{Resource: resource, ID: id, Err: err}
		}
		return nil, serrors.NewStorage("read", r.displayPath(dir), err)
	}
	return entries, nil
}

// openText opens a unit file for streaming.
func (r ContentRoot) openText(name, resource, id string) (fs.File, error) {
	f, err := r.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &serrors.NotFoundError{Resource: resource, ID: id, Err: err}
		}
		return nil, serrors.NewStorage("open", r.displayPath(name), err)
	}
	return f, nil
}

const maxLineSize = 1 << 20

// errInvalidUTF8 is reported for content that is not valid UTF-8.
var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// scanLines feeds each line of src to fn until fn returns false. A leading
// byte order mark is dropped. Lines that are not valid UTF-8 stop the scan
// with a StorageError.
func scanLines(src io.Reader, fn func(line string) bool) error {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		if !utf8.ValidString(line) {
			return serrors.NewStorage("decode", "", errInvalidUTF8)
		}
		if !fn(line) {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return serrors.NewStorage("scan", "", err)
	}
	return nil
}
