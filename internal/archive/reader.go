// Package archive reads and writes corpus bundles: tar archives compressed
// with xz (.tar.xz) or gzip (.tar.gz) that unpack into a content root.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"golang.org/x/text/unicode/norm"

	"github.com/focory-beep/sermon-slide-generator/internal/validation"
)

// Reader wraps a tar.Reader with automatic decompression handling.
type Reader struct {
	*tar.Reader
	file         *os.File
	decompressor io.Closer
}

// IsBundle reports whether path has a supported bundle extension.
func IsBundle(path string) bool {
	return strings.HasSuffix(path, ".tar.xz") || strings.HasSuffix(path, ".tar.gz") || strings.HasSuffix(path, ".tgz")
}

// NewReader creates a new archive reader for the given path.
// It automatically detects and handles .tar.gz and .tar.xz compression.
func NewReader(path string) (*Reader, error) {
	if !IsBundle(path) {
		return nil, fmt.Errorf("unsupported archive format: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	var reader io.Reader
	var decompressor io.Closer

	if strings.HasSuffix(path, ".tar.xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		reader = xzr
	} else {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		reader = gzr
		decompressor = gzr
	}

	return &Reader{
		Reader:       tar.NewReader(reader),
		file:         f,
		decompressor: decompressor,
	}, nil
}

// Close closes the archive reader and any underlying decompressors.
func (r *Reader) Close() error {
	var errs []error
	if r.decompressor != nil {
		if err := r.decompressor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.file.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Visitor is a callback function for iterating archive entries.
// Return true to stop iteration, false to continue.
type Visitor func(header *tar.Header, content io.Reader) (stop bool, err error)

// Iterate walks through all entries in the archive, calling the visitor for each.
func (r *Reader) Iterate(visitor Visitor) error {
	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}

		stop, err := visitor(header, r)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// IterateBundle opens an archive and iterates through its entries.
func IterateBundle(path string, visitor Visitor) error {
	r, err := NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Iterate(visitor)
}

// ExtractStats summarises an extraction.
type ExtractStats struct {
	Files   int   `json:"files"`
	Dirs    int   `json:"dirs"`
	Skipped int   `json:"skipped"`
	Bytes   int64 `json:"bytes"`
}

// Extract unpacks a bundle into destDir. Entry names are normalised to NFC
// so that bundles created on systems storing decomposed Hangul unpack to
// names the locators match directly. Entries that would escape destDir are
// rejected; links and other special files are skipped.
func Extract(archivePath, destDir string) (*ExtractStats, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}

	stats := &ExtractStats{}
	err := IterateBundle(archivePath, func(header *tar.Header, content io.Reader) (bool, error) {
		name := norm.NFC.String(header.Name)
		rel, err := validation.SanitizePath(destDir, name)
		if err != nil {
			return true, fmt.Errorf("entry %q: %w", header.Name, err)
		}
		target := filepath.Join(destDir, rel)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return true, fmt.Errorf("create %s: %w", rel, err)
			}
			stats.Dirs++
		case tar.TypeReg:
			if header.Size > validation.MaxEntrySize {
				return true, fmt.Errorf("entry %q: %d bytes exceeds limit", header.Name, header.Size)
			}
			n, err := writeEntry(target, content)
			if err != nil {
				return true, fmt.Errorf("write %s: %w", rel, err)
			}
			stats.Files++
			stats.Bytes += n
		default:
			stats.Skipped++
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func writeEntry(target string, content io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, err
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, io.LimitReader(content, validation.MaxEntrySize))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

// ReadFile reads a specific file from the archive. The name may be given
// with or without the archive's leading directory.
func ReadFile(archivePath, filename string) ([]byte, error) {
	var content []byte
	err := IterateBundle(archivePath, func(header *tar.Header, r io.Reader) (bool, error) {
		name := header.Name
		if idx := strings.Index(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		if name == filename || header.Name == filename {
			var err error
			content, err = io.ReadAll(r)
			return true, err
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, fmt.Errorf("file not found: %s", filename)
	}
	return content, nil
}
