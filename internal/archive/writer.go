package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// Pack writes srcDir into a bundle at dstPath. The compression follows the
// extension of dstPath. Entries are stored relative to srcDir with a fixed
// modification time so identical trees produce identical archives.
func Pack(srcDir, dstPath string) error {
	if !IsBundle(dstPath) {
		return fmt.Errorf("unsupported archive format: %s", dstPath)
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	outFile, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer outFile.Close()

	var compressor io.WriteCloser
	if strings.HasSuffix(dstPath, ".tar.xz") {
		compressor, err = xz.NewWriter(outFile)
		if err != nil {
			return fmt.Errorf("xz writer: %w", err)
		}
	} else {
		compressor = gzip.NewWriter(outFile)
	}

	tw := tar.NewWriter(compressor)
	epoch := time.Unix(0, 0)

	err = filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(relPath)
		if info.IsDir() {
			header.Name += "/"
		}
		header.ModTime = epoch
		header.AccessTime = time.Time{}
		header.ChangeTime = time.Time{}

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		_, err = io.Copy(tw, file)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar: %w", err)
	}
	if err := compressor.Close(); err != nil {
		return fmt.Errorf("close compressor: %w", err)
	}
	return outFile.Close()
}
