package corpus

import (
	"encoding/hex"
	"io"
	"io/fs"

	"github.com/zeebo/blake3"
	"golang.org/x/text/unicode/norm"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
)

// Digest returns the hex BLAKE3 hash of text. It identifies rendered passage
// text and song content.
func Digest(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Fingerprint hashes every markdown file under root together with its NFC
// path, in walk order. Two roots with the same content have the same
// fingerprint, so a stale index can be detected without comparing texts.
func Fingerprint(root ContentRoot) (string, error) {
	if root.fsys == nil {
		return "", serrors.NewNotFound("content root", root.String())
	}

	h := blake3.New()
	err := fs.WalkDir(root.fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMarkdown(name) {
			return nil
		}

		_, _ = io.WriteString(h, norm.NFC.String(name))
		_, _ = h.Write([]byte{0})

		f, err := root.fsys.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(h, f); err != nil {
			return err
		}
		_, _ = h.Write([]byte{0})
		return nil
	})
	if err != nil {
		if serrors.Is(err, fs.ErrNotExist) {
			return "", &serrors.NotFoundError{Resource: "content root", ID: root.String(), Err: err}
		}
		return "", serrors.NewStorage("fingerprint", root.String(), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
