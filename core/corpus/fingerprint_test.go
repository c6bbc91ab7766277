package corpus

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
)

func TestFingerprint(t *testing.T) {
	a := fstest.MapFS{
		"01_창세기/창 1.md": {Data: []byte("###### 1\n태초에\n")},
		"readme.txt":    {Data: []byte("ignored")},
	}
	b := fstest.MapFS{
		"01_창세기/창 1.md": {Data: []byte("###### 1\n태초에\n")},
	}
	c := fstest.MapFS{
		"01_창세기/창 1.md": {Data: []byte("###### 1\n태초에 하나님이\n")},
	}
	d := fstest.MapFS{
		norm.NFD.String("01_창세기/창 1.md"): {Data: []byte("###### 1\n태초에\n")},
	}

	fa, err := Fingerprint(NewContentRootFS(a, "a"))
	require.NoError(t, err)
	fb, err := Fingerprint(NewContentRootFS(b, "b"))
	require.NoError(t, err)
	fc, err := Fingerprint(NewContentRootFS(c, "c"))
	require.NoError(t, err)
	fd, err := Fingerprint(NewContentRootFS(d, "d"))
	require.NoError(t, err)

	assert.Len(t, fa, 64)
	assert.Equal(t, fa, fb, "non-markdown files do not count")
	assert.NotEqual(t, fa, fc, "content changes the fingerprint")
	assert.Equal(t, fa, fd, "names compare in NFC")
}

func TestFingerprintMissingRoot(t *testing.T) {
	_, err := Fingerprint(NewContentRoot(t.TempDir() + "/absent"))
	assert.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestDigest(t *testing.T) {
	assert.Equal(t, Digest("요한복음 3:16"), Digest("요한복음 3:16"))
	assert.NotEqual(t, Digest("a"), Digest("b"))
	assert.Len(t, Digest(""), 64)
}
