package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// chapterText renders a chapter file with n verses, framed by the
// navigation lines a real corpus carries.
func chapterText(title string, n int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n[[이전 장]] | [[다음 장]]\n\n", title)
	for v := 1; v <= n; v++ {
		fmt.Fprintf(&sb, "###### %d\n%s %d절 말씀\n\n", v, title, v)
	}
	sb.WriteString("[[이전 장]] | [[다음 장]]\n")
	return sb.String()
}

const john3 = `# 요한복음 3장

[[요 2|이전]] | [[요 4|다음]]

###### 16
하나님이 세상을 이처럼 <sup>1)</sup>사랑하사
독생자를 주셨으니

###### 17
하나님이 그 아들을   세상에 보내신 것은

###### 18
믿는 자는 심판을 받지 아니하는 것이요

[[요 2|이전]] | [[요 4|다음]]
`

const hymn1 = `# 1. 만복의 근원 하나님

[[새찬송가_2|다음]]

## 1절
만복의 근원 하나님
온 백성 찬송 드리고

## 2절
저 천사여 찬송하세
찬송을 드리세

## 후렴
아멘 아멘
`

const hymn10 = `## 1절
전능왕 오셔서

## 2절
후렴 주 이름 찬송
영원히
`

// writeFiles creates files under dir from a path-to-content map.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// newTestCorpus writes a small bible and hymnal under a reference directory
// laid out like the bundled corpus, and returns its path.
func newTestCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"개역개정📖/01_창세기/창 1.md":   chapterText("창세기 1장", 31),
		"개역개정📖/01_창세기/창 12.md":  chapterText("창세기 12장", 20),
		"개역개정📖/01_창세기/창 2.md":   chapterText("창세기 2장", 6),
		"개역개정📖/43_요한복음/요 3.md":  john3,
		"개역개정📖/19_시편/시편 117.md": chapterText("시편 117편", 2),
		"새찬송가🎼/새찬송가_1.md":       hymn1,
		"새찬송가🎼/새찬송가_10.md":      hymn10,
		"새찬송가🎼/새찬송가_2.md":       "[[새찬송가_1|이전]]\n\n만복의 근원\n",
	})
	return dir
}

// newTestLibrary returns a library over newTestCorpus.
func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	base := NewContentRoot(newTestCorpus(t))
	bible, err := base.Sub(DiscoverBibleDir(base))
	require.NoError(t, err)
	hymns, err := base.Sub(DiscoverHymnDir(base))
	require.NoError(t, err)
	return NewLibrary(nil, NewMarkdownBible(bible), NewMarkdownHymnal(hymns))
}
