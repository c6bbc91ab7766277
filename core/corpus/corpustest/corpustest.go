// Package corpustest provides a small in-memory corpus for tests of packages
// built on corpus.Library.
package corpustest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing/fstest"

	"github.com/focory-beep/sermon-slide-generator/core/corpus"
)

// John3 is John 3:16-18 in the stored layout.
const John3 = `# 요한복음 3장

[[요 2|이전]] | [[요 4|다음]]

###### 16
하나님이 세상을 이처럼 사랑하사 독생자를 주셨으니

###### 17
하나님이 그 아들을 세상에 보내신 것은

###### 18
믿는 자는 심판을 받지 아니하는 것이요
`

// Hymn1 has two strophes and a refrain.
const Hymn1 = `# 1. 만복의 근원 하나님

## 1절
만복의 근원 하나님
온 백성 찬송 드리고

## 2절
저 천사여 찬송하세

## 후렴
아멘 아멘
`

// Hymn2 has no title heading and no refrain.
const Hymn2 = `## 1절
피난처 있으니
`

// FS returns the corpus: a bible directory holding 창세기 1 (count verses)
// and 요한복음 3:16-18, and a hymnal holding songs 1 and 2.
func FS(count int) fstest.MapFS {
	var gen strings.Builder
	gen.WriteString("# 창세기 1장\n\n")
	for v := 1; v <= count; v++ {
		fmt.Fprintf(&gen, "###### %d\n창세기 %d절 말씀\n\n", v, v)
	}
	return fstest.MapFS{
		"개역개정/01_창세기/창 1.md":  {Data: []byte(gen.String())},
		"개역개정/43_요한복음/요 3.md": {Data: []byte(John3)},
		"찬송가/새찬송가_1.md":       {Data: []byte(Hymn1)},
		"찬송가/새찬송가_2.md":       {Data: []byte(Hymn2)},
	}
}

// NewLibrary returns a markdown-backed library over FS(31).
func NewLibrary() *corpus.Library {
	root := corpus.NewContentRootFS(FS(31), "corpustest")
	bibleRoot, err := root.Sub(corpus.DiscoverBibleDir(root))
	if err != nil {
		panic(err)
	}
	hymnRoot, err := root.Sub(corpus.DiscoverHymnDir(root))
	if err != nil {
		panic(err)
	}
	return corpus.NewLibrary(nil, corpus.NewMarkdownBible(bibleRoot), corpus.NewMarkdownHymnal(hymnRoot))
}

// WriteDir copies fsys to dir on disk.
func WriteDir(dir string, fsys fstest.MapFS) error {
	for name, f := range fsys {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, f.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
