package deck

import (
	"strings"
	"unicode/utf8"
)

// Chunk splits text into pieces of at most maxChars characters, breaking
// only between words. A word longer than maxChars gets a piece of its own.
// Text without words comes back as a single piece.
func Chunk(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || maxChars <= 0 {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+n > maxChars {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += n
	}
	if curLen > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
