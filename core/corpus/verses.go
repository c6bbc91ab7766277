package corpus

import (
	"io"
	"strconv"
	"strings"

	"github.com/focory-beep/sermon-slide-generator/core/scripture"
)

// Verse is one verse of extracted text, with annotations removed and
// whitespace collapsed.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// String renders the verse the way it appears in passage text: "16 text".
func (v Verse) String() string {
	if v.Text == "" {
		return strconv.Itoa(v.Number)
	}
	return strconv.Itoa(v.Number) + " " + v.Text
}

// JoinVerses renders verses as one passage string. Verse boundaries are
// single spaces; there are no paragraph breaks.
func JoinVerses(verses []Verse) string {
	parts := make([]string, len(verses))
	for i, v := range verses {
		parts[i] = v.String()
	}
	return CollapseSpace(strings.Join(parts, " "))
}

// ExtractVerses scans a chapter in order and returns the verses inside r.
// It stops at the first verse heading past the range. An inverted range
// returns no verses without reading anything.
func ExtractVerses(src io.Reader, r scripture.VerseRange) ([]Verse, error) {
	if r.Inverted() {
		return nil, nil
	}

	var (
		verses  []Verse
		current *Verse
		body    []string
	)
	flush := func() {
		if current != nil {
			current.Text = CollapseSpace(strings.Join(body, " "))
			verses = append(verses, *current)
		}
		current, body = nil, body[:0]
	}

	err := scanLines(src, func(raw string) bool {
		line := TagLine(raw)
		switch line.Kind {
		case LineVerseHeading:
			flush()
			if r.Past(line.Number) {
				return false
			}
			if r.Contains(line.Number) {
				current = &Verse{Number: line.Number}
			}
		case LineBlank, LineNavLink:
		case LineText:
			if current != nil {
				body = append(body, line.Text)
			}
		default:
			// Headings that are not verse markers read as ordinary text,
			// '#' marks included.
			if current != nil {
				body = append(body, StripAnnotations(line.Markdown()))
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	flush()
	return verses, nil
}
