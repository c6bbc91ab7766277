package scripture

import (
	"fmt"
	"strconv"
	"strings"
)

// WholeChapter is the upper bound reported for a citation without verses.
// It is a fixed constant, not derived from any chapter's length; extractors
// check VerseRange.Whole rather than comparing against it, so chapters with
// more verses are not truncated.
const WholeChapter = 999

// VerseRange is an inclusive verse interval within one chapter.
// Start > End is allowed and selects nothing.
type VerseRange struct {
	Start int  `json:"start"`
	End   int  `json:"end"`
	Whole bool `json:"whole,omitempty"`
}

// WholeChapterRange selects every verse of a chapter.
func WholeChapterRange() VerseRange {
	return VerseRange{Start: 1, End: WholeChapter, Whole: true}
}

// ParseVerseRange parses "", "12" or "12-18". An empty token is the whole
// chapter. The order of the bounds is not validated.
func ParseVerseRange(token string) (VerseRange, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return WholeChapterRange(), nil
	}

	startStr, endStr, isRange := strings.Cut(token, "-")
	start, err := parseVerseNumber(startStr)
	if err != nil {
		return VerseRange{}, fmt.Errorf("verse range %q: %w", token, err)
	}
	if !isRange {
		return VerseRange{Start: start, End: start}, nil
	}
	end, err := parseVerseNumber(endStr)
	if err != nil {
		return VerseRange{}, fmt.Errorf("verse range %q: %w", token, err)
	}
	return VerseRange{Start: start, End: end}, nil
}

func parseVerseNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid verse number %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("verse number must be positive, got %d", n)
	}
	return n, nil
}

// Contains reports whether verse n falls inside the range.
func (r VerseRange) Contains(n int) bool {
	if n < r.Start {
		return false
	}
	return r.Whole || n <= r.End
}

// Past reports whether verse n lies beyond the range, so that a scan over a
// chapter in verse order can stop.
func (r VerseRange) Past(n int) bool {
	return !r.Whole && n > r.End
}

// Inverted reports whether the bounds select nothing.
func (r VerseRange) Inverted() bool {
	return !r.Whole && r.Start > r.End
}

// String renders the range as it appears in a citation: "", "16" or "16-18".
// A whole-chapter range starting past verse 1 renders open-ended, "17-".
func (r VerseRange) String() string {
	switch {
	case r.Whole && r.Start <= 1:
		return ""
	case r.Whole:
		return strconv.Itoa(r.Start) + "-"
	case r.Start == r.End:
		return strconv.Itoa(r.Start)
	default:
		return fmt.Sprintf("%d-%d", r.Start, r.End)
	}
}
