package corpus

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies one line of a corpus markdown file.
type LineKind int

const (
	LineBlank LineKind = iota
	LineText
	// LineVerseHeading is "###### N" and starts verse N.
	LineVerseHeading
	// LineTitle is "# text".
	LineTitle
	// LineSection is "## text" and starts a strophe or refrain.
	LineSection
	// LineHeading is any other line starting with '#'.
	LineHeading
	// LineNavLink starts with "[[" and only links to neighbouring units.
	LineNavLink
)

var lineKindNames = [...]string{"blank", "text", "verse", "title", "section", "heading", "nav"}

func (k LineKind) String() string {
	if int(k) < len(lineKindNames) {
		return lineKindNames[k]
	}
	return "LineKind(" + strconv.Itoa(int(k)) + ")"
}

// Line is a tagged corpus line.
type Line struct {
	Kind LineKind
	// Number is the verse number of a LineVerseHeading.
	Number int
	// Text is the heading text for headings, and for LineText the line with
	// inline annotations removed.
	Text string
	// Annotated is set on LineText lines that carried annotations.
	Annotated bool
}

var (
	verseHeadingRe = regexp.MustCompile(`^######\s+(\d+)`)
	annotationRe   = regexp.MustCompile(`<[^>]+>`)
)

// TagLine classifies a single line. Leading and trailing whitespace is ignored.
func TagLine(raw string) Line {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return Line{Kind: LineBlank}
	case strings.HasPrefix(s, "[["):
		return Line{Kind: LineNavLink, Text: s}
	case strings.HasPrefix(s, "#"):
		return tagHeading(s)
	}

	stripped := StripAnnotations(s)
	return Line{Kind: LineText, Text: stripped, Annotated: stripped != s}
}

func tagHeading(s string) Line {
	if m := verseHeadingRe.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return Line{Kind: LineVerseHeading, Number: n, Text: s}
		}
	}
	switch {
	case strings.HasPrefix(s, "# "):
		return Line{Kind: LineTitle, Text: strings.TrimSpace(s[2:])}
	case strings.HasPrefix(s, "## "):
		return Line{Kind: LineSection, Text: strings.TrimSpace(s[3:])}
	}
	return Line{Kind: LineHeading, Text: s}
}

// Markdown renders a heading line with its '#' marks, the way it reads in
// the source file. Other kinds return Text.
func (l Line) Markdown() string {
	switch l.Kind {
	case LineTitle:
		return "# " + l.Text
	case LineSection:
		return "## " + l.Text
	}
	return l.Text
}

// StripAnnotations removes inline <...> markup such as footnote markers.
func StripAnnotations(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return annotationRe.ReplaceAllString(s, "")
}

// CollapseSpace replaces every whitespace run with a single space and trims
// the result.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
