package corpus

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// MaxSongID is the highest song number in the hymnal.
const MaxSongID = 645

// refrainKeywords mark a section as the refrain when they appear in its
// heading or near the start of its body.
var refrainKeywords = []string{"후렴", "Chorus"}

// refrainWindow is how many runes of a section body are searched for a
// refrain keyword.
const refrainWindow = 20

var titleNumberRe = regexp.MustCompile(`^\d+\.\s*`)

// Song is the structured content of one song unit.
type Song struct {
	Number   int      `json:"number" yaml:"number"`
	Title    string   `json:"title" yaml:"title"`
	Strophes []string `json:"verses" yaml:"verses"`
	Refrain  string   `json:"chorus,omitempty" yaml:"chorus,omitempty"`
}

// HasRefrain reports whether the song has a refrain.
func (s *Song) HasRefrain() bool {
	return s.Refrain != ""
}

// DefaultSongTitle is used when a song file has no title heading.
func DefaultSongTitle(id int) string {
	return fmt.Sprintf("찬송가 %d장", id)
}

// ExtractSong parses a song file. The first "# " heading is the title with
// any leading "N." removed. Each "## " heading starts a section; text before
// the first section heading forms a section of its own. A section whose
// heading or opening text names the refrain becomes the refrain; the others
// are strophes in document order. The refrain is shown after every strophe,
// so only the first refrain section is kept and later ones are dropped.
func ExtractSong(src io.Reader, id int) (*Song, error) {
	song := &Song{Number: id}
	var (
		heading string
		body    []string
	)
	closeSection := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		switch {
		case text == "":
		case isRefrain(heading, text):
			if song.Refrain == "" {
				song.Refrain = text
			}
		default:
			song.Strophes = append(song.Strophes, text)
		}
		heading, body = "", body[:0]
	}

	err := scanLines(src, func(raw string) bool {
		line := TagLine(raw)
		switch line.Kind {
		case LineTitle:
			if song.Title == "" {
				song.Title = titleNumberRe.ReplaceAllString(line.Text, "")
			}
		case LineSection:
			closeSection()
			heading = line.Text
		case LineText:
			body = append(body, strings.TrimSpace(raw))
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	closeSection()

	if song.Title == "" {
		song.Title = DefaultSongTitle(id)
	}
	return song, nil
}

func isRefrain(heading, body string) bool {
	opening := []rune(body)
	if len(opening) > refrainWindow {
		opening = opening[:refrainWindow]
	}
	for _, kw := range refrainKeywords {
		if strings.Contains(heading, kw) || strings.Contains(string(opening), kw) {
			return true
		}
	}
	return false
}
