package deck

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/focory-beep/sermon-slide-generator/core/corpus"
	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
	"github.com/focory-beep/sermon-slide-generator/core/scripture"
	"github.com/focory-beep/sermon-slide-generator/internal/logging"
)

// SlideKind classifies a slide for the renderer.
type SlideKind string

const (
	KindTitle       SlideKind = "title"
	KindOrder       SlideKind = "order"
	KindScripture   SlideKind = "scripture"
	KindHymn        SlideKind = "hymn"
	KindPlaceholder SlideKind = "placeholder"
)

// OrderHeading is the title of the order-of-worship slide.
const OrderHeading = "예배 순서"

// RefrainLabel marks refrain slides.
const RefrainLabel = "후렴"

// Placeholder bodies, keyed by outcome kind.
var placeholderText = map[string]string{
	serrors.KindNotFound:       "본문을 찾을 수 없습니다",
	serrors.KindUnresolvedBook: "알 수 없는 성경입니다",
	serrors.KindInvalidFormat:  "성경 구절 형식이 올바르지 않습니다",
	serrors.KindInvalidInput:   "잘못된 번호입니다",
	outcomeEmpty:               "해당 구절이 없습니다",
}

const (
	outcomeOK    = "ok"
	outcomeEmpty = "empty"
)

// Slide is one entry of the outline.
type Slide struct {
	Kind     SlideKind `json:"kind" yaml:"kind"`
	Title    string    `json:"title" yaml:"title"`
	Subtitle string    `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Body     string    `json:"body,omitempty" yaml:"body,omitempty"`
	Lines    []string  `json:"lines,omitempty" yaml:"lines,omitempty"`
	Footer   string    `json:"footer,omitempty" yaml:"footer,omitempty"`
	// Outcome is the error kind behind a placeholder slide.
	Outcome string `json:"outcome,omitempty" yaml:"outcome,omitempty"`
}

// Deck is the assembled outline.
type Deck struct {
	Title        string  `json:"title" yaml:"title"`
	Date         string  `json:"date" yaml:"date"`
	Slides       []Slide `json:"slides" yaml:"slides"`
	Placeholders int     `json:"placeholders" yaml:"placeholders"`
}

// Options tunes a Builder.
type Options struct {
	// MaxChars is the default characters per scripture slide.
	MaxChars int
	// Workers bounds concurrent lookups.
	Workers int
	// OnLookup, if set, is called once per scripture or hymn lookup with the
	// item kind ("scripture" or "hymn") and outcome.
	OnLookup func(kind, outcome string)
}

// DefaultMaxChars is used when neither plan nor options set a limit.
const DefaultMaxChars = 200

// Builder assembles decks against a library.
type Builder struct {
	lib  *corpus.Library
	opts Options
	now  func() time.Time
}

// NewBuilder creates a Builder. Zero options take defaults.
func NewBuilder(lib *corpus.Library, opts Options) *Builder {
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultMaxChars
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Builder{lib: lib, opts: opts, now: time.Now}
}

// Build resolves every plan item and returns the outline: the title slide,
// the order slide when the plan has an order, all scripture slides, then all
// hymn slides. Items that cannot be found become placeholder slides. Only a
// storage failure or a cancelled context aborts the build.
func (b *Builder) Build(ctx context.Context, plan *Plan) (*Deck, error) {
	start := time.Now()
	p := plan.withDefaults(b.now())
	maxChars := b.opts.MaxChars
	if p.MaxChars > 0 {
		maxChars = p.MaxChars
	}

	readings := make([][]Slide, len(p.Scriptures))
	songs := make([][]Slide, len(p.Hymns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Workers)
	for i, item := range p.Scriptures {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slides, err := b.scriptureSlides(gctx, item, maxChars)
			readings[i] = slides
			return err
		})
	}
	for i, item := range p.Hymns {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slides, err := b.hymnSlides(gctx, item)
			songs[i] = slides
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Deck{Title: p.Title, Date: p.Date}
	d.Slides = append(d.Slides, Slide{Kind: KindTitle, Title: p.Title, Subtitle: p.Date})
	if len(p.Order) > 0 {
		d.Slides = append(d.Slides, orderSlide(p.Order))
	}
	for _, group := range append(readings, songs...) {
		d.Slides = append(d.Slides, group...)
	}
	for _, s := range d.Slides {
		if s.Kind == KindPlaceholder {
			d.Placeholders++
		}
	}

	logging.DeckBuilt(ctx, d.Title, len(p.Scriptures)+len(p.Hymns), len(d.Slides), d.Placeholders, time.Since(start))
	return d, nil
}

func orderSlide(items []OrderItem) Slide {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item.Title)
		if item.Detail != "" {
			lines[i] += " - " + item.Detail
		}
	}
	return Slide{Kind: KindOrder, Title: OrderHeading, Lines: lines}
}

func (b *Builder) scriptureSlides(ctx context.Context, item ScriptureItem, maxChars int) ([]Slide, error) {
	start := time.Now()
	lang := scripture.LanguageForTranslation(item.Translation)

	display := item.Reference
	c, err := b.lib.Registry().Parse(item.Reference, lang)
	if c != nil {
		display = c.Formatted()
	}

	text := item.Text
	if text == "" {
		outcome := outcomeOK
		if err == nil {
			var p *corpus.Passage
			p, err = b.lib.FetchPassage(c)
			if err == nil && p.Empty() {
				outcome = outcomeEmpty
			} else if err == nil {
				text = p.Text
			}
		}
		if err != nil {
			outcome = serrors.Kind(err)
		}
		b.observe(ctx, "scripture", item.Reference, outcome, start)

		if fatal(outcome) {
			return nil, err
		}
		if outcome != outcomeOK {
			return []Slide{placeholder(display, item.Translation, outcome)}, nil
		}
	}

	chunks := Chunk(text, maxChars)
	slides := make([]Slide, len(chunks))
	for i, chunk := range chunks {
		title := display
		if len(chunks) > 1 {
			title += fmt.Sprintf(" (%d/%d)", i+1, len(chunks))
		}
		slides[i] = Slide{Kind: KindScripture, Title: title, Body: chunk, Footer: item.Translation}
	}
	return slides, nil
}

func (b *Builder) hymnSlides(ctx context.Context, item HymnItem) ([]Slide, error) {
	start := time.Now()
	song, err := b.lib.FetchSong(item.ID)
	outcome := serrors.Kind(err)
	if err == nil {
		outcome = outcomeOK
		if len(song.Strophes) == 0 && !song.HasRefrain() {
			outcome = outcomeEmpty
		}
	}
	b.observe(ctx, "hymn", strconv.Itoa(item.ID), outcome, start)

	if fatal(outcome) {
		return nil, err
	}
	if outcome != outcomeOK {
		return []Slide{placeholder(corpus.DefaultSongTitle(item.ID), "", outcome)}, nil
	}

	var slides []Slide
	n := len(song.Strophes)
	for i, strophe := range song.Strophes {
		slides = append(slides, Slide{
			Kind:     KindHymn,
			Title:    song.Title,
			Subtitle: fmt.Sprintf("%d/%d절", i+1, n),
			Body:     strophe,
			Footer:   corpus.DefaultSongTitle(song.Number),
		})
		if song.HasRefrain() {
			slides = append(slides, refrainSlide(song))
		}
	}
	if n == 0 {
		slides = append(slides, refrainSlide(song))
	}
	return slides, nil
}

func refrainSlide(song *corpus.Song) Slide {
	return Slide{
		Kind:     KindHymn,
		Title:    song.Title,
		Subtitle: RefrainLabel,
		Body:     song.Refrain,
		Footer:   corpus.DefaultSongTitle(song.Number),
	}
}

// fatal reports outcomes that abort the whole deck.
func fatal(outcome string) bool {
	return outcome == serrors.KindStorage || outcome == serrors.KindInternal
}

func placeholder(title, footer, outcome string) Slide {
	return Slide{
		Kind:    KindPlaceholder,
		Title:   title,
		Body:    placeholderText[outcome],
		Footer:  footer,
		Outcome: outcome,
	}
}

func (b *Builder) observe(ctx context.Context, kind, key, outcome string, start time.Time) {
	logging.Lookup(ctx, kind, key, outcome, time.Since(start))
	if b.opts.OnLookup != nil {
		b.opts.OnLookup(kind, outcome)
	}
}
