// Command slidedeck resolves scripture citations, prints verse and hymn
// text, assembles slide outlines from service plans and serves the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
	"github.com/focory-beep/sermon-slide-generator/core/scripture"
	"github.com/focory-beep/sermon-slide-generator/core/sqlite"
	"github.com/focory-beep/sermon-slide-generator/internal/api"
	"github.com/focory-beep/sermon-slide-generator/internal/archive"
	"github.com/focory-beep/sermon-slide-generator/internal/config"
	"github.com/focory-beep/sermon-slide-generator/internal/deck"
	"github.com/focory-beep/sermon-slide-generator/internal/library"
	"github.com/focory-beep/sermon-slide-generator/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for slidedeck.
type CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"Config file (yaml, toml or json)" type:"path"`
	EnvFile   string `name:"env-file" help:"Environment file loaded before SLIDES_* variables" default:".env" type:"path"`
	Root      string `name:"root" help:"Content root holding the bible and hymn trees" type:"path"`
	Backend   string `name:"backend" help:"Scripture backend (markdown, xml, sqlite)"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (json, text, auto)"`

	Resolve ResolveCmd `cmd:"" help:"Resolve a citation to its canonical book, chapter and verses"`
	Verse   VerseCmd   `cmd:"" help:"Print verse text for a citation"`
	Hymn    HymnCmd    `cmd:"" help:"Print a hymn's title, strophes and refrain"`
	Deck    DeckCmd    `cmd:"" help:"Assemble a slide outline from a service plan"`
	Index   IndexCmd   `cmd:"" help:"Build the SQLite index from the markdown corpus"`
	Unpack  UnpackCmd  `cmd:"" help:"Unpack a corpus bundle into the content root"`
	Pack    PackCmd    `cmd:"" help:"Pack a corpus directory into a bundle"`
	Serve   ServeCmd   `cmd:"" help:"Start the HTTP API server"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// Env is handed to every command's Run method.
type Env struct {
	Config *config.Config
	Out    io.Writer
}

// load reads configuration and applies global flag overrides.
func (c *CLI) load() (*config.Config, error) {
	cfg, err := config.Load(config.Options{ConfigFile: c.Config, EnvFile: c.EnvFile})
	if err != nil {
		return nil, err
	}
	if c.Root != "" {
		cfg.Root = c.Root
	}
	if c.Backend != "" {
		cfg.Backend = config.Backend(c.Backend)
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Log.Format = c.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.SetOutput(os.Stderr)
	logging.InitLogger(logging.ParseLevel(cfg.Log.Level), logging.ParseFormat(cfg.Log.Format))
	return cfg, nil
}

// ResolveCmd parses a citation.
type ResolveCmd struct {
	Citation string `arg:"" help:"Citation such as 요3:16 or John 3:16"`
	Language string `name:"language" short:"l" help:"Citation language (korean, english, german)"`
}

func (c *ResolveCmd) Run(env *Env) error {
	lang := scripture.ParseLanguage(firstNonEmpty(c.Language, env.Config.Language))
	h, err := library.Open(env.Config.Corpus)
	if err != nil {
		return err
	}
	defer h.Close()

	// An unknown book still prints the partial resolution with resolved=false.
	res, err := h.ResolveCitation(c.Citation, lang)
	if err != nil && !serrors.Is(err, serrors.ErrUnresolvedBook) {
		return err
	}
	return writeJSON(env.Out, res)
}

// VerseCmd prints verse text.
type VerseCmd struct {
	Citation string `arg:"" optional:"" help:"Citation; omit to use --book and --chapter"`
	Language string `name:"language" short:"l" help:"Citation language (korean, english, german)"`
	Book     string `name:"book" help:"Book name or abbreviation in any language"`
	Chapter  int    `name:"chapter" help:"Chapter number"`
	Start    int    `name:"start" default:"1" help:"First verse"`
	End      int    `name:"end" default:"999" help:"Last verse; 999 reads to the end of the chapter"`
	JSON     bool   `name:"json" help:"Print the passage as JSON"`
}

func (c *VerseCmd) Run(env *Env) error {
	h, err := library.Open(env.Config.Corpus)
	if err != nil {
		return err
	}
	defer h.Close()

	if c.Citation == "" {
		if c.Book == "" || c.Chapter == 0 {
			return serrors.NewValidation("citation", "", "either a citation or --book and --chapter are required")
		}
		p, err := h.FetchVerses(c.Book, c.Chapter, c.Start, c.End)
		if err != nil {
			return err
		}
		if c.JSON {
			return writeJSON(env.Out, p)
		}
		_, err = fmt.Fprintln(env.Out, p.Text)
		return err
	}

	lang := scripture.ParseLanguage(firstNonEmpty(c.Language, env.Config.Language))
	cit, err := h.Registry().Parse(c.Citation, lang)
	if err != nil {
		return err
	}
	p, err := h.FetchPassage(cit)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(env.Out, p)
	}
	_, err = fmt.Fprintf(env.Out, "%s\n%s\n", p.Reference, p.Text)
	return err
}

// HymnCmd prints a hymn.
type HymnCmd struct {
	ID   int  `arg:"" help:"Hymn number (1-645)"`
	JSON bool `name:"json" help:"Print the song as JSON"`
}

func (c *HymnCmd) Run(env *Env) error {
	h, err := library.Open(env.Config.Corpus)
	if err != nil {
		return err
	}
	defer h.Close()

	song, err := h.FetchSong(c.ID)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(env.Out, song)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", song.Title)
	for i, s := range song.Strophes {
		fmt.Fprintf(&sb, "\n[%d절]\n%s\n", i+1, s)
	}
	if song.HasRefrain() {
		fmt.Fprintf(&sb, "\n[%s]\n%s\n", deck.RefrainLabel, song.Refrain)
	}
	_, err = io.WriteString(env.Out, sb.String())
	return err
}

// DeckCmd assembles a slide outline.
type DeckCmd struct {
	Plan     string `arg:"" help:"Service plan file (yaml or json)" type:"existingfile"`
	Format   string `name:"format" short:"f" default:"json" enum:"json,yaml,yml" help:"Output format"`
	Output   string `name:"output" short:"o" help:"Write to file instead of stdout" type:"path"`
	MaxChars int    `name:"max-chars" help:"Characters per scripture slide (overrides config)"`
}

func (c *DeckCmd) Run(env *Env) error {
	format, err := deck.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	plan, err := deck.LoadPlan(c.Plan)
	if err != nil {
		return err
	}
	h, err := library.Open(env.Config.Corpus)
	if err != nil {
		return err
	}
	defer h.Close()

	maxChars := env.Config.MaxCharsPerSlide
	if c.MaxChars > 0 {
		maxChars = c.MaxChars
	}
	b := deck.NewBuilder(h.Library, deck.Options{MaxChars: maxChars, Workers: env.Config.Deck.Workers})
	d, err := b.Build(context.Background(), plan)
	if err != nil {
		return err
	}

	if c.Output == "" {
		return d.Encode(env.Out, format)
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	if err := d.Encode(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// IndexCmd builds the SQLite index.
type IndexCmd struct {
	Output  string `name:"output" short:"o" help:"Index path (defaults to corpus.index_path)" type:"path"`
	Workers int    `name:"workers" help:"Concurrent chapter reads (defaults to deck.workers)"`
}

func (c *IndexCmd) Run(env *Env) error {
	path := firstNonEmpty(c.Output, env.Config.IndexPath)
	workers := c.Workers
	if workers <= 0 {
		workers = env.Config.Deck.Workers
	}
	stats, err := library.BuildIndex(context.Background(), env.Config.Corpus, path, workers)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Out, "Indexed %d books, %d chapters, %d verses, %d songs into %s in %s\n",
		stats.Books, stats.Chapters, stats.Verses, stats.Songs, path, stats.Elapsed.Round(time.Millisecond))
	return err
}

// UnpackCmd extracts a bundle.
type UnpackCmd struct {
	Bundle string `arg:"" optional:"" help:"Bundle path (defaults to corpus.bundle_path)" type:"path"`
	Dest   string `name:"dest" short:"d" help:"Destination (defaults to corpus.root)" type:"path"`
}

func (c *UnpackCmd) Run(env *Env) error {
	bundle := firstNonEmpty(c.Bundle, env.Config.BundlePath)
	if bundle == "" {
		return serrors.NewValidation("bundle", "", "no bundle given and corpus.bundle_path is empty")
	}
	dest := firstNonEmpty(c.Dest, env.Config.Root)
	stats, err := archive.Extract(bundle, dest)
	if err != nil {
		return err
	}
	logging.CorpusEvent("unpack", string(env.Config.Backend), dest, "bundle", bundle, "files", stats.Files)
	_, err = fmt.Fprintf(env.Out, "Unpacked %d files (%d bytes, %d skipped) into %s\n",
		stats.Files, stats.Bytes, stats.Skipped, dest)
	return err
}

// PackCmd creates a bundle.
type PackCmd struct {
	Source string `arg:"" help:"Corpus directory" type:"existingdir"`
	Bundle string `arg:"" help:"Output .tar.xz or .tar.gz path" type:"path"`
}

func (c *PackCmd) Run(env *Env) error {
	if err := archive.Pack(c.Source, c.Bundle); err != nil {
		return err
	}
	_, err := fmt.Fprintf(env.Out, "Packed %s into %s\n", c.Source, c.Bundle)
	return err
}

// ServeCmd runs the HTTP API.
type ServeCmd struct {
	Host  string `name:"host" help:"Listen host (defaults to http.host)"`
	Port  int    `name:"port" short:"p" help:"Listen port (defaults to http.port)"`
	Watch bool   `name:"watch" help:"Clear the corpus cache when files under the content root change"`
}

func (c *ServeCmd) Run(env *Env) error {
	cfg := env.Config
	h, err := library.Open(cfg.Corpus)
	if err != nil {
		return err
	}
	defer h.Close()

	port := cfg.Port
	if c.Port > 0 {
		port = c.Port
	}
	srv := api.NewServer(api.Config{
		Host:              firstNonEmpty(c.Host, cfg.Host),
		Port:              port,
		Version:           version,
		Language:          cfg.Language,
		MaxCharsPerSlide:  cfg.MaxCharsPerSlide,
		Workers:           cfg.Deck.Workers,
		RateLimitRequests: cfg.RateLimit,
		RateLimitBurst:    cfg.RateBurst,
		AllowedOrigins:    cfg.AllowedOrigins,
		CacheStats:        h.CacheStats,
	}, h.Library)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Watch || cfg.Watch {
		go func() {
			if err := h.Watch(ctx, cfg.Root, library.DefaultDebounce); err != nil {
				logging.Warn("corpus watch stopped", "root", cfg.Root, "error", err)
			}
		}()
	}
	return srv.Run(ctx)
}

// VersionCmd prints the version and the SQLite driver compiled in.
type VersionCmd struct{}

func (c *VersionCmd) Run(env *Env) error {
	info := sqlite.GetInfo()
	cgo := "disabled"
	if info.IsCGO {
		cgo = "enabled"
	}
	_, err := fmt.Fprintf(env.Out, "slidedeck version %s\nsqlite: %s (%s, cgo %s)\n",
		version, info.Package, info.DriverType, cgo)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("slidedeck"),
		kong.Description("Sermon slide generator - scripture and hymn text for worship slides"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, options()...)

	cfg, err := cli.load()
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&Env{Config: cfg, Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
