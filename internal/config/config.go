// Package config loads process configuration from defaults, an optional
// config file, an optional .env file and SLIDES_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
)

// EnvPrefix prefixes every environment variable, e.g. SLIDES_HTTP_PORT.
const EnvPrefix = "SLIDES"

// Backend selects where scripture text is read from.
type Backend string

const (
	BackendMarkdown Backend = "markdown"
	BackendXML      Backend = "xml"
	BackendSQLite   Backend = "sqlite"
)

type (
	Config struct {
		Corpus
		HTTP
		Log
		Deck
		// Language is the default citation language.
		Language string
	}

	Corpus struct {
		// Root is the reference directory holding the bible and hymn trees.
		Root string
		// BibleDir and HymnDir are relative to Root. Empty means discover.
		BibleDir string
		HymnDir  string
		Backend  Backend
		XMLFile  string
		// IndexPath is the SQLite index read by the sqlite backend and
		// written by the index command.
		IndexPath string
		// BundlePath is a .tar.xz or .tar.gz corpus unpacked into Root.
		BundlePath string
		// CacheSize bounds the chapters and songs kept in memory; 0 disables
		// the cache.
		CacheSize int
		CacheTTL  time.Duration
		// Watch clears the cache when files under Root change.
		Watch bool
	}

	HTTP struct {
		Host string
		Port int
		// RateLimit is requests per minute per client; 0 disables limiting.
		RateLimit int
		RateBurst int
		// AllowedOrigins restricts CORS; empty allows every origin. From the
		// environment it is a comma-separated list.
		AllowedOrigins []string
	}

	Log struct {
		Level  string
		Format string
	}

	Deck struct {
		MaxCharsPerSlide int
		Workers          int
	}
)

// Options tells Load where to look for files. Empty fields are skipped.
type Options struct {
	ConfigFile string
	EnvFile    string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("corpus.root", "./Reference")
	v.SetDefault("corpus.bible_dir", "")
	v.SetDefault("corpus.hymn_dir", "")
	v.SetDefault("corpus.backend", string(BackendMarkdown))
	v.SetDefault("corpus.xml_file", "")
	v.SetDefault("corpus.index_path", "./corpus.db")
	v.SetDefault("corpus.bundle_path", "")
	v.SetDefault("corpus.cache_size", 256)
	v.SetDefault("corpus.cache_ttl", "10m")
	v.SetDefault("corpus.watch", false)
	v.SetDefault("language", "korean")
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8000)
	v.SetDefault("http.rate_limit", 0)
	v.SetDefault("http.rate_burst", 10)
	v.SetDefault("http.allowed_origins", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("deck.max_chars_per_slide", 200)
	v.SetDefault("deck.workers", 4)
	return v
}

// Load builds the configuration. Environment variables override the config
// file, which overrides defaults. Variables from the .env file never
// override ones already set in the environment.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", opts.EnvFile, err)
		}
	}

	v := newViper()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration with only defaults and environment
// variables applied.
func Default() *Config {
	return fromViper(newViper())
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Corpus: Corpus{
			Root:       v.GetString("corpus.root"),
			BibleDir:   v.GetString("corpus.bible_dir"),
			HymnDir:    v.GetString("corpus.hymn_dir"),
			Backend:    Backend(strings.ToLower(v.GetString("corpus.backend"))),
			XMLFile:    v.GetString("corpus.xml_file"),
			IndexPath:  v.GetString("corpus.index_path"),
			BundlePath: v.GetString("corpus.bundle_path"),
			CacheSize:  v.GetInt("corpus.cache_size"),
			CacheTTL:   v.GetDuration("corpus.cache_ttl"),
			Watch:      v.GetBool("corpus.watch"),
		},
		HTTP: HTTP{
			Host:      v.GetString("http.host"),
			Port:      v.GetInt("http.port"),
			RateLimit: v.GetInt("http.rate_limit"),
			RateBurst: v.GetInt("http.rate_burst"),

			AllowedOrigins: splitList(v.GetStringSlice("http.allowed_origins")),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Deck: Deck{
			MaxCharsPerSlide: v.GetInt("deck.max_chars_per_slide"),
			Workers:          v.GetInt("deck.workers"),
		},
		Language: v.GetString("language"),
	}
}

// splitList splits every item on commas and drops empty entries. viper
// splits environment strings on whitespace only.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks value ranges and backend requirements.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMarkdown, BackendSQLite:
	case BackendXML:
		if c.XMLFile == "" {
			return serrors.NewValidation("corpus.xml_file", "", "required for the xml backend")
		}
	default:
		return serrors.NewValidation("corpus.backend", string(c.Backend), "must be markdown, xml or sqlite")
	}
	if c.Backend == BackendSQLite && c.IndexPath == "" {
		return serrors.NewValidation("corpus.index_path", "", "required for the sqlite backend")
	}
	if c.CacheSize < 0 {
		return serrors.NewValidation("corpus.cache_size", fmt.Sprint(c.CacheSize), "must not be negative")
	}
	if c.Port < 1 || c.Port > 65535 {
		return serrors.NewValidation("http.port", fmt.Sprint(c.Port), "must be between 1 and 65535")
	}
	if c.RateLimit < 0 {
		return serrors.NewValidation("http.rate_limit", fmt.Sprint(c.RateLimit), "must not be negative")
	}
	if c.MaxCharsPerSlide < 20 {
		return serrors.NewValidation("deck.max_chars_per_slide", fmt.Sprint(c.MaxCharsPerSlide), "must be at least 20")
	}
	if c.Workers < 1 {
		return serrors.NewValidation("deck.workers", fmt.Sprint(c.Workers), "must be positive")
	}
	return nil
}

// Addr returns the HTTP listen address.
func (h HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}
