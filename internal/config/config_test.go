package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "./Reference", cfg.Corpus.Root)
	assert.Equal(t, BackendMarkdown, cfg.Backend)
	assert.Equal(t, "korean", cfg.Language)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
	assert.Equal(t, 200, cfg.MaxCharsPerSlide)
	assert.Equal(t, 4, cfg.Deck.Workers)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Equal(t, 256, cfg.CacheSize)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SLIDES_CORPUS_ROOT", "/srv/corpus")
	t.Setenv("SLIDES_CORPUS_BACKEND", "SQLite")
	t.Setenv("SLIDES_HTTP_PORT", "9090")
	t.Setenv("SLIDES_DECK_MAX_CHARS_PER_SLIDE", "120")
	t.Setenv("SLIDES_CORPUS_CACHE_TTL", "90s")
	t.Setenv("SLIDES_HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example, https://c.example")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "/srv/corpus", cfg.Corpus.Root)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 120, cfg.MaxCharsPerSlide)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example", "https://c.example"}, cfg.AllowedOrigins)
}

func TestConfigFileAndEnvFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "slides.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
corpus:
  backend: xml
  xml_file: /data/luther.xml
language: german
http:
  port: 7000
  allowed_origins:
    - https://church.example
    - https://media.example
`), 0o644))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SLIDES_LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SLIDES_LOG_LEVEL") })

	cfg, err := Load(Options{ConfigFile: cfgFile, EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, BackendXML, cfg.Backend)
	assert.Equal(t, "/data/luther.xml", cfg.XMLFile)
	assert.Equal(t, "german", cfg.Language)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, []string{"https://church.example", "https://media.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), "absent.env")})
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Backend = "postgres" }},
		{"xml without file", func(c *Config) { c.Backend = BackendXML }},
		{"sqlite without index", func(c *Config) { c.Backend = BackendSQLite; c.IndexPath = "" }},
		{"port out of range", func(c *Config) { c.Port = 70000 }},
		{"tiny slides", func(c *Config) { c.MaxCharsPerSlide = 5 }},
		{"no workers", func(c *Config) { c.Deck.Workers = 0 }},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }},
		{"negative cache size", func(c *Config) { c.CacheSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), serrors.ErrInvalidInput)
		})
	}
}
