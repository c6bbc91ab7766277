package api

import (
	"fmt"

	"github.com/focory-beep/sermon-slide-generator/core/cache"
)

// Config holds server configuration.
type Config struct {
	Host              string
	Port              int
	Version           string
	Language          string             // default citation language
	MaxCharsPerSlide  int                // deck chunk size
	Workers           int                // concurrent deck lookups
	RateLimitRequests int                // Requests per minute (0 = disabled)
	RateLimitBurst    int                // Burst size
	AllowedOrigins    []string           // CORS allowed origins (empty = allow all)
	CacheStats        func() cache.Stats // corpus cache counters, exported when set
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
