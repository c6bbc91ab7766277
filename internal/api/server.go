// Package api serves citation resolution, verse text, hymns and deck
// assembly over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/focory-beep/sermon-slide-generator/core/corpus"
	"github.com/focory-beep/sermon-slide-generator/internal/deck"
	"github.com/focory-beep/sermon-slide-generator/internal/logging"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP surface over a corpus.Library.
type Server struct {
	cfg     Config
	lib     *corpus.Library
	builder *deck.Builder
	metrics *Metrics
	limiter *RateLimiter
	engine  *gin.Engine
	started time.Time
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// NewServer builds the router. Call Close when done to stop the rate
// limiter's cleanup loop.
func NewServer(cfg Config, lib *corpus.Library) *Server {
	s := &Server{
		cfg:     cfg,
		lib:     lib,
		metrics: NewMetrics(cfg.CacheStats),
		started: time.Now(),
	}
	s.builder = deck.NewBuilder(lib, deck.Options{
		MaxChars: cfg.MaxCharsPerSlide,
		Workers:  cfg.Workers,
		OnLookup: s.metrics.ObserveLookup,
	})
	if cfg.RateLimitRequests > 0 {
		s.limiter = NewRateLimiter(RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimitRequests,
			BurstSize:         cfg.RateLimitBurst,
		})
	}
	s.engine = s.setupRoutes()
	return s
}

// setupRoutes configures middleware and all HTTP routes.
func (s *Server) setupRoutes() *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		logging.RequestID(),
		logging.AccessLog(),
		s.metrics.Middleware(),
		CORS(s.cfg.AllowedOrigins),
		SecurityHeaders(),
	)

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/")
	if s.limiter != nil {
		api.Use(s.limiter.Middleware())
	}
	api.GET("/parse-bible-reference", s.handleParseReference)
	api.GET("/verses", s.handleVerses)
	api.GET("/hymns/:id", s.handleHymn)
	api.POST("/deck", s.handleDeck)

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
	})
	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Close releases background resources.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.ServerStartup("rest_api", "http", s.cfg.Port,
		"host", s.cfg.Host,
		"rate_limit", s.cfg.RateLimitRequests,
		"cors_restricted", len(s.cfg.AllowedOrigins) > 0)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.Info("server_shutdown", "reason", ctx.Err().Error())
		return srv.Shutdown(shutdownCtx)
	}
}
