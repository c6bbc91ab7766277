package api

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/focory-beep/sermon-slide-generator/core/corpus"
	serrors "github.com/focory-beep/sermon-slide-generator/core/errors"
	"github.com/focory-beep/sermon-slide-generator/core/scripture"
	"github.com/focory-beep/sermon-slide-generator/internal/deck"
	"github.com/focory-beep/sermon-slide-generator/internal/logging"
	"github.com/focory-beep/sermon-slide-generator/internal/validation"
)

// maxPlanBytes bounds a POST /deck body.
const maxPlanBytes = 1 << 20

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// VerseResponse is the body of GET /verses.
type VerseResponse struct {
	Reference string               `json:"reference"`
	Text      string               `json:"text"`
	Verses    []corpus.Verse       `json:"verses"`
	Range     scripture.VerseRange `json:"range"`
	Digest    string               `json:"digest"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

func (s *Server) handleRoot(c *gin.Context) {
	respond(c, http.StatusOK, map[string]interface{}{
		"name":    "Sermon Slide Generator API",
		"version": s.cfg.Version,
		"endpoints": []string{
			"GET /health",
			"GET /metrics",
			"GET /parse-bible-reference?reference=&language=",
			"GET /verses?reference=&language=",
			"GET /verses?book=&chapter=&start=&end=",
			"GET /hymns/:id",
			"POST /deck?format=json|yaml",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	respond(c, http.StatusOK, HealthInfo{
		Status:  "healthy",
		Version: s.cfg.Version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleParseReference(c *gin.Context) {
	start := time.Now()
	ref := c.Query("reference")
	if err := validation.ValidateCitation(ref); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	res, err := s.lib.ResolveCitation(ref, s.language(c))
	s.observe(c, "citation", ref, err, start)
	if err != nil && !serrors.Is(err, serrors.ErrUnresolvedBook) {
		respondKind(c, err)
		return
	}
	respond(c, http.StatusOK, res)
}

func (s *Server) handleVerses(c *gin.Context) {
	start := time.Now()
	var (
		p   *corpus.Passage
		key string
		err error
	)

	if ref := c.Query("reference"); ref != "" {
		if err := validation.ValidateCitation(ref); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
			return
		}
		key = ref
		var cit *scripture.Citation
		cit, err = s.lib.Registry().Parse(ref, s.language(c))
		if err == nil {
			p, err = s.lib.FetchPassage(cit)
		}
	} else {
		book := c.Query("book")
		chapter, cerr := intQuery(c, "chapter", 0)
		first, serr := intQuery(c, "start", 1)
		last, eerr := intQuery(c, "end", scripture.WholeChapter)
		if book == "" || cerr != nil || serr != nil || eerr != nil {
			respondError(c, http.StatusBadRequest, "INVALID_INPUT",
				"either reference or book and integer chapter, start, end are required")
			return
		}
		key = scripture.FormatReference(book, chapter, strconv.Itoa(first)+"-"+strconv.Itoa(last))
		p, err = s.lib.FetchVerses(book, chapter, first, last)
	}

	s.observe(c, "verses", key, err, start)
	if err != nil {
		respondKind(c, err)
		return
	}

	etag := `"` + p.Digest + `"`
	c.Header("ETag", etag)
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	respond(c, http.StatusOK, VerseResponse{
		Reference: p.Reference,
		Text:      p.Text,
		Verses:    p.Verses,
		Range:     p.Range,
		Digest:    p.Digest,
	})
}

func (s *Server) handleHymn(c *gin.Context) {
	start := time.Now()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", "hymn id must be an integer")
		return
	}

	song, err := s.lib.FetchSong(id)
	s.observe(c, "hymn", c.Param("id"), err, start)
	if err != nil {
		respondKind(c, err)
		return
	}
	respond(c, http.StatusOK, song)
}

func (s *Server) handleDeck(c *gin.Context) {
	format, err := deck.ParseFormat(c.DefaultQuery("format", string(deck.FormatJSON)))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPlanBytes+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", "could not read request body")
		return
	}
	if len(body) > maxPlanBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "INVALID_INPUT", "plan too large")
		return
	}

	plan, err := deck.ParsePlan(bytes.NewReader(body))
	if err != nil {
		respondKind(c, err)
		return
	}
	d, err := s.builder.Build(c.Request.Context(), plan)
	if err != nil {
		respondKind(c, err)
		return
	}

	if format == deck.FormatYAML {
		var buf bytes.Buffer
		if err := d.Encode(&buf, deck.FormatYAML); err != nil {
			respondKind(c, err)
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", buf.Bytes())
		return
	}
	respond(c, http.StatusOK, d)
}

// language reads ?language=, defaulting to the configured language.
func (s *Server) language(c *gin.Context) scripture.Language {
	return scripture.ParseLanguage(c.DefaultQuery("language", s.cfg.Language))
}

func (s *Server) observe(c *gin.Context, kind, key string, err error, start time.Time) {
	outcome := "ok"
	if err != nil {
		outcome = serrors.Kind(err)
	}
	s.metrics.ObserveLookup(kind, outcome)
	logging.Lookup(c.Request.Context(), kind, key, outcome, time.Since(start))
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		if def == 0 {
			return 0, serrors.NewValidation(name, "", "required")
		}
		return def, nil
	}
	return strconv.Atoi(v)
}

// statusForKind maps an outcome kind to an HTTP status and error code.
func statusForKind(kind string) (int, string) {
	switch kind {
	case serrors.KindInvalidFormat:
		return http.StatusBadRequest, "INVALID_FORMAT"
	case serrors.KindInvalidInput:
		return http.StatusBadRequest, "INVALID_INPUT"
	case serrors.KindUnresolvedBook:
		return http.StatusNotFound, "UNRESOLVED_BOOK"
	case serrors.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case serrors.KindStorage:
		return http.StatusInternalServerError, "STORAGE_FAILURE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func respondKind(c *gin.Context, err error) {
	status, code := statusForKind(serrors.Kind(err))
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logging.ErrorContext(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
		message = "internal error"
	}
	respondError(c, status, code, message)
}

func meta(c *gin.Context) *APIMeta {
	return &APIMeta{
		RequestID: c.GetString(string(logging.RequestIDKey)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta(c),
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: meta(c),
	})
}
