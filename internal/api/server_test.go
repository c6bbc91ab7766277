package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focory-beep/sermon-slide-generator/core/cache"
	"github.com/focory-beep/sermon-slide-generator/core/corpus/corpustest"
	"github.com/focory-beep/sermon-slide-generator/internal/logging"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.Language == "" {
		cfg.Language = "korean"
	}
	if cfg.Version == "" {
		cfg.Version = "test"
	}
	s := NewServer(cfg, corpustest.NewLibrary())
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, s *Server, method, target string, body string, header ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{})
	w, env := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, w.Header().Get(logging.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.NotNil(t, env.Meta)
	assert.Equal(t, w.Header().Get(logging.RequestIDHeader), env.Meta.RequestID)

	var info HealthInfo
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "healthy", info.Status)
	assert.Equal(t, "test", info.Version)
}

func TestParseReference(t *testing.T) {
	s := newTestServer(t, Config{})

	tests := []struct {
		name     string
		query    string
		status   int
		book     string
		resolved bool
		code     string
	}{
		{"korean", "reference=" + url.QueryEscape("요3:16"), http.StatusOK, "요한복음", true, ""},
		{"english", "reference=John3:16&language=english", http.StatusOK, "John", true, ""},
		{"language alias", "reference=" + url.QueryEscape("Röm8:28") + "&language=de", http.StatusOK, "Römer", true, ""},
		{"unresolved keeps token", "reference=xyz3:16&language=en", http.StatusOK, "xyz", false, ""},
		{"malformed", "reference=3:16", http.StatusBadRequest, "", false, "INVALID_FORMAT"},
		{"too long", "reference=" + strings.Repeat("a", 300), http.StatusBadRequest, "", false, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, s, http.MethodGet, "/parse-bible-reference?"+tt.query, "")
			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.code, env.Error.Code)
				return
			}
			var res struct {
				Book     string `json:"book"`
				Chapter  int    `json:"chapter"`
				Resolved bool   `json:"resolved"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &res))
			assert.Equal(t, tt.book, res.Book)
			assert.Equal(t, tt.resolved, res.Resolved)
		})
	}
}

func TestVersesByReference(t *testing.T) {
	s := newTestServer(t, Config{})
	w, env := do(t, s, http.MethodGet, "/verses?reference="+url.QueryEscape("요 3:16-17"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var v VerseResponse
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, "요한복음 3:16-17", v.Reference)
	assert.Equal(t, "16 하나님이 세상을 이처럼 사랑하사 독생자를 주셨으니 17 하나님이 그 아들을 세상에 보내신 것은", v.Text)
	assert.Len(t, v.Verses, 2)

	etag := w.Header().Get("ETag")
	assert.Equal(t, `"`+v.Digest+`"`, etag)

	w, _ = do(t, s, http.MethodGet, "/verses?reference="+url.QueryEscape("요 3:16-17"), "", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, w.Code)
}

func TestVersesByBook(t *testing.T) {
	s := newTestServer(t, Config{})
	w, env := do(t, s, http.MethodGet, "/verses?book="+url.QueryEscape("요한복음")+"&chapter=3&start=17", "")
	require.Equal(t, http.StatusOK, w.Code)

	var v VerseResponse
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, "요한복음 3:17-", v.Reference)
	assert.Len(t, v.Verses, 2)
	assert.True(t, v.Range.Whole)
}

func TestVersesErrors(t *testing.T) {
	s := newTestServer(t, Config{})
	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"missing chapter", "book=" + url.QueryEscape("요한복음"), http.StatusBadRequest, "INVALID_INPUT"},
		{"non-numeric chapter", "book=John&chapter=three", http.StatusBadRequest, "INVALID_INPUT"},
		{"absent chapter", "reference=" + url.QueryEscape("요 4:1"), http.StatusNotFound, "NOT_FOUND"},
		{"absent book", "reference=" + url.QueryEscape("출 20:1"), http.StatusNotFound, "NOT_FOUND"},
		{"unknown book", "reference=xyz3:16", http.StatusNotFound, "UNRESOLVED_BOOK"},
		{"unknown book name", "book=xyz&chapter=1", http.StatusNotFound, "NOT_FOUND"},
		{"malformed", "reference=3:16", http.StatusBadRequest, "INVALID_FORMAT"},
		{"zero verse", "book=John&chapter=3&start=0&end=2", http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, s, http.MethodGet, "/verses?"+tt.query, "")
			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestHymn(t *testing.T) {
	s := newTestServer(t, Config{})

	w, env := do(t, s, http.MethodGet, "/hymns/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var song struct {
		Title  string   `json:"title"`
		Verses []string `json:"verses"`
		Chorus string   `json:"chorus"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &song))
	assert.Equal(t, "만복의 근원 하나님", song.Title)
	assert.Len(t, song.Verses, 2)
	assert.Equal(t, "아멘 아멘", song.Chorus)

	w, env = do(t, s, http.MethodGet, "/hymns/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, env = do(t, s, http.MethodGet, "/hymns/646", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)

	w, _ = do(t, s, http.MethodGet, "/hymns/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeck(t *testing.T) {
	s := newTestServer(t, Config{MaxCharsPerSlide: 200, Workers: 2})
	plan := `{"title": "주일 예배", "date": "2026년 10월 18일",
		"scriptures": [{"reference": "요 3:16", "translation": "개역개정"}],
		"hymns": [{"id": 1}, {"id": 9}]}`

	w, env := do(t, s, http.MethodPost, "/deck", plan, "Content-Type", "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	var d struct {
		Title        string `json:"title"`
		Placeholders int    `json:"placeholders"`
		Slides       []struct {
			Kind  string `json:"kind"`
			Title string `json:"title"`
		} `json:"slides"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "주일 예배", d.Title)
	assert.Equal(t, 1, d.Placeholders)
	require.Len(t, d.Slides, 1+1+4+1)
	assert.Equal(t, "요한복음 3:16", d.Slides[1].Title)

	w, _ = do(t, s, http.MethodPost, "/deck?format=yaml", plan)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "yaml")
	assert.Contains(t, w.Body.String(), "title: 주일 예배")

	w, env = do(t, s, http.MethodPost, "/deck", "songs: []")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)

	w, _ = do(t, s, http.MethodPost, "/deck?format=pptx", plan)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, Config{})
	do(t, s, http.MethodGet, "/hymns/1", "")
	do(t, s, http.MethodGet, "/hymns/3", "")

	w, _ := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `slides_lookups_total{kind="hymn",outcome="ok"} 1`)
	assert.Contains(t, body, `slides_lookups_total{kind="hymn",outcome="not_found"} 1`)
	assert.Contains(t, body, `slides_http_request_duration_seconds_count{method="GET",route="/hymns/:id",status="200"} 1`)
}

func TestMetricsCache(t *testing.T) {
	s := newTestServer(t, Config{CacheStats: func() cache.Stats {
		return cache.Stats{Hits: 7, Misses: 3, Evictions: 1, Size: 2}
	}})

	w, _ := do(t, s, http.MethodGet, "/metrics", "")
	body := w.Body.String()
	assert.Contains(t, body, "slides_cache_hits_total 7")
	assert.Contains(t, body, "slides_cache_misses_total 3")
	assert.Contains(t, body, "slides_cache_evictions_total 1")
	assert.Contains(t, body, "slides_cache_entries 2")

	plain := newTestServer(t, Config{})
	w, _ = do(t, plain, http.MethodGet, "/metrics", "")
	assert.NotContains(t, w.Body.String(), "slides_cache_hits_total")
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t, Config{})
	w, env := do(t, s, http.MethodGet, "/slides", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestCORS(t *testing.T) {
	open := newTestServer(t, Config{})
	w, _ := do(t, open, http.MethodGet, "/health", "", "Origin", "https://example.com")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w, _ = do(t, open, http.MethodOptions, "/verses", "", "Origin", "https://example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)

	restricted := newTestServer(t, Config{AllowedOrigins: []string{"https://church.example"}})
	w, _ = do(t, restricted, http.MethodGet, "/health", "", "Origin", "https://church.example")
	assert.Equal(t, "https://church.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w, _ = do(t, restricted, http.MethodGet, "/health", "", "Origin", "https://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w, _ = do(t, restricted, http.MethodOptions, "/health", "", "Origin", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Config{RateLimitRequests: 1, RateLimitBurst: 2})

	for i := 0; i < 2; i++ {
		w, _ := do(t, s, http.MethodGet, "/hymns/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w, env := do(t, s, http.MethodGet, "/hymns/1", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", env.Error.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w, _ = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code, "health is not rate limited")
}

func TestStatusForKind(t *testing.T) {
	status, code := statusForKind("storage_failure")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "STORAGE_FAILURE", code)

	status, code = statusForKind("something_else")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", code)
}
