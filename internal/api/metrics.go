package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/focory-beep/sermon-slide-generator/core/cache"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	lookups  *prometheus.CounterVec
	requests *prometheus.HistogramVec
	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors with a fresh registry. Go runtime and
// process collectors are included so /metrics is useful on its own. When
// cacheStats is non-nil the corpus cache counters are exported too.
func NewMetrics(cacheStats func() cache.Stats) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	if cacheStats != nil {
		registerCache(factory, cacheStats)
	}

	return &Metrics{
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slides",
			Name:      "lookups_total",
			Help:      "Citation, verse and song lookups by item kind and outcome.",
		}, []string{"kind", "outcome"}),
		requests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "slides",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		gatherer: reg,
	}
}

func registerCache(factory promauto.Factory, stats func() cache.Stats) {
	counter := func(name, help string, value func(cache.Stats) int64) {
		factory.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "slides",
			Subsystem: "cache",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(value(stats())) })
	}
	counter("hits_total", "Chapter and song cache hits.", func(s cache.Stats) int64 { return s.Hits })
	counter("misses_total", "Chapter and song cache misses.", func(s cache.Stats) int64 { return s.Misses })
	counter("evictions_total", "Chapter and song cache evictions.", func(s cache.Stats) int64 { return s.Evictions })

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "slides",
		Subsystem: "cache",
		Name:      "entries",
		Help:      "Chapters and songs currently cached.",
	}, func() float64 { return float64(stats().Size) })
}

// ObserveLookup counts one lookup.
func (m *Metrics) ObserveLookup(kind, outcome string) {
	m.lookups.WithLabelValues(kind, outcome).Inc()
}

// Middleware records request latency. Unmatched routes share one label.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
