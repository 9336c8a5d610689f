package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RedactedTokensTotal *prometheus.CounterVec
	RejectedContent     *prometheus.CounterVec
	TogglesTotal        *prometheus.CounterVec
	FeedBuildDuration   prometheus.Histogram
}

// New creates collectors on a fresh registry, including Go runtime and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		RedactedTokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_redacted_tokens_total",
				Help: "Disallowed tokens masked in stored text",
			},
			[]string{"kind"},
		),
		RejectedContent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_rejected_total",
				Help: "Submissions rejected before persistence",
			},
			[]string{"kind", "reason"},
		),
		TogglesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toggles_total",
				Help: "Like and save toggles by resulting state",
			},
			[]string{"kind", "state"},
		),
		FeedBuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "feed_build_duration_seconds",
				Help:    "Time spent assembling the feed read model",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// Registry exposes the underlying registry for scraping and tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware counts requests by route template so path parameters do not explode cardinality
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if !c.Response().Committed {
					status = 500
				}
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// ObserveRedaction records masked tokens for one submission
func (m *Metrics) ObserveRedaction(kind string, n int) {
	if n > 0 {
		m.RedactedTokensTotal.WithLabelValues(kind).Add(float64(n))
	}
}

// ObserveRejection records a submission refused by validation
func (m *Metrics) ObserveRejection(kind, reason string) {
	m.RejectedContent.WithLabelValues(kind, reason).Inc()
}

// ObserveToggle records the state a toggle left behind
func (m *Metrics) ObserveToggle(kind string, present bool) {
	state := "absent"
	if present {
		state = "present"
	}
	m.TogglesTotal.WithLabelValues(kind, state).Inc()
}

// TrackFeedBuild returns a function that records feed assembly time when called
func (m *Metrics) TrackFeedBuild() func() {
	start := time.Now()
	return func() {
		m.FeedBuildDuration.Observe(time.Since(start).Seconds())
	}
}
