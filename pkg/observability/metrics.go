package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics exported by the portal.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Engagement event metrics
	EventsAcceptedTotal *prometheus.CounterVec
	EventsRejectedTotal *prometheus.CounterVec
	EventsWrittenTotal  *prometheus.CounterVec
	EventsDroppedTotal  *prometheus.CounterVec
	EventWriteRetries   prometheus.Counter
	EventQueueDepth     prometheus.Gauge
	EventWriteDuration  prometheus.Histogram

	// Access control metrics
	RedemptionsTotal    *prometheus.CounterVec
	InvitesCreatedTotal *prometheus.CounterVec
	GuardDecisionsTotal *prometheus.CounterVec

	// Query cache metrics
	QueryCacheHitsTotal   *prometheus.CounterVec
	QueryCacheMissesTotal *prometheus.CounterVec
	QueryCacheErrorsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all portal metrics on registry. A nil
// registry gets a fresh one, which keeps tests isolated from each other.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		EventsAcceptedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_events_accepted_total",
				Help: "Engagement events validated and queued for writing",
			},
			[]string{"event_type"},
		),
		EventsRejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_events_rejected_total",
				Help: "Engagement events rejected by the event contract",
			},
			[]string{"event_type"},
		),
		EventsWrittenTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_events_written_total",
				Help: "Engagement events durably written to the store",
			},
			[]string{"event_type"},
		),
		EventsDroppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_events_dropped_total",
				Help: "Engagement events accepted but never written",
			},
			[]string{"reason"},
		),
		EventWriteRetries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "portal_event_write_retries_total",
				Help: "Retried engagement event writes",
			},
		),
		EventQueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "portal_event_queue_depth",
				Help: "Engagement events waiting to be written",
			},
		),
		EventWriteDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "portal_event_write_duration_seconds",
				Help:    "Engagement event write duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),

		RedemptionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_redemptions_total",
				Help: "Invite and share link redemption attempts by outcome",
			},
			[]string{"kind", "outcome"},
		),
		InvitesCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_invites_created_total",
				Help: "Invites issued, by inviter role",
			},
			[]string{"inviter_role"},
		),
		GuardDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_guard_decisions_total",
				Help: "Route guard decisions by state and reason",
			},
			[]string{"state", "reason"},
		),

		QueryCacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_query_cache_hits_total",
				Help: "Event query cache hits",
			},
			[]string{"backend"},
		),
		QueryCacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_query_cache_misses_total",
				Help: "Event query cache misses",
			},
			[]string{"backend"},
		),
		QueryCacheErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_query_cache_errors_total",
				Help: "Event query cache backend errors",
			},
			[]string{"backend"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.EventsAcceptedTotal,
		m.EventsRejectedTotal,
		m.EventsWrittenTotal,
		m.EventsDroppedTotal,
		m.EventWriteRetries,
		m.EventQueueDepth,
		m.EventWriteDuration,
		m.RedemptionsTotal,
		m.InvitesCreatedTotal,
		m.GuardDecisionsTotal,
		m.QueryCacheHitsTotal,
		m.QueryCacheMissesTotal,
		m.QueryCacheErrorsTotal,
	)

	return m
}

// RegisterRuntimeCollectors adds the Go runtime and process collectors.
func (m *Metrics) RegisterRuntimeCollectors() {
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
