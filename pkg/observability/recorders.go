package observability

import "time"

// The recorders below are nil-safe so components can run without metrics
// in tests.

func (m *Metrics) ObserveRedemption(kind, outcome string) {
	if m == nil {
		return
	}
	m.RedemptionsTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveInviteCreated(inviterRole string) {
	if m == nil {
		return
	}
	m.InvitesCreatedTotal.WithLabelValues(inviterRole).Inc()
}

func (m *Metrics) ObserveGuardDecision(state, reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "none"
	}
	m.GuardDecisionsTotal.WithLabelValues(state, reason).Inc()
}

func (m *Metrics) ObserveEventAccepted(eventType string) {
	if m == nil {
		return
	}
	m.EventsAcceptedTotal.WithLabelValues(eventType).Inc()
}

func (m *Metrics) ObserveEventRejected(eventType string) {
	if m == nil {
		return
	}
	m.EventsRejectedTotal.WithLabelValues(eventType).Inc()
}

func (m *Metrics) ObserveEventWritten(eventType string, took time.Duration) {
	if m == nil {
		return
	}
	m.EventsWrittenTotal.WithLabelValues(eventType).Inc()
	m.EventWriteDuration.Observe(took.Seconds())
}

func (m *Metrics) ObserveEventDropped(reason string) {
	if m == nil {
		return
	}
	m.EventsDroppedTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveEventRetry() {
	if m == nil {
		return
	}
	m.EventWriteRetries.Inc()
}

func (m *Metrics) SetEventQueueDepth(n int) {
	if m == nil {
		return
	}
	m.EventQueueDepth.Set(float64(n))
}

func (m *Metrics) ObserveCacheHit(backend string) {
	if m == nil {
		return
	}
	m.QueryCacheHitsTotal.WithLabelValues(backend).Inc()
}

func (m *Metrics) ObserveCacheMiss(backend string) {
	if m == nil {
		return
	}
	m.QueryCacheMissesTotal.WithLabelValues(backend).Inc()
}

func (m *Metrics) ObserveCacheError(backend string) {
	if m == nil {
		return
	}
	m.QueryCacheErrorsTotal.WithLabelValues(backend).Inc()
}
