package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
	"github.com/aussiebroadwan/clienthub/pkg/idx"
	"github.com/aussiebroadwan/clienthub/pkg/observability"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
)

// EventSink accepts engagement events for asynchronous persistence.
type EventSink interface {
	Log(ctx context.Context, hubID string, actor domain.Principal, ev domain.Event) error
}

// EventLoggerConfig tunes the write queue. Zero values take defaults.
type EventLoggerConfig struct {
	QueueSize    int
	MaxAttempts  int
	BaseBackoff  time.Duration
	MaxBackoff   time.Duration
	WriteTimeout time.Duration
}

func (c EventLoggerConfig) withDefaults() EventLoggerConfig {
	if c.QueueSize <= 0 {
		c.QueueSize = 1024
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = 100 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 5 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 5 * time.Second
	}
	return c
}

// EventLogger validates engagement events on the caller's goroutine and
// persists them from a single background writer. A full queue or a write
// that keeps failing drops the event; both are logged and counted, and
// neither reaches the caller.
type EventLogger struct {
	events  store.Events
	metrics *observability.Metrics
	logger  *slog.Logger
	cfg     EventLoggerConfig
	now     Clock

	mu     sync.RWMutex
	closed bool
	queue  chan queuedEvent

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

type queuedEvent struct {
	event domain.ActivityEvent
	// flushed is set on flush markers instead of an event.
	flushed chan struct{}
}

// NewEventLogger starts the background writer. Call Close to drain it.
func NewEventLogger(
	events store.Events,
	cfg EventLoggerConfig,
	metrics *observability.Metrics,
	logger *slog.Logger,
	now Clock,
) *EventLogger {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slogx.Discard()
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := &EventLogger{
		events:  events,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		now:     now,
		queue:   make(chan queuedEvent, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go l.run()
	return l
}

// Log validates ev, stamps it with the server time and actor identity and
// queues it. Only contract violations are returned.
func (l *EventLogger) Log(ctx context.Context, hubID string, actor domain.Principal, ev domain.Event) error {
	log := slogx.FromContext(ctx)

	// 1. Contract.
	if ev == nil {
		return fmt.Errorf("%w: missing event", domain.ErrInvalidEvent)
	}
	if err := ev.Validate(); err != nil {
		l.metrics.ObserveEventRejected(string(ev.Type()))
		return err
	}
	if strings.TrimSpace(hubID) == "" || actor.ID == "" {
		l.metrics.ObserveEventRejected(string(ev.Type()))
		return fmt.Errorf("%w: event needs a hub and an actor", domain.ErrInvalidEvent)
	}

	// 2. Stamp.
	now := l.now.now()
	e := domain.ActivityEvent{
		ID:        idx.NewAt(now).String(),
		EventType: ev.Type(),
		HubID:     hubID,
		UserID:    actor.ID,
		UserName:  actor.DisplayName,
		UserEmail: actor.Email,
		Timestamp: now,
		Metadata:  ev,
	}

	// 3. Enqueue without blocking.
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		l.metrics.ObserveEventDropped("closed")
		log.Error("engagement event dropped, logger closed",
			slog.String("event_type", string(e.EventType)),
			slog.String("hub_id", hubID),
		)
		return nil
	}

	select {
	case l.queue <- queuedEvent{event: e}:
		l.metrics.ObserveEventAccepted(string(e.EventType))
		l.metrics.SetEventQueueDepth(len(l.queue))
	default:
		l.metrics.ObserveEventDropped("queue_full")
		log.Error("engagement event dropped, queue full",
			slog.String("event_type", string(e.EventType)),
			slog.String("hub_id", hubID),
			slog.Int("queue_size", l.cfg.QueueSize),
		)
	}
	return nil
}

// Flush blocks until every event queued before the call has been handled.
func (l *EventLogger) Flush(ctx context.Context) error {
	marker := make(chan struct{})

	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return nil
	}
	select {
	case l.queue <- queuedEvent{flushed: marker}:
	case <-ctx.Done():
		l.mu.RUnlock()
		return ctx.Err()
	}
	l.mu.RUnlock()

	select {
	case <-marker:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting events and waits for the queue to drain. When ctx
// ends first, pending retries are abandoned and the rest of the queue is
// dropped.
func (l *EventLogger) Close(ctx context.Context) error {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.queue)
	}
	l.mu.Unlock()

	select {
	case <-l.done:
		l.cancel()
		return nil
	case <-ctx.Done():
		l.cancel()
		<-l.done
		return ctx.Err()
	}
}

func (l *EventLogger) run() {
	defer close(l.done)

	for item := range l.queue {
		l.metrics.SetEventQueueDepth(len(l.queue))

		if item.flushed != nil {
			close(item.flushed)
			continue
		}
		if l.ctx.Err() != nil {
			l.drop(item.event, "shutdown", l.ctx.Err())
			continue
		}
		l.write(item.event)
	}
}

func (l *EventLogger) write(e domain.ActivityEvent) {
	for attempt := 1; ; attempt++ {
		start := time.Now()
		ctx, cancel := context.WithTimeout(l.ctx, l.cfg.WriteTimeout)
		_, err := l.events.AppendEvent(ctx, e)
		cancel()

		// A retry after an ambiguous failure may find its own row.
		if err == nil || errors.Is(err, store.ErrAlreadyExists) {
			l.metrics.ObserveEventWritten(string(e.EventType), time.Since(start))
			l.logger.Debug("engagement event written",
				slog.String("event_id", e.ID),
				slog.String("event_type", string(e.EventType)),
				slog.Int("attempt", attempt),
			)
			return
		}

		if errors.Is(err, domain.ErrInvalidEvent) {
			l.drop(e, "invalid", err)
			return
		}
		if attempt >= l.cfg.MaxAttempts {
			l.drop(e, "write_failed", err)
			return
		}

		l.metrics.ObserveEventRetry()
		l.logger.Warn("engagement event write failed, retrying",
			slog.String("event_id", e.ID),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)

		select {
		case <-time.After(l.backoff(attempt)):
		case <-l.ctx.Done():
			l.drop(e, "shutdown", l.ctx.Err())
			return
		}
	}
}

func (l *EventLogger) backoff(attempt int) time.Duration {
	d := l.cfg.BaseBackoff << (attempt - 1)
	if d <= 0 || d > l.cfg.MaxBackoff {
		return l.cfg.MaxBackoff
	}
	return d
}

func (l *EventLogger) drop(e domain.ActivityEvent, reason string, err error) {
	l.metrics.ObserveEventDropped(reason)
	l.logger.Error("engagement event dropped",
		slog.String("event_id", e.ID),
		slog.String("event_type", string(e.EventType)),
		slog.String("hub_id", e.HubID),
		slog.String("reason", reason),
		slog.Any("error", err),
	)
}
