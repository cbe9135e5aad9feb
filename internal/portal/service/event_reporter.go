package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
)

// EventReporter accepts engagement events reported by portal users. It
// refuses server-emitted types and events from sections the reporter cannot
// open, then hands the event to Sink.
type EventReporter struct {
	Store store.Store
	Sink  EventSink
}

func (r *EventReporter) Report(ctx context.Context, hubID string, actor domain.Principal, ev domain.Event) error {
	log := slogx.FromContext(ctx)

	if ev.Type().ServerEmitted() {
		return &domain.EventError{Type: ev.Type(), Reason: "is recorded by the portal and cannot be reported"}
	}

	perm, err := domain.ReportPermission(ev)
	if err != nil {
		return err
	}

	access, err := resolveHubAccess(ctx, r.Store, actor, hubID)
	if err != nil {
		return err
	}
	if !access.Permissions.Has(perm) {
		log.Warn("event reported for a section without permission",
			slog.String("hub_id", hubID),
			slog.String("event_type", string(ev.Type())),
			slog.String("permission", string(perm)),
		)
		return ErrForbidden
	}

	return r.Sink.Log(ctx, hubID, actor, ev)
}
