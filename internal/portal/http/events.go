package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/pkg/httpx"
	"github.com/aussiebroadwan/clienthub/pkg/observability"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
)

type EventsHandler struct {
	Events  *service.EventReporter
	Queries *service.EventQueryService
	Metrics *observability.Metrics
}

// HandleLog godoc
//
//	@Summary		Log Engagement Event
//	@Description	Report one engagement event. The metadata must match the event type's schema exactly; unknown fields and
//	@Description	missing required fields are rejected. share.* events are recorded by the portal and cannot be reported, and
//	@Description	events from a section the caller cannot open are refused. Accepted events are persisted asynchronously.
//	@Tags			Events
//	@Accept			json
//	@Produce		json
//	@Param			hubId	path	string						true	"Hub ID"
//	@Param			request	body	portalsdk.LogEventRequest	true	"Event"
//	@Success		202
//	@Failure		400	{object}	httpx.ErrorResponse	"VALIDATION_ERROR with details.eventType and details.field"
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/events [post].
func (h *EventsHandler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req portalsdk.LogEventRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	ev, err := domain.DecodeEvent(req.EventType, req.Metadata)
	if err != nil {
		label := "unknown"
		if _, perr := domain.ParseEventType(req.EventType); perr == nil {
			label = req.EventType
		}
		h.Metrics.ObserveEventRejected(label)
		writeServiceError(w, r, err)
		return
	}

	if err := h.Events.Report(ctx, r.PathValue("hubId"), *principalFrom(ctx), ev); err != nil {
		if errors.Is(err, domain.ErrInvalidEvent) {
			h.Metrics.ObserveEventRejected(string(ev.Type()))
		}
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// HandleQuery godoc
//
//	@Summary		Query Engagement Events
//	@Description	Page through a hub's events, newest first. The first page returns a snapshot; pass it back on later pages so
//	@Description	they stay stable while new events arrive. Staff only.
//	@Tags			Events
//	@Produce		json
//	@Param			hubId		path		string	true	"Hub ID"
//	@Param			page		query		int		false	"Page number, from 1"
//	@Param			pageSize	query		int		false	"Page size, at most 100"
//	@Param			eventTypes	query		string	false	"Comma separated event types"
//	@Param			userId		query		string	false	"Only events by this user"
//	@Param			since		query		string	false	"RFC 3339 lower bound, inclusive"
//	@Param			until		query		string	false	"RFC 3339 upper bound, exclusive"
//	@Param			snapshot	query		int		false	"Snapshot from the first page"
//	@Success		200			{object}	portalsdk.EventPage
//	@Failure		400			{object}	httpx.ErrorResponse
//	@Failure		403			{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/events [get].
func (h *EventsHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := parseEventQuery(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := h.Queries.GetEvents(ctx, r.PathValue("hubId"), *principalFrom(ctx), q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	items := make([]portalsdk.ActivityEvent, 0, len(page.Items))
	for _, e := range page.Items {
		item, err := toActivityEvent(e)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		items = append(items, item)
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.EventPage{
		Items:      items,
		Pagination: portalsdk.Pagination(page.Pagination),
	})
}

// HandleSummary godoc
//
//	@Summary		Engagement Summary
//	@Description	Count a hub's events per type, optionally since a point in time. Staff only.
//	@Tags			Events
//	@Produce		json
//	@Param			hubId	path		string	true	"Hub ID"
//	@Param			since	query		string	false	"RFC 3339 lower bound"
//	@Success		200		{object}	portalsdk.EventSummary
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/events/summary [get].
func (h *EventsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	since, err := parseTime(r.URL.Query(), "since")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	sum, err := h.Queries.GetSummary(ctx, r.PathValue("hubId"), *principalFrom(ctx), since)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	byType := make(map[string]int, len(sum.ByType))
	for t, n := range sum.ByType {
		byType[string(t)] = n
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.EventSummary{
		HubID:  sum.HubID,
		Since:  sum.Since,
		Total:  sum.Total,
		ByType: byType,
	})
}

func parseEventQuery(v url.Values) (service.EventQuery, error) {
	var q service.EventQuery
	var err error

	if q.Page, err = parseInt(v, "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = parseInt(v, "pageSize"); err != nil {
		return q, err
	}
	snapshot, err := parseInt(v, "snapshot")
	if err != nil {
		return q, err
	}
	q.Snapshot = int64(snapshot)
	if q.Since, err = parseTime(v, "since"); err != nil {
		return q, err
	}
	if q.Until, err = parseTime(v, "until"); err != nil {
		return q, err
	}

	q.UserID = v.Get("userId")
	for _, raw := range v["eventTypes"] {
		for t := range strings.SplitSeq(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				q.EventTypes = append(q.EventTypes, t)
			}
		}
	}
	return q, nil
}

func parseInt(v url.Values, name string) (int, error) {
	raw := v.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &service.FieldError{Field: name, Message: "must be a non-negative integer"}
	}
	return n, nil
}

func parseTime(v url.Values, name string) (*time.Time, error) {
	raw := v.Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, &service.FieldError{Field: name, Message: "must be an RFC 3339 timestamp"}
	}
	return &t, nil
}
