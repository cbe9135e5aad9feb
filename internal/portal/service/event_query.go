package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
	"github.com/aussiebroadwan/clienthub/pkg/querycache"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// maxOffset bounds (page-1)*pageSize so the row offset never overflows.
const maxOffset = math.MaxInt32

// EventQuery filters a hub's event stream. Zero values mean no filter; Page
// and PageSize default to 1 and DefaultPageSize.
type EventQuery struct {
	Page       int
	PageSize   int
	EventTypes []string
	UserID     string
	Since      *time.Time
	Until      *time.Time
	// Snapshot pins the stream to the events that existed when page one
	// was read. Callers paging through results must send back the
	// Pagination.Snapshot of the first page; without it each page is read
	// against the current head and concurrent writes shift items across
	// page boundaries. Zero or a value past the head means "now".
	Snapshot   int64
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int   `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	// Snapshot is the stream position this page was read at. Pass it as
	// EventQuery.Snapshot when fetching later pages.
	Snapshot   int64 `json:"snapshot"`
}

type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// EventSummary counts a hub's events per type since a point in time.
type EventSummary struct {
	HubID  string                   `json:"hubId"`
	Since  time.Time                `json:"since"`
	Total  int                      `json:"total"`
	ByType map[domain.EventType]int `json:"byType"`
}

type EventQueryService struct {
	Store store.Store
	// Cache is optional; without it every query reads the store.
	Cache *querycache.Loader
}

// normalizedQuery is the identity of a page. Two requests that normalise to
// the same value always see the same page.
type normalizedQuery struct {
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	EventTypes []string   `json:"eventTypes,omitempty"`
	UserID     string     `json:"userId,omitempty"`
	Since      *time.Time `json:"since,omitempty"`
	Until      *time.Time `json:"until,omitempty"`
	Snapshot   int64      `json:"snapshot"`
}

// GetEvents returns one page of the hub's events, newest first. Staff only.
func (s *EventQueryService) GetEvents(
	ctx context.Context,
	hubID string,
	actor domain.Principal,
	q EventQuery,
) (Page[domain.ActivityEvent], error) {
	log := slogx.FromContext(ctx)

	// 1. Staff only, on an existing hub.
	if !actor.IsStaff() {
		return Page[domain.ActivityEvent]{}, ErrForbidden
	}
	if _, err := resolveHubAccess(ctx, s.Store, actor, hubID); err != nil {
		return Page[domain.ActivityEvent]{}, err
	}

	// 2. Normalise.
	nq, types, err := normalizeEventQuery(q)
	if err != nil {
		return Page[domain.ActivityEvent]{}, err
	}

	// 3. Pin the snapshot. A requested snapshot beyond the current head is
	// clamped so cached pages never miss later writes.
	head, err := s.Store.Events().MaxEventSeq(ctx, hubID)
	if err != nil {
		return Page[domain.ActivityEvent]{}, fmt.Errorf("resolve snapshot: %w", err)
	}
	if nq.Snapshot <= 0 || nq.Snapshot > head {
		nq.Snapshot = head
	}
	if nq.Snapshot == 0 {
		return emptyPage(nq), nil
	}

	filter := store.EventFilter{
		HubID:      hubID,
		Snapshot:   nq.Snapshot,
		EventTypes: types,
		UserID:     nq.UserID,
		Since:      nq.Since,
		Until:      nq.Until,
		Offset:     (nq.Page - 1) * nq.PageSize,
		Limit:      nq.PageSize,
	}
	fill := func(ctx context.Context) ([]byte, error) {
		page, err := s.readPage(ctx, filter, nq)
		if err != nil {
			return nil, err
		}
		return json.Marshal(page)
	}

	// 4. Read through the cache.
	if s.Cache == nil {
		return s.readPage(ctx, filter, nq)
	}
	key, err := querycache.Key("events", hubID, nq)
	if err != nil {
		return Page[domain.ActivityEvent]{}, err
	}
	raw, err := s.Cache.Load(ctx, key, fill)
	if err != nil {
		log.Error("event query failed", slog.String("hub_id", hubID), slog.Any("error", err))
		return Page[domain.ActivityEvent]{}, err
	}

	var page Page[domain.ActivityEvent]
	if err := json.Unmarshal(raw, &page); err != nil {
		return Page[domain.ActivityEvent]{}, fmt.Errorf("decode cached page: %w", err)
	}
	return page, nil
}

func (s *EventQueryService) readPage(ctx context.Context, f store.EventFilter, nq normalizedQuery) (Page[domain.ActivityEvent], error) {
	total, err := s.Store.Events().CountEvents(ctx, f)
	if err != nil {
		return Page[domain.ActivityEvent]{}, fmt.Errorf("count events: %w", err)
	}
	var items []domain.ActivityEvent
	if f.Offset < total {
		items, err = s.Store.Events().ListEvents(ctx, f)
		if err != nil {
			return Page[domain.ActivityEvent]{}, fmt.Errorf("list events: %w", err)
		}
	}
	if items == nil {
		items = []domain.ActivityEvent{}
	}

	return Page[domain.ActivityEvent]{
		Items: items,
		Pagination: Pagination{
			Page:       nq.Page,
			PageSize:   nq.PageSize,
			TotalItems: total,
			TotalPages: (total + nq.PageSize - 1) / nq.PageSize,
			Snapshot:   nq.Snapshot,
		},
	}, nil
}

// GetSummary counts the hub's events per type since since (all time when
// nil). Every event type is present in the result. Staff only.
func (s *EventQueryService) GetSummary(ctx context.Context, hubID string, actor domain.Principal, since *time.Time) (EventSummary, error) {
	if !actor.IsStaff() {
		return EventSummary{}, ErrForbidden
	}
	if _, err := resolveHubAccess(ctx, s.Store, actor, hubID); err != nil {
		return EventSummary{}, err
	}

	from := time.Unix(0, 0).UTC()
	if since != nil {
		from = since.UTC()
	}

	counts, err := s.Store.Events().CountEventsByType(ctx, hubID, from)
	if err != nil {
		return EventSummary{}, fmt.Errorf("count events: %w", err)
	}

	sum := EventSummary{HubID: hubID, Since: from, ByType: make(map[domain.EventType]int)}
	for _, t := range domain.EventTypes() {
		sum.ByType[t] = counts[t]
		sum.Total += counts[t]
	}
	return sum, nil
}

func normalizeEventQuery(q EventQuery) (normalizedQuery, []domain.EventType, error) {
	nq := normalizedQuery{
		Page:     q.Page,
		PageSize: q.PageSize,
		UserID:   strings.TrimSpace(q.UserID),
		Snapshot: q.Snapshot,
	}
	if nq.Page <= 0 {
		nq.Page = 1
	}
	switch {
	case nq.PageSize <= 0:
		nq.PageSize = DefaultPageSize
	case nq.PageSize > MaxPageSize:
		nq.PageSize = MaxPageSize
	}
	if nq.Page-1 > maxOffset/nq.PageSize {
		return normalizedQuery{}, nil, invalidField("page", "out of range")
	}

	var types []domain.EventType
	for _, raw := range q.EventTypes {
		t, err := domain.ParseEventType(strings.TrimSpace(raw))
		if err != nil {
			return normalizedQuery{}, nil, invalidField("eventTypes", fmt.Sprintf("unknown event type %q", raw))
		}
		types = append(types, t)
	}
	slices.Sort(types)
	types = slices.Compact(types)
	for _, t := range types {
		nq.EventTypes = append(nq.EventTypes, string(t))
	}

	if q.Since != nil {
		t := q.Since.UTC()
		nq.Since = &t
	}
	if q.Until != nil {
		t := q.Until.UTC()
		nq.Until = &t
	}
	if nq.Since != nil && nq.Until != nil && !nq.Since.Before(*nq.Until) {
		return normalizedQuery{}, nil, invalidField("until", "must be after since")
	}
	return nq, types, nil
}

func emptyPage(nq normalizedQuery) Page[domain.ActivityEvent] {
	return Page[domain.ActivityEvent]{
		Items:      []domain.ActivityEvent{},
		Pagination: Pagination{Page: nq.Page, PageSize: nq.PageSize},
	}
}
