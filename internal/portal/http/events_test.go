package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

func TestEventsOverHTTP(t *testing.T) {
	h := newHarness(t)
	hub := h.newHub(t)
	h.join(t, hub.ID, sarah, portalsdk.AccessFullAccess)

	t.Run("accepts a well formed event", func(t *testing.T) {
		err := h.as(t, sarah).LogEvent(t.Context(), hub.ID, portalsdk.LogEventRequest{
			EventType: "document.viewed",
			Metadata:  json.RawMessage(`{"documentId":"doc-1"}`),
		})
		require.NoError(t, err)
	})

	t.Run("rejects a missing field", func(t *testing.T) {
		err := h.as(t, sarah).LogEvent(t.Context(), hub.ID, portalsdk.LogEventRequest{
			EventType: "document.viewed",
			Metadata:  json.RawMessage(`{}`),
		})
		apiErr := requireAPIError(t, err, http.StatusBadRequest, portalsdk.CodeValidation)
		require.Equal(t, "documentId", apiErr.Details["field"])
	})

	t.Run("rejects an unknown field", func(t *testing.T) {
		err := h.as(t, sarah).LogEvent(t.Context(), hub.ID, portalsdk.LogEventRequest{
			EventType: "document.viewed",
			Metadata:  json.RawMessage(`{"documentId":"doc-1","extra":true}`),
		})
		requireAPIError(t, err, http.StatusBadRequest, portalsdk.CodeValidation)
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		err := h.as(t, sarah).LogEvent(t.Context(), hub.ID, portalsdk.LogEventRequest{
			EventType: "document.printed",
			Metadata:  json.RawMessage(`{"documentId":"doc-1"}`),
		})
		requireAPIError(t, err, http.StatusBadRequest, portalsdk.CodeValidation)
	})

	t.Run("non members cannot log", func(t *testing.T) {
		err := h.as(t, john).LogEvent(t.Context(), hub.ID, portalsdk.LogEventRequest{
			EventType: "document.viewed",
			Metadata:  json.RawMessage(`{"documentId":"doc-1"}`),
		})
		requireAPIError(t, err, http.StatusForbidden, portalsdk.CodeForbidden)
	})

	require.NoError(t, h.events.Flush(t.Context()))

	t.Run("staff query", func(t *testing.T) {
		page, err := h.as(t, staff).GetEvents(t.Context(), hub.ID, portalsdk.EventQuery{
			EventTypes: []string{"document.viewed"},
		})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		require.Equal(t, sarah.ID, page.Items[0].UserID)
		require.JSONEq(t, `{"documentId":"doc-1"}`, string(page.Items[0].Metadata))
		require.Equal(t, 1, page.Pagination.TotalItems)
		require.Positive(t, page.Pagination.Snapshot)
	})

	t.Run("invite flow is recorded", func(t *testing.T) {
		page, err := h.as(t, staff).GetEvents(t.Context(), hub.ID, portalsdk.EventQuery{
			EventTypes: []string{"share.sent", "share.accepted"},
		})
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
	})

	t.Run("bad filters", func(t *testing.T) {
		_, err := h.as(t, staff).GetEvents(t.Context(), hub.ID, portalsdk.EventQuery{EventTypes: []string{"bogus"}})
		apiErr := requireAPIError(t, err, http.StatusBadRequest, portalsdk.CodeValidation)
		require.Equal(t, "eventTypes", apiErr.Details["field"])
	})

	t.Run("clients cannot query", func(t *testing.T) {
		_, err := h.as(t, sarah).GetEvents(t.Context(), hub.ID, portalsdk.EventQuery{})
		requireAPIError(t, err, http.StatusForbidden, portalsdk.CodeForbidden)
	})

	t.Run("summary", func(t *testing.T) {
		sum, err := h.as(t, staff).GetEventSummary(t.Context(), hub.ID, nil)
		require.NoError(t, err)
		require.Equal(t, 1, sum.ByType["document.viewed"])
		require.Equal(t, 1, sum.ByType["share.accepted"])
		require.Equal(t, 0, sum.ByType["video.completed"])
		require.Equal(t, 3, sum.Total)
	})
}

func TestReportedEventIntegrity(t *testing.T) {
	h := newHarness(t)
	hub := h.newHub(t)
	h.join(t, hub.ID, sarah, portalsdk.AccessDocumentsOnly)

	t.Run("share events cannot be reported", func(t *testing.T) {
		for _, req := range []portalsdk.LogEventRequest{
			{EventType: "share.accepted", Metadata: json.RawMessage(`{"inviteId":"inv-forged"}`)},
			{EventType: "share.sent", Metadata: json.RawMessage(`{"recipientEmail":"x@acme.com","resource":{"type":"document","id":"d1"}}`)},
		} {
			err := h.as(t, sarah).LogEvent(t.Context(), hub.ID, req)
			apiErr := requireAPIError(t, err, http.StatusBadRequest, portalsdk.CodeValidation)
			require.Equal(t, req.EventType, apiErr.Details["eventType"])

			err = h.as(t, staff).LogEvent(t.Context(), hub.ID, req)
			requireAPIError(t, err, http.StatusBadRequest, portalsdk.CodeValidation)
		}
	})

	t.Run("events need the section permission", func(t *testing.T) {
		for _, req := range []portalsdk.LogEventRequest{
			{EventType: "proposal.viewed", Metadata: json.RawMessage(`{"proposalId":"p1","slideNum":1}`)},
			{EventType: "video.watched", Metadata: json.RawMessage(`{"videoId":"v1","watchTime":10,"percentComplete":50}`)},
			{EventType: "hub.viewed", Metadata: json.RawMessage(`{"section":"proposal"}`)},
		} {
			err := h.as(t, sarah).LogEvent(t.Context(), hub.ID, req)
			requireAPIError(t, err, http.StatusForbidden, portalsdk.CodeForbidden)
		}

		require.NoError(t, h.as(t, sarah).LogEvent(t.Context(), hub.ID, portalsdk.LogEventRequest{
			EventType: "hub.viewed",
			Metadata:  json.RawMessage(`{"section":"documents"}`),
		}))
	})

	t.Run("unknown section is invalid", func(t *testing.T) {
		err := h.as(t, sarah).LogEvent(t.Context(), hub.ID, portalsdk.LogEventRequest{
			EventType: "hub.viewed",
			Metadata:  json.RawMessage(`{"section":"billing"}`),
		})
		apiErr := requireAPIError(t, err, http.StatusBadRequest, portalsdk.CodeValidation)
		require.Equal(t, "section", apiErr.Details["field"])
	})

	require.NoError(t, h.events.Flush(t.Context()))

	page, err := h.as(t, staff).GetEvents(t.Context(), hub.ID, portalsdk.EventQuery{})
	require.NoError(t, err)
	for _, ev := range page.Items {
		require.NotEqual(t, "proposal.viewed", ev.EventType)
		require.NotEqual(t, "video.watched", ev.EventType)
	}

	shares, err := h.as(t, staff).GetEvents(t.Context(), hub.ID, portalsdk.EventQuery{EventTypes: []string{"share.accepted"}})
	require.NoError(t, err)
	require.Len(t, shares.Items, 1, "only the real redemption is recorded")
}
