package http_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	h := newHarness(t)

	live, err := h.client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := h.client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Identity)
	require.Empty(t, ready.Checks.Cache)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t)

	_, err := h.client.GetLiveness(t.Context())
	require.NoError(t, err)

	resp, err := http.Get(h.client.BaseURL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `portal_http_requests_total{method="GET",route="GET /livez",status="200"} 1`)
}

func TestAuthentication(t *testing.T) {
	h := newHarness(t)

	t.Run("no session", func(t *testing.T) {
		_, err := h.client.Session("").Me(t.Context())
		requireAPIError(t, err, http.StatusUnauthorized, portalsdk.CodeUnauthenticated)
	})

	t.Run("invalid session", func(t *testing.T) {
		_, err := h.client.Session("not.a.jwt").Me(t.Context())
		requireAPIError(t, err, http.StatusUnauthorized, portalsdk.CodeUnauthenticated)
	})

	t.Run("valid session", func(t *testing.T) {
		me, err := h.as(t, sarah).Me(t.Context())
		require.NoError(t, err)
		require.Equal(t, sarah.ID, me.Principal.ID)
		require.Equal(t, "acme.com", me.Principal.Domain)
		require.Empty(t, me.Hubs)
	})
}

func TestHubAccess(t *testing.T) {
	h := newHarness(t)
	hub := h.newHub(t)

	t.Run("staff reaches every hub", func(t *testing.T) {
		me, err := h.as(t, staff).Me(t.Context())
		require.NoError(t, err)
		require.Len(t, me.Hubs, 1)
		require.True(t, me.Hubs[0].Permissions.CanManageAccess)

		hubs, err := h.as(t, staff).ListHubs(t.Context())
		require.NoError(t, err)
		require.Len(t, hubs, 1)
	})

	t.Run("clients cannot use staff endpoints", func(t *testing.T) {
		_, err := h.as(t, sarah).ListHubs(t.Context())
		requireAPIError(t, err, http.StatusForbidden, portalsdk.CodeForbidden)

		_, err = h.as(t, sarah).CreateHub(t.Context(), portalsdk.CreateHubRequest{CompanyName: "X", ClientDomain: "x.com"})
		requireAPIError(t, err, http.StatusForbidden, portalsdk.CodeForbidden)
	})

	t.Run("missing hub and foreign hub look the same", func(t *testing.T) {
		_, err := h.as(t, sarah).GetHub(t.Context(), hub.ID)
		foreign := requireAPIError(t, err, http.StatusForbidden, portalsdk.CodeForbidden)

		_, err = h.as(t, sarah).GetHub(t.Context(), "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZA")
		missing := requireAPIError(t, err, http.StatusForbidden, portalsdk.CodeForbidden)

		require.Equal(t, foreign.Message, missing.Message)
		require.Equal(t, "Access Denied", missing.Message)
	})

	t.Run("member sees its permissions", func(t *testing.T) {
		h.join(t, hub.ID, sarah, portalsdk.AccessDocumentsOnly)

		access, err := h.as(t, sarah).GetHub(t.Context(), hub.ID)
		require.NoError(t, err)
		require.Equal(t, portalsdk.AccessDocumentsOnly, access.AccessLevel)
		require.True(t, access.Permissions.CanViewDocuments)
		require.False(t, access.Permissions.CanViewProposal)
	})

	t.Run("status update validates", func(t *testing.T) {
		updated, err := h.as(t, staff).UpdateHubStatus(t.Context(), hub.ID, "active")
		require.NoError(t, err)
		require.Equal(t, "active", updated.Status)

		_, err = h.as(t, staff).UpdateHubStatus(t.Context(), hub.ID, "archived")
		apiErr := requireAPIError(t, err, http.StatusBadRequest, portalsdk.CodeValidation)
		require.Equal(t, "status", apiErr.Details["field"])
	})
}

func TestMembersOverHTTP(t *testing.T) {
	h := newHarness(t)
	hub := h.newHub(t)
	h.join(t, hub.ID, sarah, portalsdk.AccessFullAccess)

	members, err := h.as(t, sarah).ListMembers(t.Context(), hub.ID)
	require.NoError(t, err)

	var sarahID string
	for _, m := range members {
		if m.UserID == sarah.ID {
			sarahID = m.ID
		}
	}
	require.NotEmpty(t, sarahID)

	got, err := h.as(t, sarah).GetMember(t.Context(), hub.ID, sarah.ID)
	require.NoError(t, err)
	require.Equal(t, sarahID, got.ID)

	_, err = h.as(t, john).GetMember(t.Context(), hub.ID, sarah.ID)
	requireAPIError(t, err, http.StatusForbidden, portalsdk.CodeForbidden)

	_, err = h.as(t, staff).GetMember(t.Context(), hub.ID, john.ID)
	requireAPIError(t, err, http.StatusNotFound, portalsdk.CodeNotFound)

	_, err = h.as(t, sarah).UpdateMember(t.Context(), hub.ID, sarahID, portalsdk.AccessViewOnly)
	requireAPIError(t, err, http.StatusForbidden, portalsdk.CodeForbidden)

	m, err := h.as(t, staff).UpdateMember(t.Context(), hub.ID, sarahID, portalsdk.AccessProposalOnly)
	require.NoError(t, err)
	require.True(t, m.Permissions.CanViewProposal)
	require.False(t, m.Permissions.CanViewDocuments)

	require.NoError(t, h.as(t, staff).RemoveMember(t.Context(), hub.ID, sarahID))

	_, err = h.as(t, sarah).GetHub(t.Context(), hub.ID)
	requireAPIError(t, err, http.StatusForbidden, portalsdk.CodeForbidden)

	err = h.as(t, staff).RemoveMember(t.Context(), hub.ID, sarahID)
	requireAPIError(t, err, http.StatusNotFound, portalsdk.CodeNotFound)
}
