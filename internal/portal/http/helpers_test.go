package http_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	portalhttp "github.com/aussiebroadwan/clienthub/internal/portal/http"
	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/clienthub/pkg/cryptox"
	"github.com/aussiebroadwan/clienthub/pkg/jwtx"
	"github.com/aussiebroadwan/clienthub/pkg/observability"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
	"github.com/aussiebroadwan/clienthub/pkg/querycache"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://id.agency.com"
	testAudience = "portal"
)

var (
	staff = domain.NewPrincipal("staff-1", "jordan@agency.com", "Jordan Staff", domain.RoleStaff)
	sarah = domain.NewPrincipal("client-1", "sarah@acme.com", "Sarah Connor", domain.RoleClient)
	john  = domain.NewPrincipal("client-2", "john@acme.com", "John Connor", domain.RoleClient)
)

type harness struct {
	client *portalsdk.Client
	signer jwtx.Signer
	events *service.EventLogger
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(":memory:"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("idp-1", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	logger := slogx.Discard()

	events := service.NewEventLogger(st.Events(), service.EventLoggerConfig{}, metrics, logger, nil)
	t.Cleanup(func() { _ = events.Close(context.Background()) })

	identity := &service.IdentityResolver{
		Verifier: jwtx.NewVerifierEdDSA(keys, testIssuer, []string{testAudience}),
		Store:    st,
	}
	memberships := &service.MembershipService{Store: st}

	r := portalhttp.NewRouter(keys, "test", st, metrics, logger)
	r.Identity = identity
	r.Guard = &service.RouteGuard{Store: st, Identity: identity, Memberships: memberships, Metrics: metrics}
	r.Hubs = &service.HubService{Store: st}
	r.Memberships = memberships
	r.Invites = &service.InviteService{Store: st, Events: events, Metrics: metrics, StaffDomain: "agency.com"}
	r.ShareLinks = &service.ShareLinkService{Store: st, Metrics: metrics}
	r.Events = events
	r.EventQueries = &service.EventQueryService{
		Store: st,
		Cache: querycache.NewLoader(querycache.NewMemoryCache(64, time.Minute), querycache.Stats{}),
	}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &harness{client: portalsdk.NewClient(srv.URL), signer: signer, events: events}
}

func (h *harness) as(t *testing.T, p domain.Principal) *portalsdk.Session {
	t.Helper()

	claims := jwtx.NewSessionClaims(p.ID, p.Email, p.DisplayName, string(p.Role), time.Hour,
		testIssuer, []string{testAudience}, time.Now().UTC())
	token, err := h.signer.Sign(claims)
	require.NoError(t, err)
	return h.client.Session(token)
}

// newHub creates a hub for acme.com as staff.
func (h *harness) newHub(t *testing.T) portalsdk.Hub {
	t.Helper()

	hub, err := h.as(t, staff).CreateHub(t.Context(), portalsdk.CreateHubRequest{
		CompanyName:  "Acme Corp",
		ClientDomain: "acme.com",
	})
	require.NoError(t, err)
	return *hub
}

// join invites p into hubID at level and redeems the invite as p.
func (h *harness) join(t *testing.T, hubID string, p domain.Principal, level string) {
	t.Helper()

	inv, err := h.as(t, staff).CreateInvite(t.Context(), hubID, portalsdk.CreateInviteRequest{
		Email:       p.Email,
		AccessLevel: level,
	})
	require.NoError(t, err)
	_, err = h.as(t, p).RedeemInvite(t.Context(), inv.Token)
	require.NoError(t, err)
}

func requireAPIError(t *testing.T, err error, status int, code string) *portalsdk.APIError {
	t.Helper()

	var apiErr *portalsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}
