package service_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/pkg/cryptox"
	"github.com/aussiebroadwan/clienthub/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://id.agency.com"
	testAudience = "portal"
)

func newIdP(t *testing.T, kid string) jwtx.Signer {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	return signer
}

func session(t *testing.T, signer jwtx.Signer, sub, email, name, role string, ttl time.Duration) string {
	t.Helper()

	claims := jwtx.NewSessionClaims(sub, email, name, role, ttl, testIssuer, []string{testAudience}, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	return token
}

func TestResolve(t *testing.T) {
	signer := newIdP(t, "idp-1")
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	r := &service.IdentityResolver{Verifier: jwtx.NewVerifierEdDSA(keys, testIssuer, []string{testAudience})}

	p, err := r.Resolve(t.Context(), session(t, signer, "client-1", "Sarah@Acme.com", "Sarah Connor", "client", time.Hour))
	require.NoError(t, err)
	require.Equal(t, "client-1", p.ID)
	require.Equal(t, "sarah@acme.com", p.Email)
	require.Equal(t, "acme.com", p.Domain)
	require.Equal(t, domain.RoleClient, p.Role)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"expired", session(t, signer, "client-1", "sarah@acme.com", "", "client", -time.Hour)},
		{"unknown role", session(t, signer, "client-1", "sarah@acme.com", "", "admin", time.Hour)},
		{"unknown key", session(t, newIdP(t, "idp-2"), "client-1", "sarah@acme.com", "", "client", time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(t.Context(), tt.token)
			require.ErrorIs(t, err, service.ErrUnauthenticated)
		})
	}
}

func TestResolve_RefreshesOnUnknownKey(t *testing.T) {
	rotated := newIdP(t, "idp-rotated")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(jwtx.JWKS{Keys: []jwtx.JWK{rotated.PublicJWK()}})
	}))
	t.Cleanup(srv.Close)

	keys := jwtx.NewKeySet()
	r := &service.IdentityResolver{
		Verifier: jwtx.NewVerifierEdDSA(keys, testIssuer, []string{testAudience}),
		Remote:   jwtx.NewRemoteJWKS(srv.URL, keys, time.Minute),
	}

	p, err := r.Resolve(t.Context(), session(t, rotated, "staff-1", "jordan@agency.com", "Jordan", "staff", time.Hour))
	require.NoError(t, err)
	require.True(t, p.IsStaff())
}

func TestReachableHubs(t *testing.T) {
	f := newFixture(t)
	f.join(t, sarah, domain.AccessDocumentsOnly)

	other, err := f.hubs.CreateHub(t.Context(), staff, service.CreateHubInput{CompanyName: "Globex", ClientDomain: "globex.com"})
	require.NoError(t, err)

	r := &service.IdentityResolver{Store: f.store}

	staffHubs, err := r.ReachableHubs(t.Context(), staff)
	require.NoError(t, err)
	require.Len(t, staffHubs, 2)
	for _, h := range staffHubs {
		require.Equal(t, domain.FullPermissions, h.Permissions)
	}

	clientHubs, err := r.ReachableHubs(t.Context(), sarah)
	require.NoError(t, err)
	require.Len(t, clientHubs, 1)
	require.Equal(t, f.hub.ID, clientHubs[0].Hub.ID)
	require.NotEqual(t, other.ID, clientHubs[0].Hub.ID)
	require.True(t, clientHubs[0].Permissions.CanViewDocuments)
	require.False(t, clientHubs[0].Permissions.CanViewProposal)

	none, err := r.ReachableHubs(t.Context(), john)
	require.NoError(t, err)
	require.Empty(t, none)
}
