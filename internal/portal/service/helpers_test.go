package service_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/internal/portal/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

const staffDomain = "agency.com"

var (
	staff    = domain.NewPrincipal("staff-1", "jordan@agency.com", "Jordan Staff", domain.RoleStaff)
	sarah    = domain.NewPrincipal("client-1", "sarah@acme.com", "Sarah Connor", domain.RoleClient)
	john     = domain.NewPrincipal("client-2", "john@acme.com", "John Connor", domain.RoleClient)
	outsider = domain.NewPrincipal("client-3", "eve@evil.com", "Eve", domain.RoleClient)
)

// clock is a settable test clock.
type clock struct{ t time.Time }

func newClock() *clock { return &clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(":memory:"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

type fixture struct {
	store   *sqlite.Store
	clock   *clock
	hubs    *service.HubService
	members *service.MembershipService
	invites *service.InviteService
	links   *service.ShareLinkService
	hub     domain.Hub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := newTestStore(t)
	c := newClock()
	f := &fixture{
		store:   st,
		clock:   c,
		hubs:    &service.HubService{Store: st, Now: c.Now},
		members: &service.MembershipService{Store: st, Now: c.Now},
		invites: &service.InviteService{Store: st, StaffDomain: staffDomain, Now: c.Now},
		links:   &service.ShareLinkService{Store: st, Now: c.Now},
	}

	hub, err := f.hubs.CreateHub(t.Context(), staff, service.CreateHubInput{
		CompanyName:  "Acme Corp",
		ContactName:  "Sarah Connor",
		ContactEmail: "sarah@acme.com",
		ClientDomain: "acme.com",
	})
	require.NoError(t, err)
	f.hub = hub
	return f
}

// join gives p a membership in the fixture hub through an invite.
func (f *fixture) join(t *testing.T, p domain.Principal, level domain.AccessLevel) domain.Membership {
	t.Helper()

	_, token, err := f.invites.CreateInvite(t.Context(), f.hub.ID, staff, p.Email, string(level), "")
	require.NoError(t, err)
	_, err = f.invites.RedeemInvite(t.Context(), token, p)
	require.NoError(t, err)

	m, err := f.members.Get(t.Context(), f.hub.ID, p.ID, staff)
	require.NoError(t, err)
	return m
}
