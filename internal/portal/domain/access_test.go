package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/stretchr/testify/require"
)

func TestPermissionsForIsTotalAndDeterministic(t *testing.T) {
	for _, level := range domain.AccessLevels {
		for _, role := range []domain.Role{domain.RoleStaff, domain.RoleClient} {
			a, err := domain.PermissionsFor(level, role)
			require.NoError(t, err)
			b, err := domain.PermissionsFor(level, role)
			require.NoError(t, err)
			require.Equal(t, a, b)

			if role == domain.RoleStaff {
				require.Equal(t, domain.FullPermissions, a, "staff always get the full set")
			} else {
				require.False(t, a.CanInviteMembers, "clients never invite via the matrix")
				require.False(t, a.CanManageAccess, "clients never manage access")
			}
		}
	}
}

func TestPermissionMatrix(t *testing.T) {
	tests := []struct {
		level domain.AccessLevel
		want  domain.PermissionSet
	}{
		{domain.AccessFullAccess, domain.PermissionSet{
			CanViewProposal: true, CanViewDocuments: true, CanViewVideos: true,
			CanViewMessages: true, CanViewMeetings: true, CanViewQuestionnaire: true,
		}},
		{domain.AccessProposalOnly, domain.PermissionSet{CanViewProposal: true, CanViewVideos: true}},
		{domain.AccessDocumentsOnly, domain.PermissionSet{CanViewDocuments: true}},
		{domain.AccessViewOnly, domain.PermissionSet{
			CanViewProposal: true, CanViewDocuments: true, CanViewVideos: true, CanViewMeetings: true,
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			require.Equal(t, tt.want, domain.MustPermissionsFor(tt.level, domain.RoleClient))
		})
	}
}

func TestUnknownLevelIsDenied(t *testing.T) {
	ps, err := domain.PermissionsFor("superuser", domain.RoleClient)
	require.ErrorIs(t, err, domain.ErrInvalidAccessLevel)
	require.Equal(t, domain.PermissionSet{}, ps)

	require.Panics(t, func() { domain.MustPermissionsFor("superuser", domain.RoleClient) })

	_, err = domain.PermissionsFor(domain.AccessFullAccess, "admin")
	require.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = domain.ParseAccessLevel("FULL_ACCESS")
	require.ErrorIs(t, err, domain.ErrInvalidAccessLevel)
}

func TestCovers(t *testing.T) {
	full := domain.MustPermissionsFor(domain.AccessFullAccess, domain.RoleClient)
	view := domain.MustPermissionsFor(domain.AccessViewOnly, domain.RoleClient)
	docs := domain.MustPermissionsFor(domain.AccessDocumentsOnly, domain.RoleClient)
	proposal := domain.MustPermissionsFor(domain.AccessProposalOnly, domain.RoleClient)

	require.True(t, full.Covers(view))
	require.True(t, view.Covers(docs))
	require.True(t, view.Covers(proposal))
	require.False(t, docs.Covers(proposal))
	require.False(t, proposal.Covers(docs))
	require.False(t, view.Covers(full))
	require.True(t, domain.FullPermissions.Covers(full))
}

func TestHas(t *testing.T) {
	docs := domain.MustPermissionsFor(domain.AccessDocumentsOnly, domain.RoleClient)

	require.True(t, docs.Has(domain.PermissionNone))
	require.True(t, docs.Has(domain.PermissionViewDocuments))
	require.False(t, docs.Has(domain.PermissionViewProposal))
	require.False(t, docs.Has(domain.Permission("canDoAnything")))
}

func TestSectionPermission(t *testing.T) {
	p, ok := domain.SectionPermission("documents")
	require.True(t, ok)
	require.Equal(t, domain.PermissionViewDocuments, p)

	_, ok = domain.SectionPermission("admin")
	require.False(t, ok)
}

func TestMembershipSnapshotFollowsLevel(t *testing.T) {
	p := domain.NewPrincipal("u1", "Sarah@Acme.com", "Sarah", domain.RoleClient)
	require.Equal(t, "acme.com", p.Domain)
	require.Equal(t, "sarah@acme.com", p.Email)

	m, err := domain.NewMembership("m1", "h1", p, domain.AccessFullAccess, "staff-1", time.Now())
	require.NoError(t, err)
	require.True(t, m.Permissions.CanViewMessages)

	m, err = m.WithAccessLevel(domain.AccessDocumentsOnly)
	require.NoError(t, err)
	require.Equal(t, domain.AccessDocumentsOnly, m.AccessLevel)
	require.Equal(t, domain.MustPermissionsFor(domain.AccessDocumentsOnly, domain.RoleClient), m.Permissions)
}
