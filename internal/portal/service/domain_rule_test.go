package service_test

import (
	"testing"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/stretchr/testify/require"
)

func TestValidateInviteDomain(t *testing.T) {
	hub := domain.Hub{ID: "hub-1", ClientDomain: "acme.com"}
	foreign := domain.NewPrincipal("c-9", "mallory@other.com", "Mallory", domain.RoleClient)

	tests := []struct {
		name    string
		inviter domain.Principal
		email   string
		wantErr error
	}{
		{"staff invites client domain", staff, "john@acme.com", nil},
		{"staff invites client domain, mixed case", staff, "John@ACME.com", nil},
		{"staff invites staff domain", staff, "reviewer@agency.com", nil},
		{"staff invites elsewhere", staff, "x@gmail.com", service.ErrDomainNotAllowed},
		{"client invites colleague", sarah, "john@acme.com", nil},
		{"client invites outside domain", sarah, "x@gmail.com", service.ErrDomainNotAllowed},
		{"client invites staff domain", sarah, "x@agency.com", service.ErrDomainNotAllowed},
		{"foreign client invites into hub domain", foreign, "john@acme.com", service.ErrDomainNotAllowed},
		{"foreign client invites own domain", foreign, "bob@other.com", service.ErrDomainNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidateInviteDomain(hub, tt.inviter, tt.email, staffDomain)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateInviteDomain_NoStaffDomainConfigured(t *testing.T) {
	hub := domain.Hub{ClientDomain: "acme.com"}

	err := service.ValidateInviteDomain(hub, staff, "reviewer@agency.com", "")
	require.ErrorIs(t, err, service.ErrDomainNotAllowed)
}

func TestValidateInviteDomain_BadEmail(t *testing.T) {
	err := service.ValidateInviteDomain(domain.Hub{ClientDomain: "acme.com"}, staff, "nope", staffDomain)
	require.ErrorIs(t, err, service.ErrValidation)
}
