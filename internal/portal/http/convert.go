package http

import (
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
)

func toPrincipal(p domain.Principal) portalsdk.Principal {
	return portalsdk.Principal{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		Domain:      p.Domain,
	}
}

func toPermissions(ps domain.PermissionSet) portalsdk.PermissionSet {
	return portalsdk.PermissionSet(ps)
}

func toHub(h domain.Hub) portalsdk.Hub {
	return portalsdk.Hub{
		ID:           h.ID,
		CompanyName:  h.CompanyName,
		ContactName:  h.ContactName,
		ContactEmail: h.ContactEmail,
		ClientDomain: h.ClientDomain,
		Status:       string(h.Status),
		CreatedBy:    h.CreatedBy,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

func toHubAccess(a service.HubAccess) portalsdk.HubAccess {
	return portalsdk.HubAccess{
		Hub:         toHub(a.Hub),
		AccessLevel: string(a.AccessLevel),
		Permissions: toPermissions(a.Permissions),
	}
}

func toMembership(m domain.Membership) portalsdk.Membership {
	return portalsdk.Membership{
		ID:           m.ID,
		HubID:        m.HubID,
		UserID:       m.UserID,
		Email:        m.Email,
		DisplayName:  m.DisplayName,
		Role:         string(m.Role),
		AccessLevel:  string(m.AccessLevel),
		Permissions:  toPermissions(m.Permissions),
		InvitedBy:    m.InvitedBy,
		JoinedAt:     m.JoinedAt,
		LastActiveAt: m.LastActiveAt,
	}
}

func toInvite(i domain.Invite) portalsdk.Invite {
	return portalsdk.Invite{
		ID:          i.ID,
		HubID:       i.HubID,
		Email:       i.Email,
		AccessLevel: string(i.AccessLevel),
		InvitedBy:   i.InvitedBy,
		Message:     i.Message,
		InvitedAt:   i.InvitedAt,
		ExpiresAt:   i.ExpiresAt,
		Status:      string(i.Status),
		AcceptedBy:  i.AcceptedBy,
		AcceptedAt:  i.AcceptedAt,
	}
}

func toShareLink(l domain.ShareLink) portalsdk.ShareLink {
	return portalsdk.ShareLink{
		ID:          l.ID,
		HubID:       l.HubID,
		AccessLevel: string(l.AccessLevel),
		CreatedBy:   l.CreatedBy,
		CreatedAt:   l.CreatedAt,
		ExpiresAt:   l.ExpiresAt,
		MaxUses:     l.MaxUses,
		UseCount:    l.UseCount,
		IsActive:    l.IsActive,
	}
}

func toActivityEvent(e domain.ActivityEvent) (portalsdk.ActivityEvent, error) {
	meta, err := json.Marshal(e.Metadata)
	if err != nil {
		return portalsdk.ActivityEvent{}, fmt.Errorf("encode metadata of %s: %w", e.ID, err)
	}
	return portalsdk.ActivityEvent{
		ID:        e.ID,
		Seq:       e.Seq,
		EventType: string(e.EventType),
		HubID:     e.HubID,
		UserID:    e.UserID,
		UserName:  e.UserName,
		UserEmail: e.UserEmail,
		Timestamp: e.Timestamp,
		Metadata:  meta,
	}, nil
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
