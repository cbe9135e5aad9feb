package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
)

// HubAccess is what a principal holds in one hub.
type HubAccess struct {
	Hub         domain.Hub           `json:"hub"`
	AccessLevel domain.AccessLevel   `json:"accessLevel"`
	Permissions domain.PermissionSet `json:"permissions"`
	// Membership is nil for staff without an explicit membership row.
	Membership *domain.Membership `json:"membership,omitempty"`
}

// resolveHubAccess works out actor's effective permissions in hubID.
// Permissions are recomputed from the stored level, never read from the
// snapshot. Staff reach every hub; a missing hub is ErrNotFound for them.
// Clients get ErrForbidden both for a missing hub and for a hub they are not
// a member of.
func resolveHubAccess(ctx context.Context, st store.Store, actor domain.Principal, hubID string) (HubAccess, error) {
	hub, err := st.Hubs().GetHub(ctx, hubID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if actor.IsStaff() {
				return HubAccess{}, ErrNotFound
			}
			return HubAccess{}, ErrForbidden
		}
		return HubAccess{}, fmt.Errorf("load hub: %w", err)
	}

	m, err := st.Memberships().GetMembership(ctx, hubID, actor.ID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		if !actor.IsStaff() {
			return HubAccess{}, ErrForbidden
		}
		return HubAccess{Hub: hub, AccessLevel: domain.AccessFullAccess, Permissions: domain.FullPermissions}, nil
	default:
		return HubAccess{}, fmt.Errorf("load membership: %w", err)
	}

	perms, err := domain.PermissionsFor(m.AccessLevel, actor.Role)
	if err != nil {
		// A corrupt level denies rather than grants.
		return HubAccess{}, ErrForbidden
	}
	return HubAccess{Hub: hub, AccessLevel: m.AccessLevel, Permissions: perms, Membership: &m}, nil
}
