package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
)

type MembershipService struct {
	Store store.Store
	Now   Clock
}

// List returns the hub's members to anyone with access to the hub.
func (s *MembershipService) List(ctx context.Context, hubID string, actor domain.Principal) ([]domain.Membership, error) {
	if _, err := resolveHubAccess(ctx, s.Store, actor, hubID); err != nil {
		return nil, err
	}
	return s.Store.Memberships().ListMemberships(ctx, hubID)
}

// Get returns userID's membership in hubID to anyone with access to the hub.
func (s *MembershipService) Get(ctx context.Context, hubID, userID string, actor domain.Principal) (domain.Membership, error) {
	if _, err := resolveHubAccess(ctx, s.Store, actor, hubID); err != nil {
		return domain.Membership{}, err
	}
	m, err := s.Store.Memberships().GetMembership(ctx, hubID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Membership{}, ErrNotFound
	}
	return m, err
}

// SetAccessLevel changes a member's level and rewrites the permission
// snapshot for the member's role.
func (s *MembershipService) SetAccessLevel(
	ctx context.Context,
	hubID, membershipID, level string,
	actor domain.Principal,
) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	// 1. Caller must manage access in this hub.
	access, err := resolveHubAccess(ctx, s.Store, actor, hubID)
	if err != nil {
		return domain.Membership{}, err
	}
	if !access.Permissions.CanManageAccess {
		log.Warn("access level change denied",
			slog.String("hub_id", hubID),
			slog.String("user_id", actor.ID),
		)
		return domain.Membership{}, ErrForbidden
	}

	// 2. Parse the level, unknown levels never reach the store.
	lvl, err := domain.ParseAccessLevel(level)
	if err != nil {
		return domain.Membership{}, invalidField("accessLevel", "must be one of full_access, proposal_only, documents_only, view_only")
	}

	// 3. Recompute from the stored role.
	m, err := s.Store.Memberships().GetMembershipByID(ctx, hubID, membershipID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Membership{}, ErrNotFound
	}
	if err != nil {
		return domain.Membership{}, err
	}
	updated, err := m.WithAccessLevel(lvl)
	if err != nil {
		return domain.Membership{}, err
	}

	if err := s.Store.Memberships().UpdateAccessLevel(ctx, hubID, membershipID, updated.AccessLevel, updated.Permissions); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrNotFound
		}
		log.Error("failed to update access level", slog.Any("error", err))
		return domain.Membership{}, err
	}

	log.Info("access level changed",
		slog.String("hub_id", hubID),
		slog.String("membership_id", membershipID),
		slog.String("from", string(m.AccessLevel)),
		slog.String("to", string(updated.AccessLevel)),
		slog.String("changed_by", actor.ID),
	)
	return updated, nil
}

// Remove deletes a membership. The removed principal loses hub access on
// their next request.
func (s *MembershipService) Remove(ctx context.Context, hubID, membershipID string, actor domain.Principal) error {
	log := slogx.FromContext(ctx)

	access, err := resolveHubAccess(ctx, s.Store, actor, hubID)
	if err != nil {
		return err
	}
	if !access.Permissions.CanManageAccess {
		return ErrForbidden
	}

	if err := s.Store.Memberships().DeleteMembership(ctx, hubID, membershipID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to remove membership", slog.Any("error", err))
		return err
	}

	log.Info("membership removed",
		slog.String("hub_id", hubID),
		slog.String("membership_id", membershipID),
		slog.String("removed_by", actor.ID),
	)
	return nil
}

// Touch records activity for userID in hubID.
func (s *MembershipService) Touch(ctx context.Context, hubID, userID string) error {
	err := s.Store.Memberships().TouchMembership(ctx, hubID, userID, s.Now.now())
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
