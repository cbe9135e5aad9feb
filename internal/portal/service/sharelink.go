package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
	"github.com/aussiebroadwan/clienthub/pkg/cryptox"
	"github.com/aussiebroadwan/clienthub/pkg/idx"
	"github.com/aussiebroadwan/clienthub/pkg/observability"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
)

// MaxShareLinkDays caps share link lifetimes at ten years.
const MaxShareLinkDays = 3650

type ShareLinkService struct {
	Store   store.Store
	Metrics *observability.Metrics
	Now     Clock
}

// CreateShareLink issues a reusable link into hubID. Staff only. Nil
// expiresInDays and maxUses mean no expiry and no cap.
func (s *ShareLinkService) CreateShareLink(
	ctx context.Context,
	hubID string,
	creator domain.Principal,
	level string,
	expiresInDays, maxUses *int,
) (domain.ShareLink, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Staff only, and the hub must exist.
	if !creator.IsStaff() {
		return domain.ShareLink{}, "", ErrForbidden
	}
	if _, err := resolveHubAccess(ctx, s.Store, creator, hubID); err != nil {
		return domain.ShareLink{}, "", err
	}

	// 2. Validate parameters.
	lvl, err := domain.ParseAccessLevel(level)
	if err != nil {
		return domain.ShareLink{}, "", invalidField("accessLevel", "must be one of full_access, proposal_only, documents_only, view_only")
	}
	if expiresInDays != nil && (*expiresInDays <= 0 || *expiresInDays > MaxShareLinkDays) {
		return domain.ShareLink{}, "", invalidField("expiresInDays", fmt.Sprintf("must be between 1 and %d", MaxShareLinkDays))
	}
	if maxUses != nil && *maxUses <= 0 {
		return domain.ShareLink{}, "", invalidField("maxUses", "must be positive")
	}

	raw, fingerprint, err := cryptox.NewOpaqueToken()
	if err != nil {
		return domain.ShareLink{}, "", fmt.Errorf("generate share link token: %w", err)
	}

	now := s.Now.now()
	link := domain.ShareLink{
		ID:          idx.NewAt(now).String(),
		HubID:       hubID,
		TokenHash:   fingerprint,
		AccessLevel: lvl,
		CreatedBy:   creator.ID,
		CreatedAt:   now,
		IsActive:    true,
	}
	if expiresInDays != nil {
		exp := now.AddDate(0, 0, *expiresInDays)
		link.ExpiresAt = &exp
	}
	if maxUses != nil {
		n := *maxUses
		link.MaxUses = &n
	}

	// 3. Persist.
	if err := s.Store.ShareLinks().CreateShareLink(ctx, link); err != nil {
		log.Error("failed to create share link", slog.Any("error", err))
		return domain.ShareLink{}, "", err
	}

	log.Info("share link created",
		slog.String("hub_id", hubID),
		slog.String("link_id", link.ID),
		slog.String("access_level", string(lvl)),
	)
	return link, raw, nil
}

// ListShareLinks returns the hub's links. Staff only.
func (s *ShareLinkService) ListShareLinks(ctx context.Context, hubID string, actor domain.Principal) ([]domain.ShareLink, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	if _, err := resolveHubAccess(ctx, s.Store, actor, hubID); err != nil {
		return nil, err
	}
	return s.Store.ShareLinks().ListShareLinks(ctx, hubID)
}

// DeactivateShareLink stops a link from being redeemed. Deactivating an
// inactive link succeeds.
func (s *ShareLinkService) DeactivateShareLink(ctx context.Context, hubID, linkID string, actor domain.Principal) error {
	log := slogx.FromContext(ctx)

	if !actor.IsStaff() {
		return ErrForbidden
	}
	if err := s.Store.ShareLinks().DeactivateShareLink(ctx, hubID, linkID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to deactivate share link", slog.Any("error", err))
		return err
	}

	log.Info("share link deactivated",
		slog.String("hub_id", hubID),
		slog.String("link_id", linkID),
		slog.String("deactivated_by", actor.ID),
	)
	return nil
}

// RedeemShareLink grants redeemer the link's access level. Each principal
// consumes at most one use of a link; repeating returns the membership the
// first redemption created.
func (s *ShareLinkService) RedeemShareLink(ctx context.Context, token string, redeemer domain.Principal) (domain.Membership, error) {
	log := slogx.FromContext(ctx)
	now := s.Now.now()

	// 1. Look up by fingerprint.
	token = strings.TrimSpace(token)
	if token == "" {
		s.Metrics.ObserveRedemption("share_link", "not_found")
		return domain.Membership{}, ErrNotFound
	}
	link, err := s.Store.ShareLinks().GetShareLinkByTokenHash(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		s.Metrics.ObserveRedemption("share_link", "not_found")
		return domain.Membership{}, ErrNotFound
	}
	if err != nil {
		return domain.Membership{}, err
	}

	// 2. Repeat redemption by the same principal.
	if m, ok, err := s.previousRedemption(ctx, link, redeemer); err != nil || ok {
		if ok {
			s.Metrics.ObserveRedemption("share_link", "repeat")
		}
		return m, err
	}

	// 3. State checks before touching the counter.
	if err := linkStateError(link.State(now)); err != nil {
		s.Metrics.ObserveRedemption("share_link", outcomeOf(err))
		return domain.Membership{}, err
	}

	// 4. Record, consume and grant in one transaction.
	var granted domain.Membership
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ShareLinks().RecordRedemption(ctx, link.ID, redeemer.ID, now); err != nil {
			return err
		}
		ok, err := tx.ShareLinks().ConsumeShareLinkUse(ctx, link.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return errLostRace
		}
		m, err := grantMembership(ctx, tx, link.HubID, redeemer, link.AccessLevel, link.CreatedBy, now)
		if err != nil {
			return err
		}
		granted = m
		return nil
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		// A concurrent request from the same principal won.
		m, _, perr := s.previousRedemption(ctx, link, redeemer)
		return m, perr
	case errors.Is(err, errLostRace):
		err = s.classifyLostRace(ctx, link, now)
		s.Metrics.ObserveRedemption("share_link", outcomeOf(err))
		return domain.Membership{}, err
	case err != nil:
		log.Error("failed to redeem share link", slog.Any("error", err))
		return domain.Membership{}, err
	}

	s.Metrics.ObserveRedemption("share_link", "accepted")
	log.Info("share link redeemed",
		slog.String("hub_id", link.HubID),
		slog.String("link_id", link.ID),
		slog.String("user_id", redeemer.ID),
	)
	return granted, nil
}

// previousRedemption returns the membership from an earlier redemption of
// link by p. A member removed since then does not get back in through the
// same link.
func (s *ShareLinkService) previousRedemption(ctx context.Context, link domain.ShareLink, p domain.Principal) (domain.Membership, bool, error) {
	redeemed, err := s.Store.ShareLinks().HasRedeemed(ctx, link.ID, p.ID)
	if err != nil || !redeemed {
		return domain.Membership{}, false, err
	}
	m, err := s.Store.Memberships().GetMembership(ctx, link.HubID, p.ID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Membership{}, true, ErrForbidden
	}
	if err != nil {
		return domain.Membership{}, true, err
	}
	return m, true, nil
}

func (s *ShareLinkService) classifyLostRace(ctx context.Context, link domain.ShareLink, now time.Time) error {
	current, err := s.Store.ShareLinks().GetShareLink(ctx, link.HubID, link.ID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := linkStateError(current.State(now)); err != nil {
		return err
	}
	return ErrConflict
}

func linkStateError(state domain.ShareLinkState) error {
	switch state {
	case domain.ShareLinkInactive:
		return ErrLinkInactive
	case domain.ShareLinkExpired:
		return ErrLinkExpired
	case domain.ShareLinkExhausted:
		return ErrLinkExhausted
	default:
		return nil
	}
}
