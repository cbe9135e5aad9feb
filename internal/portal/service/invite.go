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

const maxInviteMessage = 2000

// errLostRace aborts a redemption transaction whose conditional update
// matched nothing.
var errLostRace = errors.New("conditional update lost")

type InviteService struct {
	Store       store.Store
	Events      EventSink
	Metrics     *observability.Metrics
	StaffDomain string
	// InviteTTL defaults to domain.InviteTTL.
	InviteTTL time.Duration
	Now       Clock
}

// RedeemResult tells the redeemer where they landed.
type RedeemResult struct {
	HubID        string             `json:"hubId"`
	HubName      string             `json:"hubName"`
	AccessLevel  domain.AccessLevel `json:"accessLevel"`
	MembershipID string             `json:"membershipId"`
}

func (s *InviteService) ttl() time.Duration {
	if s.InviteTTL <= 0 {
		return domain.InviteTTL
	}
	return s.InviteTTL
}

// CreateInvite issues an invite for email at level. The raw token is only
// ever returned here; the store keeps its fingerprint.
func (s *InviteService) CreateInvite(
	ctx context.Context,
	hubID string,
	inviter domain.Principal,
	email, level, message string,
) (domain.Invite, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	lvl, err := domain.ParseAccessLevel(level)
	if err != nil {
		return domain.Invite{}, "", invalidField("accessLevel", "must be one of full_access, proposal_only, documents_only, view_only")
	}
	email, err = domain.NormalizeEmail(email)
	if err != nil {
		return domain.Invite{}, "", invalidField("email", "must be an email address")
	}
	message = strings.TrimSpace(message)
	if len(message) > maxInviteMessage {
		return domain.Invite{}, "", invalidField("message", fmt.Sprintf("must be at most %d characters", maxInviteMessage))
	}

	// 2. Inviter must be allowed to invite into this hub at this level.
	access, err := resolveHubAccess(ctx, s.Store, inviter, hubID)
	if err != nil {
		return domain.Invite{}, "", err
	}
	if inviter.IsStaff() {
		if !access.Permissions.CanInviteMembers {
			return domain.Invite{}, "", ErrForbidden
		}
	} else {
		granted, err := domain.PermissionsFor(lvl, domain.RoleClient)
		if err != nil || !access.Permissions.Covers(granted) {
			log.Warn("client invite exceeds inviter permissions",
				slog.String("hub_id", hubID),
				slog.String("inviter", inviter.ID),
				slog.String("level", string(lvl)),
			)
			return domain.Invite{}, "", ErrForbidden
		}
	}

	// 3. Domain rule, before anything is written.
	if err := ValidateInviteDomain(access.Hub, inviter, email, s.StaffDomain); err != nil {
		log.Warn("invite domain rejected",
			slog.String("hub_id", hubID),
			slog.String("target_domain", domain.EmailDomain(email)),
			slog.String("client_domain", access.Hub.ClientDomain),
		)
		return domain.Invite{}, "", err
	}

	// 4. Mint the token.
	raw, fingerprint, err := cryptox.NewOpaqueToken()
	if err != nil {
		return domain.Invite{}, "", fmt.Errorf("generate invite token: %w", err)
	}

	now := s.Now.now()
	inv := domain.Invite{
		ID:          idx.NewAt(now).String(),
		HubID:       hubID,
		Email:       email,
		AccessLevel: lvl,
		InvitedBy:   inviter.ID,
		Message:     message,
		InvitedAt:   now,
		ExpiresAt:   now.Add(s.ttl()),
		TokenHash:   fingerprint,
		Status:      domain.InviteStatusPending,
	}

	// 5. A new invite replaces any pending one for the same address.
	var revoked int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Invites().RevokePendingInvites(ctx, hubID, email)
		if err != nil {
			return err
		}
		revoked = n
		return tx.Invites().CreateInvite(ctx, inv)
	})
	if err != nil {
		log.Error("failed to create invite", slog.Any("error", err))
		return domain.Invite{}, "", err
	}

	// 6. Record the share.
	s.logEvent(ctx, hubID, inviter, domain.ShareSent{
		RecipientEmail: email,
		Resource:       domain.ResourceRef{Type: "hub", ID: hubID},
	})
	s.Metrics.ObserveInviteCreated(string(inviter.Role))

	log.Info("invite created",
		slog.String("hub_id", hubID),
		slog.String("invite_id", inv.ID),
		slog.String("access_level", string(lvl)),
		slog.Int64("replaced", revoked),
	)
	return inv, raw, nil
}

// ListInvites returns every invite of the hub. Requires CanManageAccess.
func (s *InviteService) ListInvites(ctx context.Context, hubID string, actor domain.Principal) ([]domain.Invite, error) {
	access, err := resolveHubAccess(ctx, s.Store, actor, hubID)
	if err != nil {
		return nil, err
	}
	if !access.Permissions.CanManageAccess {
		return nil, ErrForbidden
	}
	return s.Store.Invites().ListInvites(ctx, hubID)
}

// RevokeInvite revokes a pending invite. Staff and the original inviter may
// revoke; revoking a terminal invite is a no-op.
func (s *InviteService) RevokeInvite(ctx context.Context, hubID, inviteID string, actor domain.Principal) error {
	log := slogx.FromContext(ctx)

	if _, err := resolveHubAccess(ctx, s.Store, actor, hubID); err != nil {
		return err
	}

	inv, err := s.Store.Invites().GetInvite(ctx, hubID, inviteID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !actor.IsStaff() && inv.InvitedBy != actor.ID {
		return ErrForbidden
	}
	if inv.Status.Terminal() {
		return nil
	}

	changed, err := s.Store.Invites().RevokeInvite(ctx, hubID, inviteID)
	if err != nil {
		log.Error("failed to revoke invite", slog.Any("error", err))
		return err
	}
	if changed {
		log.Info("invite revoked",
			slog.String("hub_id", hubID),
			slog.String("invite_id", inviteID),
			slog.String("revoked_by", actor.ID),
		)
	}
	return nil
}

// RedeemInvite accepts the invite named by token on behalf of redeemer.
// Exactly one of any number of concurrent redemptions succeeds.
func (s *InviteService) RedeemInvite(ctx context.Context, token string, redeemer domain.Principal) (RedeemResult, error) {
	log := slogx.FromContext(ctx)
	now := s.Now.now()

	// 1. Look up by fingerprint.
	token = strings.TrimSpace(token)
	if token == "" {
		s.Metrics.ObserveRedemption("invite", "not_found")
		return RedeemResult{}, ErrInviteNotFound
	}
	inv, err := s.Store.Invites().GetInviteByTokenHash(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		s.Metrics.ObserveRedemption("invite", "not_found")
		return RedeemResult{}, ErrInviteNotFound
	}
	if err != nil {
		return RedeemResult{}, err
	}

	// 2. State checks.
	if err := s.checkRedeemable(ctx, inv, now); err != nil {
		s.Metrics.ObserveRedemption("invite", outcomeOf(err))
		return RedeemResult{}, err
	}

	// 3. The invite is bound to its address.
	if !strings.EqualFold(redeemer.Email, inv.Email) {
		log.Warn("invite redeemed by another address",
			slog.String("invite_id", inv.ID),
			slog.String("redeemer", redeemer.ID),
		)
		s.Metrics.ObserveRedemption("invite", "forbidden")
		return RedeemResult{}, ErrForbidden
	}

	hub, err := s.Store.Hubs().GetHub(ctx, inv.HubID)
	if errors.Is(err, store.ErrNotFound) {
		return RedeemResult{}, ErrInviteNotFound
	}
	if err != nil {
		return RedeemResult{}, err
	}

	// 4. Accept and grant in one transaction.
	var granted domain.Membership
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.Invites().AcceptInvite(ctx, inv.ID, redeemer.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return errLostRace
		}

		m, err := grantMembership(ctx, tx, inv.HubID, redeemer, inv.AccessLevel, inv.InvitedBy, now)
		if err != nil {
			return err
		}
		granted = m
		return nil
	})
	if errors.Is(err, errLostRace) {
		err = s.classifyLostRace(ctx, inv.ID, inv.HubID, now)
		s.Metrics.ObserveRedemption("invite", outcomeOf(err))
		return RedeemResult{}, err
	}
	if err != nil {
		log.Error("failed to redeem invite", slog.Any("error", err))
		return RedeemResult{}, err
	}

	// 5. Record the acceptance.
	s.logEvent(ctx, inv.HubID, redeemer, domain.ShareAccepted{InviteID: inv.ID})
	s.Metrics.ObserveRedemption("invite", "accepted")

	log.Info("invite redeemed",
		slog.String("hub_id", inv.HubID),
		slog.String("invite_id", inv.ID),
		slog.String("user_id", redeemer.ID),
		slog.String("access_level", string(inv.AccessLevel)),
	)
	return RedeemResult{
		HubID:        hub.ID,
		HubName:      hub.CompanyName,
		AccessLevel:  granted.AccessLevel,
		MembershipID: granted.ID,
	}, nil
}

func (s *InviteService) checkRedeemable(ctx context.Context, inv domain.Invite, now time.Time) error {
	switch inv.Status {
	case domain.InviteStatusExpired:
		return ErrInviteExpired
	case domain.InviteStatusPending:
		if inv.Expired(now) {
			if err := s.Store.Invites().ExpireInvite(ctx, inv.ID); err != nil {
				slogx.FromContext(ctx).Warn("failed to mark invite expired",
					slog.String("invite_id", inv.ID),
					slog.Any("error", err),
				)
			}
			return ErrInviteExpired
		}
		return nil
	default:
		return ErrInviteAlreadyUsed
	}
}

// classifyLostRace re-reads an invite whose conditional accept matched no
// row and names what beat us.
func (s *InviteService) classifyLostRace(ctx context.Context, inviteID, hubID string, now time.Time) error {
	inv, err := s.Store.Invites().GetInvite(ctx, hubID, inviteID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInviteNotFound
	}
	if err != nil {
		return err
	}
	switch {
	case inv.Status == domain.InviteStatusExpired,
		inv.Status == domain.InviteStatusPending && inv.Expired(now):
		return ErrInviteExpired
	case inv.Status.Terminal():
		return ErrInviteAlreadyUsed
	default:
		return ErrConflict
	}
}

func (s *InviteService) logEvent(ctx context.Context, hubID string, actor domain.Principal, ev domain.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Log(ctx, hubID, actor, ev); err != nil {
		slogx.FromContext(ctx).Warn("engagement event rejected",
			slog.String("event_type", string(ev.Type())),
			slog.Any("error", err),
		)
	}
}

// grantMembership creates p's membership in hubID at level, or moves an
// existing membership to level.
func grantMembership(
	ctx context.Context,
	tx store.Tx,
	hubID string,
	p domain.Principal,
	level domain.AccessLevel,
	invitedBy string,
	now time.Time,
) (domain.Membership, error) {
	m, err := domain.NewMembership(idx.NewAt(now).String(), hubID, p, level, invitedBy, now)
	if err != nil {
		return domain.Membership{}, err
	}
	return tx.Memberships().UpsertMembership(ctx, m)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, ErrInviteNotFound), errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInviteExpired), errors.Is(err, ErrLinkExpired):
		return "expired"
	case errors.Is(err, ErrInviteAlreadyUsed):
		return "already_used"
	case errors.Is(err, ErrLinkExhausted):
		return "exhausted"
	case errors.Is(err, ErrLinkInactive):
		return "inactive"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
