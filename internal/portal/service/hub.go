package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
	"github.com/aussiebroadwan/clienthub/pkg/idx"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
)

type HubService struct {
	Store store.Store
	Now   Clock
}

type CreateHubInput struct {
	CompanyName  string `json:"companyName"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ClientDomain string `json:"clientDomain"`
}

// CreateHub creates a draft hub. The creating staff member becomes its
// first member.
func (s *HubService) CreateHub(ctx context.Context, actor domain.Principal, in CreateHubInput) (domain.Hub, error) {
	log := slogx.FromContext(ctx)

	// 1. Only staff create hubs.
	if !actor.IsStaff() {
		log.Warn("client attempted to create hub", slog.String("user_id", actor.ID))
		return domain.Hub{}, ErrForbidden
	}

	// 2. Validate input.
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	if in.CompanyName == "" {
		return domain.Hub{}, invalidField("companyName", "is required")
	}
	clientDomain, err := normalizeDomain(in.ClientDomain)
	if err != nil {
		return domain.Hub{}, err
	}
	contactEmail := ""
	if strings.TrimSpace(in.ContactEmail) != "" {
		if contactEmail, err = domain.NormalizeEmail(in.ContactEmail); err != nil {
			return domain.Hub{}, invalidField("contactEmail", "must be an email address")
		}
	}

	now := s.Now.now()
	hub := domain.Hub{
		ID:           idx.NewAt(now).String(),
		CompanyName:  in.CompanyName,
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactEmail: contactEmail,
		ClientDomain: clientDomain,
		Status:       domain.HubStatusDraft,
		CreatedBy:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	creator, err := domain.NewMembership(idx.NewAt(now).String(), hub.ID, actor, domain.AccessFullAccess, actor.ID, now)
	if err != nil {
		return domain.Hub{}, err
	}

	// 3. Hub and creator membership land together.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Hubs().CreateHub(ctx, hub); err != nil {
			return err
		}
		_, err := tx.Memberships().UpsertMembership(ctx, creator)
		return err
	})
	if err != nil {
		log.Error("failed to create hub", slog.Any("error", err))
		return domain.Hub{}, err
	}

	log.Info("hub created",
		slog.String("hub_id", hub.ID),
		slog.String("client_domain", hub.ClientDomain),
		slog.String("created_by", actor.ID),
	)
	return hub, nil
}

// GetHub returns a hub the actor can reach.
func (s *HubService) GetHub(ctx context.Context, actor domain.Principal, hubID string) (HubAccess, error) {
	return resolveHubAccess(ctx, s.Store, actor, hubID)
}

// ListHubs returns every hub. Staff only.
func (s *HubService) ListHubs(ctx context.Context, actor domain.Principal) ([]domain.Hub, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	return s.Store.Hubs().ListHubs(ctx)
}

// UpdateStatus moves a hub to any status. Staff only; transitions are not
// constrained.
func (s *HubService) UpdateStatus(ctx context.Context, actor domain.Principal, hubID, status string) (domain.Hub, error) {
	log := slogx.FromContext(ctx)

	if !actor.IsStaff() {
		return domain.Hub{}, ErrForbidden
	}
	st, err := domain.ParseHubStatus(status)
	if err != nil {
		return domain.Hub{}, invalidField("status", "must be one of draft, active, won, lost")
	}

	if err := s.Store.Hubs().UpdateHubStatus(ctx, hubID, st, s.Now.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Hub{}, ErrNotFound
		}
		log.Error("failed to update hub status", slog.Any("error", err))
		return domain.Hub{}, err
	}

	log.Info("hub status changed",
		slog.String("hub_id", hubID),
		slog.String("status", string(st)),
		slog.String("changed_by", actor.ID),
	)
	return s.Store.Hubs().GetHub(ctx, hubID)
}

func normalizeDomain(raw string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(raw))
	d = strings.TrimPrefix(d, "@")
	if d == "" || !strings.Contains(d, ".") || strings.ContainsAny(d, "@ /:") ||
		strings.HasPrefix(d, ".") || strings.HasSuffix(d, ".") {
		return "", invalidField("clientDomain", "must be a domain name such as acme.com")
	}
	return d, nil
}
