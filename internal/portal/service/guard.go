package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
	"github.com/aussiebroadwan/clienthub/pkg/observability"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
)

const (
	defaultLoginPath  = "/login"
	defaultClientHome = "/portal"
)

// RouteGuard decides whether a principal may enter a route. It runs on every
// request; nothing is cached between decisions.
type RouteGuard struct {
	Store       store.Store
	Identity    *IdentityResolver
	Memberships *MembershipService
	Metrics     *observability.Metrics
	LoginPath   string
	ClientHome  string
}

func (g *RouteGuard) Check(ctx context.Context, p *domain.Principal, route domain.Route, requested string) domain.Decision {
	d := g.decide(ctx, p, route, requested)

	g.Metrics.ObserveGuardDecision(string(d.State), string(d.Reason))
	if !d.Authorized() {
		attrs := []any{
			slog.String("area", string(route.Area)),
			slog.String("reason", string(d.Reason)),
			slog.String("path", requested),
		}
		if route.HubID != "" {
			attrs = append(attrs, slog.String("hub_id", route.HubID))
		}
		if p != nil {
			attrs = append(attrs, slog.String("user_id", p.ID), slog.String("role", string(p.Role)))
		}
		slogx.FromContext(ctx).Info("route denied", attrs...)
	}
	return d
}

func (g *RouteGuard) decide(ctx context.Context, p *domain.Principal, route domain.Route, requested string) domain.Decision {
	// 1. Authentication.
	if p == nil {
		return domain.Decision{
			State:    domain.DecisionDenied,
			Reason:   domain.ReasonUnauthenticated,
			Redirect: g.loginPath() + "?return_to=" + url.QueryEscape(requested),
		}
	}

	// 2. Area.
	switch {
	case route.Area == domain.AreaStaff && !p.IsStaff():
		return domain.Decision{
			State:    domain.DecisionDenied,
			Reason:   domain.ReasonRoleMismatch,
			Redirect: g.clientDefault(ctx, *p),
		}
	case route.Area == domain.AreaClient && p.IsStaff():
		return deny(domain.ReasonRoleMismatch)
	}

	if route.HubID == "" {
		return domain.Decision{State: domain.DecisionAuthorized}
	}

	// 3. Hub access. A missing hub and a hub without membership look the same.
	access, err := resolveHubAccess(ctx, g.Store, *p, route.HubID)
	if err != nil {
		if !errors.Is(err, ErrForbidden) && !errors.Is(err, ErrNotFound) {
			slogx.FromContext(ctx).Error("route guard lookup failed", slog.Any("error", err))
		}
		return deny(domain.ReasonNoAccess)
	}

	// 4. Section permission.
	if !access.Permissions.Has(route.Requires) {
		return deny(domain.ReasonMissingPermission)
	}

	if access.Membership != nil && !p.IsStaff() && g.Memberships != nil {
		if err := g.Memberships.Touch(ctx, route.HubID, p.ID); err != nil {
			slogx.FromContext(ctx).Warn("failed to record activity", slog.Any("error", err))
		}
	}

	perms := access.Permissions
	return domain.Decision{State: domain.DecisionAuthorized, Permissions: &perms}
}

// clientDefault is where a client lands when they stray into a staff area.
func (g *RouteGuard) clientDefault(ctx context.Context, p domain.Principal) string {
	home := g.ClientHome
	if home == "" {
		home = defaultClientHome
	}
	if g.Identity == nil {
		return home
	}
	hubs, err := g.Identity.ReachableHubs(ctx, p)
	if err != nil || len(hubs) == 0 {
		return home
	}
	return home + "/" + url.PathEscape(hubs[0].Hub.ID)
}

func (g *RouteGuard) loginPath() string {
	if g.LoginPath == "" {
		return defaultLoginPath
	}
	return g.LoginPath
}

func deny(reason domain.DenyReason) domain.Decision {
	return domain.Decision{
		State:   domain.DecisionDenied,
		Reason:  reason,
		Message: domain.AccessDeniedMessage,
	}
}
