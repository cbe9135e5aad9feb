package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
	"github.com/aussiebroadwan/clienthub/pkg/jwtx"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
)

// IdentityResolver turns a session token from the identity provider into a
// Principal. It never mints sessions.
type IdentityResolver struct {
	Verifier jwtx.Verifier
	Store    store.Store

	// Remote is refreshed once when a token names a kid we have not seen,
	// which is how provider key rotation reaches us. Nil for static key sets.
	Remote *jwtx.RemoteJWKS
}

// Resolve verifies token and returns the principal it names. Every failure
// is ErrUnauthenticated; the cause is only logged.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	log := slogx.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, ErrUnauthenticated
	}

	claims, err := r.Verifier.Verify(token)
	if err != nil && errors.Is(err, jwtx.ErrUnknownKID) && r.Remote != nil {
		refreshed, rerr := r.Remote.TryRefresh(ctx)
		if rerr != nil {
			log.Warn("jwks refresh failed", slog.Any("error", rerr))
		}
		if refreshed && rerr == nil {
			claims, err = r.Verifier.Verify(token)
		}
	}
	if err != nil {
		log.Debug("session rejected", slog.Any("error", err))
		return domain.Principal{}, ErrUnauthenticated
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		log.Warn("session carries unknown role", slog.String("role", claims.Role))
		return domain.Principal{}, ErrUnauthenticated
	}
	if claims.Subject == "" {
		return domain.Principal{}, ErrUnauthenticated
	}
	email, err := domain.NormalizeEmail(claims.Email)
	if err != nil {
		log.Warn("session carries invalid email", slog.String("sub", claims.Subject))
		return domain.Principal{}, ErrUnauthenticated
	}

	return domain.NewPrincipal(claims.Subject, email, claims.Name, role), nil
}

// ReachableHubs lists the hubs p may open. Staff see every hub with full
// permissions; clients see the hubs they are members of.
func (r *IdentityResolver) ReachableHubs(ctx context.Context, p domain.Principal) ([]HubAccess, error) {
	if p.IsStaff() {
		hubs, err := r.Store.Hubs().ListHubs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list hubs: %w", err)
		}
		out := make([]HubAccess, 0, len(hubs))
		for _, h := range hubs {
			out = append(out, HubAccess{Hub: h, AccessLevel: domain.AccessFullAccess, Permissions: domain.FullPermissions})
		}
		return out, nil
	}

	memberships, err := r.Store.Memberships().ListMembershipsByUser(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	out := make([]HubAccess, 0, len(memberships))
	for _, m := range memberships {
		hub, err := r.Store.Hubs().GetHub(ctx, m.HubID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load hub: %w", err)
		}
		perms, err := domain.PermissionsFor(m.AccessLevel, p.Role)
		if err != nil {
			continue
		}
		out = append(out, HubAccess{Hub: hub, AccessLevel: m.AccessLevel, Permissions: perms, Membership: &m})
	}
	return out, nil
}
