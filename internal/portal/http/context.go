package http

import (
	"context"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
)

type ctxKey int

const ctxKeyPrincipal ctxKey = 0

func withPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// principalFrom returns the resolved session principal, or nil for anonymous
// requests.
func principalFrom(ctx context.Context) *domain.Principal {
	p, ok := ctx.Value(ctxKeyPrincipal).(domain.Principal)
	if !ok {
		return nil
	}
	return &p
}
