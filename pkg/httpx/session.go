package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/clienthub/pkg/slogx"
)

// SessionResolver authenticates a raw session token and returns a context
// enriched with whatever the application needs downstream.
type SessionResolver func(ctx context.Context, token string) (context.Context, error)

// SessionToken extracts the session from a bearer Authorization header, or
// failing that from the named cookie. Browser navigations carry the cookie,
// API clients the header.
func SessionToken(r *http.Request, cookieName string) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		if raw, ok := strings.CutPrefix(authz, "Bearer "); ok {
			return strings.TrimSpace(raw)
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// SessionMiddleware resolves the session when one is present. Requests without
// a session, or with one that fails verification, continue anonymously; the
// authorization layer decides whether anonymous is acceptable for the route.
func SessionMiddleware(cookieName string, resolve SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := SessionToken(r, cookieName)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx, err := resolve(r.Context(), raw)
			if err != nil {
				slogx.FromContext(r.Context()).Warn("session rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
