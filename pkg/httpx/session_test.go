package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/clienthub/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestSessionToken(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		require.Equal(t, "abc.def.ghi", httpx.SessionToken(req, "portal_session"))
	})

	t.Run("non bearer header wins over cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		req.AddCookie(&http.Cookie{Name: "portal_session", Value: "cookie-token"})
		require.Empty(t, httpx.SessionToken(req, "portal_session"))
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "portal_session", Value: "cookie-token"})
		require.Equal(t, "cookie-token", httpx.SessionToken(req, "portal_session"))
	})

	t.Run("nothing", func(t *testing.T) {
		require.Empty(t, httpx.SessionToken(httptest.NewRequest(http.MethodGet, "/", nil), "portal_session"))
	})
}

func TestSessionMiddleware(t *testing.T) {
	resolve := func(ctx context.Context, token string) (context.Context, error) {
		if token != "good" {
			return nil, errors.New("bad session")
		}
		return httpx.WithUserID(ctx, "user-1"), nil
	}

	var seen string
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httpx.UserIDFromContext(r.Context())
	}), httpx.SessionMiddleware("portal_session", resolve))

	for token, want := range map[string]string{"good": "user-1", "bad": "", "": ""} {
		seen = "unset"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		require.Equal(t, want, seen, "token %q", token)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}
