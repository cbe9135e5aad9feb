package http

import (
	"net/http"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/pkg/httpx"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
)

// renderMode selects how a denial reaches the caller.
type renderMode int

const (
	// renderAPI answers with 401/403 error envelopes.
	renderAPI renderMode = iota
	// renderNav answers with redirects or the access denied view.
	renderNav
)

// routeFunc builds the guarded route from a matched request. ok=false means
// the path names nothing that exists and is answered with 404.
type routeFunc func(*http.Request) (route domain.Route, ok bool)

// hubRoute guards area and permission on the request's {hubId}, if any.
func hubRoute(area domain.Area, requires domain.Permission) routeFunc {
	return func(req *http.Request) (domain.Route, bool) {
		return domain.Route{Area: area, HubID: req.PathValue("hubId"), Requires: requires}, true
	}
}

// sectionRoute guards a portal section with the permission it maps to.
func sectionRoute(req *http.Request) (domain.Route, bool) {
	perm, ok := domain.SectionPermission(req.PathValue("section"))
	if !ok {
		return domain.Route{}, false
	}
	return domain.Route{Area: domain.AreaClient, HubID: req.PathValue("hubId"), Requires: perm}, true
}

// guard runs the route guard on every request before next.
func (r *Router) guard(mode renderMode, routeOf routeFunc) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			route, ok := routeOf(req)
			if !ok {
				httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "Not found", nil)
				return
			}

			ctx := req.Context()
			d := r.Guard.Check(ctx, principalFrom(ctx), route, req.URL.RequestURI())
			if d.Authorized() {
				next.ServeHTTP(w, req)
				return
			}

			if mode == renderNav {
				renderNavDenied(w, req, d)
				return
			}
			if d.Reason == domain.ReasonUnauthenticated {
				httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthenticated, "Authentication required", nil)
				return
			}
			httpx.WriteError(w, http.StatusForbidden, httpx.CodeForbidden, domain.AccessDeniedMessage, nil)
		})
	}
}

func renderNavDenied(w http.ResponseWriter, req *http.Request, d domain.Decision) {
	if d.Redirect != "" {
		httpx.NoCache(w)
		http.Redirect(w, req, d.Redirect, http.StatusFound)
		return
	}
	msg := d.Message
	if msg == "" {
		msg = domain.AccessDeniedMessage
	}
	httpx.WriteJSON(w, http.StatusForbidden, portalsdk.NavigationView{View: "access_denied", Message: msg})
}
