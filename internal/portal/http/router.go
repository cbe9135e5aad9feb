package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
	"github.com/aussiebroadwan/clienthub/pkg/httpx"
	"github.com/aussiebroadwan/clienthub/pkg/jwtx"
	"github.com/aussiebroadwan/clienthub/pkg/observability"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"

	_ "github.com/aussiebroadwan/clienthub/api/portal" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// SessionCookie is the cookie browser navigations carry the session in.
const SessionCookie = "portal_session"

// Pinger is a dependency readiness can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *observability.Metrics

	store store.Store
	Cache Pinger // Optional: only set for a shared cache

	Identity     *service.IdentityResolver
	Guard        *service.RouteGuard
	Hubs         *service.HubService
	Memberships  *service.MembershipService
	Invites      *service.InviteService
	ShareLinks   *service.ShareLinkService
	Events       service.EventSink
	EventQueries *service.EventQueryService
}

func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	st store.Store,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      metrics,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.metrics.HTTPMiddleware(r.routePattern),
		httpx.SessionMiddleware(SessionCookie, r.resolveSession),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerMe()
	r.registerHubs()
	r.registerMembers()
	r.registerInvites()
	r.registerShareLinks()
	r.registerEvents()
	r.registerNavigation()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Client Hub Portal API
//	@version		0.1.0
//	@description	Access control and engagement observability for per-client hubs.
//	@description
//	@description				Sessions are EdDSA JWTs issued by the identity provider and verified against its JWKS.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/clienthub
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session JWT from the identity provider. Format: "Bearer {token}". Browsers may send the portal_session cookie instead.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// routePattern labels metrics by mux pattern so ids stay out of label values.
func (r *Router) routePattern(req *http.Request) string {
	_, pattern := r.Mux.Handler(req)
	return pattern
}

// resolveSession attaches the principal a valid session names.
func (r *Router) resolveSession(ctx context.Context, token string) (context.Context, error) {
	p, err := r.Identity.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	ctx = withPrincipal(ctx, p)
	ctx = httpx.WithUserID(ctx, p.ID)
	return slogx.With(ctx, slog.String("user_id", p.ID), slog.String("role", string(p.Role))), nil
}

// api guards a JSON endpoint and rate limits it per user.
func (r *Router) api(h http.HandlerFunc, route routeFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		r.guard(renderAPI, route),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerMe() {
	h := &MeHandler{Identity: r.Identity}

	r.Mux.Handle("GET /v1/me", r.api(h.ServeHTTP, hubRoute(domain.AreaAny, domain.PermissionNone), httpx.LenientLimit))
}

func (r *Router) registerHubs() {
	h := &HubsHandler{Hubs: r.Hubs}
	staff := hubRoute(domain.AreaStaff, domain.PermissionNone)
	member := hubRoute(domain.AreaAny, domain.PermissionNone)

	r.Mux.Handle("POST /v1/hubs", r.api(h.HandleCreate, staff, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/hubs", r.api(h.HandleList, staff, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/hubs/{hubId}", r.api(h.HandleGet, member, httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/hubs/{hubId}/status", r.api(h.HandleUpdateStatus, staff, httpx.ModerateLimit))
}

func (r *Router) registerMembers() {
	h := &MembersHandler{Memberships: r.Memberships}
	staff := hubRoute(domain.AreaStaff, domain.PermissionNone)

	r.Mux.Handle("GET /v1/hubs/{hubId}/members",
		r.api(h.HandleList, hubRoute(domain.AreaAny, domain.PermissionNone), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/hubs/{hubId}/members/{userId}",
		r.api(h.HandleGet, hubRoute(domain.AreaAny, domain.PermissionNone), httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/hubs/{hubId}/members/{membershipId}", r.api(h.HandleUpdate, staff, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/hubs/{hubId}/members/{membershipId}", r.api(h.HandleRemove, staff, httpx.ModerateLimit))
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{Invites: r.Invites}
	member := hubRoute(domain.AreaAny, domain.PermissionNone)

	r.Mux.Handle("POST /v1/hubs/{hubId}/invites", r.api(h.HandleCreate, member, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/hubs/{hubId}/invites",
		r.api(h.HandleList, hubRoute(domain.AreaStaff, domain.PermissionNone), httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/hubs/{hubId}/invites/{inviteId}", r.api(h.HandleRevoke, member, httpx.ModerateLimit))

	// Redemption: strict, tokens are guessable only by brute force
	r.Mux.Handle("POST /v1/invites/redeem",
		r.api(h.HandleRedeem, hubRoute(domain.AreaAny, domain.PermissionNone), httpx.StrictLimit))
}

func (r *Router) registerShareLinks() {
	h := &ShareLinksHandler{ShareLinks: r.ShareLinks}
	staff := hubRoute(domain.AreaStaff, domain.PermissionNone)

	r.Mux.Handle("POST /v1/hubs/{hubId}/share-links", r.api(h.HandleCreate, staff, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/hubs/{hubId}/share-links", r.api(h.HandleList, staff, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/hubs/{hubId}/share-links/{linkId}", r.api(h.HandleDeactivate, staff, httpx.ModerateLimit))

	r.Mux.Handle("POST /v1/share-links/redeem",
		r.api(h.HandleRedeem, hubRoute(domain.AreaAny, domain.PermissionNone), httpx.StrictLimit))
}

func (r *Router) registerEvents() {
	h := &EventsHandler{
		Events:  &service.EventReporter{Store: r.store, Sink: r.Events},
		Queries: r.EventQueries,
		Metrics: r.metrics,
	}
	staff := hubRoute(domain.AreaStaff, domain.PermissionNone)

	// Clients report engagement continuously; public profile keeps them under the limiter
	r.Mux.Handle("POST /v1/hubs/{hubId}/events",
		r.api(h.HandleLog, hubRoute(domain.AreaAny, domain.PermissionNone), httpx.PublicLimit))
	r.Mux.Handle("GET /v1/hubs/{hubId}/events", r.api(h.HandleQuery, staff, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/hubs/{hubId}/events/summary", r.api(h.HandleSummary, staff, httpx.LenientLimit))
}

func (r *Router) registerNavigation() {
	h := &NavigationHandler{Hubs: r.Hubs}

	nav := func(hf http.HandlerFunc, route routeFunc) http.Handler {
		return httpx.Chain(hf,
			r.guard(renderNav, route),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /staff/hubs/{hubId}", nav(h.HandleStaffHub, hubRoute(domain.AreaStaff, domain.PermissionNone)))
	r.Mux.Handle("GET /portal", nav(h.HandlePortalHome, hubRoute(domain.AreaClient, domain.PermissionNone)))
	r.Mux.Handle("GET /portal/{hubId}", nav(h.HandlePortal, sectionRoute))
	r.Mux.Handle("GET /portal/{hubId}/{section}", nav(h.HandlePortal, sectionRoute))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.Cache),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
