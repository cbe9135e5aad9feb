package http

import (
	"net/http"

	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/pkg/httpx"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
)

type MeHandler struct {
	Identity *service.IdentityResolver
}

// ServeHTTP godoc
//
//	@Summary		Current Principal
//	@Description	Returns the session principal and every hub it can reach, with the effective permissions in each.
//	@Description	Staff reach every hub with full permissions; clients reach the hubs they are members of.
//	@Tags			Identity
//	@Produce		json
//	@Success		200	{object}	portalsdk.MeResponse	"principal, hubs"
//	@Failure		401	{object}	httpx.ErrorResponse		"code, message"
//	@Failure		500	{object}	httpx.ErrorResponse		"code, message"
//	@Security		BearerAuth
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := principalFrom(ctx)

	hubs, err := h.Identity.ReachableHubs(ctx, *p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.MeResponse{
		Principal: toPrincipal(*p),
		Hubs:      mapSlice(hubs, toHubAccess),
	})
}
