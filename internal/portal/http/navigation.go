package http

import (
	"net/http"

	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/pkg/httpx"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
)

// NavigationHandler renders the entry views of the staff and client areas.
// The route guard has already run by the time it is reached.
type NavigationHandler struct {
	Hubs *service.HubService
}

// HandleStaffHub godoc
//
//	@Summary		Staff Hub View
//	@Description	Staff entry point for a hub. Clients are redirected to their own portal.
//	@Tags			Navigation
//	@Produce		json
//	@Param			hubId	path		string	true	"Hub ID"
//	@Success		200		{object}	portalsdk.NavigationView
//	@Failure		302		"redirect to login or to the client portal"
//	@Failure		403		{object}	portalsdk.NavigationView	"access_denied"
//	@Router			/staff/hubs/{hubId} [get].
func (h *NavigationHandler) HandleStaffHub(w http.ResponseWriter, r *http.Request) {
	h.renderHub(w, r, "staff_hub")
}

// HandlePortalHome godoc
//
//	@Summary		Client Portal Home
//	@Description	Landing view for a client with no hub yet.
//	@Tags			Navigation
//	@Produce		json
//	@Success		200	{object}	portalsdk.NavigationView
//	@Failure		302	"redirect to login"
//	@Failure		403	{object}	portalsdk.NavigationView	"access_denied"
//	@Router			/portal [get].
func (h *NavigationHandler) HandlePortalHome(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, portalsdk.NavigationView{View: "portal"})
}

// HandlePortal godoc
//
//	@Summary		Client Portal View
//	@Description	Client entry point for a hub section. The section must be granted by the member's permissions.
//	@Tags			Navigation
//	@Produce		json
//	@Param			hubId	path		string	true	"Hub ID"
//	@Param			section	path		string	false	"overview, proposal, documents, videos, messages, meetings or questionnaire"
//	@Success		200		{object}	portalsdk.NavigationView
//	@Failure		302		"redirect to login"
//	@Failure		403		{object}	portalsdk.NavigationView	"access_denied"
//	@Failure		404		{object}	httpx.ErrorResponse			"unknown section"
//	@Router			/portal/{hubId}/{section} [get].
func (h *NavigationHandler) HandlePortal(w http.ResponseWriter, r *http.Request) {
	h.renderHub(w, r, "portal")
}

func (h *NavigationHandler) renderHub(w http.ResponseWriter, r *http.Request, view string) {
	ctx := r.Context()

	access, err := h.Hubs.GetHub(ctx, *principalFrom(ctx), r.PathValue("hubId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	hub := toHub(access.Hub)
	perms := toPermissions(access.Permissions)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.NavigationView{
		View:        view,
		Hub:         &hub,
		Section:     r.PathValue("section"),
		Permissions: &perms,
	})
}
