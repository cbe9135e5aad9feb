package http

import (
	"net/http"

	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/pkg/httpx"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
)

type HubsHandler struct {
	Hubs *service.HubService
}

// HandleCreate godoc
//
//	@Summary		Create Hub
//	@Description	Create a draft hub for a client company. The creator joins it with full access. Staff only.
//	@Tags			Hubs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.CreateHubRequest	true	"Hub details"
//	@Success		201		{object}	portalsdk.Hub
//	@Failure		400		{object}	httpx.ErrorResponse	"VALIDATION_ERROR with details.field"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs [post].
func (h *HubsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req portalsdk.CreateHubRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	hub, err := h.Hubs.CreateHub(ctx, *principalFrom(ctx), service.CreateHubInput{
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ClientDomain: req.ClientDomain,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toHub(hub))
}

// HandleList godoc
//
//	@Summary		List Hubs
//	@Description	List every hub. Staff only.
//	@Tags			Hubs
//	@Produce		json
//	@Success		200	{object}	httpx.ListResponse[portalsdk.Hub]
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs [get].
func (h *HubsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hubs, err := h.Hubs.ListHubs(ctx, *principalFrom(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeList(w, mapSlice(hubs, toHub))
}

// HandleGet godoc
//
//	@Summary		Get Hub
//	@Description	Get a hub together with the caller's access level and permissions in it.
//	@Tags			Hubs
//	@Produce		json
//	@Param			hubId	path		string	true	"Hub ID"
//	@Success		200		{object}	portalsdk.HubAccess
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse	"Access Denied, also for hubs that do not exist"
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId} [get].
func (h *HubsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	access, err := h.Hubs.GetHub(ctx, *principalFrom(ctx), r.PathValue("hubId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toHubAccess(access))
}

// HandleUpdateStatus godoc
//
//	@Summary		Update Hub Status
//	@Description	Move a hub between draft, active, won and lost. Staff only.
//	@Tags			Hubs
//	@Accept			json
//	@Produce		json
//	@Param			hubId	path		string								true	"Hub ID"
//	@Param			request	body		portalsdk.UpdateHubStatusRequest	true	"New status"
//	@Success		200		{object}	portalsdk.Hub
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/status [patch].
func (h *HubsHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req portalsdk.UpdateHubStatusRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	hub, err := h.Hubs.UpdateStatus(ctx, *principalFrom(ctx), r.PathValue("hubId"), req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toHub(hub))
}

// writeList renders an unpaginated collection as a single page.
func writeList[T any](w http.ResponseWriter, items []T) {
	httpx.WriteJSON(w, http.StatusOK, httpx.ListResponse[T]{
		Items: items,
		Pagination: httpx.Pagination{
			Page:       1,
			PageSize:   len(items),
			TotalItems: len(items),
			TotalPages: 1,
		},
	})
}
