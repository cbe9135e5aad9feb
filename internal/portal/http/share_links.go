package http

import (
	"net/http"

	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/pkg/httpx"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
)

type ShareLinksHandler struct {
	ShareLinks *service.ShareLinkService
}

// HandleCreate godoc
//
//	@Summary		Create Share Link
//	@Description	Create a reusable link granting an access level to whoever redeems it, optionally capped by days and uses. Staff only.
//	@Tags			Share Links
//	@Accept			json
//	@Produce		json
//	@Param			hubId	path		string								true	"Hub ID"
//	@Param			request	body		portalsdk.CreateShareLinkRequest	true	"Share link request"
//	@Success		201		{object}	portalsdk.CreateShareLinkResponse	"shareLink, token"
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/share-links [post].
func (h *ShareLinksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req portalsdk.CreateShareLinkRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	link, token, err := h.ShareLinks.CreateShareLink(ctx, r.PathValue("hubId"), *principalFrom(ctx),
		req.AccessLevel, req.ExpiresInDays, req.MaxUses)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, portalsdk.CreateShareLinkResponse{
		ShareLink: toShareLink(link),
		Token:     token,
	})
}

// HandleList godoc
//
//	@Summary		List Share Links
//	@Description	List the hub's share links with their use counts. Staff only.
//	@Tags			Share Links
//	@Produce		json
//	@Param			hubId	path		string	true	"Hub ID"
//	@Success		200		{object}	httpx.ListResponse[portalsdk.ShareLink]
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/share-links [get].
func (h *ShareLinksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	links, err := h.ShareLinks.ListShareLinks(ctx, r.PathValue("hubId"), *principalFrom(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeList(w, mapSlice(links, toShareLink))
}

// HandleDeactivate godoc
//
//	@Summary		Deactivate Share Link
//	@Description	Switch a share link off. Memberships already granted through it are kept. Staff only.
//	@Tags			Share Links
//	@Param			hubId	path	string	true	"Hub ID"
//	@Param			linkId	path	string	true	"Share link ID"
//	@Success		204
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/share-links/{linkId} [delete].
func (h *ShareLinksHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ShareLinks.DeactivateShareLink(ctx, r.PathValue("hubId"), r.PathValue("linkId"), *principalFrom(ctx)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRedeem godoc
//
//	@Summary		Redeem Share Link
//	@Description	Join a hub through a share link. Each principal redeems a link once; repeating returns the same membership.
//	@Description	Concurrent redemptions never exceed the link's use cap.
//	@Tags			Share Links
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.RedeemRequest	true	"Share link token"
//	@Success		200		{object}	portalsdk.Membership
//	@Failure		404		{object}	httpx.ErrorResponse	"unknown token"
//	@Failure		409		{object}	httpx.ErrorResponse	"details.reason=link_expired|link_exhausted|link_inactive|retry"
//	@Failure		429		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/share-links/redeem [post].
func (h *ShareLinksHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req portalsdk.RedeemRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	m, err := h.ShareLinks.RedeemShareLink(ctx, req.Token, *principalFrom(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMembership(m))
}
