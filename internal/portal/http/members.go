package http

import (
	"net/http"

	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/pkg/httpx"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
)

type MembersHandler struct {
	Memberships *service.MembershipService
}

// HandleList godoc
//
//	@Summary		List Members
//	@Description	List the hub's members with their access levels and permission snapshots.
//	@Tags			Members
//	@Produce		json
//	@Param			hubId	path		string	true	"Hub ID"
//	@Success		200		{object}	httpx.ListResponse[portalsdk.Membership]
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	members, err := h.Memberships.List(ctx, r.PathValue("hubId"), *principalFrom(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeList(w, mapSlice(members, toMembership))
}

// HandleGet godoc
//
//	@Summary		Get Member
//	@Description	Get one user's membership in the hub. Visible to anyone with access to the hub.
//	@Tags			Members
//	@Produce		json
//	@Param			hubId	path		string	true	"Hub ID"
//	@Param			userId	path		string	true	"User ID"
//	@Success		200		{object}	portalsdk.Membership
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/members/{userId} [get].
func (h *MembersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	m, err := h.Memberships.Get(ctx, r.PathValue("hubId"), r.PathValue("userId"), *principalFrom(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMembership(m))
}

// HandleUpdate godoc
//
//	@Summary		Change Access Level
//	@Description	Move a member to another access level. The permission snapshot is recomputed and takes effect on the member's next request.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			hubId			path		string								true	"Hub ID"
//	@Param			membershipId	path		string								true	"Membership ID"
//	@Param			request			body		portalsdk.UpdateMembershipRequest	true	"New access level"
//	@Success		200				{object}	portalsdk.Membership
//	@Failure		400				{object}	httpx.ErrorResponse
//	@Failure		403				{object}	httpx.ErrorResponse
//	@Failure		404				{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/members/{membershipId} [patch].
func (h *MembersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req portalsdk.UpdateMembershipRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	m, err := h.Memberships.SetAccessLevel(ctx, r.PathValue("hubId"), r.PathValue("membershipId"), req.AccessLevel, *principalFrom(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMembership(m))
}

// HandleRemove godoc
//
//	@Summary		Remove Member
//	@Description	Revoke a member's access to the hub. Effective on the member's next request.
//	@Tags			Members
//	@Param			hubId			path	string	true	"Hub ID"
//	@Param			membershipId	path	string	true	"Membership ID"
//	@Success		204
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/members/{membershipId} [delete].
func (h *MembersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Memberships.Remove(ctx, r.PathValue("hubId"), r.PathValue("membershipId"), *principalFrom(ctx)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

