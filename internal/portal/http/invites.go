package http

import (
	"net/http"

	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/pkg/httpx"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
)

type InvitesHandler struct {
	Invites *service.InviteService
}

// HandleCreate godoc
//
//	@Summary		Create Invite
//	@Description	Invite an email address into the hub at an access level. Staff may invite the hub's client domain
//	@Description	(and the staff domain); clients only their own domain, at levels within their own permissions.
//	@Description	A pending invite for the same email is revoked. The token is returned once and never stored.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			hubId	path		string							true	"Hub ID"
//	@Param			request	body		portalsdk.CreateInviteRequest	true	"Invite request"
//	@Success		201		{object}	portalsdk.CreateInviteResponse	"invite, token"
//	@Failure		400		{object}	httpx.ErrorResponse				"VALIDATION_ERROR, details.reason=domain_not_allowed"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/invites [post].
func (h *InvitesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req portalsdk.CreateInviteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	inv, token, err := h.Invites.CreateInvite(ctx, r.PathValue("hubId"), *principalFrom(ctx), req.Email, req.AccessLevel, req.Message)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, portalsdk.CreateInviteResponse{
		Invite: toInvite(inv),
		Token:  token,
	})
}

// HandleList godoc
//
//	@Summary		List Invites
//	@Description	List the hub's invites in every status. Staff only.
//	@Tags			Invitations
//	@Produce		json
//	@Param			hubId	path		string	true	"Hub ID"
//	@Success		200		{object}	httpx.ListResponse[portalsdk.Invite]
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/invites [get].
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invites, err := h.Invites.ListInvites(ctx, r.PathValue("hubId"), *principalFrom(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeList(w, mapSlice(invites, toInvite))
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invite
//	@Description	Revoke a pending invite. Staff may revoke any invite, clients only their own. Revoking a used invite is a no-op.
//	@Tags			Invitations
//	@Param			hubId		path	string	true	"Hub ID"
//	@Param			inviteId	path	string	true	"Invite ID"
//	@Success		204
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/hubs/{hubId}/invites/{inviteId} [delete].
func (h *InvitesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Invites.RevokeInvite(ctx, r.PathValue("hubId"), r.PathValue("inviteId"), *principalFrom(ctx)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRedeem godoc
//
//	@Summary		Redeem Invite
//	@Description	Accept an invite addressed to the caller's email. Exactly one of any number of concurrent redemptions succeeds.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.RedeemRequest				true	"Invite token"
//	@Success		200		{object}	portalsdk.RedeemInviteResponse		"hubId, hubName, accessLevel, membershipId"
//	@Failure		403		{object}	httpx.ErrorResponse					"invite addressed to another email"
//	@Failure		404		{object}	httpx.ErrorResponse					"details.reason=invite_not_found"
//	@Failure		409		{object}	httpx.ErrorResponse					"details.reason=invite_expired|invite_already_used|retry"
//	@Failure		429		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invites/redeem [post].
func (h *InvitesHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req portalsdk.RedeemRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	res, err := h.Invites.RedeemInvite(ctx, req.Token, *principalFrom(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.RedeemInviteResponse{
		HubID:        res.HubID,
		HubName:      res.HubName,
		AccessLevel:  string(res.AccessLevel),
		MembershipID: res.MembershipID,
	})
}
