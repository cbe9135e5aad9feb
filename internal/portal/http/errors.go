package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/pkg/httpx"
	"github.com/aussiebroadwan/clienthub/pkg/portalsdk"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
)

func reason(r string) map[string]any { return map[string]any{"reason": r} }

// writeServiceError maps a service error onto the error envelope. Anything
// it does not recognise is logged and hidden behind INTERNAL_ERROR.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *service.FieldError
	var eventErr *domain.EventError

	switch {
	case errors.As(err, &fieldErr):
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeValidation, fieldErr.Error(),
			map[string]any{"field": fieldErr.Field})
	case errors.As(err, &eventErr):
		details := map[string]any{"eventType": string(eventErr.Type)}
		if eventErr.Field != "" {
			details["field"] = eventErr.Field
		}
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeValidation, eventErr.Error(), details)
	case errors.Is(err, domain.ErrInvalidEvent), errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeValidation, err.Error(), nil)
	case errors.Is(err, service.ErrDomainNotAllowed):
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeValidation,
			"Email domain is not allowed for this hub", reason(portalsdk.ReasonDomainNotAllowed))

	case errors.Is(err, service.ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthenticated, "Authentication required", nil)
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, httpx.CodeForbidden, domain.AccessDeniedMessage, nil)

	case errors.Is(err, service.ErrInviteNotFound):
		httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "Invite not found",
			reason(portalsdk.ReasonInviteNotFound))
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "Not found", nil)

	case errors.Is(err, service.ErrInviteExpired):
		httpx.WriteError(w, http.StatusConflict, httpx.CodeConflict, "Invite has expired",
			reason(portalsdk.ReasonInviteExpired))
	case errors.Is(err, service.ErrInviteAlreadyUsed):
		httpx.WriteError(w, http.StatusConflict, httpx.CodeConflict, "Invite has already been used",
			reason(portalsdk.ReasonInviteAlreadyUsed))
	case errors.Is(err, service.ErrLinkExpired):
		httpx.WriteError(w, http.StatusConflict, httpx.CodeConflict, "Share link has expired",
			reason(portalsdk.ReasonLinkExpired))
	case errors.Is(err, service.ErrLinkExhausted):
		httpx.WriteError(w, http.StatusConflict, httpx.CodeConflict, "Share link has no uses left",
			reason(portalsdk.ReasonLinkExhausted))
	case errors.Is(err, service.ErrLinkInactive):
		httpx.WriteError(w, http.StatusConflict, httpx.CodeConflict, "Share link is no longer active",
			reason(portalsdk.ReasonLinkInactive))
	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, httpx.CodeConflict, "Request conflicted with a concurrent change, retry",
			reason(portalsdk.ReasonRetry))

	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
	}
}

func writeBadBody(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusBadRequest, httpx.CodeValidation, "Invalid JSON body: "+err.Error(), nil)
}
