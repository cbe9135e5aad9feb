package portalsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope codes.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
)

// Values of details.reason on CONFLICT and VALIDATION_ERROR responses.
const (
	ReasonInviteExpired     = "invite_expired"
	ReasonInviteAlreadyUsed = "invite_already_used"
	ReasonInviteNotFound    = "invite_not_found"
	ReasonLinkExpired       = "link_expired"
	ReasonLinkExhausted     = "link_exhausted"
	ReasonLinkInactive      = "link_inactive"
	ReasonDomainNotAllowed  = "domain_not_allowed"
	ReasonRetry             = "retry"
)

// APIError is a decoded error envelope.
type APIError struct {
	StatusCode int            `json:"-"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Reason returns details.reason, or "".
func (e *APIError) Reason() string {
	r, _ := e.Details["reason"].(string)
	return r
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = CodeInternal
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
