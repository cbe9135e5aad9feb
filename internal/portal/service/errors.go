package service

import "errors"

// Business errors. The HTTP layer maps each to one error envelope code.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict, retry with fresh state")
	ErrDomainNotAllowed  = errors.New("email domain not allowed for this hub")
	ErrInviteNotFound    = errors.New("invite not found")
	ErrInviteExpired     = errors.New("invite has expired")
	ErrInviteAlreadyUsed = errors.New("invite has already been used")
	ErrLinkExpired       = errors.New("share link has expired")
	ErrLinkExhausted     = errors.New("share link has no uses left")
	ErrLinkInactive      = errors.New("share link is no longer active")
)

// FieldError is a validation failure tied to one input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Unwrap() error { return ErrValidation }

func invalidField(field, message string) error {
	return &FieldError{Field: field, Message: message}
}
