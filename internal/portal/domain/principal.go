package domain

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidEmail = errors.New("invalid email address")
)

type Role string

const (
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStaff, RoleClient:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

// Principal is the authenticated actor for one session. It is passed
// explicitly to every operation rather than read from ambient state.
type Principal struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
	Domain      string `json:"domain"`
}

// NewPrincipal builds a Principal, deriving Domain from email.
func NewPrincipal(id, email, displayName string, role Role) Principal {
	email = strings.ToLower(strings.TrimSpace(email))
	return Principal{
		ID:          id,
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		Domain:      EmailDomain(email),
	}
}

func (p Principal) IsStaff() bool { return p.Role == RoleStaff }

// EmailDomain returns the lower-cased domain part of email, or "" if email
// has no domain.
func EmailDomain(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// NormalizeEmail validates a bare address (no display name) and lower-cases it.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	if EmailDomain(addr.Address) == "" {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}
