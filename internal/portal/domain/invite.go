package domain

import "time"

// InviteTTL is how long an invite stays redeemable.
const InviteTTL = 7 * 24 * time.Hour

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusExpired  InviteStatus = "expired"
	InviteStatusRevoked  InviteStatus = "revoked"
)

// Terminal reports whether no further transition is possible.
func (s InviteStatus) Terminal() bool { return s != InviteStatusPending }

// Invite is a single-use, email-bound grant into a hub. Only the token's
// fingerprint is stored.
type Invite struct {
	ID          string       `json:"id"`
	HubID       string       `json:"hubId"`
	Email       string       `json:"email"`
	AccessLevel AccessLevel  `json:"accessLevel"`
	InvitedBy   string       `json:"invitedBy"`
	Message     string       `json:"message,omitempty"`
	InvitedAt   time.Time    `json:"invitedAt"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	TokenHash   string       `json:"-"`
	Status      InviteStatus `json:"status"`
	AcceptedBy  string       `json:"acceptedBy,omitempty"`
	AcceptedAt  *time.Time   `json:"acceptedAt,omitempty"`
}

// Expired reports whether the invite window has elapsed at now, regardless
// of the stored status.
func (i Invite) Expired(now time.Time) bool { return !now.Before(i.ExpiresAt) }
