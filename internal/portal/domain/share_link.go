package domain

import "time"

// ShareLink is a reusable token granting a fixed level to whoever redeems
// it, optionally capped by expiry and use count. Not bound to an email.
type ShareLink struct {
	ID          string      `json:"id"`
	HubID       string      `json:"hubId"`
	TokenHash   string      `json:"-"`
	AccessLevel AccessLevel `json:"accessLevel"`
	CreatedBy   string      `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	ExpiresAt   *time.Time  `json:"expiresAt,omitempty"`
	MaxUses     *int        `json:"maxUses,omitempty"`
	UseCount    int         `json:"useCount"`
	IsActive    bool        `json:"isActive"`
}

type ShareLinkState string

const (
	ShareLinkUsable    ShareLinkState = "usable"
	ShareLinkInactive  ShareLinkState = "inactive"
	ShareLinkExpired   ShareLinkState = "expired"
	ShareLinkExhausted ShareLinkState = "exhausted"
)

// State classifies the link at now. A link that switched itself off on
// reaching MaxUses reports exhausted rather than inactive.
func (l ShareLink) State(now time.Time) ShareLinkState {
	switch {
	case !l.IsActive && !l.exhausted():
		return ShareLinkInactive
	case l.ExpiresAt != nil && !now.Before(*l.ExpiresAt):
		return ShareLinkExpired
	case l.exhausted():
		return ShareLinkExhausted
	default:
		return ShareLinkUsable
	}
}

func (l ShareLink) exhausted() bool {
	return l.MaxUses != nil && l.UseCount >= *l.MaxUses
}
