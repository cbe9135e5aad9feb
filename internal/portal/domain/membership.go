package domain

import "time"

// Membership grants one principal access to one hub. Permissions is a
// snapshot of PermissionsFor(AccessLevel, Role) and is rewritten whenever
// AccessLevel changes.
type Membership struct {
	ID           string        `json:"id"`
	HubID        string        `json:"hubId"`
	UserID       string        `json:"userId"`
	Email        string        `json:"email"`
	DisplayName  string        `json:"displayName"`
	Role         Role          `json:"role"`
	AccessLevel  AccessLevel   `json:"accessLevel"`
	Permissions  PermissionSet `json:"permissions"`
	InvitedBy    string        `json:"invitedBy,omitempty"`
	JoinedAt     time.Time     `json:"joinedAt"`
	LastActiveAt *time.Time    `json:"lastActiveAt,omitempty"`
}

// NewMembership builds a membership for principal with its permission
// snapshot filled in.
func NewMembership(id, hubID string, p Principal, level AccessLevel, invitedBy string, now time.Time) (Membership, error) {
	perms, err := PermissionsFor(level, p.Role)
	if err != nil {
		return Membership{}, err
	}
	return Membership{
		ID:          id,
		HubID:       hubID,
		UserID:      p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Role:        p.Role,
		AccessLevel: level,
		Permissions: perms,
		InvitedBy:   invitedBy,
		JoinedAt:    now,
	}, nil
}

// WithAccessLevel returns m moved to level with a recomputed snapshot.
func (m Membership) WithAccessLevel(level AccessLevel) (Membership, error) {
	perms, err := PermissionsFor(level, m.Role)
	if err != nil {
		return Membership{}, err
	}
	m.AccessLevel = level
	m.Permissions = perms
	return m, nil
}
