package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidAccessLevel = errors.New("invalid access level")

// AccessLevel is a hub-scoped grant. Levels are ordered by scope, not by
// containment: proposal_only and documents_only are disjoint.
type AccessLevel string

const (
	AccessFullAccess    AccessLevel = "full_access"
	AccessProposalOnly  AccessLevel = "proposal_only"
	AccessDocumentsOnly AccessLevel = "documents_only"
	AccessViewOnly      AccessLevel = "view_only"
)

// AccessLevels lists every level.
var AccessLevels = []AccessLevel{
	AccessFullAccess,
	AccessProposalOnly,
	AccessDocumentsOnly,
	AccessViewOnly,
}

func ParseAccessLevel(s string) (AccessLevel, error) {
	for _, l := range AccessLevels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAccessLevel, s)
}

// PermissionSet is the expansion of an AccessLevel for a role.
type PermissionSet struct {
	CanViewProposal      bool `json:"canViewProposal"`
	CanViewDocuments     bool `json:"canViewDocuments"`
	CanViewVideos        bool `json:"canViewVideos"`
	CanViewMessages      bool `json:"canViewMessages"`
	CanViewMeetings      bool `json:"canViewMeetings"`
	CanViewQuestionnaire bool `json:"canViewQuestionnaire"`
	CanInviteMembers     bool `json:"canInviteMembers"`
	CanManageAccess      bool `json:"canManageAccess"`
}

// FullPermissions is what every staff principal resolves to.
var FullPermissions = PermissionSet{
	CanViewProposal:      true,
	CanViewDocuments:     true,
	CanViewVideos:        true,
	CanViewMessages:      true,
	CanViewMeetings:      true,
	CanViewQuestionnaire: true,
	CanInviteMembers:     true,
	CanManageAccess:      true,
}

var clientMatrix = map[AccessLevel]PermissionSet{
	AccessFullAccess: {
		CanViewProposal:      true,
		CanViewDocuments:     true,
		CanViewVideos:        true,
		CanViewMessages:      true,
		CanViewMeetings:      true,
		CanViewQuestionnaire: true,
	},
	AccessProposalOnly: {
		CanViewProposal: true,
		CanViewVideos:   true,
	},
	AccessDocumentsOnly: {
		CanViewDocuments: true,
	},
	AccessViewOnly: {
		CanViewProposal:  true,
		CanViewDocuments: true,
		CanViewVideos:    true,
		CanViewMeetings:  true,
	},
}

// PermissionsFor expands level for role. Staff always get FullPermissions
// whatever the stored level. An unknown level for a client yields
// ErrInvalidAccessLevel and the empty set.
func PermissionsFor(level AccessLevel, role Role) (PermissionSet, error) {
	if role == RoleStaff {
		return FullPermissions, nil
	}
	if role != RoleClient {
		return PermissionSet{}, ErrInvalidRole
	}
	ps, ok := clientMatrix[level]
	if !ok {
		return PermissionSet{}, fmt.Errorf("%w: %q", ErrInvalidAccessLevel, level)
	}
	return ps, nil
}

// MustPermissionsFor is PermissionsFor for values that were already
// validated. It panics on an unknown level or role.
func MustPermissionsFor(level AccessLevel, role Role) PermissionSet {
	ps, err := PermissionsFor(level, role)
	if err != nil {
		panic(err)
	}
	return ps
}

// Permission names a single flag of a PermissionSet.
type Permission string

const (
	PermissionNone              Permission = ""
	PermissionViewProposal      Permission = "canViewProposal"
	PermissionViewDocuments     Permission = "canViewDocuments"
	PermissionViewVideos        Permission = "canViewVideos"
	PermissionViewMessages      Permission = "canViewMessages"
	PermissionViewMeetings      Permission = "canViewMeetings"
	PermissionViewQuestionnaire Permission = "canViewQuestionnaire"
	PermissionInviteMembers     Permission = "canInviteMembers"
	PermissionManageAccess      Permission = "canManageAccess"
)

// Has reports whether p is granted. PermissionNone is always granted and an
// unknown permission never is.
func (ps PermissionSet) Has(p Permission) bool {
	switch p {
	case PermissionNone:
		return true
	case PermissionViewProposal:
		return ps.CanViewProposal
	case PermissionViewDocuments:
		return ps.CanViewDocuments
	case PermissionViewVideos:
		return ps.CanViewVideos
	case PermissionViewMessages:
		return ps.CanViewMessages
	case PermissionViewMeetings:
		return ps.CanViewMeetings
	case PermissionViewQuestionnaire:
		return ps.CanViewQuestionnaire
	case PermissionInviteMembers:
		return ps.CanInviteMembers
	case PermissionManageAccess:
		return ps.CanManageAccess
	default:
		return false
	}
}

// Covers reports whether every permission granted by other is also granted
// by ps.
func (ps PermissionSet) Covers(other PermissionSet) bool {
	implies := func(have, want bool) bool { return have || !want }
	return implies(ps.CanViewProposal, other.CanViewProposal) &&
		implies(ps.CanViewDocuments, other.CanViewDocuments) &&
		implies(ps.CanViewVideos, other.CanViewVideos) &&
		implies(ps.CanViewMessages, other.CanViewMessages) &&
		implies(ps.CanViewMeetings, other.CanViewMeetings) &&
		implies(ps.CanViewQuestionnaire, other.CanViewQuestionnaire) &&
		implies(ps.CanInviteMembers, other.CanInviteMembers) &&
		implies(ps.CanManageAccess, other.CanManageAccess)
}

// SectionPermission maps a portal section to the permission guarding it.
// Unknown sections map to ok=false.
func SectionPermission(section string) (Permission, bool) {
	switch section {
	case "", "overview":
		return PermissionNone, true
	case "proposal":
		return PermissionViewProposal, true
	case "documents":
		return PermissionViewDocuments, true
	case "videos":
		return PermissionViewVideos, true
	case "messages":
		return PermissionViewMessages, true
	case "meetings":
		return PermissionViewMeetings, true
	case "questionnaire":
		return PermissionViewQuestionnaire, true
	default:
		return PermissionNone, false
	}
}
