package portalsdk

import (
	"encoding/json"
	"time"
)

// ============================================================================
// Access
// ============================================================================

const (
	AccessFullAccess    = "full_access"
	AccessProposalOnly  = "proposal_only"
	AccessDocumentsOnly = "documents_only"
	AccessViewOnly      = "view_only"
)

// PermissionSet mirrors the server's permission flags.
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

// Principal is the caller as the portal sees it.
type Principal struct {
	ID          string `json:"id" example:"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZA"`
	Email       string `json:"email" example:"sarah@acme.com"`
	DisplayName string `json:"displayName" example:"Sarah Connor"`
	Role        string `json:"role" example:"client" enums:"staff,client"`
	Domain      string `json:"domain" example:"acme.com"`
}

// ============================================================================
// Hubs and memberships
// ============================================================================

type Hub struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"companyName" example:"Acme Corp"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	ClientDomain string    `json:"clientDomain" example:"acme.com"`
	Status       string    `json:"status" enums:"draft,active,won,lost"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HubAccess is a hub together with what the caller may do in it.
type HubAccess struct {
	Hub         Hub           `json:"hub"`
	AccessLevel string        `json:"accessLevel"`
	Permissions PermissionSet `json:"permissions"`
}

type Membership struct {
	ID           string        `json:"id"`
	HubID        string        `json:"hubId"`
	UserID       string        `json:"userId"`
	Email        string        `json:"email"`
	DisplayName  string        `json:"displayName"`
	Role         string        `json:"role"`
	AccessLevel  string        `json:"accessLevel"`
	Permissions  PermissionSet `json:"permissions"`
	InvitedBy    string        `json:"invitedBy,omitempty"`
	JoinedAt     time.Time     `json:"joinedAt"`
	LastActiveAt *time.Time    `json:"lastActiveAt,omitempty"`
}

// MeResponse is returned from GET /v1/me.
type MeResponse struct {
	Principal Principal   `json:"principal"`
	Hubs      []HubAccess `json:"hubs"`
}

type CreateHubRequest struct {
	CompanyName  string `json:"companyName" example:"Acme Corp"`
	ContactName  string `json:"contactName,omitempty" example:"Sarah Connor"`
	ContactEmail string `json:"contactEmail,omitempty" example:"sarah@acme.com"`
	ClientDomain string `json:"clientDomain" example:"acme.com"`
}

type UpdateHubStatusRequest struct {
	Status string `json:"status" enums:"draft,active,won,lost"`
}

type UpdateMembershipRequest struct {
	AccessLevel string `json:"accessLevel" enums:"full_access,proposal_only,documents_only,view_only"`
}

// ============================================================================
// Invites and share links
// ============================================================================

type Invite struct {
	ID          string     `json:"id"`
	HubID       string     `json:"hubId"`
	Email       string     `json:"email"`
	AccessLevel string     `json:"accessLevel"`
	InvitedBy   string     `json:"invitedBy"`
	Message     string     `json:"message,omitempty"`
	InvitedAt   time.Time  `json:"invitedAt"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	Status      string     `json:"status" enums:"pending,accepted,expired,revoked"`
	AcceptedBy  string     `json:"acceptedBy,omitempty"`
	AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
}

type CreateInviteRequest struct {
	Email       string `json:"email" example:"john@acme.com"`
	AccessLevel string `json:"accessLevel" enums:"full_access,proposal_only,documents_only,view_only"`
	Message     string `json:"message,omitempty"`
}

// CreateInviteResponse carries the only copy of the raw invite token.
type CreateInviteResponse struct {
	Invite Invite `json:"invite"`
	Token  string `json:"token"`
}

// RedeemRequest redeems an invite or a share link token.
type RedeemRequest struct {
	Token string `json:"token"`
}

type RedeemInviteResponse struct {
	HubID        string `json:"hubId"`
	HubName      string `json:"hubName"`
	AccessLevel  string `json:"accessLevel"`
	MembershipID string `json:"membershipId"`
}

type ShareLink struct {
	ID          string     `json:"id"`
	HubID       string     `json:"hubId"`
	AccessLevel string     `json:"accessLevel"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	MaxUses     *int       `json:"maxUses,omitempty"`
	UseCount    int        `json:"useCount"`
	IsActive    bool       `json:"isActive"`
}

type CreateShareLinkRequest struct {
	AccessLevel   string `json:"accessLevel" enums:"full_access,proposal_only,documents_only,view_only"`
	ExpiresInDays *int   `json:"expiresInDays,omitempty" example:"14"`
	MaxUses       *int   `json:"maxUses,omitempty" example:"10"`
}

type CreateShareLinkResponse struct {
	ShareLink ShareLink `json:"shareLink"`
	Token     string    `json:"token"`
}

// ============================================================================
// Engagement events
// ============================================================================

// LogEventRequest reports one engagement event. Metadata must match the
// schema of EventType exactly.
type LogEventRequest struct {
	EventType string          `json:"eventType" example:"document.viewed"`
	Metadata  json.RawMessage `json:"metadata" swaggertype:"object"`
}

type ActivityEvent struct {
	ID        string          `json:"id"`
	Seq       int64           `json:"seq"`
	EventType string          `json:"eventType"`
	HubID     string          `json:"hubId"`
	UserID    string          `json:"userId"`
	UserName  string          `json:"userName"`
	UserEmail string          `json:"userEmail"`
	Timestamp time.Time       `json:"timestamp"`
	Metadata  json.RawMessage `json:"metadata" swaggertype:"object"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int   `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	// Snapshot is the stream position the page was read at. Send it back
	// as EventQuery.Snapshot when requesting later pages.
	Snapshot   int64 `json:"snapshot,omitempty"`
}

// EventPage is one page of GET /v1/hubs/{hubId}/events.
type EventPage struct {
	Items      []ActivityEvent `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// EventQuery filters GET /v1/hubs/{hubId}/events.
type EventQuery struct {
	Page       int
	PageSize   int
	EventTypes []string
	UserID     string
	Since      *time.Time
	Until      *time.Time
	// Snapshot must carry the first page's Pagination.Snapshot when paging.
	// Left zero, every page is read against the live stream and events
	// written between requests shift items across pages.
	Snapshot   int64
}

type EventSummary struct {
	HubID  string         `json:"hubId"`
	Since  time.Time      `json:"since"`
	Total  int            `json:"total"`
	ByType map[string]int `json:"byType"`
}

// ============================================================================
// Navigation and health
// ============================================================================

// NavigationView is what a navigation route renders once the guard lets the
// caller through, or the access denied view when it does not.
type NavigationView struct {
	View        string         `json:"view" enums:"staff_hub,portal,access_denied"`
	Message     string         `json:"message,omitempty"`
	Hub         *Hub           `json:"hub,omitempty"`
	Section     string         `json:"section,omitempty"`
	Permissions *PermissionSet `json:"permissions,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Identity string `json:"identity"`
	Cache    string `json:"cache,omitempty"`
}
