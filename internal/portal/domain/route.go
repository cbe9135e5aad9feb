package domain

// Area is the audience a route belongs to.
type Area string

const (
	AreaAny    Area = "any"
	AreaStaff  Area = "staff"
	AreaClient Area = "client"
)

// Route describes an entry point for the route guard. HubID is empty for
// routes that are not hub scoped.
type Route struct {
	Area     Area
	HubID    string
	Requires Permission
}

// DecisionState is terminal: every evaluation ends authorized or denied.
// A request without a session is denied with ReasonUnauthenticated.
type DecisionState string

const (
	DecisionAuthorized DecisionState = "authorized"
	DecisionDenied     DecisionState = "denied"
)

type DenyReason string

const (
	ReasonNone              DenyReason = ""
	ReasonUnauthenticated   DenyReason = "unauthenticated"
	ReasonRoleMismatch      DenyReason = "role_mismatch"
	ReasonNoAccess          DenyReason = "no_access"
	ReasonMissingPermission DenyReason = "missing_permission"
)

// AccessDeniedMessage is the only message a denied principal is shown, so
// a missing hub and a hub without membership look the same.
const AccessDeniedMessage = "Access Denied"

// Decision is the outcome of one route guard evaluation. Redirect is set
// when the caller should navigate elsewhere instead of rendering Message.
type Decision struct {
	State    DecisionState `json:"state"`
	Reason   DenyReason    `json:"reason,omitempty"`
	Redirect string        `json:"redirect,omitempty"`
	Message  string        `json:"message,omitempty"`
	// Permissions is the effective set on a hub-scoped authorization.
	Permissions *PermissionSet `json:"permissions,omitempty"`
}

func (d Decision) Authorized() bool { return d.State == DecisionAuthorized }
