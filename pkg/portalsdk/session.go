package portalsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Session is a Client bound to one session JWT.
type Session struct {
	client *Client
	token  string
}

func (s *Session) do(ctx context.Context, method, path string, body, out any, want int) error {
	return s.client.do(ctx, s.token, method, path, body, out, want)
}

func hubPath(hubID string, parts ...string) string {
	p := "/v1/hubs/" + url.PathEscape(hubID)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

// Me returns the caller and every hub they can reach.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := s.do(ctx, http.MethodGet, "/v1/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Hubs
// ============================================================================

func (s *Session) CreateHub(ctx context.Context, req CreateHubRequest) (*Hub, error) {
	var out Hub
	if err := s.do(ctx, http.MethodPost, "/v1/hubs", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListHubs(ctx context.Context) ([]Hub, error) {
	var out struct {
		Items []Hub `json:"items"`
	}
	if err := s.do(ctx, http.MethodGet, "/v1/hubs", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (s *Session) GetHub(ctx context.Context, hubID string) (*HubAccess, error) {
	var out HubAccess
	if err := s.do(ctx, http.MethodGet, hubPath(hubID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateHubStatus(ctx context.Context, hubID, status string) (*Hub, error) {
	var out Hub
	req := UpdateHubStatusRequest{Status: status}
	if err := s.do(ctx, http.MethodPatch, hubPath(hubID, "status"), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Members
// ============================================================================

func (s *Session) ListMembers(ctx context.Context, hubID string) ([]Membership, error) {
	var out struct {
		Items []Membership `json:"items"`
	}
	if err := s.do(ctx, http.MethodGet, hubPath(hubID, "members"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// GetMember returns userID's membership in the hub.
func (s *Session) GetMember(ctx context.Context, hubID, userID string) (*Membership, error) {
	var out Membership
	if err := s.do(ctx, http.MethodGet, hubPath(hubID, "members", userID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateMember(ctx context.Context, hubID, membershipID, level string) (*Membership, error) {
	var out Membership
	req := UpdateMembershipRequest{AccessLevel: level}
	if err := s.do(ctx, http.MethodPatch, hubPath(hubID, "members", membershipID), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RemoveMember(ctx context.Context, hubID, membershipID string) error {
	return s.do(ctx, http.MethodDelete, hubPath(hubID, "members", membershipID), nil, nil, http.StatusNoContent)
}

// ============================================================================
// Invites
// ============================================================================

// CreateInvite invites an email into the hub. The returned token is the only
// copy; deliver it to the invitee.
func (s *Session) CreateInvite(ctx context.Context, hubID string, req CreateInviteRequest) (*CreateInviteResponse, error) {
	var out CreateInviteResponse
	if err := s.do(ctx, http.MethodPost, hubPath(hubID, "invites"), req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListInvites(ctx context.Context, hubID string) ([]Invite, error) {
	var out struct {
		Items []Invite `json:"items"`
	}
	if err := s.do(ctx, http.MethodGet, hubPath(hubID, "invites"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (s *Session) RevokeInvite(ctx context.Context, hubID, inviteID string) error {
	return s.do(ctx, http.MethodDelete, hubPath(hubID, "invites", inviteID), nil, nil, http.StatusNoContent)
}

func (s *Session) RedeemInvite(ctx context.Context, token string) (*RedeemInviteResponse, error) {
	var out RedeemInviteResponse
	if err := s.do(ctx, http.MethodPost, "/v1/invites/redeem", RedeemRequest{Token: token}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Share links
// ============================================================================

func (s *Session) CreateShareLink(ctx context.Context, hubID string, req CreateShareLinkRequest) (*CreateShareLinkResponse, error) {
	var out CreateShareLinkResponse
	if err := s.do(ctx, http.MethodPost, hubPath(hubID, "share-links"), req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListShareLinks(ctx context.Context, hubID string) ([]ShareLink, error) {
	var out struct {
		Items []ShareLink `json:"items"`
	}
	if err := s.do(ctx, http.MethodGet, hubPath(hubID, "share-links"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (s *Session) DeactivateShareLink(ctx context.Context, hubID, linkID string) error {
	return s.do(ctx, http.MethodDelete, hubPath(hubID, "share-links", linkID), nil, nil, http.StatusNoContent)
}

func (s *Session) RedeemShareLink(ctx context.Context, token string) (*Membership, error) {
	var out Membership
	if err := s.do(ctx, http.MethodPost, "/v1/share-links/redeem", RedeemRequest{Token: token}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Events
// ============================================================================

// LogEvent reports an engagement event. The server accepts it before it is
// persisted.
func (s *Session) LogEvent(ctx context.Context, hubID string, req LogEventRequest) error {
	return s.do(ctx, http.MethodPost, hubPath(hubID, "events"), req, nil, http.StatusAccepted)
}

func (s *Session) GetEvents(ctx context.Context, hubID string, q EventQuery) (*EventPage, error) {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if len(q.EventTypes) > 0 {
		v.Set("eventTypes", strings.Join(q.EventTypes, ","))
	}
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}
	if q.Since != nil {
		v.Set("since", q.Since.UTC().Format(time.RFC3339Nano))
	}
	if q.Until != nil {
		v.Set("until", q.Until.UTC().Format(time.RFC3339Nano))
	}
	if q.Snapshot > 0 {
		v.Set("snapshot", strconv.FormatInt(q.Snapshot, 10))
	}

	path := hubPath(hubID, "events")
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var out EventPage
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetEventSummary(ctx context.Context, hubID string, since *time.Time) (*EventSummary, error) {
	path := hubPath(hubID, "events", "summary")
	if since != nil {
		path += "?since=" + url.QueryEscape(since.UTC().Format(time.RFC3339Nano))
	}
	var out EventSummary
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Navigation
// ============================================================================

// NavigationResult is a navigation route outcome. Location is set when the
// server redirected.
type NavigationResult struct {
	StatusCode int
	Location   string
	View       *NavigationView
}

// Navigate requests a navigation path such as /portal/{hubId}/documents
// without following redirects.
func (s *Session) Navigate(ctx context.Context, path string) (*NavigationResult, error) {
	return s.client.navigate(ctx, s.token, path)
}

// Navigate requests a navigation path anonymously.
func (c *Client) Navigate(ctx context.Context, path string) (*NavigationResult, error) {
	return c.navigate(ctx, "", path)
}
