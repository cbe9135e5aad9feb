package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it.
// Repositories are reached through accessor methods so a Tx hands out
// repositories bound to the transaction and nothing else.
type Store interface {
	Hubs() Hubs
	Memberships() Memberships
	Invites() Invites
	ShareLinks() ShareLinks
	Events() Events

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. fn must use the repositories of the tx it is
	// handed, not those of the outer Store.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Hubs interface {
	CreateHub(ctx context.Context, h domain.Hub) error
	GetHub(ctx context.Context, id string) (domain.Hub, error)

	// ListHubs returns every hub, newest first.
	ListHubs(ctx context.Context) ([]domain.Hub, error)

	UpdateHubStatus(ctx context.Context, id string, status domain.HubStatus, now time.Time) error
}

type Memberships interface {
	// UpsertMembership inserts m, or when (hub_id, user_id) already exists
	// overwrites its level, permission snapshot and profile fields. The
	// stored row is returned; its ID is the original one on conflict.
	UpsertMembership(ctx context.Context, m domain.Membership) (domain.Membership, error)

	GetMembership(ctx context.Context, hubID, userID string) (domain.Membership, error)
	GetMembershipByID(ctx context.Context, hubID, membershipID string) (domain.Membership, error)

	// ListMemberships returns a hub's members in join order.
	ListMemberships(ctx context.Context, hubID string) ([]domain.Membership, error)

	// ListMembershipsByUser returns every membership a user holds.
	ListMembershipsByUser(ctx context.Context, userID string) ([]domain.Membership, error)

	// UpdateAccessLevel overwrites level and snapshot together.
	UpdateAccessLevel(
		ctx context.Context,
		hubID, membershipID string,
		level domain.AccessLevel,
		perms domain.PermissionSet,
	) error

	DeleteMembership(ctx context.Context, hubID, membershipID string) error

	// TouchMembership bumps last_active_at.
	TouchMembership(ctx context.Context, hubID, userID string, now time.Time) error
}

type Invites interface {
	CreateInvite(ctx context.Context, inv domain.Invite) error
	GetInvite(ctx context.Context, hubID, inviteID string) (domain.Invite, error)
	GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)
	ListInvites(ctx context.Context, hubID string) ([]domain.Invite, error)

	// RevokePendingInvites revokes every pending invite for (hub, email) and
	// returns how many were superseded.
	RevokePendingInvites(ctx context.Context, hubID, email string) (int64, error)

	// RevokeInvite flips a pending invite to revoked. Returns false when the
	// invite was already terminal.
	RevokeInvite(ctx context.Context, hubID, inviteID string) (bool, error)

	// AcceptInvite is a compare-and-swap: pending and unexpired at now
	// becomes accepted. Returns false when another caller won or the invite
	// left the pending state.
	AcceptInvite(ctx context.Context, inviteID, userID string, now time.Time) (bool, error)

	// ExpireInvite flips a pending invite to expired.
	ExpireInvite(ctx context.Context, inviteID string) error
}

type ShareLinks interface {
	CreateShareLink(ctx context.Context, l domain.ShareLink) error
	GetShareLink(ctx context.Context, hubID, linkID string) (domain.ShareLink, error)
	GetShareLinkByTokenHash(ctx context.Context, hash string) (domain.ShareLink, error)
	ListShareLinks(ctx context.Context, hubID string) ([]domain.ShareLink, error)

	// ConsumeShareLinkUse is a compare-and-increment on use_count, guarded
	// by active, expiry and the max_uses cap. The link deactivates itself
	// when the increment reaches max_uses. Returns false when no use was
	// available.
	ConsumeShareLinkUse(ctx context.Context, linkID string, now time.Time) (bool, error)

	DeactivateShareLink(ctx context.Context, hubID, linkID string) error

	// RecordRedemption notes that userID redeemed linkID. Returns
	// ErrAlreadyExists on a repeat.
	RecordRedemption(ctx context.Context, linkID, userID string, now time.Time) error
	HasRedeemed(ctx context.Context, linkID, userID string) (bool, error)
}

// EventFilter selects events for one hub. Snapshot bounds the result to
// rows with seq <= Snapshot so pages stay stable under concurrent writes;
// zero means unbounded.
type EventFilter struct {
	HubID      string
	Snapshot   int64
	EventTypes []domain.EventType
	UserID     string
	Since      *time.Time
	Until      *time.Time
	Offset     int
	Limit      int
}

type Events interface {
	// AppendEvent writes e and returns its insertion sequence.
	AppendEvent(ctx context.Context, e domain.ActivityEvent) (int64, error)

	// ListEvents returns matching events ordered by timestamp then seq,
	// newest first.
	ListEvents(ctx context.Context, f EventFilter) ([]domain.ActivityEvent, error)
	CountEvents(ctx context.Context, f EventFilter) (int, error)

	// MaxEventSeq returns the highest seq recorded for hubID, or 0.
	MaxEventSeq(ctx context.Context, hubID string) (int64, error)

	// CountEventsByType groups a hub's events at or after since.
	CountEventsByType(ctx context.Context, hubID string, since time.Time) (map[domain.EventType]int, error)
}
