package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
)

type membershipsRepo struct {
	q DBTX
}

const membershipColumns = `id, hub_id, user_id, email, display_name, role, access_level, permissions, invited_by, joined_at, last_active_at`

func scanMembership(s scanner) (domain.Membership, error) {
	var (
		m            domain.Membership
		role, level  string
		perms        string
		joinedAt     int64
		lastActiveAt sql.NullInt64
	)
	err := s.Scan(
		&m.ID, &m.HubID, &m.UserID, &m.Email, &m.DisplayName,
		&role, &level, &perms, &m.InvitedBy, &joinedAt, &lastActiveAt,
	)
	if err != nil {
		return domain.Membership{}, err
	}
	if err := json.Unmarshal([]byte(perms), &m.Permissions); err != nil {
		return domain.Membership{}, fmt.Errorf("decode permissions for membership %s: %w", m.ID, err)
	}
	m.Role = domain.Role(role)
	m.AccessLevel = domain.AccessLevel(level)
	m.JoinedAt = fromNanos(joinedAt)
	m.LastActiveAt = mapNullTimePtr(lastActiveAt)
	return m, nil
}

func (r *membershipsRepo) UpsertMembership(ctx context.Context, m domain.Membership) (domain.Membership, error) {
	perms, err := json.Marshal(m.Permissions)
	if err != nil {
		return domain.Membership{}, err
	}

	row := r.q.QueryRowContext(ctx, `
INSERT INTO memberships (`+membershipColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (hub_id, user_id) DO UPDATE SET
    email        = excluded.email,
    display_name = excluded.display_name,
    role         = excluded.role,
    access_level = excluded.access_level,
    permissions  = excluded.permissions
RETURNING `+membershipColumns,
		m.ID, m.HubID, m.UserID, m.Email, m.DisplayName,
		string(m.Role), string(m.AccessLevel), string(perms), m.InvitedBy,
		toNanos(m.JoinedAt), mapOptionalTime(m.LastActiveAt),
	)
	return scanMembership(row)
}

func (r *membershipsRepo) GetMembership(ctx context.Context, hubID, userID string) (domain.Membership, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE hub_id = ? AND user_id = ?`,
		hubID, userID,
	)
	m, err := scanMembership(row)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) GetMembershipByID(ctx context.Context, hubID, membershipID string) (domain.Membership, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE hub_id = ? AND id = ?`,
		hubID, membershipID,
	)
	m, err := scanMembership(row)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) ListMemberships(ctx context.Context, hubID string) ([]domain.Membership, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE hub_id = ? ORDER BY joined_at, id`,
		hubID,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMembership)
}

func (r *membershipsRepo) ListMembershipsByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE user_id = ? ORDER BY joined_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMembership)
}

func (r *membershipsRepo) UpdateAccessLevel(
	ctx context.Context,
	hubID, membershipID string,
	level domain.AccessLevel,
	perms domain.PermissionSet,
) error {
	raw, err := json.Marshal(perms)
	if err != nil {
		return err
	}
	return requireOne(r.q.ExecContext(ctx,
		`UPDATE memberships SET access_level = ?, permissions = ? WHERE hub_id = ? AND id = ?`,
		string(level), string(raw), hubID, membershipID,
	))
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, hubID, membershipID string) error {
	return requireOne(r.q.ExecContext(ctx,
		`DELETE FROM memberships WHERE hub_id = ? AND id = ?`,
		hubID, membershipID,
	))
}

func (r *membershipsRepo) TouchMembership(ctx context.Context, hubID, userID string, now time.Time) error {
	return requireOne(r.q.ExecContext(ctx,
		`UPDATE memberships SET last_active_at = ? WHERE hub_id = ? AND user_id = ?`,
		toNanos(now), hubID, userID,
	))
}
