package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
)

type invitesRepo struct {
	q DBTX
}

const inviteColumns = `id, hub_id, email, access_level, invited_by, message, invited_at, expires_at, token_hash, status, accepted_by, accepted_at`

func scanInvite(s scanner) (domain.Invite, error) {
	var (
		inv                  domain.Invite
		level, status        string
		invitedAt, expiresAt int64
		acceptedBy           sql.NullString
		acceptedAt           sql.NullInt64
	)
	err := s.Scan(
		&inv.ID, &inv.HubID, &inv.Email, &level, &inv.InvitedBy, &inv.Message,
		&invitedAt, &expiresAt, &inv.TokenHash, &status, &acceptedBy, &acceptedAt,
	)
	if err != nil {
		return domain.Invite{}, err
	}
	inv.AccessLevel = domain.AccessLevel(level)
	inv.Status = domain.InviteStatus(status)
	inv.InvitedAt = fromNanos(invitedAt)
	inv.ExpiresAt = fromNanos(expiresAt)
	inv.AcceptedBy = mapNullString(acceptedBy)
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	return inv, nil
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO invites (`+inviteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.HubID, inv.Email, string(inv.AccessLevel), inv.InvitedBy, inv.Message,
		toNanos(inv.InvitedAt), toNanos(inv.ExpiresAt), inv.TokenHash, string(inv.Status),
		mapStringNull(inv.AcceptedBy), mapOptionalTime(inv.AcceptedAt),
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInvite(ctx context.Context, hubID, inviteID string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE hub_id = ? AND id = ?`,
		hubID, inviteID,
	)
	inv, err := scanInvite(row)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+inviteColumns+` FROM invites WHERE token_hash = ?`, hash)
	inv, err := scanInvite(row)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) ListInvites(ctx context.Context, hubID string) ([]domain.Invite, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE hub_id = ? ORDER BY invited_at DESC, id DESC`,
		hubID,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanInvite)
}

func (r *invitesRepo) RevokePendingInvites(ctx context.Context, hubID, email string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invites SET status = 'revoked' WHERE hub_id = ? AND email = ? AND status = 'pending'`,
		hubID, email,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *invitesRepo) RevokeInvite(ctx context.Context, hubID, inviteID string) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invites SET status = 'revoked' WHERE hub_id = ? AND id = ? AND status = 'pending'`,
		hubID, inviteID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *invitesRepo) AcceptInvite(ctx context.Context, inviteID, userID string, now time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
UPDATE invites
SET status = 'accepted', accepted_by = ?, accepted_at = ?
WHERE id = ? AND status = 'pending' AND expires_at > ?`,
		userID, toNanos(now), inviteID, toNanos(now),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *invitesRepo) ExpireInvite(ctx context.Context, inviteID string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE invites SET status = 'expired' WHERE id = ? AND status = 'pending'`,
		inviteID,
	)
	return err
}
