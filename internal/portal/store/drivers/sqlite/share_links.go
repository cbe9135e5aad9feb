package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
)

type shareLinksRepo struct {
	q DBTX
}

const shareLinkColumns = `id, hub_id, token_hash, access_level, created_by, created_at, expires_at, max_uses, use_count, is_active`

func scanShareLink(s scanner) (domain.ShareLink, error) {
	var (
		l         domain.ShareLink
		level     string
		createdAt int64
		expiresAt sql.NullInt64
		maxUses   sql.NullInt64
	)
	err := s.Scan(
		&l.ID, &l.HubID, &l.TokenHash, &level, &l.CreatedBy, &createdAt,
		&expiresAt, &maxUses, &l.UseCount, &l.IsActive,
	)
	if err != nil {
		return domain.ShareLink{}, err
	}
	l.AccessLevel = domain.AccessLevel(level)
	l.CreatedAt = fromNanos(createdAt)
	l.ExpiresAt = mapNullTimePtr(expiresAt)
	l.MaxUses = mapNullIntPtr(maxUses)
	return l, nil
}

func (r *shareLinksRepo) CreateShareLink(ctx context.Context, l domain.ShareLink) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO share_links (`+shareLinkColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.HubID, l.TokenHash, string(l.AccessLevel), l.CreatedBy, toNanos(l.CreatedAt),
		mapOptionalTime(l.ExpiresAt), mapOptionalInt(l.MaxUses), l.UseCount, l.IsActive,
	)
	return mapConstraint(err)
}

func (r *shareLinksRepo) GetShareLink(ctx context.Context, hubID, linkID string) (domain.ShareLink, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+shareLinkColumns+` FROM share_links WHERE hub_id = ? AND id = ?`,
		hubID, linkID,
	)
	l, err := scanShareLink(row)
	if err != nil {
		return domain.ShareLink{}, mapNotFound(err)
	}
	return l, nil
}

func (r *shareLinksRepo) GetShareLinkByTokenHash(ctx context.Context, hash string) (domain.ShareLink, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+shareLinkColumns+` FROM share_links WHERE token_hash = ?`, hash)
	l, err := scanShareLink(row)
	if err != nil {
		return domain.ShareLink{}, mapNotFound(err)
	}
	return l, nil
}

func (r *shareLinksRepo) ListShareLinks(ctx context.Context, hubID string) ([]domain.ShareLink, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+shareLinkColumns+` FROM share_links WHERE hub_id = ? ORDER BY created_at DESC, id DESC`,
		hubID,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanShareLink)
}

func (r *shareLinksRepo) ConsumeShareLinkUse(ctx context.Context, linkID string, now time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
UPDATE share_links
SET use_count = use_count + 1,
    is_active = CASE WHEN max_uses IS NOT NULL AND use_count + 1 >= max_uses THEN 0 ELSE is_active END
WHERE id = ?
  AND is_active = 1
  AND (max_uses IS NULL OR use_count < max_uses)
  AND (expires_at IS NULL OR expires_at > ?)`,
		linkID, toNanos(now),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *shareLinksRepo) DeactivateShareLink(ctx context.Context, hubID, linkID string) error {
	return requireOne(r.q.ExecContext(ctx,
		`UPDATE share_links SET is_active = 0 WHERE hub_id = ? AND id = ?`,
		hubID, linkID,
	))
}

func (r *shareLinksRepo) RecordRedemption(ctx context.Context, linkID, userID string, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO share_link_redemptions (link_id, user_id, redeemed_at) VALUES (?, ?, ?)`,
		linkID, userID, toNanos(now),
	)
	return mapConstraint(err)
}

func (r *shareLinksRepo) HasRedeemed(ctx context.Context, linkID, userID string) (bool, error) {
	var one int
	err := r.q.QueryRowContext(ctx,
		`SELECT 1 FROM share_link_redemptions WHERE link_id = ? AND user_id = ?`,
		linkID, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
