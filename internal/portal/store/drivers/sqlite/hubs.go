package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
)

type hubsRepo struct {
	q DBTX
}

const hubColumns = `id, company_name, contact_name, contact_email, client_domain, status, created_by, created_at, updated_at`

func scanHub(s scanner) (domain.Hub, error) {
	var (
		h                    domain.Hub
		status               string
		createdAt, updatedAt int64
	)
	err := s.Scan(
		&h.ID, &h.CompanyName, &h.ContactName, &h.ContactEmail, &h.ClientDomain,
		&status, &h.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Hub{}, err
	}
	h.Status = domain.HubStatus(status)
	h.CreatedAt = fromNanos(createdAt)
	h.UpdatedAt = fromNanos(updatedAt)
	return h, nil
}

func (r *hubsRepo) CreateHub(ctx context.Context, h domain.Hub) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO hubs (`+hubColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.CompanyName, h.ContactName, h.ContactEmail, h.ClientDomain,
		string(h.Status), h.CreatedBy, toNanos(h.CreatedAt), toNanos(h.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *hubsRepo) GetHub(ctx context.Context, id string) (domain.Hub, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+hubColumns+` FROM hubs WHERE id = ?`, id)
	h, err := scanHub(row)
	if err != nil {
		return domain.Hub{}, mapNotFound(err)
	}
	return h, nil
}

func (r *hubsRepo) ListHubs(ctx context.Context) ([]domain.Hub, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+hubColumns+` FROM hubs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanHub)
}

func (r *hubsRepo) UpdateHubStatus(ctx context.Context, id string, status domain.HubStatus, now time.Time) error {
	return requireOne(r.q.ExecContext(ctx,
		`UPDATE hubs SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), toNanos(now), id,
	))
}
