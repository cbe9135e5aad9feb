package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/clienthub/internal/portal/domain"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
)

type eventsRepo struct {
	q DBTX
}

const eventColumns = `seq, id, event_type, hub_id, user_id, user_name, user_email, timestamp, metadata`

func scanEvent(s scanner) (domain.ActivityEvent, error) {
	var (
		e         domain.ActivityEvent
		eventType string
		ts        int64
		metadata  string
	)
	err := s.Scan(&e.Seq, &e.ID, &eventType, &e.HubID, &e.UserID, &e.UserName, &e.UserEmail, &ts, &metadata)
	if err != nil {
		return domain.ActivityEvent{}, err
	}

	ev, err := domain.DecodeEvent(eventType, []byte(metadata))
	if err != nil {
		return domain.ActivityEvent{}, fmt.Errorf("decode stored event %s: %w", e.ID, err)
	}
	e.EventType = domain.EventType(eventType)
	e.Timestamp = fromNanos(ts)
	e.Metadata = ev
	return e, nil
}

func (r *eventsRepo) AppendEvent(ctx context.Context, e domain.ActivityEvent) (int64, error) {
	if e.Metadata == nil || e.Metadata.Type() != e.EventType {
		return 0, fmt.Errorf("%w: metadata does not match event type %q", domain.ErrInvalidEvent, e.EventType)
	}
	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return 0, err
	}

	res, err := r.q.ExecContext(ctx, `
INSERT INTO activity_events (id, event_type, hub_id, user_id, user_name, user_email, timestamp, metadata)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.EventType), e.HubID, e.UserID, e.UserName, e.UserEmail,
		toNanos(e.Timestamp), string(metadata),
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

// eventWhere renders the WHERE clause shared by list and count.
type eventWhere store.EventFilter

func (f eventWhere) sql() (string, []any) {
	clauses := []string{"hub_id = ?"}
	args := []any{f.HubID}

	if f.Snapshot > 0 {
		clauses = append(clauses, "seq <= ?")
		args = append(args, f.Snapshot)
	}
	if len(f.EventTypes) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(f.EventTypes)), ", ")
		clauses = append(clauses, "event_type IN ("+marks+")")
		for _, t := range f.EventTypes {
			args = append(args, string(t))
		}
	}
	if f.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, toNanos(*f.Since))
	}
	if f.Until != nil {
		clauses = append(clauses, "timestamp < ?")
		args = append(args, toNanos(*f.Until))
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *eventsRepo) ListEvents(ctx context.Context, f store.EventFilter) ([]domain.ActivityEvent, error) {
	where, args := eventWhere(f).sql()

	query := `SELECT ` + eventColumns + ` FROM activity_events` + where +
		` ORDER BY timestamp DESC, seq DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanEvent)
}

func (r *eventsRepo) CountEvents(ctx context.Context, f store.EventFilter) (int, error) {
	where, args := eventWhere(f).sql()

	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_events`+where, args...).Scan(&n)
	return n, err
}

func (r *eventsRepo) MaxEventSeq(ctx context.Context, hubID string) (int64, error) {
	var seq int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM activity_events WHERE hub_id = ?`,
		hubID,
	).Scan(&seq)
	return seq, err
}

func (r *eventsRepo) CountEventsByType(ctx context.Context, hubID string, since time.Time) (map[domain.EventType]int, error) {
	rows, err := r.q.QueryContext(ctx, `
SELECT event_type, COUNT(*)
FROM activity_events
WHERE hub_id = ? AND timestamp >= ?
GROUP BY event_type`,
		hubID, toNanos(since),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[domain.EventType]int)
	for rows.Next() {
		var (
			t string
			n int
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		out[domain.EventType(t)] = n
	}
	return out, rows.Err()
}
