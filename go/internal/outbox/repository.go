package outbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quizdeck/triviacast/go/internal/sqlutil"
)

// ErrNotFound is returned when an outbox row does not exist.
var ErrNotFound = errors.New("outbox event not found")

// Repository persists outbox events. Insert is expected to run inside the
// same transaction as the state change it describes; the NOTIFY trigger on
// game_outbox wakes the listener once the transaction commits.
type Repository struct {
	db sqlutil.DBTX
}

func NewRepository(db sqlutil.DBTX) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx pgx.Tx) *Repository {
	return &Repository{db: tx}
}

// Insert records an event for publication.
func (r *Repository) Insert(ctx context.Context, eventType string, payload []byte) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO game_outbox (id, event_type, payload) VALUES ($1, $2, $3)`,
		uuid.New(), eventType, payload,
	)
	if err != nil {
		return fmt.Errorf("insert %s outbox event: %w", eventType, err)
	}
	return nil
}

// FetchByID loads one outbox event.
func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var ev Event
	err := r.db.QueryRow(ctx,
		`SELECT id, event_type, payload, created_at, sent_at FROM game_outbox WHERE id = $1`,
		id,
	).Scan(&ev.ID, &ev.EventType, &ev.Payload, &ev.CreatedAt, &ev.SentAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch outbox event: %w", err)
	}
	return &ev, nil
}

// FetchUnsent returns up to limit unpublished events, oldest first.
func (r *Repository) FetchUnsent(ctx context.Context, limit int32) ([]Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_type, payload, created_at, sent_at
		 FROM game_outbox
		 WHERE sent_at IS NULL
		 ORDER BY created_at
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch unsent outbox events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.EventType, &ev.Payload, &ev.CreatedAt, &ev.SentAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// MarkSent stamps an event as published.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE game_outbox SET sent_at = now() WHERE id = $1 AND sent_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark outbox event sent: %w", err)
	}
	return nil
}
