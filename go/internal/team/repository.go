package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quizdeck/triviacast/go/internal/models"
	"github.com/quizdeck/triviacast/go/internal/sqlutil"
)

// ErrNotFound is returned when a team does not exist.
var ErrNotFound = errors.New("team not found")

const teamColumns = `id, name, score, is_active, created_at`

// Repository implements team data access on Postgres.
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

// CreateTeam inserts a new team with score 0.
func (r *Repository) CreateTeam(ctx context.Context, name string) (*models.Team, error) {
	var t models.Team
	err := r.db.QueryRow(ctx,
		`INSERT INTO teams (id, name) VALUES ($1, $2) RETURNING `+teamColumns,
		uuid.New(), name,
	).Scan(&t.ID, &t.Name, &t.Score, &t.IsActive, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return &t, nil
}

// GetTeam retrieves a team by ID.
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var t models.Team
	err := r.db.QueryRow(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.Score, &t.IsActive, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &t, nil
}

// ListTeams returns every team in stable (created_at, id) order. Rotation
// and the aggregator snapshot both depend on this order staying put.
func (r *Repository) ListTeams(ctx context.Context) ([]models.Team, error) {
	return r.listTeams(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at, id`)
}

// ListActiveTeams returns active teams in stable order.
func (r *Repository) ListActiveTeams(ctx context.Context) ([]models.Team, error) {
	return r.listTeams(ctx, `SELECT `+teamColumns+` FROM teams WHERE is_active ORDER BY created_at, id`)
}

func (r *Repository) listTeams(ctx context.Context, query string) ([]models.Team, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Score, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// AddScore adds points to a team's score and returns the new total.
func (r *Repository) AddScore(ctx context.Context, id uuid.UUID, points int) (int, error) {
	var score int
	err := r.db.QueryRow(ctx,
		`UPDATE teams SET score = score + $2 WHERE id = $1 RETURNING score`,
		id, points,
	).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add score: %w", err)
	}
	return score, nil
}

// SetActive toggles a team in or out of the turn rotation.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE teams SET is_active = $2 WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("failed to set team active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetScores zeroes every team's score.
func (r *Repository) ResetScores(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `UPDATE teams SET score = 0 WHERE score <> 0`); err != nil {
		return fmt.Errorf("failed to reset scores: %w", err)
	}
	return nil
}

// DeleteTeam removes a team.
func (r *Repository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
