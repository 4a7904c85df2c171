package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quizdeck/triviacast/go/internal/models"
	"github.com/quizdeck/triviacast/go/internal/sqlutil"
)

// ErrNotFound is returned when the singleton session row is missing.
var ErrNotFound = errors.New("session not found")

// Repository reads and mutates the singleton session row. The table enforces
// a single row (id = 1); all writers go through the turn engine.
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

// Get reads the session.
func (r *Repository) Get(ctx context.Context) (*models.Session, error) {
	var s models.Session
	err := r.db.QueryRow(ctx,
		`SELECT current_round, current_team_id, current_category_id,
		        current_question_id, show_answer, is_spinning, updated_at
		 FROM game_sessions WHERE id = 1`,
	).Scan(&s.CurrentRound, &s.CurrentTeamID, &s.CurrentCategoryID,
		&s.CurrentQuestionID, &s.ShowAnswer, &s.IsSpinning, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// Ensure inserts the default session row if it does not exist yet.
func (r *Repository) Ensure(ctx context.Context) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO game_sessions (id) VALUES (1) ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to ensure session row: %w", err)
	}
	return nil
}

// SetTeam points the session at a team.
func (r *Repository) SetTeam(ctx context.Context, teamID uuid.UUID) error {
	return r.update(ctx,
		`UPDATE game_sessions SET current_team_id = $1, updated_at = now() WHERE id = 1`,
		teamID)
}

// SetRound switches the active round.
func (r *Repository) SetRound(ctx context.Context, round models.Round) error {
	return r.update(ctx,
		`UPDATE game_sessions SET current_round = $1, updated_at = now() WHERE id = 1`,
		round)
}

// SetSpinning toggles the cosmetic wheel flag.
func (r *Repository) SetSpinning(ctx context.Context, spinning bool) error {
	return r.update(ctx,
		`UPDATE game_sessions SET is_spinning = $1, updated_at = now() WHERE id = 1`,
		spinning)
}

// SetCategory records a drawn category and clears any question state from a
// previous draw in this turn.
func (r *Repository) SetCategory(ctx context.Context, categoryID uuid.UUID) error {
	return r.update(ctx,
		`UPDATE game_sessions
		 SET current_category_id = $1, current_question_id = NULL,
		     show_answer = FALSE, updated_at = now()
		 WHERE id = 1`,
		categoryID)
}

// ClearCategory unwinds a category selection whose question pool turned out
// to be exhausted.
func (r *Repository) ClearCategory(ctx context.Context) error {
	return r.update(ctx,
		`UPDATE game_sessions
		 SET current_category_id = NULL, current_question_id = NULL,
		     show_answer = FALSE, updated_at = now()
		 WHERE id = 1`)
}

// SetQuestion records the revealed question.
func (r *Repository) SetQuestion(ctx context.Context, questionID uuid.UUID) error {
	return r.update(ctx,
		`UPDATE game_sessions
		 SET current_question_id = $1, show_answer = FALSE, updated_at = now()
		 WHERE id = 1`,
		questionID)
}

// SetShowAnswer toggles the answer reveal flag.
func (r *Repository) SetShowAnswer(ctx context.Context, show bool) error {
	return r.update(ctx,
		`UPDATE game_sessions SET show_answer = $1, updated_at = now() WHERE id = 1`,
		show)
}

// AdvanceTurn hands the board to the next team, optionally in a new round,
// clearing the per-turn category/question state.
func (r *Repository) AdvanceTurn(ctx context.Context, teamID uuid.UUID, round models.Round) error {
	return r.update(ctx,
		`UPDATE game_sessions
		 SET current_team_id = $1, current_round = $2,
		     current_category_id = NULL, current_question_id = NULL,
		     show_answer = FALSE, updated_at = now()
		 WHERE id = 1`,
		teamID, round)
}

// Reset returns the session to its default state.
func (r *Repository) Reset(ctx context.Context) error {
	return r.update(ctx,
		`UPDATE game_sessions
		 SET current_round = $1, current_team_id = NULL,
		     current_category_id = NULL, current_question_id = NULL,
		     show_answer = FALSE, is_spinning = FALSE, updated_at = now()
		 WHERE id = 1`,
		models.RoundEasy)
}

func (r *Repository) update(ctx context.Context, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
