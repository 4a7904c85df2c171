package question

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quizdeck/triviacast/go/internal/models"
	"github.com/quizdeck/triviacast/go/internal/sqlutil"
)

// ErrNotFound is returned when a question does not exist.
var ErrNotFound = errors.New("question not found")

const questionColumns = `id, category_id, difficulty, question_text, answer_text,
	option_a, option_b, option_c, option_d, correct_option, is_used, created_at`

// Repository implements question-bank data access on Postgres.
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

// CreateQuestion inserts a new unused question.
func (r *Repository) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*models.Question, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO questions
			(id, category_id, difficulty, question_text, answer_text,
			 option_a, option_b, option_c, option_d, correct_option)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+questionColumns,
		uuid.New(), req.CategoryID, req.Difficulty, req.QuestionText, req.AnswerText,
		req.OptionA, req.OptionB, req.OptionC, req.OptionD, req.CorrectOption,
	)
	q, err := scanQuestion(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return q, nil
}

// GetQuestion retrieves a question by ID.
func (r *Repository) GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

// ListQuestions returns the whole question bank, newest first.
func (r *Repository) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return r.list(ctx,
		`SELECT `+questionColumns+` FROM questions ORDER BY created_at DESC, id`)
}

// ListUnusedByDifficulty returns every unused question at the given
// difficulty, across all categories.
func (r *Repository) ListUnusedByDifficulty(ctx context.Context, difficulty models.Round) ([]models.Question, error) {
	return r.list(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE difficulty = $1 AND NOT is_used
		 ORDER BY created_at, id`,
		difficulty)
}

// ListUnused returns unused questions for one (category, difficulty) pair.
func (r *Repository) ListUnused(ctx context.Context, categoryID uuid.UUID, difficulty models.Round) ([]models.Question, error) {
	return r.list(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE category_id = $1 AND difficulty = $2 AND NOT is_used
		 ORDER BY created_at, id`,
		categoryID, difficulty)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]models.Question, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// MarkUsed consumes a question for the session. There is deliberately no
// unmark path; a marked question stays consumed even if a later write fails.
func (r *Repository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE questions SET is_used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark question used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetUsage returns every question to the pool.
func (r *Repository) ResetUsage(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `UPDATE questions SET is_used = FALSE WHERE is_used`); err != nil {
		return fmt.Errorf("failed to reset question usage: %w", err)
	}
	return nil
}

// DeleteQuestion removes a question from the bank.
func (r *Repository) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanQuestion(row pgx.Row) (*models.Question, error) {
	var q models.Question
	err := row.Scan(
		&q.ID, &q.CategoryID, &q.Difficulty, &q.QuestionText, &q.AnswerText,
		&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption,
		&q.IsUsed, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
