package question

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quizdeck/triviacast/go/internal/game/events"
	"github.com/quizdeck/triviacast/go/internal/models"
	"github.com/rs/zerolog/log"
)

// QuestionRepository defines what the app layer needs from the repository.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*models.Question, error)
	GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error)
	ListQuestions(ctx context.Context) ([]models.Question, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
}

// CategoryGetter verifies a category reference before a question is filed
// under it.
type CategoryGetter interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// Outbox defines what the app layer needs from the outbox.
type Outbox interface {
	Insert(ctx context.Context, eventType string, payload []byte) error
}

// App handles question-bank administration.
type App struct {
	repo       QuestionRepository
	categories CategoryGetter
	outbox     Outbox
}

func NewApp(repo QuestionRepository, categories CategoryGetter, outbox Outbox) *App {
	return &App{repo: repo, categories: categories, outbox: outbox}
}

// CreateQuestion validates and files a new question.
func (a *App) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*models.Question, error) {
	if err := a.validate(ctx, &req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	q, err := a.repo.CreateQuestion(ctx, req)
	if err != nil {
		return nil, err
	}

	a.emitChanged(ctx, "insert", q.ID)
	log.Info().
		Str("question_id", q.ID.String()).
		Str("difficulty", string(q.Difficulty)).
		Msg("created question")
	return q, nil
}

// GetQuestion retrieves a question by ID.
func (a *App) GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	return a.repo.GetQuestion(ctx, id)
}

// ListQuestions returns the whole bank.
func (a *App) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return a.repo.ListQuestions(ctx)
}

// DeleteQuestion removes a question. A session still pointing at it renders
// as absent, never as an error.
func (a *App) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.DeleteQuestion(ctx, id); err != nil {
		return err
	}
	a.emitChanged(ctx, "delete", id)
	return nil
}

func (a *App) validate(ctx context.Context, req *CreateQuestionRequest) error {
	req.QuestionText = strings.TrimSpace(req.QuestionText)
	req.AnswerText = strings.TrimSpace(req.AnswerText)

	if req.QuestionText == "" {
		return fmt.Errorf("question text is required")
	}
	if _, err := models.ParseRound(string(req.Difficulty)); err != nil {
		return err
	}
	if _, err := a.categories.GetCategory(ctx, req.CategoryID); err != nil {
		return fmt.Errorf("category %s: %w", req.CategoryID, err)
	}

	hasOptions := req.OptionA != nil && req.OptionB != nil && req.OptionC != nil && req.OptionD != nil
	if req.CorrectOption != nil {
		if !hasOptions {
			return fmt.Errorf("correct option requires all four options")
		}
		switch *req.CorrectOption {
		case "A", "B", "C", "D":
		default:
			return fmt.Errorf("correct option must be A, B, C or D")
		}
	}
	if req.AnswerText == "" && req.CorrectOption == nil {
		return fmt.Errorf("an answer text or a correct option is required")
	}
	return nil
}

func (a *App) emitChanged(ctx context.Context, change string, id uuid.UUID) {
	payload, err := json.Marshal(events.CollectionChangedPayload{
		Collection: "questions",
		Change:     change,
		RecordID:   id,
		ChangedAt:  time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal QuestionsChanged payload")
		return
	}
	if err := a.outbox.Insert(ctx, events.TypeQuestionsChanged, payload); err != nil {
		log.Error().Err(err).Msg("failed to emit QuestionsChanged event")
	}
}
