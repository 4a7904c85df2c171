package category

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

// CategoryRepository defines what the app layer needs from the repository.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// Outbox defines what the app layer needs from the outbox.
type Outbox interface {
	Insert(ctx context.Context, eventType string, payload []byte) error
}

// App handles category administration.
type App struct {
	repo   CategoryRepository
	outbox Outbox
}

func NewApp(repo CategoryRepository, outbox Outbox) *App {
	return &App{repo: repo, outbox: outbox}
}

// CreateCategory creates a category with a non-empty name.
func (a *App) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	c, err := a.repo.CreateCategory(ctx, name)
	if err != nil {
		return nil, err
	}

	a.emitChanged(ctx, "insert", c.ID)
	log.Info().Str("category", c.Name).Str("category_id", c.ID.String()).Msg("created category")
	return c, nil
}

// GetCategory retrieves a category by ID.
func (a *App) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return a.repo.GetCategory(ctx, id)
}

// ListCategories returns every category.
func (a *App) ListCategories(ctx context.Context) ([]models.Category, error) {
	return a.repo.ListCategories(ctx)
}

// DeleteCategory removes a category, leaving any references dangling.
func (a *App) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	a.emitChanged(ctx, "delete", id)
	return nil
}

func (a *App) emitChanged(ctx context.Context, change string, id uuid.UUID) {
	payload, err := json.Marshal(events.CollectionChangedPayload{
		Collection: "categories",
		Change:     change,
		RecordID:   id,
		ChangedAt:  time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal CategoriesChanged payload")
		return
	}
	if err := a.outbox.Insert(ctx, events.TypeCategoriesChanged, payload); err != nil {
		log.Error().Err(err).Msg("failed to emit CategoriesChanged event")
	}
}
