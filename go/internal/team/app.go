package team

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

// TeamRepository defines what the app layer needs from the repository.
type TeamRepository interface {
	CreateTeam(ctx context.Context, name string) (*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListActiveTeams(ctx context.Context) ([]models.Team, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

// Outbox defines what the app layer needs from the outbox.
type Outbox interface {
	Insert(ctx context.Context, eventType string, payload []byte) error
}

// App handles team roster logic for the admin surface.
type App struct {
	repo   TeamRepository
	outbox Outbox
}

func NewApp(repo TeamRepository, outbox Outbox) *App {
	return &App{repo: repo, outbox: outbox}
}

// CreateTeam creates a new team with a non-empty name.
func (a *App) CreateTeam(ctx context.Context, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("team name is required")
	}

	t, err := a.repo.CreateTeam(ctx, name)
	if err != nil {
		return nil, err
	}

	a.emitChanged(ctx, "insert", t.ID)
	log.Info().Str("team", t.Name).Str("team_id", t.ID.String()).Msg("created team")
	return t, nil
}

// GetTeam retrieves a team by ID.
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return a.repo.GetTeam(ctx, id)
}

// ListTeams returns every team in stable order.
func (a *App) ListTeams(ctx context.Context) ([]models.Team, error) {
	return a.repo.ListTeams(ctx)
}

// ListActiveTeams returns the teams eligible for turn rotation.
func (a *App) ListActiveTeams(ctx context.Context) ([]models.Team, error) {
	return a.repo.ListActiveTeams(ctx)
}

// SetActive toggles a team in or out of the rotation.
func (a *App) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := a.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	a.emitChanged(ctx, "update", id)
	return nil
}

// DeleteTeam removes a team. The session may keep a dangling reference; the
// aggregator renders that as absent rather than failing.
func (a *App) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.DeleteTeam(ctx, id); err != nil {
		return err
	}
	a.emitChanged(ctx, "delete", id)
	return nil
}

func (a *App) emitChanged(ctx context.Context, change string, id uuid.UUID) {
	payload, err := json.Marshal(events.CollectionChangedPayload{
		Collection: "teams",
		Change:     change,
		RecordID:   id,
		ChangedAt:  time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal TeamsChanged payload")
		return
	}
	if err := a.outbox.Insert(ctx, events.TypeTeamsChanged, payload); err != nil {
		// Viewers catch up on the next event; don't fail the operation.
		log.Error().Err(err).Msg("failed to emit TeamsChanged event")
	}
}
