package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/quizdeck/triviacast/go/internal/category"
	"github.com/quizdeck/triviacast/go/internal/game"
	"github.com/quizdeck/triviacast/go/internal/gateway"
	"github.com/quizdeck/triviacast/go/internal/models"
	"github.com/quizdeck/triviacast/go/internal/outbox"
	"github.com/quizdeck/triviacast/go/internal/question"
	"github.com/quizdeck/triviacast/go/internal/session"
	"github.com/quizdeck/triviacast/go/internal/sqlutil"
	"github.com/quizdeck/triviacast/go/internal/team"
)

type Services struct {
	Teams      *team.Service
	Categories *category.Service
	Questions  *question.Service
	Game       *game.Service
	Gateway    *gateway.Service
	Listener   *outbox.Listener
}

func setupServices(ctx context.Context, pool *pgxpool.Pool, dsn string, js jetstream.JetStream, points models.PointsTable, cfg *Config) (*Services, error) {
	// Database layer → repository layer → app layer → service layer.
	sessionRepo := session.NewRepository(pool)
	teamRepo := team.NewRepository(pool)
	categoryRepo := category.NewRepository(pool)
	questionRepo := question.NewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)

	if err := sessionRepo.Ensure(ctx); err != nil {
		return nil, err
	}

	teamApp := team.NewApp(teamRepo, outboxRepo)
	categoryApp := category.NewApp(categoryRepo, outboxRepo)
	questionApp := question.NewApp(questionRepo, categoryRepo, outboxRepo)

	repos := game.Repos{
		Sessions:   sessionRepo,
		Teams:      teamRepo,
		Categories: categoryRepo,
		Questions:  questionRepo,
		Outbox:     outboxRepo,
	}
	txRun := func(ctx context.Context, fn func(game.Repos) error) error {
		return sqlutil.Run(ctx, pool, func(tx pgx.Tx) error {
			return fn(game.Repos{
				Sessions:   sessionRepo.WithTx(tx),
				Teams:      teamRepo.WithTx(tx),
				Categories: categoryRepo.WithTx(tx),
				Questions:  questionRepo.WithTx(tx),
				Outbox:     outboxRepo.WithTx(tx),
			})
		})
	}
	gameApp := game.NewApp(repos, txRun, points, nil)

	// Outbox listener bridging committed rows to JetStream.
	publisher, err := outbox.NewJetStreamPublisher(ctx, js, outbox.DefaultJetStreamPublisherConfig())
	if err != nil {
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	listenerCfg := outbox.DefaultListenerConfig()
	listenerCfg.DatabaseURL = dsn
	if cfg.Outbox.FallbackIntervalSeconds > 0 {
		listenerCfg.FallbackInterval = time.Duration(cfg.Outbox.FallbackIntervalSeconds) * time.Second
	}
	listener, err := outbox.NewListener(outboxRepo, publisher, listenerCfg)
	if err != nil {
		return nil, fmt.Errorf("create listener: %w", err)
	}

	// Gateway consuming the change feed and fanning snapshots out.
	store := &gatewayStore{
		sessions:   sessionRepo,
		teams:      teamRepo,
		categories: categoryRepo,
		questions:  questionRepo,
	}
	gatewayService, err := gateway.NewService(ctx, js, store, gateway.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("create gateway: %w", err)
	}

	return &Services{
		Teams:      team.NewService(teamApp),
		Categories: category.NewService(categoryApp),
		Questions:  question.NewService(questionApp),
		Game:       game.NewService(gameApp),
		Gateway:    gatewayService,
		Listener:   listener,
	}, nil
}

// gatewayStore adapts the repositories to the aggregator's read interface.
type gatewayStore struct {
	sessions   *session.Repository
	teams      *team.Repository
	categories *category.Repository
	questions  *question.Repository
}

func (s *gatewayStore) GetSession(ctx context.Context) (*models.Session, error) {
	return s.sessions.Get(ctx)
}

func (s *gatewayStore) ListTeams(ctx context.Context) ([]models.Team, error) {
	return s.teams.ListTeams(ctx)
}

func (s *gatewayStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *gatewayStore) GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	return s.questions.GetQuestion(ctx, id)
}
