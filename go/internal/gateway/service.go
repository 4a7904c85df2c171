package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// Service ties the gateway together: the aggregator that rebuilds snapshots,
// the connection manager that fans them out, and the JetStream consumer that
// drives both from the change feed.
type Service struct {
	connectionManager *ConnectionManager
	aggregator        *Aggregator
	eventConsumer     *EventConsumer
	handler           *Handler
}

// Config holds configuration for the gateway service.
type Config struct {
	ConnectionConfig ConnectionConfig
	JetStreamConfig  JetStreamConsumerConfig
}

// DefaultConfig returns default configuration for the gateway.
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		JetStreamConfig:  DefaultJetStreamConsumerConfig(),
	}
}

func NewService(ctx context.Context, js jetstream.JetStream, store Store, cfg Config) (*Service, error) {
	connectionManager := NewConnectionManager(cfg.ConnectionConfig)
	aggregator := NewAggregator(store, connectionManager, nil)

	eventConsumer, err := NewEventConsumer(ctx, js, connectionManager, aggregator, cfg.JetStreamConfig)
	if err != nil {
		return nil, fmt.Errorf("create event consumer: %w", err)
	}

	return &Service{
		connectionManager: connectionManager,
		aggregator:        aggregator,
		eventConsumer:     eventConsumer,
		handler:           NewHandler(connectionManager, aggregator),
	}, nil
}

// RegisterRoutes registers the gateway routes with an HTTP mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.handler.RegisterRoutes(mux)
}

// Start runs the gateway until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting game gateway")

	go s.connectionManager.Start(ctx)
	go s.aggregator.Start(ctx)

	return s.eventConsumer.Start(ctx)
}
