package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/quizdeck/triviacast/go/internal/outbox"
	"github.com/rs/zerolog/log"
)

// JetStreamConsumerConfig holds configuration for the change-feed consumer.
type JetStreamConsumerConfig struct {
	StreamName    string
	ConsumerName  string
	SubjectFilter string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
}

// DefaultJetStreamConsumerConfig returns default consumer configuration.
func DefaultJetStreamConsumerConfig() JetStreamConsumerConfig {
	return JetStreamConsumerConfig{
		StreamName:    "GAME_EVENTS",
		ConsumerName:  "game-gateway",
		SubjectFilter: "game.events.>",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
	}
}

// EventConsumer consumes change-feed events from JetStream. Each event is
// forwarded to connected stations and triggers a snapshot resync.
type EventConsumer struct {
	connectionManager *ConnectionManager
	aggregator        *Aggregator
	consumer          jetstream.Consumer
	config            JetStreamConsumerConfig
}

// NewEventConsumer creates a durable JetStream consumer on the change feed.
func NewEventConsumer(ctx context.Context, js jetstream.JetStream, cm *ConnectionManager, agg *Aggregator, cfg JetStreamConsumerConfig) (*EventConsumer, error) {
	stream, err := js.Stream(ctx, cfg.StreamName)
	if err != nil {
		return nil, fmt.Errorf("get stream %s: %w", cfg.StreamName, err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          cfg.ConsumerName,
		Durable:       cfg.ConsumerName,
		Description:   "Game gateway WebSocket consumer",
		FilterSubject: cfg.SubjectFilter,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    cfg.MaxDeliver,
		AckWait:       cfg.AckWait,
		MaxAckPending: cfg.MaxAckPending,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("ensure consumer %s: %w", cfg.ConsumerName, err)
	}

	log.Info().
		Str("consumer", cfg.ConsumerName).
		Str("stream", cfg.StreamName).
		Msg("JetStream consumer ready")

	return &EventConsumer{
		connectionManager: cm,
		aggregator:        agg,
		consumer:          consumer,
		config:            cfg,
	}, nil
}

// Start consumes events until ctx is cancelled.
func (ec *EventConsumer) Start(ctx context.Context) error {
	messageCh := make(chan jetstream.Msg, 100)

	consumeCtx, err := ec.consumer.Consume(func(msg jetstream.Msg) {
		select {
		case messageCh <- msg:
		case <-ctx.Done():
			msg.Nak()
		}
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer consumeCtx.Stop()

	log.Info().Str("consumer", ec.config.ConsumerName).Msg("event consumer started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("event consumer shutting down")
			return nil
		case msg := <-messageCh:
			if err := ec.processMessage(msg); err != nil {
				log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to process message")
				if nakErr := msg.Nak(); nakErr != nil {
					log.Error().Err(nakErr).Msg("failed to NAK message")
				}
				continue
			}
			if ackErr := msg.Ack(); ackErr != nil {
				log.Error().Err(ackErr).Msg("failed to ACK message")
			}
		}
	}
}

// processMessage forwards the event and requests a resync. The resync is the
// authoritative part; the forwarded event only carries UI hints, so a
// malformed payload inside the envelope is not an error here.
func (ec *EventConsumer) processMessage(msg jetstream.Msg) error {
	var envelope outbox.Envelope
	if err := json.Unmarshal(msg.Data(), &envelope); err != nil {
		return fmt.Errorf("unmarshal event envelope: %w", err)
	}

	log.Debug().
		Str("event_id", envelope.EventID).
		Str("event_type", envelope.EventType).
		Str("subject", msg.Subject()).
		Msg("change event received")

	ec.connectionManager.BroadcastEvent(&envelope)
	ec.aggregator.Notify()
	return nil
}
