package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// Publisher is an interface that defines our publisher.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// JetStreamPublisherConfig holds settings for the JetStream publisher.
type JetStreamPublisherConfig struct {
	StreamName    string
	SubjectPrefix string // e.g. "game.events"
	PublishWait   time.Duration
}

// DefaultJetStreamPublisherConfig returns default publisher configuration.
func DefaultJetStreamPublisherConfig() JetStreamPublisherConfig {
	return JetStreamPublisherConfig{
		StreamName:    "GAME_EVENTS",
		SubjectPrefix: "game.events",
		PublishWait:   5 * time.Second,
	}
}

// JetStreamPublisher publishes outbox events to NATS JetStream.
type JetStreamPublisher struct {
	js  jetstream.JetStream
	cfg JetStreamPublisherConfig
}

// NewJetStreamPublisher creates the publisher and ensures the stream exists.
func NewJetStreamPublisher(ctx context.Context, js jetstream.JetStream, cfg JetStreamPublisherConfig) (*JetStreamPublisher, error) {
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      cfg.StreamName,
		Subjects:  []string{cfg.SubjectPrefix + ".>"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    24 * time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("ensure stream %s: %w", cfg.StreamName, err)
	}

	log.Info().
		Str("stream", cfg.StreamName).
		Str("subject_prefix", cfg.SubjectPrefix).
		Msg("JetStream publisher ready")

	return &JetStreamPublisher{js: js, cfg: cfg}, nil
}

// Publish sends one event envelope to the stream. The message ID is the
// outbox row ID so JetStream deduplicates redelivered rows.
func (p *JetStreamPublisher) Publish(ctx context.Context, event Event) error {
	subject := fmt.Sprintf("%s.%s", p.cfg.SubjectPrefix, event.EventType)

	envelope := Envelope{
		EventID:   event.ID.String(),
		EventType: event.EventType,
		Timestamp: event.CreatedAt,
		Payload:   event.Payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, p.cfg.PublishWait)
	defer cancel()

	if _, err := p.js.Publish(pubCtx, subject, data, jetstream.WithMsgID(event.ID.String())); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	log.Debug().
		Str("event_id", event.ID.String()).
		Str("event_type", event.EventType).
		Str("subject", subject).
		Msg("published outbox event")

	return nil
}
