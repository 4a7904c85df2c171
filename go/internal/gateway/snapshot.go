package gateway

import (
	"time"

	"github.com/quizdeck/triviacast/go/internal/models"
	"github.com/quizdeck/triviacast/go/internal/outbox"
)

// UnknownCategoryName is shown when the session references a category that
// was deleted mid-game.
const UnknownCategoryName = "Unknown"

// GameSnapshot is the full authoritative state every station renders from.
// The aggregator rebuilds it from the store on every change event; stations
// replace their local state wholesale instead of patching.
type GameSnapshot struct {
	Session             models.Session    `json:"session"`
	Teams               []models.Team     `json:"teams"`
	Categories          []models.Category `json:"categories"`
	CurrentCategoryName string            `json:"current_category_name,omitempty"`
	CurrentQuestion     *models.Question  `json:"current_question,omitempty"`
	// CurrentQuestionCategory is resolved from the question's own category
	// reference, empty when that category was deleted.
	CurrentQuestionCategory string    `json:"current_question_category,omitempty"`
	SyncedAt                time.Time `json:"synced_at"`
}

// Message types pushed to WebSocket clients.
const (
	MessageTypeSnapshot = "snapshot"
	MessageTypeEvent    = "event"
)

// WSMessage is the frame sent to WebSocket clients. Every change event is
// forwarded as-is for UI hints, followed by the rebuilt snapshot.
type WSMessage struct {
	Type     string           `json:"type"`
	Snapshot *GameSnapshot    `json:"snapshot,omitempty"`
	Event    *outbox.Envelope `json:"event,omitempty"`
}
