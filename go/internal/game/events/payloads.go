package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/quizdeck/triviacast/go/internal/models"
)

// Event types carried through the outbox and the gateway. Consumers only rely
// on "something changed" and resync the full state; the payloads exist for
// logging and for viewers that want UI hints (e.g. a spin animation).
const (
	TypeTeamSelected      = "TeamSelected"
	TypeCategoryDrawn     = "CategoryDrawn"
	TypeQuestionRevealed  = "QuestionRevealed"
	TypeAnswerScored      = "AnswerScored"
	TypeTurnAdvanced      = "TurnAdvanced"
	TypeRoundChanged      = "RoundChanged"
	TypeSpinningChanged   = "SpinningChanged"
	TypeGameReset         = "GameReset"
	TypeTeamsChanged      = "TeamsChanged"
	TypeCategoriesChanged = "CategoriesChanged"
	TypeQuestionsChanged  = "QuestionsChanged"
)

// TeamSelectedPayload is the payload for a TeamSelected event.
type TeamSelectedPayload struct {
	TeamID     uuid.UUID `json:"team_id"`
	TeamName   string    `json:"team_name"`
	SelectedAt time.Time `json:"selected_at"`
}

// CategoryDrawnPayload is the payload for a CategoryDrawn event.
type CategoryDrawnPayload struct {
	CategoryID   uuid.UUID    `json:"category_id"`
	CategoryName string       `json:"category_name"`
	Round        models.Round `json:"round"`
	TeamID       uuid.UUID    `json:"team_id"`
	DrawnAt      time.Time    `json:"drawn_at"`
}

// QuestionRevealedPayload is the payload for a QuestionRevealed event.
type QuestionRevealedPayload struct {
	QuestionID uuid.UUID    `json:"question_id"`
	CategoryID uuid.UUID    `json:"category_id"`
	Round      models.Round `json:"round"`
	RevealedAt time.Time    `json:"revealed_at"`
}

// AnswerScoredPayload is the payload for an AnswerScored event.
type AnswerScoredPayload struct {
	TeamID   uuid.UUID    `json:"team_id"`
	Round    models.Round `json:"round"`
	Correct  bool         `json:"correct"`
	Points   int          `json:"points"`
	ScoredAt time.Time    `json:"scored_at"`
}

// TurnAdvancedPayload is the payload for a TurnAdvanced event.
type TurnAdvancedPayload struct {
	NextTeamID    uuid.UUID    `json:"next_team_id"`
	Round         models.Round `json:"round"`
	RoundAdvanced bool         `json:"round_advanced"`
	AdvancedAt    time.Time    `json:"advanced_at"`
}

// RoundChangedPayload is the payload for a RoundChanged event.
type RoundChangedPayload struct {
	Round     models.Round `json:"round"`
	ChangedAt time.Time    `json:"changed_at"`
}

// SpinningChangedPayload is the payload for a SpinningChanged event.
type SpinningChangedPayload struct {
	Spinning  bool      `json:"spinning"`
	ChangedAt time.Time `json:"changed_at"`
}

// GameResetPayload is the payload for a GameReset event.
type GameResetPayload struct {
	ResetAt time.Time `json:"reset_at"`
}

// CollectionChangedPayload is the payload for the TeamsChanged,
// CategoriesChanged and QuestionsChanged events emitted by admin CRUD.
type CollectionChangedPayload struct {
	Collection string    `json:"collection"`
	Change     string    `json:"change"` // "insert", "update" or "delete"
	RecordID   uuid.UUID `json:"record_id"`
	ChangedAt  time.Time `json:"changed_at"`
}
