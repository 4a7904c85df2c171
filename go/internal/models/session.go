package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the shared game state. Exactly one row exists; every station
// renders from it and only the turn engine writes it. Reference fields are
// pointers because each starts empty and may dangle after an admin delete.
type Session struct {
	CurrentRound      Round      `json:"current_round"`
	CurrentTeamID     *uuid.UUID `json:"current_team_id"`
	CurrentCategoryID *uuid.UUID `json:"current_category_id"`
	CurrentQuestionID *uuid.UUID `json:"current_question_id"`
	ShowAnswer        bool       `json:"show_answer"`
	IsSpinning        bool       `json:"is_spinning"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// DefaultSession returns the state a fresh or reset game starts in.
func DefaultSession() Session {
	return Session{CurrentRound: RoundEasy}
}
