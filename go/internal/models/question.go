package models

import (
	"time"

	"github.com/google/uuid"
)

// Question is one entry in the question bank. A question carries either a
// free-text answer, four options with a designated correct option, or both.
// IsUsed marks a question as consumed for the session; a used question is
// never drawn again until the game is reset.
type Question struct {
	ID            uuid.UUID `json:"id"`
	CategoryID    uuid.UUID `json:"category_id"`
	Difficulty    Round     `json:"difficulty"`
	QuestionText  string    `json:"question_text"`
	AnswerText    string    `json:"answer_text,omitempty"`
	OptionA       *string   `json:"option_a,omitempty"`
	OptionB       *string   `json:"option_b,omitempty"`
	OptionC       *string   `json:"option_c,omitempty"`
	OptionD       *string   `json:"option_d,omitempty"`
	CorrectOption *string   `json:"correct_option,omitempty"` // "A".."D"
	IsUsed        bool      `json:"is_used"`
	CreatedAt     time.Time `json:"created_at"`
}

// CanonicalAnswer returns the display answer: the free-text answer when
// present, otherwise the text of the designated correct option.
func (q *Question) CanonicalAnswer() string {
	if q.AnswerText != "" {
		return q.AnswerText
	}
	if q.CorrectOption == nil {
		return ""
	}
	var opt *string
	switch *q.CorrectOption {
	case "A":
		opt = q.OptionA
	case "B":
		opt = q.OptionB
	case "C":
		opt = q.OptionC
	case "D":
		opt = q.OptionD
	}
	if opt == nil {
		return ""
	}
	return *opt
}
