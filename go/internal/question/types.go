package question

import (
	"github.com/google/uuid"
	"github.com/quizdeck/triviacast/go/internal/models"
)

// CreateQuestionRequest represents the data needed to add a question to the
// bank. Either AnswerText or the four options with a correct option must be
// provided (both is fine).
type CreateQuestionRequest struct {
	CategoryID    uuid.UUID    `json:"category_id"`
	Difficulty    models.Round `json:"difficulty"`
	QuestionText  string       `json:"question_text"`
	AnswerText    string       `json:"answer_text,omitempty"`
	OptionA       *string      `json:"option_a,omitempty"`
	OptionB       *string      `json:"option_b,omitempty"`
	OptionC       *string      `json:"option_c,omitempty"`
	OptionD       *string      `json:"option_d,omitempty"`
	CorrectOption *string      `json:"correct_option,omitempty"`
}
