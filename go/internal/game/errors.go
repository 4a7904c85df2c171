package game

import "errors"

var (
	// ErrNoTeamSelected is returned by turn operations that need an active
	// team before any team has been selected.
	ErrNoTeamSelected = errors.New("no team selected")

	// ErrTeamNotFound is returned when the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")

	// ErrNoActiveTeams is returned when turn rotation finds no active teams.
	ErrNoActiveTeams = errors.New("no active teams")

	// ErrNoCategorySelected is returned by RevealQuestion when no category
	// has been drawn this turn.
	ErrNoCategorySelected = errors.New("no category selected")

	// ErrNoCategoriesAvailable is returned by DrawCategory when no category
	// has unused questions left for the current round.
	ErrNoCategoriesAvailable = errors.New("no categories with unused questions for current round")

	// ErrNoQuestionsAvailable is returned by RevealQuestion when the drawn
	// category has no unused questions left for the current round.
	ErrNoQuestionsAvailable = errors.New("no unused questions for selected category and round")

	// ErrQuestionAlreadyRevealed is returned by RevealQuestion when a
	// question is already on the board this turn.
	ErrQuestionAlreadyRevealed = errors.New("question already revealed this turn")

	// ErrAnswerAlreadyShown is returned by ScoreAnswer when the current
	// question has already been scored.
	ErrAnswerAlreadyShown = errors.New("answer already shown")

	// ErrNoQuestionRevealed is returned by ScoreAnswer when there is no
	// question on the board.
	ErrNoQuestionRevealed = errors.New("no question revealed")

	// ErrGameOver is returned by NextTurn when the rotation wraps past the
	// final round.
	ErrGameOver = errors.New("game over")
)
