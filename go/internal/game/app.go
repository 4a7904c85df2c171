package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/quizdeck/triviacast/go/internal/game/events"
	"github.com/quizdeck/triviacast/go/internal/models"
	"github.com/quizdeck/triviacast/go/internal/team"
	"github.com/rs/zerolog/log"
)

// SessionStore is the session access the engine needs.
type SessionStore interface {
	Get(ctx context.Context) (*models.Session, error)
	SetTeam(ctx context.Context, teamID uuid.UUID) error
	SetRound(ctx context.Context, round models.Round) error
	SetSpinning(ctx context.Context, spinning bool) error
	SetCategory(ctx context.Context, categoryID uuid.UUID) error
	ClearCategory(ctx context.Context) error
	SetQuestion(ctx context.Context, questionID uuid.UUID) error
	SetShowAnswer(ctx context.Context, show bool) error
	AdvanceTurn(ctx context.Context, teamID uuid.UUID, round models.Round) error
	Reset(ctx context.Context) error
}

// TeamStore is the team access the engine needs.
type TeamStore interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListActiveTeams(ctx context.Context) ([]models.Team, error)
	AddScore(ctx context.Context, id uuid.UUID, points int) (int, error)
	ResetScores(ctx context.Context) error
}

// CategoryStore is the category access the engine needs.
type CategoryStore interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// QuestionStore is the question-bank access the engine needs.
type QuestionStore interface {
	ListUnusedByDifficulty(ctx context.Context, difficulty models.Round) ([]models.Question, error)
	ListUnused(ctx context.Context, categoryID uuid.UUID, difficulty models.Round) ([]models.Question, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	ResetUsage(ctx context.Context) error
}

// Outbox records change events alongside state writes.
type Outbox interface {
	Insert(ctx context.Context, eventType string, payload []byte) error
}

// Repos bundles the stores the engine operates on. TxRunner re-binds the
// bundle to a transaction for multi-write operations.
type Repos struct {
	Sessions   SessionStore
	Teams      TeamStore
	Categories CategoryStore
	Questions  QuestionStore
	Outbox     Outbox
}

// TxRunner executes fn with a Repos bound to a single transaction.
type TxRunner func(ctx context.Context, fn func(Repos) error) error

// TurnResult describes a completed NextTurn.
type TurnResult struct {
	NextTeam      models.Team  `json:"next_team"`
	Round         models.Round `json:"round"`
	RoundAdvanced bool         `json:"round_advanced"`
}

// ScoreResult describes a completed ScoreAnswer.
type ScoreResult struct {
	Correct  bool `json:"correct"`
	Points   int  `json:"points"`
	NewScore int  `json:"new_score"`
}

// App is the turn engine. It is the only writer of the session row; every
// mutation lands an outbox event for the change feed.
type App struct {
	repos  Repos
	txRun  TxRunner
	points models.PointsTable
	clock  clockwork.Clock
	intn   func(n int) int
}

func NewApp(repos Repos, txRun TxRunner, points models.PointsTable, clock clockwork.Clock) *App {
	if points == nil {
		points = models.DefaultPointsTable()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		repos:  repos,
		txRun:  txRun,
		points: points,
		clock:  clock,
		intn:   rand.IntN,
	}
}

// GetSession reads the current shared state.
func (a *App) GetSession(ctx context.Context) (*models.Session, error) {
	return a.repos.Sessions.Get(ctx)
}

// SelectTeam hands the board to a team without touching the rest of the
// turn state.
func (a *App) SelectTeam(ctx context.Context, teamID uuid.UUID) error {
	t, err := a.repos.Teams.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	if err := a.repos.Sessions.SetTeam(ctx, t.ID); err != nil {
		return err
	}

	a.emit(ctx, events.TypeTeamSelected, events.TeamSelectedPayload{
		TeamID:     t.ID,
		TeamName:   t.Name,
		SelectedAt: a.clock.Now(),
	})
	log.Info().Str("team", t.Name).Msg("team selected")
	return nil
}

// DrawCategory picks a category uniformly at random among those that still
// have unused questions for the current round, and clears any question left
// on the board from a previous draw.
func (a *App) DrawCategory(ctx context.Context) (*models.Category, error) {
	sess, err := a.repos.Sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess.CurrentTeamID == nil {
		return nil, ErrNoTeamSelected
	}

	pool, err := a.drawPool(ctx, sess.CurrentRound)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoCategoriesAvailable
	}

	picked := pool[a.intn(len(pool))]
	if err := a.repos.Sessions.SetCategory(ctx, picked.ID); err != nil {
		return nil, err
	}

	a.emit(ctx, events.TypeCategoryDrawn, events.CategoryDrawnPayload{
		CategoryID:   picked.ID,
		CategoryName: picked.Name,
		Round:        sess.CurrentRound,
		TeamID:       *sess.CurrentTeamID,
		DrawnAt:      a.clock.Now(),
	})
	log.Info().Str("category", picked.Name).Str("round", string(sess.CurrentRound)).Msg("category drawn")
	return &picked, nil
}

// drawPool returns the categories eligible for a draw in the given round:
// existing categories that still have unused questions at that difficulty.
// Questions whose category was deleted never make a category eligible.
func (a *App) drawPool(ctx context.Context, round models.Round) ([]models.Category, error) {
	unused, err := a.repos.Questions.ListUnusedByDifficulty(ctx, round)
	if err != nil {
		return nil, err
	}
	withQuestions := make(map[uuid.UUID]bool, len(unused))
	for _, q := range unused {
		withQuestions[q.CategoryID] = true
	}

	cats, err := a.repos.Categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	pool := cats[:0:0]
	for _, c := range cats {
		if withQuestions[c.ID] {
			pool = append(pool, c)
		}
	}
	return pool, nil
}

// RevealQuestion picks an unused question from the drawn category uniformly
// at random and marks it used in the same transaction that puts it on the
// board. An exhausted category is unwound so the operator can draw again.
// At most one question goes on the board per turn; the turn must end before
// another reveal.
func (a *App) RevealQuestion(ctx context.Context) (*models.Question, error) {
	sess, err := a.repos.Sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess.CurrentCategoryID == nil {
		return nil, ErrNoCategorySelected
	}
	if sess.CurrentQuestionID != nil {
		return nil, ErrQuestionAlreadyRevealed
	}

	pool, err := a.repos.Questions.ListUnused(ctx, *sess.CurrentCategoryID, sess.CurrentRound)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		if err := a.repos.Sessions.ClearCategory(ctx); err != nil {
			return nil, err
		}
		return nil, ErrNoQuestionsAvailable
	}

	picked := pool[a.intn(len(pool))]
	payload, err := json.Marshal(events.QuestionRevealedPayload{
		QuestionID: picked.ID,
		CategoryID: *sess.CurrentCategoryID,
		Round:      sess.CurrentRound,
		RevealedAt: a.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal QuestionRevealed payload: %w", err)
	}

	err = a.txRun(ctx, func(r Repos) error {
		if err := r.Sessions.SetQuestion(ctx, picked.ID); err != nil {
			return err
		}
		if err := r.Questions.MarkUsed(ctx, picked.ID); err != nil {
			return err
		}
		return r.Outbox.Insert(ctx, events.TypeQuestionRevealed, payload)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("question_id", picked.ID.String()).Msg("question revealed")
	return &picked, nil
}

// ScoreAnswer awards the current team points for the current round when
// correct, then flips the board to show the answer. A question scores at
// most once; a shown answer rejects rescoring. The two writes are
// deliberately independent: a failed answer reveal must not take the score
// back with it.
func (a *App) ScoreAnswer(ctx context.Context, correct bool) (*ScoreResult, error) {
	sess, err := a.repos.Sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess.CurrentTeamID == nil {
		return nil, ErrNoTeamSelected
	}
	if sess.CurrentQuestionID == nil {
		return nil, ErrNoQuestionRevealed
	}
	if sess.ShowAnswer {
		return nil, ErrAnswerAlreadyShown
	}

	res := &ScoreResult{Correct: correct}
	if correct {
		res.Points = a.points.Points(sess.CurrentRound)
		newScore, err := a.repos.Teams.AddScore(ctx, *sess.CurrentTeamID, res.Points)
		if err != nil {
			if errors.Is(err, team.ErrNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
		res.NewScore = newScore
	}

	if err := a.repos.Sessions.SetShowAnswer(ctx, true); err != nil {
		return nil, err
	}

	a.emit(ctx, events.TypeAnswerScored, events.AnswerScoredPayload{
		TeamID:   *sess.CurrentTeamID,
		Round:    sess.CurrentRound,
		Correct:  correct,
		Points:   res.Points,
		ScoredAt: a.clock.Now(),
	})
	log.Info().Bool("correct", correct).Int("points", res.Points).Msg("answer scored")
	return res, nil
}

// NextTurn rotates to the next active team in stable roster order. Wrapping
// past the last team advances the round; wrapping past the final round ends
// the game without mutating anything.
func (a *App) NextTurn(ctx context.Context) (*TurnResult, error) {
	sess, err := a.repos.Sessions.Get(ctx)
	if err != nil {
		return nil, err
	}

	active, err := a.repos.Teams.ListActiveTeams(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, ErrNoActiveTeams
	}

	next, wrapped := nextTeam(active, sess.CurrentTeamID)

	round := sess.CurrentRound
	roundAdvanced := false
	if wrapped {
		nextRound, ok := round.Next()
		if !ok {
			return nil, ErrGameOver
		}
		round = nextRound
		roundAdvanced = true
	}

	if err := a.repos.Sessions.AdvanceTurn(ctx, next.ID, round); err != nil {
		return nil, err
	}

	a.emit(ctx, events.TypeTurnAdvanced, events.TurnAdvancedPayload{
		NextTeamID:    next.ID,
		Round:         round,
		RoundAdvanced: roundAdvanced,
		AdvancedAt:    a.clock.Now(),
	})
	log.Info().Str("team", next.Name).Str("round", string(round)).Bool("round_advanced", roundAdvanced).Msg("turn advanced")
	return &TurnResult{NextTeam: next, Round: round, RoundAdvanced: roundAdvanced}, nil
}

// nextTeam picks the team after current in active order. A current team that
// is nil, inactive or deleted restarts the rotation at the first team, which
// does not count as a wrap.
func nextTeam(active []models.Team, current *uuid.UUID) (next models.Team, wrapped bool) {
	idx := -1
	if current != nil {
		for i, t := range active {
			if t.ID == *current {
				idx = i
				break
			}
		}
	}
	if idx == -1 {
		return active[0], false
	}
	if idx+1 >= len(active) {
		return active[0], true
	}
	return active[idx+1], false
}

// SetRound jumps the session to a round directly, e.g. to rerun a stage.
func (a *App) SetRound(ctx context.Context, round models.Round) error {
	if err := a.repos.Sessions.SetRound(ctx, round); err != nil {
		return err
	}
	a.emit(ctx, events.TypeRoundChanged, events.RoundChangedPayload{
		Round:     round,
		ChangedAt: a.clock.Now(),
	})
	return nil
}

// SetSpinning toggles the wheel animation flag mirrored to viewers.
func (a *App) SetSpinning(ctx context.Context, spinning bool) error {
	if err := a.repos.Sessions.SetSpinning(ctx, spinning); err != nil {
		return err
	}
	a.emit(ctx, events.TypeSpinningChanged, events.SpinningChangedPayload{
		Spinning:  spinning,
		ChangedAt: a.clock.Now(),
	})
	return nil
}

// ResetGame restores the default session, zeroes scores and un-uses every
// question, atomically. Resetting an already fresh game is a no-op that
// still notifies viewers.
func (a *App) ResetGame(ctx context.Context) error {
	payload, err := json.Marshal(events.GameResetPayload{ResetAt: a.clock.Now()})
	if err != nil {
		return fmt.Errorf("marshal GameReset payload: %w", err)
	}

	err = a.txRun(ctx, func(r Repos) error {
		if err := r.Sessions.Reset(ctx); err != nil {
			return err
		}
		if err := r.Teams.ResetScores(ctx); err != nil {
			return err
		}
		if err := r.Questions.ResetUsage(ctx); err != nil {
			return err
		}
		return r.Outbox.Insert(ctx, events.TypeGameReset, payload)
	})
	if err != nil {
		return err
	}

	log.Info().Msg("game reset")
	return nil
}

// emit records a change event outside a transaction. Losing one is
// tolerable, the next event resyncs viewers anyway.
func (a *App) emit(ctx context.Context, eventType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		return
	}
	if err := a.repos.Outbox.Insert(ctx, eventType, raw); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to emit event")
	}
}
