package game

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/quizdeck/triviacast/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Service exposes the turn engine over HTTP for the operator console.
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes registers the operator routes with an HTTP mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/game/select-team", s.handleSelectTeam)
	mux.HandleFunc("POST /api/game/draw-category", s.handleDrawCategory)
	mux.HandleFunc("POST /api/game/reveal-question", s.handleRevealQuestion)
	mux.HandleFunc("POST /api/game/score", s.handleScore)
	mux.HandleFunc("POST /api/game/next-turn", s.handleNextTurn)
	mux.HandleFunc("POST /api/game/round", s.handleSetRound)
	mux.HandleFunc("POST /api/game/spinning", s.handleSetSpinning)
	mux.HandleFunc("POST /api/game/reset", s.handleReset)
	mux.HandleFunc("GET /api/game/session", s.handleGetSession)
}

func (s *Service) handleSelectTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeamID uuid.UUID `json:"team_id"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.TeamID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "team_id is required")
		return
	}
	if err := s.app.SelectTeam(r.Context(), req.TeamID); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"team_id": req.TeamID})
}

func (s *Service) handleDrawCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := s.app.DrawCategory(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (s *Service) handleRevealQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := s.app.RevealQuestion(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Service) handleScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correct bool `json:"correct"`
	}
	if !decode(w, r, &req) {
		return
	}
	res, err := s.app.ScoreAnswer(r.Context(), req.Correct)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Service) handleNextTurn(w http.ResponseWriter, r *http.Request) {
	res, err := s.app.NextTurn(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Service) handleSetRound(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Round string `json:"round"`
	}
	if !decode(w, r, &req) {
		return
	}
	round, err := models.ParseRound(req.Round)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.app.SetRound(r.Context(), round); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"round": round})
}

func (s *Service) handleSetSpinning(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Spinning bool `json:"spinning"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.app.SetSpinning(r.Context(), req.Spinning); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"spinning": req.Spinning})
}

func (s *Service) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.app.ResetGame(r.Context()); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}

func (s *Service) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.app.GetSession(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeEngineError maps engine sentinels onto HTTP statuses. Missing
// prerequisites are conflicts: the operator's view was stale, a resync
// follows via the change feed.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTeamNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoTeamSelected),
		errors.Is(err, ErrNoCategorySelected),
		errors.Is(err, ErrNoQuestionRevealed),
		errors.Is(err, ErrNoActiveTeams),
		errors.Is(err, ErrNoCategoriesAvailable),
		errors.Is(err, ErrNoQuestionsAvailable),
		errors.Is(err, ErrQuestionAlreadyRevealed),
		errors.Is(err, ErrAnswerAlreadyShown),
		errors.Is(err, ErrGameOver):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("game operation failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
