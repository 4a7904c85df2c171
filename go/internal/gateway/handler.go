package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Handler serves the station-facing HTTP surface: the WebSocket endpoint and
// the REST snapshot used for initial load and reconnect catch-up.
type Handler struct {
	connectionManager *ConnectionManager
	aggregator        *Aggregator
}

func NewHandler(cm *ConnectionManager, agg *Aggregator) *Handler {
	return &Handler{connectionManager: cm, aggregator: agg}
}

// RegisterRoutes registers the station routes with an HTTP mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/game", h.handleGameConnection)
	mux.HandleFunc("GET /ws/stats", h.handleStats)
	mux.HandleFunc("GET /api/game/state", h.handleState)
}

func (h *Handler) handleGameConnection(w http.ResponseWriter, r *http.Request) {
	station := r.URL.Query().Get("station")
	if station == "" {
		station = "viewer"
	}

	// Queue the current snapshot so a joining station renders immediately
	// instead of waiting for the next change event.
	var initial [][]byte
	if snap := h.aggregator.Current(); snap != nil {
		data, err := json.Marshal(WSMessage{Type: MessageTypeSnapshot, Snapshot: snap})
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal initial snapshot")
		} else {
			initial = append(initial, data)
		}
	}

	if err := h.connectionManager.UpgradeConnection(w, r, station, initial...); err != nil {
		log.Error().Err(err).Str("station", station).Msg("failed to upgrade WebSocket connection")
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
	}
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"connections":` + strconv.Itoa(h.connectionManager.ConnectionCount()) + `}`))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	snap := h.aggregator.Current()
	if snap == nil {
		http.Error(w, "snapshot not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		log.Error().Err(err).Msg("failed to encode snapshot")
	}
}
