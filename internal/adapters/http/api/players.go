package api

import (
	"net/http"

	"github.com/okian/slugger/pkg/logger"
)

// PlayersHandler handles player list requests.
type PlayersHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies, log logger.Logger) *PlayersHandler {
	return &PlayersHandler{deps: deps, log: log}
}

// HandleGetPlayers handles GET /api/players?population=all|qualified.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	q, err := parseQuery(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	list, err := h.deps.Players(r.Context(), q.population)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
