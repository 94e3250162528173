package api

import (
	"net/http"

	"github.com/okian/slugger/internal/domain/model"
	"github.com/okian/slugger/pkg/logger"
)

// PercentilesHandler handles percentile row requests.
type PercentilesHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewPercentilesHandler creates a new percentiles handler.
func NewPercentilesHandler(deps Dependencies, log logger.Logger) *PercentilesHandler {
	return &PercentilesHandler{deps: deps, log: log}
}

type percentilesResponse struct {
	Population model.Population `json:"population"`
	model.PercentileRow
}

// HandleGetPercentiles handles GET /api/percentiles?population=&player=.
func (h *PercentilesHandler) HandleGetPercentiles(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	q, err := parseQuery(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	row, err := h.deps.Percentiles(r.Context(), q.population, q.player)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, percentilesResponse{Population: q.population, PercentileRow: row})
}
