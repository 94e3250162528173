package api

import (
	"net/http"

	"github.com/okian/slugger/pkg/logger"
)

// SummaryHandler handles population summary requests.
type SummaryHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps Dependencies, log logger.Logger) *SummaryHandler {
	return &SummaryHandler{deps: deps, log: log}
}

// HandleGetSummary handles GET /api/summary?population=.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	q, err := parseQuery(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	sum, err := h.deps.Summary(r.Context(), q.population)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
