package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/okian/slugger/internal/adapters/chart"
	"github.com/okian/slugger/pkg/logger"
)

// ChartHandler handles chart requests.
type ChartHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps Dependencies, log logger.Logger) *ChartHandler {
	return &ChartHandler{deps: deps, log: log}
}

// HandleGetFigure handles GET /api/chart?population=&player= and returns the figure as JSON.
func (h *ChartHandler) HandleGetFigure(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	q, err := parseQuery(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	fig, err := h.deps.Chart(r.Context(), q.population, q.player)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

// HandleGetImage returns a handler for GET /chart.<format>?population=&player=.
// The image is painted into memory first so failures still get a JSON error.
func (h *ChartHandler) HandleGetImage(format chart.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowGet(w, r) {
			return
		}
		q, err := parseQuery(r)
		if err != nil {
			writeServiceError(r.Context(), h.log, w, err)
			return
		}
		var buf bytes.Buffer
		if err := h.deps.ChartImage(r.Context(), q.population, q.player, format, &buf); err != nil {
			writeServiceError(r.Context(), h.log, w, err)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = buf.WriteTo(w)
	}
}
