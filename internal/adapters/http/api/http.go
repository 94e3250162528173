// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	service "github.com/okian/slugger/internal/app"
	"github.com/okian/slugger/internal/adapters/chart"
	"github.com/okian/slugger/internal/domain/model"
	"github.com/okian/slugger/internal/domain/render"
	"github.com/okian/slugger/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Players(ctx context.Context, pop model.Population) (service.PlayerList, error)
	Percentiles(ctx context.Context, pop model.Population, name string) (model.PercentileRow, error)
	Chart(ctx context.Context, pop model.Population, name string) (render.Figure, error)
	ChartImage(ctx context.Context, pop model.Population, name string, format chart.Format, w io.Writer) error
	Summary(ctx context.Context, pop model.Population) (service.Summary, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	playersHandler     *PlayersHandler
	percentilesHandler *PercentilesHandler
	chartHandler       *ChartHandler
	summaryHandler     *SummaryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		playersHandler:     NewPlayersHandler(deps, log),
		percentilesHandler: NewPercentilesHandler(deps, log),
		chartHandler:       NewChartHandler(deps, log),
		summaryHandler:     NewSummaryHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(path, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(path, RequestID(MetricsMiddleware(h, endpoint)))
	}
	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/api/players", "players", s.playersHandler.HandleGetPlayers)
	route("/api/percentiles", "percentiles", s.percentilesHandler.HandleGetPercentiles)
	route("/api/summary", "summary", s.summaryHandler.HandleGetSummary)
	route("/api/chart", "chart", s.chartHandler.HandleGetFigure)
	route("/chart.svg", "chart_svg", s.chartHandler.HandleGetImage(chart.FormatSVG))
	route("/chart.png", "chart_png", s.chartHandler.HandleGetImage(chart.FormatPNG))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before the status line goes out so an unencodable
// value still yields a 500 with a body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorResponse{Code: "internal_error", Message: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service errors to status codes.
func writeServiceError(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUnknownPopulation):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, model.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrNotStarted), errors.Is(err, service.ErrDatasetUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		log.Error(ctx, "request failed", logger.String("request_id", RequestIDFrom(ctx)), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// allowGet answers non-GET requests with 405 and reports whether to continue.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
	return false
}

// query holds the population and player parameters shared by the read routes.
type query struct {
	population model.Population
	player     string
}

func parseQuery(r *http.Request) (query, error) {
	q := r.URL.Query()
	pop, err := model.ParsePopulation(q.Get("population"))
	if err != nil {
		return query{}, err
	}
	return query{population: pop, player: strings.TrimSpace(q.Get("player"))}, nil
}
