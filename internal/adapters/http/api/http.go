// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/liftrank/internal/app"
	"github.com/okian/liftrank/internal/domain/athlete"
	"github.com/okian/liftrank/internal/domain/order"
	"github.com/okian/liftrank/internal/domain/scoring"
)

// maxBodyBytes bounds a request body; a full championship fits well below it.
const maxBodyBytes = 8 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	Order(ctx context.Context, in service.OrderInput) (service.OrderResult, error)
	Rank(ctx context.Context, in service.RankInput) (service.RankResult, error)
	Value(ctx context.Context, rec athlete.Record, m scoring.Metric) float64
	CategoryResults(ctx context.Context, m scoring.Metric, opts *order.Options, records []athlete.Record) ([]service.CategoryResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	orderHandler   *OrderHandler
	ranksHandler   *RanksHandler
	valueHandler   *ValueHandler
	resultsHandler *ResultsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		orderHandler:   NewOrderHandler(deps),
		ranksHandler:   NewRanksHandler(deps),
		valueHandler:   NewValueHandler(deps),
		resultsHandler: NewResultsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/order", MetricsMiddleware(s.orderHandler.HandlePostOrder, "order"))
	mux.HandleFunc("/ranks", MetricsMiddleware(s.ranksHandler.HandlePostRanks, "ranks"))
	mux.HandleFunc("/value", MetricsMiddleware(s.valueHandler.HandlePostValue, "value"))
	mux.HandleFunc("/results/categories", MetricsMiddleware(s.resultsHandler.HandlePostCategories, "results_categories"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest(err)
	}
	return nil
}
