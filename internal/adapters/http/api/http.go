// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rkuiper/encore/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Sample returns n performances chosen uniformly at random.
	Sample(ctx context.Context, n int) []Performance

	// All returns the full dataset in load order.
	All(ctx context.Context) []Performance

	// Count returns the dataset cardinality.
	Count(ctx context.Context) int
}

// Performance mirrors the read shape returned by dataset queries.
type Performance = model.Performance

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	randomBandsHandler *RandomBandsHandler
	allBandsHandler    *AllBandsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, defaultCount, maxCount int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		randomBandsHandler: NewRandomBandsHandler(deps, defaultCount, maxCount),
		allBandsHandler:    NewAllBandsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/random-bands", CORSMiddleware(RequestIDMiddleware(MetricsMiddleware(s.randomBandsHandler.HandleGetRandomBands, "random_bands"))))
	mux.HandleFunc("/api/all-bands", CORSMiddleware(RequestIDMiddleware(MetricsMiddleware(s.allBandsHandler.HandleGetAllBands, "all_bands"))))
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
