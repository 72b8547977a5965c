// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rkuiper/encore/pkg/metrics"
)

// RandomBandsDependencies defines the interface for random sampling.
type RandomBandsDependencies interface {
	Sample(ctx context.Context, n int) []Performance
	Count(ctx context.Context) int
}

// RandomBandsHandler handles random-sample requests.
type RandomBandsHandler struct {
	deps         RandomBandsDependencies
	defaultCount int
	maxCount     int
}

// NewRandomBandsHandler creates a new random-bands handler.
func NewRandomBandsHandler(deps RandomBandsDependencies, defaultCount, maxCount int) *RandomBandsHandler {
	return &RandomBandsHandler{
		deps:         deps,
		defaultCount: defaultCount,
		maxCount:     maxCount,
	}
}

// HandleGetRandomBands handles GET /api/random-bands?count=N requests.
// A missing or malformed count falls back to the default instead of
// erroring; out-of-range values are clamped to [1, maxCount].
func (h *RandomBandsHandler) HandleGetRandomBands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	n := h.defaultCount
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		if parsed, err := strconv.Atoi(countStr); err == nil {
			n = parsed
		}
	}
	if n < 1 {
		n = 1
	}
	if n > h.maxCount {
		n = h.maxCount
	}

	if h.deps.Count(r.Context()) == 0 {
		writeError(w, http.StatusNotFound, "not_found", ErrNoPerformances)
		return
	}

	selection := h.deps.Sample(r.Context(), n)
	metrics.RecordSampleServed(len(selection))
	writeJSON(w, http.StatusOK, selection)
}
