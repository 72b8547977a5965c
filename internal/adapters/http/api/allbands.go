// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/rkuiper/encore/pkg/metrics"
)

// attachmentDisposition asks the browser to download the payload as a
// file instead of rendering it inline.
const attachmentDisposition = `attachment; filename="all_bands.json"`

// AllBandsDependencies defines the interface for the full-dataset dump.
type AllBandsDependencies interface {
	All(ctx context.Context) []Performance
}

// AllBandsHandler handles full-dataset download requests.
type AllBandsHandler struct {
	deps AllBandsDependencies
}

// NewAllBandsHandler creates a new all-bands handler.
func NewAllBandsHandler(deps AllBandsDependencies) *AllBandsHandler {
	return &AllBandsHandler{deps: deps}
}

// HandleGetAllBands handles GET /api/all-bands requests. The response is
// the complete dataset, order-stable across calls within one process
// lifetime, served with a Content-Disposition attachment header.
func (h *AllBandsHandler) HandleGetAllBands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Disposition", attachmentDisposition)
	metrics.RecordDownload()
	writeJSON(w, http.StatusOK, h.deps.All(r.Context()))
}
