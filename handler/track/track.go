package track

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mager/bloom/bloom"
	"github.com/mager/bloom/garden"
	"github.com/mager/bloom/handler/grow"
	"github.com/mager/bloom/middleware"
)

// Finder resolves a search query to an enriched track.
type Finder interface {
	Track(ctx context.Context, query string) (bloom.Track, error)
}

// GetTrackHandler is an http.Handler
type GetTrackHandler struct {
	log    *zap.SugaredLogger
	finder Finder
}

func (*GetTrackHandler) Pattern() string {
	return "/track"
}

// NewGetTrackHandler builds a new GetTrackHandler.
func NewGetTrackHandler(log *zap.SugaredLogger, svc *garden.Service) *GetTrackHandler {
	return &GetTrackHandler{log: log, finder: svc}
}

type GetTrackResponse struct {
	Track bloom.Track `json:"track"`
}

// Get track
// @Summary Get track
// @Description Resolve a search query to a track, with genres when known
// @Produce json
// @Success 200 {object} GetTrackResponse
// @Router /track [get]
// @Param q query string true "Search query"
func (h *GetTrackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	query := r.URL.Query().Get("q")
	if query == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(grow.ErrorResponse{Error: "q is required"})
		return
	}

	track, err := h.finder.Track(r.Context(), query)
	if err != nil {
		code := grow.StatusCode(err)
		h.log.Errorw("Failed to resolve track",
			"request_id", middleware.GetRequestID(r.Context()),
			"query", query,
			"error", err,
		)
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(grow.ErrorResponse{Error: err.Error()})
		return
	}

	h.log.Infow("Resolved track", "query", query, "id", track.ID, "genres", len(track.Genres))
	json.NewEncoder(w).Encode(GetTrackResponse{Track: track})
}
