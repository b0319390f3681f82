package grow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mager/bloom/bloom"
	"github.com/mager/bloom/garden"
	"github.com/mager/bloom/middleware"
)

// Grower grows the garden for a search query.
type Grower interface {
	Grow(ctx context.Context, query string) (*garden.Garden, error)
}

// GrowHandler is an http.Handler
type GrowHandler struct {
	log    *zap.SugaredLogger
	grower Grower
}

func (*GrowHandler) Pattern() string {
	return "/grow"
}

// NewGrowHandler builds a new GrowHandler.
func NewGrowHandler(log *zap.SugaredLogger, svc *garden.Service) *GrowHandler {
	return newGrowHandler(log, svc)
}

func newGrowHandler(log *zap.SugaredLogger, g Grower) *GrowHandler {
	return &GrowHandler{log: log, grower: g}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Grow
// @Summary Grow the garden of a track
// @Produce json
// @Success 200 {object} garden.Garden
// @Router /grow [get]
// @Param track query string true "Search query"
func (h *GrowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	query := r.URL.Query().Get("track")
	if query == "" {
		writeError(w, http.StatusBadRequest, "track is required")
		return
	}

	g, err := h.grower.Grow(r.Context(), query)
	if err != nil {
		code := StatusCode(err)
		h.log.Errorw("Failed to grow garden",
			"request_id", middleware.GetRequestID(r.Context()),
			"query", query,
			"status", code,
			"error", err,
		)
		writeError(w, code, err.Error())
		return
	}

	json.NewEncoder(w).Encode(g)
}

// StatusCode maps a garden error onto an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, bloom.ErrNoMatch):
		return http.StatusNotFound
	case errors.Is(err, bloom.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, bloom.ErrMalformedRecord):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}
