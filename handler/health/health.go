package health

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mager/bloom/config"
	"github.com/mager/bloom/spotify"
)

// Checker reports whether the Spotify client has app credentials.
type Checker interface {
	Configured() bool
}

// HealthHandler is an http.Handler that reports what the server is wired to.
type HealthHandler struct {
	log     *zap.SugaredLogger
	spotify Checker
	cache   string
}

func (*HealthHandler) Pattern() string {
	return "/health"
}

func (*HealthHandler) Public() bool {
	return true
}

// NewHealthHandler builds a new HealthHandler.
func NewHealthHandler(log *zap.SugaredLogger, cfg config.Config, spotifyClient *spotify.SpotifyClient) *HealthHandler {
	return &HealthHandler{
		log:     log,
		spotify: spotifyClient,
		cache:   cfg.CacheBackend,
	}
}

type Response struct {
	Server  bool   `json:"server"`
	Spotify bool   `json:"spotify"`
	Cache   string `json:"cache"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.log.Info("health check")

	resp := Response{
		Server:  true,
		Spotify: h.spotify.Configured(),
		Cache:   h.cache,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
