package spotify

import (
	"context"

	"github.com/pkg/errors"
	spot "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/mager/bloom/bloom"
	"github.com/mager/bloom/config"
)

const source = "spotify"

// API is the part of the Spotify Web API bloom talks to.
type API interface {
	Search(ctx context.Context, query string, t spot.SearchType, opts ...spot.RequestOption) (*spot.SearchResult, error)
	GetAudioAnalysis(ctx context.Context, id spot.ID) (*spot.AudioAnalysis, error)
}

type SpotifyClient struct {
	Client API
	ID     string
	Secret string
	log    *zap.SugaredLogger
}

// ProvideSpotify builds an app-authenticated Spotify client. Tokens are
// fetched with the client credentials flow and refreshed on demand.
func ProvideSpotify(cfg config.Config, log *zap.SugaredLogger) *SpotifyClient {
	log.Info("setting up spotify client")

	cc := &clientcredentials.Config{
		ClientID:     cfg.SpotifyID,
		ClientSecret: cfg.SpotifySecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	httpClient := cc.Client(context.Background())

	return &SpotifyClient{
		Client: spot.New(httpClient, spot.WithRetry(true)),
		ID:     cfg.SpotifyID,
		Secret: cfg.SpotifySecret,
		log:    log,
	}
}

// NewSpotifyClient wraps an existing API, e.g. a fake in tests.
func NewSpotifyClient(api API, log *zap.SugaredLogger) *SpotifyClient {
	return &SpotifyClient{Client: api, log: log}
}

// Configured reports whether app credentials are set.
func (c *SpotifyClient) Configured() bool {
	return c.ID != "" && c.Secret != ""
}

// Resolve returns the top track for a search query.
func (c *SpotifyClient) Resolve(ctx context.Context, query string) (bloom.Track, error) {
	results, err := c.Client.Search(ctx, query, spot.SearchTypeTrack, spot.Limit(1))
	if err != nil {
		return bloom.Track{}, errors.Wrapf(bloom.ErrUpstreamUnavailable, "search %q: %v", query, err)
	}
	if results == nil || results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		return bloom.Track{}, errors.Wrapf(bloom.ErrNoMatch, "search %q", query)
	}

	return MapTrack(results.Tracks.Tracks[0]), nil
}

// FetchAnalysis returns the raw audio analysis of a track.
func (c *SpotifyClient) FetchAnalysis(ctx context.Context, trackID string) (*bloom.Analysis, error) {
	aa, err := c.Client.GetAudioAnalysis(ctx, spot.ID(trackID))
	if err != nil {
		return nil, errors.Wrapf(bloom.ErrUpstreamUnavailable, "audio analysis %s: %v", trackID, err)
	}
	if aa == nil {
		return nil, errors.Wrapf(bloom.ErrUpstreamUnavailable, "audio analysis %s: empty response", trackID)
	}

	return MapAnalysis(aa), nil
}

var Options = ProvideSpotify
