package server

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mager/bloom/analysis"
	"github.com/mager/bloom/config"
	"github.com/mager/bloom/database"
	"github.com/mager/bloom/firestore"
	"github.com/mager/bloom/garden"
	"github.com/mager/bloom/handler/grow"
	"github.com/mager/bloom/handler/health"
	"github.com/mager/bloom/handler/track"
	"github.com/mager/bloom/logger"
	"github.com/mager/bloom/musicbrainz"
	"github.com/mager/bloom/spotify"
)

// Module provides everything the HTTP server needs.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(NewHTTPServer, fx.ParamTags(``, ``, ``, `group:"routes"`)),
		config.Options,
		logger.Options,
		spotify.Options,
		ProvideEnricher,
		ProvideCache,
		ProvideGarden,

		AsRoute(health.NewHealthHandler),
		AsRoute(grow.NewGrowHandler),
		AsRoute(grow.NewStreamHandler),
		AsRoute(track.NewGetTrackHandler),
	),
	fx.Invoke(func(*http.Server) {}),
)

// ProvideEnricher provides the MusicBrainz genre lookup, or nil when it is
// turned off.
func ProvideEnricher(cfg config.Config) garden.Enricher {
	if !cfg.Musicbrainz {
		return nil
	}
	return musicbrainz.ProvideMusicbrainz()
}

// ProvideCache provides the analysis cache picked by BLOOM_CACHEBACKEND, or
// nil for none.
func ProvideCache(lc fx.Lifecycle, cfg config.Config, log *zap.SugaredLogger) (garden.AnalysisCache, error) {
	switch cfg.CacheBackend {
	case config.CachePostgres:
		db, err := database.ProvideDatabase(log, cfg)
		if err != nil {
			return nil, err
		}
		cache := database.NewCache(db, cfg.CacheTable, cfg.CacheTTL)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return cache.Migrate(ctx)
			},
			OnStop: func(ctx context.Context) error {
				return db.Close()
			},
		})
		log.Infow("Using postgres analysis cache", "table", cfg.CacheTable, "ttl", cfg.CacheTTL)
		return cache, nil

	case config.CacheFirestore:
		client, err := firestore.ProvideDB(cfg, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		log.Infow("Using firestore analysis cache", "collection", cfg.FirestoreCollection, "ttl", cfg.CacheTTL)
		return firestore.NewCache(client, cfg.FirestoreCollection, cfg.CacheTTL), nil

	default:
		return nil, nil
	}
}

// ProvideGarden provides the garden service backed by Spotify.
func ProvideGarden(
	log *zap.SugaredLogger,
	cfg config.Config,
	spotifyClient *spotify.SpotifyClient,
	cache garden.AnalysisCache,
	enricher garden.Enricher,
) *garden.Service {
	if !spotifyClient.Configured() {
		log.Warn("Spotify credentials are not set, track lookups will fail")
	}

	return garden.NewService(log, spotifyClient, spotifyClient, cache, enricher, analysis.Options{
		TrimUnmatchedSections: cfg.TrimUnmatchedSections,
	})
}
