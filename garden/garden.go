// Package garden grows a garden for a track: it resolves a search query,
// fetches the track's analysis (through the cache when one is configured),
// runs the analysis pipeline and enriches the track metadata.
package garden

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mager/bloom/analysis"
	"github.com/mager/bloom/bloom"
)

// TrackResolver finds the single best track for a free-text query.
type TrackResolver interface {
	Resolve(ctx context.Context, query string) (bloom.Track, error)
}

// AnalysisProvider fetches the raw analysis for a track id.
type AnalysisProvider interface {
	FetchAnalysis(ctx context.Context, trackID string) (*bloom.Analysis, error)
}

// AnalysisCache stores raw analyses by track id.
type AnalysisCache interface {
	Get(ctx context.Context, trackID string) (*bloom.Analysis, error)
	Put(ctx context.Context, trackID string, a *bloom.Analysis) error
}

// Enricher adds genres to a resolved track.
type Enricher interface {
	Genres(ctx context.Context, isrc string) ([]string, error)
}

// Garden is everything the front end needs to draw one track.
type Garden struct {
	Track   bloom.Track    `json:"track"`
	Flowers []bloom.Flower `json:"flowers"`
	Stats   bloom.Stats    `json:"stats"`
}

// Service grows gardens. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	log      *zap.SugaredLogger
	resolver TrackResolver
	provider AnalysisProvider
	cache    AnalysisCache
	enricher Enricher
	opts     analysis.Options
}

// NewService builds a Service. cache and enricher may be nil.
func NewService(
	log *zap.SugaredLogger,
	resolver TrackResolver,
	provider AnalysisProvider,
	cache AnalysisCache,
	enricher Enricher,
	opts analysis.Options,
) *Service {
	return &Service{
		log:      log,
		resolver: resolver,
		provider: provider,
		cache:    cache,
		enricher: enricher,
		opts:     opts,
	}
}

// Grow resolves query to a track and grows its garden.
func (s *Service) Grow(ctx context.Context, query string) (*Garden, error) {
	track, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}
	s.log.Infow("Resolved track", "query", query, "id", track.ID, "name", track.Name, "artist", track.Artist)

	return s.GrowTrack(ctx, track)
}

// Track resolves query and enriches the track without fetching its analysis.
func (s *Service) Track(ctx context.Context, query string) (bloom.Track, error) {
	track, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return bloom.Track{}, err
	}
	s.enrich(ctx, &track)
	return track, nil
}

// GrowTrack grows the garden of an already resolved track.
func (s *Service) GrowTrack(ctx context.Context, track bloom.Track) (*Garden, error) {
	a, cached, err := s.analysis(ctx, track.ID)
	if err != nil {
		return nil, err
	}

	res, err := analysis.Build(*a, s.opts)
	if err != nil {
		s.log.Errorw("Malformed analysis", "id", track.ID, "cached", cached, "error", err)
		return nil, err
	}
	// Only analyses the pipeline accepts are cached.
	if !cached {
		s.store(ctx, track.ID, a)
	}
	if res.Stats.UnmappedBars > 0 || res.Stats.DroppedNotes > 0 {
		s.log.Warnw("Dropped records outside the track",
			"id", track.ID,
			"unmappedBars", res.Stats.UnmappedBars,
			"droppedNotes", res.Stats.DroppedNotes,
		)
	}

	s.enrich(ctx, &track)

	s.log.Infow("Grew garden",
		"id", track.ID,
		"sections", res.Stats.NumberSections,
		"bars", res.Stats.NumberBars,
	)

	return &Garden{Track: track, Flowers: res.Flowers, Stats: res.Stats}, nil
}

// analysis returns the raw analysis of a track and whether it came from
// the cache.
func (s *Service) analysis(ctx context.Context, trackID string) (*bloom.Analysis, bool, error) {
	if s.cache != nil {
		a, err := s.cache.Get(ctx, trackID)
		if err == nil {
			s.log.Infow("Analysis cache hit", "id", trackID)
			return a, true, nil
		}
		if !errors.Is(err, bloom.ErrCacheMiss) {
			s.log.Warnw("Analysis cache read failed", "id", trackID, "error", err)
		}
	}

	start := time.Now()
	a, err := s.provider.FetchAnalysis(ctx, trackID)
	if err != nil {
		s.log.Errorw("Failed to fetch analysis", "id", trackID, "error", err)
		return nil, false, err
	}
	s.log.Infow("Fetched analysis",
		"id", trackID,
		"sections", len(a.Sections),
		"bars", len(a.Bars),
		"segments", len(a.Segments),
		"took", time.Since(start),
	)

	return a, false, nil
}

func (s *Service) store(ctx context.Context, trackID string, a *bloom.Analysis) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, trackID, a); err != nil {
		s.log.Warnw("Analysis cache write failed", "id", trackID, "error", err)
	}
}

func (s *Service) enrich(ctx context.Context, track *bloom.Track) {
	if s.enricher == nil || track.ISRC == "" {
		return
	}
	genres, err := s.enricher.Genres(ctx, track.ISRC)
	if err != nil {
		s.log.Warnw("Failed to fetch genres", "isrc", track.ISRC, "error", err)
		return
	}
	track.Genres = genres
}
