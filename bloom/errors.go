package bloom

import "errors"

var (
	// ErrNoMatch is returned when a search query resolves to no track.
	ErrNoMatch = errors.New("no matching track")
	// ErrUpstreamUnavailable is returned when the analysis provider fails.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMalformedRecord is returned for raw records that break the minimal record contract.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrCacheMiss is returned by analysis caches with no fresh entry.
	ErrCacheMiss = errors.New("cache miss")
)
