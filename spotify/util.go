package spotify

import (
	"strings"

	spot "github.com/zmb3/spotify/v2"

	"github.com/mager/bloom/bloom"
)

// GetFirstArtist returns the first artist
func GetFirstArtist(artists []spot.SimpleArtist) string {
	if len(artists) == 0 {
		return "Various Artists"
	}

	return artists[0].Name
}

// ExtractID returns the id part of a spotify:track:<id> URI
func ExtractID(uri spot.URI) spot.ID {
	parts := strings.Split(string(uri), ":")
	return spot.ID(parts[len(parts)-1])
}

// MapTrack maps a Spotify track onto a bloom track.
func MapTrack(ft spot.FullTrack) bloom.Track {
	id := ft.ID
	if id == "" && ft.URI != "" {
		id = ExtractID(ft.URI)
	}

	return bloom.Track{
		ID:     string(id),
		Name:   ft.Name,
		Artist: GetFirstArtist(ft.Artists),
		ISRC:   ft.ExternalIDs["isrc"],
		Source: source,
	}
}

// MapAnalysis copies the section, bar and segment series out of a Spotify
// audio analysis, in the order Spotify returned them.
func MapAnalysis(aa *spot.AudioAnalysis) *bloom.Analysis {
	a := &bloom.Analysis{
		Sections: make([]bloom.RawSection, 0, len(aa.Sections)),
		Bars:     make([]bloom.RawBar, 0, len(aa.Bars)),
		Segments: make([]bloom.RawSegment, 0, len(aa.Segments)),
	}

	for _, s := range aa.Sections {
		a.Sections = append(a.Sections, bloom.RawSection{
			Start:      bloom.Float(s.Start),
			Duration:   bloom.Float(s.Duration),
			Loudness:   s.Loudness,
			Confidence: s.Confidence,
			Key:        bloom.Int(int(s.Key)),
		})
	}
	for _, b := range aa.Bars {
		a.Bars = append(a.Bars, bloom.RawBar{
			Start:    bloom.Float(b.Start),
			Duration: bloom.Float(b.Duration),
		})
	}
	for _, s := range aa.Segments {
		a.Segments = append(a.Segments, bloom.RawSegment{
			Start:    bloom.Float(s.Start),
			Duration: bloom.Float(s.Duration),
			Pitches:  append([]float64(nil), s.Pitches...),
		})
	}

	return a
}
