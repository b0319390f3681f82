package musicbrainz

import (
	"context"
	"sort"

	"github.com/mager/musicbrainz-go/musicbrainz"
	"github.com/pkg/errors"
)

const maxGenres = 10

type MusicbrainzClient struct {
	Client *musicbrainz.MusicbrainzClient
}

func ProvideMusicbrainz() *MusicbrainzClient {
	var c MusicbrainzClient
	c.Client = musicbrainz.NewMusicbrainzClient().
		WithUserAgent("bloom", "1.0.0", "https://github.com/mager/bloom")

	return &c
}

// Genres returns the most voted genres of the first recording with the
// given ISRC.
func (c *MusicbrainzClient) Genres(ctx context.Context, isrc string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recs, err := c.Client.SearchRecordingsByISRC(musicbrainz.SearchRecordingsByISRCRequest{
		ISRC: isrc,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "search recordings by isrc %s", isrc)
	}
	if recs.Count < 1 || len(recs.Recordings) == 0 {
		return nil, nil
	}

	id := recs.Recordings[0].ID
	recording, err := c.Client.GetRecording(musicbrainz.GetRecordingRequest{
		ID:       id,
		Includes: []musicbrainz.Include{"artist-credits", "genres"},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get recording %s", id)
	}

	return genresForRecording(recording.Recording), nil
}

type genreCount struct {
	Name  string
	Count int
}

// genresForRecording ranks the recording's own genres, falling back to the
// votes summed across its credited artists.
func genresForRecording(rec musicbrainz.Recording) []string {
	var counts []genreCount
	if rec.Genres != nil {
		for _, g := range *rec.Genres {
			counts = append(counts, genreCount{Name: g.Name, Count: g.Count})
		}
	}
	if len(counts) > 0 || rec.ArtistCredits == nil {
		return topGenres(counts)
	}

	byName := make(map[string]int)
	var names []string
	for _, credit := range *rec.ArtistCredits {
		if credit.Artist == nil || credit.Artist.Genres == nil {
			continue
		}
		for _, g := range *credit.Artist.Genres {
			if _, ok := byName[g.Name]; !ok {
				names = append(names, g.Name)
			}
			byName[g.Name] += g.Count
		}
	}
	for _, name := range names {
		counts = append(counts, genreCount{Name: name, Count: byName[name]})
	}
	return topGenres(counts)
}

// topGenres returns up to maxGenres names, most voted first.
func topGenres(counts []genreCount) []string {
	if len(counts) == 0 {
		return nil
	}

	sorted := append([]genreCount(nil), counts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	genres := make([]string, 0, maxGenres)
	for i := 0; i < maxGenres && i < len(sorted); i++ {
		genres = append(genres, sorted[i].Name)
	}
	return genres
}

var Options = ProvideMusicbrainz
