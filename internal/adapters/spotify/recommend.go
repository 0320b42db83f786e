package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
	"github.com/emotionplay/emotionplay-server/internal/core/ports"
)

const (
	maxArtistSeeds = 3
	maxTrackSeeds  = 2
	maxGenreSeeds  = 5
	minPopularity  = 20
)

// RecommendTrackURIs requests track recommendations biased toward the
// mood's audio feature targets. Preferred genres take priority; otherwise
// artist/track seeds are resolved best-effort via search, and the mood's
// default genres are the last resort. URIs come back in server order.
func (c *Client) RecommendTrackURIs(ctx context.Context, mood domain.Mood, opts ports.RecommendOptions) ([]string, error) {
	limit := opts.Limit
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	ft := domain.Features(mood)
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("min_popularity", strconv.Itoa(minPopularity))
	params.Set("target_valence", formatTarget(ft.Valence.Mid()))
	params.Set("target_energy", formatTarget(ft.Energy.Mid()))
	params.Set("target_danceability", formatTarget(ft.Danceability.Mid()))
	params.Set("min_tempo", formatTempo(ft.Tempo.Min))
	params.Set("max_tempo", formatTempo(ft.Tempo.Max))

	if genres := dedupeLower(opts.Genres, maxGenreSeeds); len(genres) > 0 {
		params.Set("seed_genres", strings.Join(genres, ","))
	} else {
		artistIDs := c.resolveArtistSeeds(ctx, opts.SeedArtists)
		trackIDs := c.resolveTrackSeeds(ctx, opts.SeedTracks)
		if len(artistIDs) > 0 {
			params.Set("seed_artists", strings.Join(artistIDs, ","))
		}
		if len(trackIDs) > 0 {
			params.Set("seed_tracks", strings.Join(trackIDs, ","))
		}
		if len(artistIDs) == 0 && len(trackIDs) == 0 {
			fallback := dedupeLower(domain.DefaultGenres(mood), maxGenreSeeds)
			params.Set("seed_genres", strings.Join(fallback, ","))
		}
	}

	var decoded recommendationsResponse
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/recommendations?"+params.Encode(), nil, &decoded); err != nil {
		return nil, fmt.Errorf("spotify adapter: recommendations: %w", err)
	}

	uris := make([]string, 0, len(decoded.Tracks))
	for _, t := range decoded.Tracks {
		uris = append(uris, t.URI)
	}
	return uris, nil
}

// resolveArtistSeeds maps artist names to provider IDs via search.
// Unresolved names are dropped silently; at most maxArtistSeeds survive.
func (c *Client) resolveArtistSeeds(ctx context.Context, names []string) []string {
	var ids []string
	for _, name := range names {
		if len(ids) >= maxArtistSeeds {
			break
		}
		if strings.TrimSpace(name) == "" {
			continue
		}
		id, err := c.searchArtistID(ctx, name)
		if err != nil || id == "" {
			c.logger.Debug("artist seed unresolved", "artist", name, "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// resolveTrackSeeds maps "Title – Artist" labels to provider IDs via search.
func (c *Client) resolveTrackSeeds(ctx context.Context, labels []string) []string {
	var ids []string
	for _, label := range labels {
		if len(ids) >= maxTrackSeeds {
			break
		}
		title, artist := splitTrackLabel(label)
		if title == "" {
			continue
		}
		id, err := c.searchTrackID(ctx, title, artist)
		if err != nil || id == "" {
			c.logger.Debug("track seed unresolved", "track", label, "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (c *Client) searchArtistID(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("q", name)
	params.Set("type", "artist")
	params.Set("limit", "1")

	var decoded artistSearchResponse
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil, &decoded); err != nil {
		return "", err
	}
	if len(decoded.Artists.Items) == 0 {
		return "", nil
	}
	return decoded.Artists.Items[0].ID, nil
}

func (c *Client) searchTrackID(ctx context.Context, title, artist string) (string, error) {
	query := "track:" + title
	if artist != "" {
		query += " artist:" + artist
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", "1")

	var decoded trackSearchResponse
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil, &decoded); err != nil {
		return "", err
	}
	if len(decoded.Tracks.Items) == 0 {
		return "", nil
	}
	return decoded.Tracks.Items[0].ID, nil
}

// splitTrackLabel splits a "Title – Artist" label, tolerating a plain
// hyphen separator. A label without a separator is treated as all title.
func splitTrackLabel(label string) (title, artist string) {
	for _, sep := range []string{" – ", " - "} {
		if idx := strings.Index(label, sep); idx != -1 {
			return strings.TrimSpace(label[:idx]), strings.TrimSpace(label[idx+len(sep):])
		}
	}
	return strings.TrimSpace(label), ""
}

func dedupeLower(values []string, max int) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) >= max {
			break
		}
	}
	return out
}

func formatTarget(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTempo(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}
