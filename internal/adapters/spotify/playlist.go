package spotify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
)

// CreatePlaylist creates a playlist under the authenticated user and returns
// its ID plus the external web URL when the provider supplies one.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string, public bool) (domain.Playlist, error) {
	userID, err := c.currentUserID(ctx)
	if err != nil {
		return domain.Playlist{}, err
	}

	body := createPlaylistRequest{Name: name, Public: public, Description: description}
	var created playlistCreatedResponse
	endpoint := fmt.Sprintf("%s/users/%s/playlists", c.baseURL, userID)
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, &created); err != nil {
		return domain.Playlist{}, fmt.Errorf("spotify adapter: create playlist: %w", err)
	}

	return domain.Playlist{
		ID:   created.ID,
		Name: name,
		URL:  created.ExternalURLs["spotify"],
	}, nil
}

// AddTracks appends URIs to a playlist. An empty URI list is a no-op with
// zero network calls. Playlist existence is not verified beyond the status.
func (c *Client) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if len(uris) == 0 {
		return nil
	}

	endpoint := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)
	if err := c.doJSON(ctx, http.MethodPost, endpoint, addTracksRequest{URIs: uris}, nil); err != nil {
		return fmt.Errorf("spotify adapter: add tracks: %w", err)
	}
	return nil
}

// PlaylistCoverURL fetches the playlist's current cover image URL. Spotify
// materializes mosaic covers shortly after tracks land, so an empty result
// is normal early on and not an error.
func (c *Client) PlaylistCoverURL(ctx context.Context, playlistID string) (string, error) {
	endpoint := fmt.Sprintf("%s/playlists/%s/images", c.baseURL, playlistID)
	var images []playlistImage
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &images); err != nil {
		return "", fmt.Errorf("spotify adapter: playlist images: %w", err)
	}
	if len(images) == 0 {
		return "", nil
	}
	return images[0].URL, nil
}
