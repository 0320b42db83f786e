package domain

import "errors"

// Playlist is the result of a successful playlist creation call. Immutable
// once returned by the provider.
type Playlist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	CoverURL string `json:"cover_url,omitempty"`
}

func NewPlaylist(id, name string) (*Playlist, error) {
	if id == "" || name == "" {
		return nil, errors.New("domain: invalid argument")
	}
	return &Playlist{ID: id, Name: name}, nil
}
