package spotify

// userProfile is the subset of /me we care about.
type userProfile struct {
	ID string `json:"id"`
}

type recommendedTrack struct {
	ID  string `json:"id"`
	URI string `json:"uri"`
}

type recommendationsResponse struct {
	Tracks []recommendedTrack `json:"tracks"`
}

type artistSearchResponse struct {
	Artists struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	} `json:"artists"`
}

type trackSearchResponse struct {
	Tracks struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	} `json:"tracks"`
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Public      bool   `json:"public"`
	Description string `json:"description,omitempty"`
}

type playlistCreatedResponse struct {
	ID           string            `json:"id"`
	ExternalURLs map[string]string `json:"external_urls"`
}

type addTracksRequest struct {
	URIs []string `json:"uris"`
}

type playlistImage struct {
	URL string `json:"url"`
}
