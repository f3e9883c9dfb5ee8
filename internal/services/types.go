// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"strings"

	"github.com/desertthunder/playback/internal/models"
)

type followers struct {
	Total int `json:"total"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
//
// Genres, Followers and Images are only populated on full artist objects
// (e.g. the followed-artists endpoint); track listings carry simplified
// artists with name and ids only.
type SpotifyArtist struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Genres       []string       `json:"genres"`
	Popularity   int            `json:"popularity"`
	Followers    followers      `json:"followers"`
	Images       []SpotifyImage `json:"images"`
	ExternalURLs externalURLs   `json:"external_urls"`
	URI          string         `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
	URI    string         `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	DurationMS   int             `json:"duration_ms"`
	Popularity   int             `json:"popularity"`
	PreviewURL   *string         `json:"preview_url"`
	ExternalURLs externalURLs    `json:"external_urls"`
	URI          string          `json:"uri"`
}

// SpotifyTopTracks represents the paginated top-tracks response.
type SpotifyTopTracks struct {
	Items []SpotifyTrack `json:"items"`
	Total int            `json:"total"`
}

// SpotifyPlaybackState represents the currently-playing response.
//
// Item is null when nothing is playing even though the request succeeded.
type SpotifyPlaybackState struct {
	ProgressMS int           `json:"progress_ms"`
	IsPlaying  bool          `json:"is_playing"`
	Item       *SpotifyTrack `json:"item"`
}

// SpotifyFollowedArtists represents the followed-artists (me/following) response.
type SpotifyFollowedArtists struct {
	Artists struct {
		Total int             `json:"total"`
		Items []SpotifyArtist `json:"items"`
	} `json:"artists"`
}

// joinArtistNames flattens a track's artists into a comma-separated string.
func joinArtistNames(artists []SpotifyArtist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// firstImageURL returns the URL of the first image, or nil when the
// provider returned no images at all.
func firstImageURL(images []SpotifyImage) *string {
	if len(images) == 0 {
		return nil
	}
	url := images[0].URL
	return &url
}

// projectTrack normalizes a provider track into the flat [models.Track] shape.
func projectTrack(t SpotifyTrack) models.Track {
	return models.Track{
		Name:        t.Name,
		Artist:      joinArtistNames(t.Artists),
		Album:       t.Album.Name,
		AlbumArt:    firstImageURL(t.Album.Images),
		DurationMS:  t.DurationMS,
		Popularity:  t.Popularity,
		URI:         t.URI,
		TrackID:     t.ID,
		ExternalURL: t.ExternalURLs.Spotify,
		PreviewURL:  t.PreviewURL,
	}
}

// projectPlaying normalizes a playback state with a populated item.
func projectPlaying(state SpotifyPlaybackState) models.NowPlaying {
	t := state.Item
	return models.NowPlaying{
		Playing: true,
		Track: &models.PlayingTrack{
			Name:        t.Name,
			Artist:      joinArtistNames(t.Artists),
			Album:       t.Album.Name,
			AlbumArt:    firstImageURL(t.Album.Images),
			DurationMS:  t.DurationMS,
			ProgressMS:  state.ProgressMS,
			URI:         t.URI,
			ExternalURL: t.ExternalURLs.Spotify,
		},
	}
}

// projectArtist normalizes a full artist object into [models.Artist].
func projectArtist(a SpotifyArtist) models.Artist {
	genres := a.Genres
	if genres == nil {
		genres = []string{}
	}
	return models.Artist{
		Name:        a.Name,
		Genres:      genres,
		Popularity:  a.Popularity,
		Followers:   a.Followers.Total,
		Image:       firstImageURL(a.Images),
		ExternalURL: a.ExternalURLs.Spotify,
		URI:         a.URI,
	}
}
