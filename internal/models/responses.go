package models

import "time"

// Track is the normalized projection of a Spotify track.
//
// AlbumArt is nil when the provider returned no album images.
type Track struct {
	Name        string  `json:"name"`
	Artist      string  `json:"artist"`
	Album       string  `json:"album"`
	AlbumArt    *string `json:"album_art"`
	DurationMS  int     `json:"duration_ms"`
	Popularity  int     `json:"popularity"`
	URI         string  `json:"uri"`
	TrackID     string  `json:"track_id"`
	ExternalURL string  `json:"external_url"`
	PreviewURL  *string `json:"preview_url"`
}

// TrackList is a page of the user's top tracks.
type TrackList struct {
	Total  int     `json:"total"`
	Tracks []Track `json:"tracks"`
}

// PlayingTrack is the track portion of a now-playing response.
type PlayingTrack struct {
	Name        string  `json:"name"`
	Artist      string  `json:"artist"`
	Album       string  `json:"album"`
	AlbumArt    *string `json:"album_art"`
	DurationMS  int     `json:"duration_ms"`
	ProgressMS  int     `json:"progress_ms"`
	URI         string  `json:"uri"`
	ExternalURL string  `json:"external_url"`
}

// NowPlaying is a tagged playback-state projection: either nothing is
// playing (Playing false, Message set) or a track is playing.
type NowPlaying struct {
	Playing bool          `json:"playing"`
	Message string        `json:"message,omitempty"`
	Track   *PlayingTrack `json:"track,omitempty"`
}

// NotPlaying returns the canonical "nothing playing" projection.
func NotPlaying() NowPlaying {
	return NowPlaying{Playing: false, Message: "No track currently playing"}
}

// Artist is the normalized projection of a followed artist.
type Artist struct {
	Name        string   `json:"name"`
	Genres      []string `json:"genres"`
	Popularity  int      `json:"popularity"`
	Followers   int      `json:"followers"`
	Image       *string  `json:"image"`
	ExternalURL string   `json:"external_url"`
	URI         string   `json:"uri"`
}

// ArtistList is the user's followed artists with the provider's total.
type ArtistList struct {
	Total   int      `json:"total"`
	Artists []Artist `json:"artists"`
}

// PlaybackResult is the normalized outcome of a playback-control call
// (pause or play).
type PlaybackResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
	TrackURI string `json:"track_uri,omitempty"`
}

// AuthResult is returned by the OAuth callback endpoint on success.
type AuthResult struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}
