// Spotify API implementation of [Service]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playback/internal/models"
	"github.com/desertthunder/playback/internal/shared"
)

const (
	spotifyBaseURL = "https://api.spotify.com/v1"

	// requestTimeout bounds every outbound provider call so the credential
	// manager cannot stall request handlers indefinitely.
	requestTimeout = 10 * time.Second

	defaultTrackLimit  = 10
	defaultArtistLimit = 20
)

// SpotifyService implements [Service] against the Spotify Web API.
//
// Every call obtains a valid access token from the [Authenticator] first
// (which may trigger a refresh round-trip) and classifies provider failures
// into the shared error taxonomy. Callers above this layer branch on the
// taxonomy, never on raw status codes.
type SpotifyService struct {
	auth       *Authenticator
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewSpotifyService creates a Spotify service backed by the given authenticator.
func NewSpotifyService(auth *Authenticator, logger *log.Logger) *SpotifyService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &SpotifyService{
		auth:       auth,
		baseURL:    spotifyBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     shared.WithLogger(logger, "component", "spotify"),
	}
}

// apiResponse is a classified 2xx provider response.
type apiResponse struct {
	status int
	body   []byte
}

// noContent reports whether the response carries no usable body
// (204 No Content or an empty successful body).
func (r *apiResponse) noContent() bool {
	return r.status == http.StatusNoContent || len(r.body) == 0
}

func (r *apiResponse) decode(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// call issues an authenticated request to the provider and classifies the
// response. 2xx (204 included) succeeds; 401, 403 and 404 map onto
// [shared.ErrUnauthorized], [shared.ErrForbidden] and [shared.ErrNotFound];
// any other non-2xx wraps [shared.ErrAPIRequest] with the status and raw
// body for diagnostics. There is no retry on any classification.
func (s *SpotifyService) call(ctx context.Context, method, path string, query url.Values, body any) (*apiResponse, error) {
	token, err := s.auth.EnsureAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	apiURL := s.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &apiResponse{status: resp.StatusCode, body: respBody}, nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: status 401, body: %s", shared.ErrUnauthorized, respBody)
	case http.StatusForbidden:
		return nil, fmt.Errorf("%w: status 403, body: %s", shared.ErrForbidden, respBody)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: status 404, body: %s", shared.ErrNotFound, respBody)
	default:
		return nil, fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, respBody)
	}
}

func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// TopTracks retrieves the user's top tracks over the medium term.
func (s *SpotifyService) TopTracks(ctx context.Context, limit int) (*models.TrackList, error) {
	if limit <= 0 {
		limit = defaultTrackLimit
	}

	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", limit))
	query.Set("time_range", "medium_term")

	resp, err := s.call(ctx, http.MethodGet, "/me/top/tracks", query, nil)
	if err != nil {
		return nil, err
	}

	var paged SpotifyTopTracks
	if err := resp.decode(&paged); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(paged.Items))
	for _, item := range paged.Items {
		tracks = append(tracks, projectTrack(item))
	}

	return &models.TrackList{Total: paged.Total, Tracks: tracks}, nil
}

// NowPlaying retrieves the current playback state.
func (s *SpotifyService) NowPlaying(ctx context.Context) (*models.NowPlaying, error) {
	resp, err := s.call(ctx, http.MethodGet, "/me/player/currently-playing", nil, nil)
	if err != nil {
		return nil, err
	}

	if resp.noContent() {
		np := models.NotPlaying()
		return &np, nil
	}

	var state SpotifyPlaybackState
	if err := resp.decode(&state); err != nil {
		return nil, err
	}

	if state.Item == nil {
		np := models.NotPlaying()
		return &np, nil
	}

	np := projectPlaying(state)
	return &np, nil
}

// FollowedArtists retrieves the artists the user follows.
func (s *SpotifyService) FollowedArtists(ctx context.Context, limit int) (*models.ArtistList, error) {
	if limit <= 0 {
		limit = defaultArtistLimit
	}

	query := url.Values{}
	query.Set("type", "artist")
	query.Set("limit", fmt.Sprintf("%d", limit))

	resp, err := s.call(ctx, http.MethodGet, "/me/following", query, nil)
	if err != nil {
		return nil, err
	}

	var following SpotifyFollowedArtists
	if err := resp.decode(&following); err != nil {
		return nil, err
	}

	// An absent items list normalizes to an empty list, never a missing field.
	artists := make([]models.Artist, 0, len(following.Artists.Items))
	for _, item := range following.Artists.Items {
		artists = append(artists, projectArtist(item))
	}

	return &models.ArtistList{Total: following.Artists.Total, Artists: artists}, nil
}

// PausePlayback pauses the active playback device.
//
// A 403 (entitlement gap) and a 404 (no active device) are expected
// conditions for playback control and normalize into the result; every
// other failure propagates as an error.
func (s *SpotifyService) PausePlayback(ctx context.Context) (*models.PlaybackResult, error) {
	_, err := s.call(ctx, http.MethodPut, "/me/player/pause", nil, nil)

	switch {
	case err == nil:
		return &models.PlaybackResult{Success: true, Message: "Playback paused"}, nil
	case errors.Is(err, shared.ErrForbidden):
		return premiumRequired(), nil
	case errors.Is(err, shared.ErrNotFound):
		return noActiveDevice("No active playback device found"), nil
	case errors.Is(err, shared.ErrAPIRequest):
		s.logger.Error("pause failed", "err", err)
		return &models.PlaybackResult{
			Success: false,
			Error:   "Failed to pause",
			Message: "Could not pause playback",
		}, nil
	default:
		return nil, err
	}
}

// PlayTrack starts playback of the given track on the active device.
//
// Bare track ids are qualified to spotify:track: URIs; fully qualified
// spotify: URIs pass through unchanged.
func (s *SpotifyService) PlayTrack(ctx context.Context, trackID string) (*models.PlaybackResult, error) {
	if trackID == "" {
		return nil, fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}

	trackURI := trackID
	if !strings.HasPrefix(trackURI, "spotify:") {
		trackURI = "spotify:track:" + trackURI
	}

	body := map[string][]string{"uris": {trackURI}}
	_, err := s.call(ctx, http.MethodPut, "/me/player/play", nil, body)

	switch {
	case err == nil:
		return &models.PlaybackResult{
			Success:  true,
			Message:  "Track started playing",
			TrackURI: trackURI,
		}, nil
	case errors.Is(err, shared.ErrForbidden):
		return premiumRequired(), nil
	case errors.Is(err, shared.ErrNotFound):
		return noActiveDevice("No active playback device found. Please open Spotify on a device first."), nil
	case errors.Is(err, shared.ErrAPIRequest):
		s.logger.Error("play failed", "track_uri", trackURI, "err", err)
		return &models.PlaybackResult{
			Success: false,
			Error:   "Failed to play",
			Message: "Could not start playback",
		}, nil
	default:
		return nil, err
	}
}

func premiumRequired() *models.PlaybackResult {
	return &models.PlaybackResult{
		Success: false,
		Error:   "Premium required",
		Message: "You need Spotify Premium to control playback",
	}
}

func noActiveDevice(message string) *models.PlaybackResult {
	return &models.PlaybackResult{
		Success: false,
		Error:   "No active device",
		Message: message,
	}
}
