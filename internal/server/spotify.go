package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playback/internal/models"
	"github.com/desertthunder/playback/internal/services"
	"github.com/desertthunder/playback/internal/shared"
)

// SpotifyHandler serves the normalized resource and playback-control
// endpoints, forwarding each request to the provider through the gateway.
type SpotifyHandler struct {
	service services.Service
	auth    *services.Authenticator
	logger  *log.Logger
}

// NewSpotifyHandler creates a [SpotifyHandler].
func NewSpotifyHandler(service services.Service, auth *services.Authenticator, logger *log.Logger) *SpotifyHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SpotifyHandler{
		service: service,
		auth:    auth,
		logger:  shared.WithLogger(logger, "handler", "spotify"),
	}
}

// Routes returns the HTTP route patterns this handler serves.
func (h *SpotifyHandler) Routes() []string {
	return []string{
		"GET /spotify",
		"GET /spotify/top-tracks",
		"GET /spotify/now-playing",
		"GET /spotify/artists",
		"POST /spotify/pause",
		"POST /spotify/play/",
		"POST /spotify/play/{track_id}",
	}
}

func (h *SpotifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.authenticated(w, r) {
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/spotify":
		h.index(w, r)
	case r.URL.Path == "/spotify/top-tracks":
		h.topTracks(w, r)
	case r.URL.Path == "/spotify/now-playing":
		h.nowPlaying(w, r)
	case r.URL.Path == "/spotify/artists":
		h.artists(w, r)
	case r.URL.Path == "/spotify/pause":
		h.pause(w, r)
	case r.PathValue("track_id") != "" || r.URL.Path == "/spotify/play/":
		h.play(w, r)
	default:
		http.NotFound(w, r)
	}
}

// authenticated gates every resource route: without a stored credential
// (or with a blank access token) the caller is pointed at /admin/auth.
func (h *SpotifyHandler) authenticated(w http.ResponseWriter, r *http.Request) bool {
	cred, err := h.auth.Status()
	if err != nil {
		renderError(w, r, h.logger, err)
		return false
	}

	if cred == nil || !cred.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "Not authenticated",
			Message: "Please authenticate with Spotify first",
			AuthURL: requestBaseURL(r) + "/admin/auth",
		})
		return false
	}

	return true
}

// index aggregates all three read projections plus an endpoint directory.
func (h *SpotifyHandler) index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	nowPlaying, err := h.service.NowPlaying(ctx)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	topTracks, err := h.service.TopTracks(ctx, 10)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	artists, err := h.service.FollowedArtists(ctx, 20)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	base := requestBaseURL(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"now_playing":      nowPlaying,
		"top_tracks":       topTracks,
		"followed_artists": artists,
		"endpoints": map[string]string{
			"top_tracks":  base + "/spotify/top-tracks",
			"now_playing": base + "/spotify/now-playing",
			"artists":     base + "/spotify/artists",
			"pause":       "POST " + base + "/spotify/pause",
			"play":        "POST " + base + "/spotify/play/:track_id",
		},
	})
}

func (h *SpotifyHandler) topTracks(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.TopTracks(r.Context(), 10)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *SpotifyHandler) nowPlaying(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.NowPlaying(r.Context())
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *SpotifyHandler) artists(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.FollowedArtists(r.Context(), 20)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// pause and play return 200 on success and 422 on a logical playback
// failure (no device, missing entitlement); transport and auth failures go
// through the taxonomy mapping instead.
func (h *SpotifyHandler) pause(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.PausePlayback(r.Context())
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	writePlaybackResult(w, result)
}

func (h *SpotifyHandler) play(w http.ResponseWriter, r *http.Request) {
	trackID := r.PathValue("track_id")
	if trackID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid request",
			Message: "Track ID is required",
		})
		return
	}

	result, err := h.service.PlayTrack(r.Context(), trackID)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	writePlaybackResult(w, result)
}

func writePlaybackResult(w http.ResponseWriter, result *models.PlaybackResult) {
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// Routes returns the HTTP route patterns this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"GET /up"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "up"})
}
