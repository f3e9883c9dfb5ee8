package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/playback/internal/models"
	"github.com/desertthunder/playback/internal/shared"
	tu "github.com/desertthunder/playback/internal/testing"
)

func newSpotifyRouter(t *testing.T, service *tu.MockService, store *tu.MemStore) *BasicRouter {
	t.Helper()

	auth := testAuthenticator(t, store, "")
	logger := shared.NewLogger(nil)

	router := NewBasicRouter()
	router.Use(Logging(logger))
	router.Handler(NewSpotifyHandler(service, auth, logger))
	router.Handler(&HealthHandler{})
	return router
}

func authedRouter(t *testing.T, service *tu.MockService) *BasicRouter {
	t.Helper()
	return newSpotifyRouter(t, service, &tu.MemStore{Cred: validCred()})
}

func TestSpotifyHandler(t *testing.T) {
	t.Run("resource routes require a stored credential", func(t *testing.T) {
		router := newSpotifyRouter(t, &tu.MockService{}, &tu.MemStore{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/spotify/top-tracks", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}

		var body errorResponse
		decodeBody(t, rec, &body)
		if body.Error != "Not authenticated" {
			t.Errorf("unexpected error %q", body.Error)
		}
		if body.AuthURL != "http://example.com/admin/auth" {
			t.Errorf("expected an absolute auth url, got %q", body.AuthURL)
		}
	})

	t.Run("index aggregates all projections", func(t *testing.T) {
		router := authedRouter(t, &tu.MockService{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/spotify", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body map[string]any
		decodeBody(t, rec, &body)
		for _, key := range []string{"now_playing", "top_tracks", "followed_artists", "endpoints"} {
			if _, ok := body[key]; !ok {
				t.Errorf("expected %q in the index response", key)
			}
		}
	})

	t.Run("top tracks", func(t *testing.T) {
		service := &tu.MockService{
			TopTracksFn: func(ctx context.Context, limit int) (*models.TrackList, error) {
				if limit != 10 {
					t.Errorf("expected default limit 10, got %d", limit)
				}
				return &models.TrackList{Total: 1, Tracks: []models.Track{{Name: "First Song"}}}, nil
			},
		}
		router := authedRouter(t, service)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/spotify/top-tracks", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body models.TrackList
		decodeBody(t, rec, &body)
		if body.Total != 1 || len(body.Tracks) != 1 || body.Tracks[0].Name != "First Song" {
			t.Errorf("unexpected payload %+v", body)
		}
	})

	t.Run("now playing", func(t *testing.T) {
		router := authedRouter(t, &tu.MockService{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/spotify/now-playing", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body models.NowPlaying
		decodeBody(t, rec, &body)
		if body.Playing {
			t.Error("expected the not-playing default")
		}
		if body.Message == "" {
			t.Error("expected a not-playing message")
		}
	})

	t.Run("followed artists", func(t *testing.T) {
		router := authedRouter(t, &tu.MockService{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/spotify/artists", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body models.ArtistList
		decodeBody(t, rec, &body)
		if body.Artists == nil {
			t.Error("expected an empty artist list, never a missing field")
		}
	})

	t.Run("pause", func(t *testing.T) {
		t.Run("success returns 200", func(t *testing.T) {
			router := authedRouter(t, &tu.MockService{})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/spotify/pause", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}

			var body models.PlaybackResult
			decodeBody(t, rec, &body)
			if !body.Success {
				t.Error("expected success")
			}
		})

		t.Run("logical failure returns 422", func(t *testing.T) {
			service := &tu.MockService{
				PausePlaybackFn: func(ctx context.Context) (*models.PlaybackResult, error) {
					return &models.PlaybackResult{
						Success: false,
						Error:   "No active device",
						Message: "No active playback device found",
					}, nil
				},
			}
			router := authedRouter(t, service)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/spotify/pause", nil))

			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", rec.Code)
			}

			var body models.PlaybackResult
			decodeBody(t, rec, &body)
			if body.Success || body.Error != "No active device" {
				t.Errorf("unexpected payload %+v", body)
			}
		})

		t.Run("GET is rejected by the router", func(t *testing.T) {
			router := authedRouter(t, &tu.MockService{})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/spotify/pause", nil))

			if rec.Code != http.StatusMethodNotAllowed {
				t.Fatalf("expected 405, got %d", rec.Code)
			}
		})
	})

	t.Run("play", func(t *testing.T) {
		t.Run("forwards the track id from the path", func(t *testing.T) {
			var gotTrackID string
			service := &tu.MockService{
				PlayTrackFn: func(ctx context.Context, trackID string) (*models.PlaybackResult, error) {
					gotTrackID = trackID
					return &models.PlaybackResult{Success: true, Message: "Track started playing", TrackURI: "spotify:track:" + trackID}, nil
				},
			}
			router := authedRouter(t, service)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/spotify/play/abc123", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if gotTrackID != "abc123" {
				t.Errorf("expected track id forwarded, got %q", gotTrackID)
			}

			var body models.PlaybackResult
			decodeBody(t, rec, &body)
			if body.TrackURI != "spotify:track:abc123" {
				t.Errorf("expected the track uri in the result, got %q", body.TrackURI)
			}
		})

		t.Run("missing track id returns 400", func(t *testing.T) {
			router := authedRouter(t, &tu.MockService{})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/spotify/play/", nil))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}

			var body errorResponse
			decodeBody(t, rec, &body)
			if body.Message != "Track ID is required" {
				t.Errorf("unexpected message %q", body.Message)
			}
		})
	})

	t.Run("error taxonomy mapping", func(t *testing.T) {
		cases := []struct {
			name       string
			err        error
			wantStatus int
			wantError  string
			wantAuth   bool
		}{
			{"expired auth maps to 401", fmt.Errorf("%w: refresh rejected", shared.ErrAuthExpired), http.StatusUnauthorized, "Authentication expired", true},
			{"unauthorized maps to 401", shared.ErrUnauthorized, http.StatusUnauthorized, "Authentication expired", true},
			{"forbidden maps to 403", shared.ErrForbidden, http.StatusForbidden, "Permission denied", false},
			{"not found maps to 404", shared.ErrNotFound, http.StatusNotFound, "Resource not found", false},
			{"missing argument maps to 400", shared.ErrMissingArgument, http.StatusBadRequest, "Invalid request", false},
			{"everything else maps to 500", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error", false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				service := &tu.MockService{
					TopTracksFn: func(ctx context.Context, limit int) (*models.TrackList, error) {
						return nil, tc.err
					},
				}
				router := authedRouter(t, service)

				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/spotify/top-tracks", nil))

				if rec.Code != tc.wantStatus {
					t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
				}

				var body errorResponse
				decodeBody(t, rec, &body)
				if body.Error != tc.wantError {
					t.Errorf("expected error %q, got %q", tc.wantError, body.Error)
				}
				if tc.wantAuth && body.AuthURL == "" {
					t.Error("expected a recovery auth url")
				}
			})
		}
	})
}

func TestHealthHandler(t *testing.T) {
	router := authedRouter(t, &tu.MockService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/up", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "up" {
		t.Errorf("expected status up, got %q", body["status"])
	}
}
