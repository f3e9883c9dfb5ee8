// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/desertthunder/playback/internal/models"
	"github.com/desertthunder/playback/internal/shared"
)

// NewTestDB opens an in-memory sqlite database with migrations applied.
//
// The connection is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// MemStore is an in-memory test double for services.CredentialStore.
type MemStore struct {
	Cred     *models.Credential
	SaveErr  error
	LoadErr  error
	SaveHits int
}

func (s *MemStore) Load() (*models.Credential, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.Cred == nil {
		s.Cred = models.NewCredential()
		s.Cred.SetID(shared.GenerateID())
	}
	return s.Cred, nil
}

func (s *MemStore) First() (*models.Credential, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return s.Cred, nil
}

func (s *MemStore) Save(cred *models.Credential) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.SaveHits++
	s.Cred = cred
	return nil
}

// MockService is a configurable test double for services.Service.
//
// Unset function fields return zero-value successes.
type MockService struct {
	TopTracksFn       func(ctx context.Context, limit int) (*models.TrackList, error)
	NowPlayingFn      func(ctx context.Context) (*models.NowPlaying, error)
	FollowedArtistsFn func(ctx context.Context, limit int) (*models.ArtistList, error)
	PausePlaybackFn   func(ctx context.Context) (*models.PlaybackResult, error)
	PlayTrackFn       func(ctx context.Context, trackID string) (*models.PlaybackResult, error)
}

func (m *MockService) TopTracks(ctx context.Context, limit int) (*models.TrackList, error) {
	if m.TopTracksFn != nil {
		return m.TopTracksFn(ctx, limit)
	}
	return &models.TrackList{Tracks: []models.Track{}}, nil
}

func (m *MockService) NowPlaying(ctx context.Context) (*models.NowPlaying, error) {
	if m.NowPlayingFn != nil {
		return m.NowPlayingFn(ctx)
	}
	np := models.NotPlaying()
	return &np, nil
}

func (m *MockService) FollowedArtists(ctx context.Context, limit int) (*models.ArtistList, error) {
	if m.FollowedArtistsFn != nil {
		return m.FollowedArtistsFn(ctx, limit)
	}
	return &models.ArtistList{Artists: []models.Artist{}}, nil
}

func (m *MockService) PausePlayback(ctx context.Context) (*models.PlaybackResult, error) {
	if m.PausePlaybackFn != nil {
		return m.PausePlaybackFn(ctx)
	}
	return &models.PlaybackResult{Success: true, Message: "Playback paused"}, nil
}

func (m *MockService) PlayTrack(ctx context.Context, trackID string) (*models.PlaybackResult, error) {
	if m.PlayTrackFn != nil {
		return m.PlayTrackFn(ctx, trackID)
	}
	return &models.PlaybackResult{Success: true, Message: "Track started playing"}, nil
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
