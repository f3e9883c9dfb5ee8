// package services defines the Spotify client: token lifecycle, authorization flow, and the authenticated request gateway
package services

import (
	"context"

	"github.com/desertthunder/playback/internal/models"
)

// Service defines the read/control surface the HTTP layer forwards to the provider.
type Service interface {
	// TopTracks retrieves the user's top tracks, normalized to [models.TrackList].
	TopTracks(ctx context.Context, limit int) (*models.TrackList, error)

	// NowPlaying retrieves the current playback state.
	// A 204, empty body, or null item all normalize to the not-playing variant.
	NowPlaying(ctx context.Context) (*models.NowPlaying, error)

	// FollowedArtists retrieves the artists the user follows.
	FollowedArtists(ctx context.Context, limit int) (*models.ArtistList, error)

	// PausePlayback pauses the active device. Entitlement and no-device
	// failures are normalized into the result, not returned as errors.
	PausePlayback(ctx context.Context) (*models.PlaybackResult, error)

	// PlayTrack starts playback of a track. Bare ids are qualified to
	// spotify:track: URIs before the request is issued.
	PlayTrack(ctx context.Context, trackID string) (*models.PlaybackResult, error)
}

// CredentialStore is the persistence contract for the credential singleton.
//
// Implemented by repositories.CredentialRepository; injected rather than
// reached for globally so the refresh path stays testable.
type CredentialStore interface {
	// Load returns the stored credential, creating a blank one if none exists.
	Load() (*models.Credential, error)

	// First returns the stored credential or (nil, nil) when none exists.
	First() (*models.Credential, error)

	// Save persists all token fields of the credential.
	Save(cred *models.Credential) error
}
