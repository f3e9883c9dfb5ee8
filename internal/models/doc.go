// Package models defines domain entities and response shapes for the playback service.
//
// The package contains two categories of types:
//
// 1. Persistent Entities: Database-backed models with full lifecycle management
//   - [Credential] : The singleton Spotify OAuth access/refresh token pair
//
// 2. Normalized Response Shapes: Flat projections of provider JSON served by the HTTP surface
//   - [TrackList], [Track] : Top tracks
//   - [NowPlaying], [PlayingTrack] : Current playback state
//   - [ArtistList], [Artist] : Followed artists
//   - [PlaybackResult] : Outcome of pause/play control calls
//   - [AuthResult] : OAuth callback confirmation
//
// [Credential] implements the [Model] interface providing ID generation, timestamps and validation.
// Its Apply methods are the only mutation paths: ApplyExchange for the one-time
// authorization bootstrap (full overwrite) and ApplyRefresh for token renewal
// (access token and expiry only).
package models
