// Package services implements the Spotify credential lifecycle and the authenticated request gateway.
//
// # Authenticator
//
// [Authenticator] owns the OAuth access/refresh token pair stored through
// [CredentialStore]. It has three responsibilities:
//
//   - Building the provider authorization URL (forced consent via show_dialog)
//   - Exchanging the one-time authorization code for the initial token pair,
//     overwriting the stored credential all-or-nothing
//   - Handing out a usable access token on demand, refreshing first when the
//     stored token has expired
//
// Expiry is checked lazily on the access path against a single clock source;
// a token expiring exactly now counts as expired. Refresh attempts are
// serialized with a mutex so concurrent requests cannot race a double
// refresh against the singleton row.
//
// # Gateway
//
// [SpotifyService] issues authenticated calls to the Spotify Web API and is
// the single point where provider HTTP status becomes the shared error
// taxonomy:
//   - 2xx (204 included) : success
//   - 401 : [shared.ErrUnauthorized] — token unexpectedly rejected, distinct
//     from the proactive [shared.ErrAuthExpired] raised on refresh failure
//   - 403 : [shared.ErrForbidden] — usually an entitlement gap (Premium)
//   - 404 : [shared.ErrNotFound] — for playback control this means no active
//     device, an expected condition normalized into [models.PlaybackResult]
//   - other : [shared.ErrAPIRequest] carrying status and raw body
//
// No call is retried; failures surface once to the caller.
//
// # Resource Adapters
//
// Provider JSON shapes ([SpotifyTrack], [SpotifyArtist], ...) are modeled as
// explicit structs with optional fields as pointers or slices, and projected
// into the flat normalized shapes in the models package by pure functions.
package services
