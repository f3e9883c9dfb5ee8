// Package repositories implements SQLite persistence for the credential singleton.
//
// [CredentialRepository] owns the spotify_credentials table, which holds at
// most one row for the deployment's Spotify account. Load provides
// get-or-create semantics (the row exists with blank tokens before the first
// authorization), First reads without creating, and Save performs an atomic
// full-row update. There is no delete path; the credential outlives any
// single request and is the sole source of truth for authentication state.
package repositories
