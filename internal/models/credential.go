package models

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Credential is the singleton OAuth token pair for the Spotify account.
//
// It exists even before the user has authorized, with blank tokens and an
// already-expired timestamp. The authorization flow overwrites every field;
// a refresh overwrites only the access token and expiry (and the refresh
// token when the provider returns a new one).
type Credential struct {
	id           string
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	tokenType    string
	scope        string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewCredential creates a blank, unauthenticated credential with an
// already-expired timestamp.
func NewCredential() *Credential {
	now := time.Now()
	return &Credential{
		expiresAt: now,
		tokenType: "Bearer",
		createdAt: now,
		updatedAt: now,
	}
}

func (c *Credential) ID() string           { return c.id }
func (c *Credential) AccessToken() string  { return c.accessToken }
func (c *Credential) RefreshToken() string { return c.refreshToken }
func (c *Credential) ExpiresAt() time.Time { return c.expiresAt }
func (c *Credential) TokenType() string    { return c.tokenType }
func (c *Credential) Scope() string        { return c.scope }
func (c *Credential) CreatedAt() time.Time { return c.createdAt }
func (c *Credential) UpdatedAt() time.Time { return c.updatedAt }

func (c *Credential) SetID(id string)           { c.id = id }
func (c *Credential) SetCreatedAt(t time.Time)  { c.createdAt = t }
func (c *Credential) SetUpdatedAt(t time.Time)  { c.updatedAt = t }
func (c *Credential) SetExpiresAt(t time.Time)  { c.expiresAt = t }
func (c *Credential) SetTokenType(tt string)    { c.tokenType = tt }
func (c *Credential) SetScope(scope string)     { c.scope = scope }
func (c *Credential) SetAccessToken(tok string) { c.accessToken = tok }

func (c *Credential) SetRefreshToken(tok string) { c.refreshToken = tok }

// Validate checks if the credential's data is valid.
//
// A blank credential (pre-authorization) is valid; only structural fields
// are enforced.
func (c *Credential) Validate() error {
	if c.tokenType == "" {
		return fmt.Errorf("credential token_type must not be empty")
	}
	if c.expiresAt.IsZero() {
		return fmt.Errorf("credential expires_at must be set")
	}
	return nil
}

// Authenticated reports whether an authorization has ever completed,
// i.e. an access token is stored at all.
func (c *Credential) Authenticated() bool {
	return c.accessToken != ""
}

// Expired reports whether the access token has expired as of now.
//
// A token expiring exactly now counts as expired so a token never goes
// stale mid-flight to the provider.
func (c *Credential) Expired(now time.Time) bool {
	return !c.expiresAt.After(now)
}

// Usable reports whether the access token can be attached to a request
// without a refresh round-trip.
func (c *Credential) Usable(now time.Time) bool {
	return c.Authenticated() && !c.Expired(now)
}

// CanRefresh reports whether a refresh grant is possible at all.
func (c *Credential) CanRefresh() bool {
	return c.refreshToken != ""
}

// Scopes returns the granted scope string split into individual scopes.
func (c *Credential) Scopes() []string {
	return strings.Fields(c.scope)
}

// Token converts the credential into an [oauth2.Token] for use with an
// [oauth2.TokenSource].
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.accessToken,
		RefreshToken: c.refreshToken,
		TokenType:    c.tokenType,
		Expiry:       c.expiresAt,
	}
}

// ApplyExchange overwrites all token fields from a fresh authorization-code
// exchange. This is the one-time bootstrap path; every field is replaced.
func (c *Credential) ApplyExchange(tok *oauth2.Token) {
	c.accessToken = tok.AccessToken
	c.refreshToken = tok.RefreshToken
	c.expiresAt = tok.Expiry
	if tok.TokenType != "" {
		c.tokenType = tok.TokenType
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		c.scope = scope
	}
}

// ApplyRefresh overwrites the access token and expiry from a refresh grant.
//
// The refresh token is reused across refreshes because the provider does not
// always return a new one; it is only replaced when present in the response.
func (c *Credential) ApplyRefresh(tok *oauth2.Token) {
	c.accessToken = tok.AccessToken
	c.expiresAt = tok.Expiry
	if tok.RefreshToken != "" {
		c.refreshToken = tok.RefreshToken
	}
}
