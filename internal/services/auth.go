package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playback/internal/models"
	"github.com/desertthunder/playback/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// spotifyScopes are the permissions requested during authorization.
// The granted scope is stored on the credential but not enforced locally.
var spotifyScopes = []string{
	"user-read-currently-playing",
	"user-top-read",
	"user-follow-read",
	"user-modify-playback-state",
	"user-read-playback-state",
}

// Authenticator owns the OAuth credential lifecycle: it builds the
// authorization URL, exchanges the one-time code for the initial token pair,
// and hands out a valid access token for every outbound API call,
// refreshing the stored credential first when it has expired.
type Authenticator struct {
	config *oauth2.Config
	store  CredentialStore
	logger *log.Logger

	// mu serializes refresh attempts. Requests are parallel but the
	// credential is a single row, so concurrent refreshes would race on
	// access_token/expires_at.
	mu sync.Mutex

	// now is the single clock source for expiry checks, overridable in tests.
	now func() time.Time
}

// NewAuthenticator creates an [Authenticator] from the registered client
// credentials and a credential store.
func NewAuthenticator(cfg shared.SpotifyConfig, store CredentialStore, logger *log.Logger) (*Authenticator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	redirectURI := cfg.RedirectURI
	if redirectURI == "" {
		redirectURI = "http://localhost:3000/admin/callback"
	}

	config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       spotifyScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Authenticator{
		config: config,
		store:  store,
		logger: shared.WithLogger(logger, "component", "auth"),
		now:    time.Now,
	}, nil
}

// SetEndpoint overrides the provider endpoints so tests can point the
// authenticator at a local server.
func (a *Authenticator) SetEndpoint(authURL, tokenURL string) {
	a.config.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
}

// AuthURL returns the provider authorization URL.
//
// show_dialog forces the consent screen so re-authorization never silently
// reuses a cached provider-side session.
func (a *Authenticator) AuthURL() string {
	return a.config.AuthCodeURL("", oauth2.SetAuthURLParam("show_dialog", "true"))
}

// ExchangeCode exchanges an authorization code for the initial token pair
// and overwrites the stored credential in full.
//
// An empty code fails before any network call. A failed exchange leaves the
// stored credential untouched; the overwrite is gated on a single successful
// provider response.
func (a *Authenticator) ExchangeCode(ctx context.Context, code string) (*models.Credential, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: authorization code", shared.ErrMissingArgument)
	}

	tok, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrAuthFailed, providerDetail(err))
	}

	cred, err := a.store.Load()
	if err != nil {
		return nil, err
	}

	cred.ApplyExchange(tok)
	if err := a.store.Save(cred); err != nil {
		return nil, err
	}

	a.logger.Info("authorization complete", "expires_at", cred.ExpiresAt())
	return cred, nil
}

// EnsureAccessToken returns an access token that is valid right now.
//
// The fast path returns the stored token without a network call. An expired
// token triggers exactly one refresh round-trip; on success the new token
// and expiry are persisted before being returned. Refresh failures surface
// as [shared.ErrAuthExpired] with the provider payload attached, so callers
// can tell the user to re-authenticate rather than reporting a generic
// failure. Refresh attempts are serialized per process.
func (a *Authenticator) EnsureAccessToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cred, err := a.store.Load()
	if err != nil {
		return "", err
	}

	if !cred.Authenticated() {
		return "", fmt.Errorf("%w: authorize via /admin/auth first", shared.ErrNotAuthenticated)
	}

	if !cred.Expired(a.now()) {
		return cred.AccessToken(), nil
	}

	if !cred.CanRefresh() {
		return "", fmt.Errorf("%w: %s", shared.ErrAuthExpired, shared.ErrNoRefreshToken)
	}

	tok, err := a.config.TokenSource(ctx, cred.Token()).Token()
	if err != nil {
		a.logger.Error("token refresh failed", "err", err)
		return "", fmt.Errorf("%w: %s", shared.ErrAuthExpired, providerDetail(err))
	}

	cred.ApplyRefresh(tok)
	if err := a.store.Save(cred); err != nil {
		return "", err
	}

	a.logger.Info("access token refreshed", "expires_at", cred.ExpiresAt())
	return cred.AccessToken(), nil
}

// Status returns the stored credential without creating one, or (nil, nil)
// when the user has never authorized.
func (a *Authenticator) Status() (*models.Credential, error) {
	return a.store.First()
}

// providerDetail extracts the provider's raw error payload from an oauth2
// failure for diagnostics, falling back to the plain error string.
func providerDetail(err error) string {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		return fmt.Sprintf("status %d, body: %s", rErr.Response.StatusCode, string(rErr.Body))
	}
	return err.Error()
}
