package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrAuthExpired      = fmt.Errorf("authentication expired")
	ErrAuthFailed       = fmt.Errorf("authorization failed")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")

	// API errors, mapped from provider status codes by the gateway
	ErrUnauthorized   = fmt.Errorf("access token rejected")
	ErrForbidden      = fmt.Errorf("permission denied")
	ErrNotFound       = fmt.Errorf("resource not found")
	ErrNoActiveDevice = fmt.Errorf("no active playback device")
	ErrAPIRequest     = fmt.Errorf("API request failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
