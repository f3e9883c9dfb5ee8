package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playback/internal/shared"
)

// errorResponse is the stable JSON error body: a machine-checkable error
// string plus a human-readable message. Authentication failures additionally
// carry a re-authorization URL so the client can recover on its own.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
	AuthURL string `json:"auth_url,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestBaseURL reconstructs the scheme://host prefix of the inbound
// request for building absolute endpoint and auth URLs.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// renderError maps the shared error taxonomy onto response statuses.
//
// Handlers branch only on the taxonomy, never on provider status codes;
// the gateway already classified those.
func renderError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, shared.ErrAuthExpired),
		errors.Is(err, shared.ErrUnauthorized),
		errors.Is(err, shared.ErrNotAuthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "Authentication expired",
			Message: "Your Spotify authentication has expired. Please re-authenticate.",
			AuthURL: requestBaseURL(r) + "/admin/auth",
		})
	case errors.Is(err, shared.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{
			Error:   "Permission denied",
			Message: "You may need Spotify Premium for this feature or lack required permissions",
		})
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, shared.ErrNoActiveDevice):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   "Resource not found",
			Message: "The requested Spotify resource was not found",
		})
	case errors.Is(err, shared.ErrMissingArgument), errors.Is(err, shared.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
	default:
		logger.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
	}
}
