package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playback/internal/models"
	"github.com/desertthunder/playback/internal/services"
	"github.com/desertthunder/playback/internal/shared"
)

// AdminHandler implements the one-time OAuth bootstrap: the redirect to the
// provider's consent screen and the authorization-code callback.
type AdminHandler struct {
	auth   *services.Authenticator
	logger *log.Logger
}

// NewAdminHandler creates an [AdminHandler] around the given authenticator.
func NewAdminHandler(auth *services.Authenticator, logger *log.Logger) *AdminHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AdminHandler{
		auth:   auth,
		logger: shared.WithLogger(logger, "handler", "admin"),
	}
}

// Routes returns the HTTP route patterns this handler serves.
func (h *AdminHandler) Routes() []string {
	return []string{
		"GET /admin/auth",
		"GET /admin/callback",
	}
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/admin/auth":
		h.authorize(w, r)
	case "/admin/callback":
		h.callback(w, r)
	default:
		http.NotFound(w, r)
	}
}

// authorize redirects to the provider authorization URL.
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.auth.AuthURL(), http.StatusFound)
}

// callback exchanges the authorization code for the initial token pair.
//
// A missing code means the user denied consent (the provider supplies an
// error reason instead); that is distinct from a present code whose
// exchange fails against the provider.
func (h *AdminHandler) callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		h.logger.Warn("authorization denied", "reason", r.URL.Query().Get("error"))
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "Authorization failed",
			Message: r.URL.Query().Get("error"),
		})
		return
	}

	cred, err := h.auth.ExchangeCode(r.Context(), code)
	if err != nil {
		h.logger.Error("code exchange failed", "err", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Failed to get access token",
			Details: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResult{
		Success:   true,
		Message:   "Successfully authenticated with Spotify!",
		ExpiresAt: cred.ExpiresAt(),
	})
}
