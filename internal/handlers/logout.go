package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/li812/face-bank/internal/jwt"
	"github.com/li812/face-bank/internal/middlewares"
	"github.com/li812/face-bank/internal/models"
)

//go:generate mockgen -source=logout.go -destination=mock_logout_test.go -package=handlers

// SessionEnder destroys a session.
type SessionEnder interface {
	End(ctx context.Context, sess *models.Session) error
}

// NewLogoutHandler returns an HTTP handler that ends the current session.
// @Summary Logout
// @Description Destroys the current session and clears the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.MessageResponse "Logged out"
// @Failure 401 {object} handlers.ErrorResponse "No session"
// @Router /logout [post]
// @Security BearerAuth
func NewLogoutHandler(sessions SessionEnder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middlewares.SessionFromContext(r.Context())
		if !ok {
			respond(w, r, http.StatusUnauthorized, "Error", ErrorResponse{Error: "session required"})
			return
		}

		if err := sessions.End(r.Context(), sess); err != nil {
			respondError(w, r, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     jwt.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		respond(w, r, http.StatusOK, "Logged out", MessageResponse{Message: "Logged out"})
	}
}

// RegisterLogoutHandler registers the logout route
func RegisterLogoutHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/logout", h)
}
