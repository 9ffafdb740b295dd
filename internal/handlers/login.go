package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/li812/face-bank/internal/jwt"
	"github.com/li812/face-bank/internal/models"
)

//go:generate mockgen -source=login.go -destination=mock_login_test.go -package=handlers

// FaceAuthenticator defines the face login operations.
type FaceAuthenticator interface {
	Login(ctx context.Context, username string, image []byte) (*models.Session, error)
	FamilyLogin(ctx context.Context, username string, image []byte) (*models.Session, error)
}

// SessionStarter persists a new session and issues its token.
type SessionStarter interface {
	Start(ctx context.Context, sess *models.Session) (string, error)
	TTL() time.Duration
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// Session token, also set as the session cookie
	// default: JWT_TOKEN
	Token string `json:"token"`

	// Username of whoever logged in
	DisplayName string `json:"display_name"`

	// False for family members
	IsPrimary bool `json:"is_primary"`
}

type loginFunc func(ctx context.Context, username string, image []byte) (*models.Session, error)

// NewLoginHandler returns an HTTP handler for primary user face login.
// @Summary Face login
// @Description Verifies the face against the enrolled user and starts a session
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Username"
// @Param image formData file true "Face image"
// @Success 200 {object} handlers.LoginResponse "Session started"
// @Failure 400 {object} handlers.ErrorResponse "Invalid form or no face in image"
// @Failure 401 {object} handlers.ErrorResponse "Face does not match"
// @Failure 404 {object} handlers.ErrorResponse "Unknown username"
// @Failure 503 {object} handlers.ErrorResponse "Biometric service unavailable"
// @Router /login [post]
func NewLoginHandler(auth FaceAuthenticator, sessions SessionStarter) http.HandlerFunc {
	return newLoginHandler(auth.Login, sessions)
}

// NewFamilyLoginHandler returns an HTTP handler for family member face login.
// @Summary Family face login
// @Description Verifies the face against the enrolled family member and starts a non-primary session acting for the owner
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Family member username"
// @Param image formData file true "Face image"
// @Success 200 {object} handlers.LoginResponse "Session started"
// @Failure 400 {object} handlers.ErrorResponse "Invalid form or no face in image"
// @Failure 401 {object} handlers.ErrorResponse "Face does not match"
// @Failure 404 {object} handlers.ErrorResponse "Unknown username"
// @Failure 503 {object} handlers.ErrorResponse "Biometric service unavailable"
// @Router /family/login [post]
func NewFamilyLoginHandler(auth FaceAuthenticator, sessions SessionStarter) http.HandlerFunc {
	return newLoginHandler(auth.FamilyLogin, sessions)
}

func newLoginHandler(login loginFunc, sessions SessionStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		image, err := readImage(w, r)
		if err != nil {
			badRequest(w, r, err.Error())
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		if username == "" {
			badRequest(w, r, "username is required")
			return
		}

		sess, err := login(r.Context(), username, image)
		if err != nil {
			respondError(w, r, err)
			return
		}

		token, err := sessions.Start(r.Context(), sess)
		if err != nil {
			respondError(w, r, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     jwt.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(sessions.TTL().Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		respond(w, r, http.StatusOK, "Logged in", LoginResponse{
			Token:       token,
			DisplayName: sess.DisplayName,
			IsPrimary:   sess.IsPrimary,
		})
	}
}

// RegisterLoginHandlers registers both login routes
func RegisterLoginHandlers(r chi.Router, login, familyLogin http.HandlerFunc) {
	r.Post("/login", login)
	r.Post("/family/login", familyLogin)
}
