package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/li812/face-bank/internal/models"
)

//go:generate mockgen -source=register.go -destination=mock_register_test.go -package=handlers

// Enroller defines the interface that the enrollment service must implement.
type Enroller interface {
	EnrollUser(ctx context.Context, user models.User, image []byte) (bool, error)
}

// RegisterResponse represents a successful enrollment
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// default: User registered successfully
	Message string `json:"message"`

	// False when an existing user with the same username was overwritten
	Created bool `json:"created"`
}

// NewRegisterHandler returns an HTTP handler for face enrollment.
// @Summary Register a user
// @Description Enrolls a user with a face image. Registering an existing username overwrites its profile and face.
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Username"
// @Param first_name formData string false "First name"
// @Param last_name formData string false "Last name"
// @Param gender formData string false "Gender" default(Male)
// @Param address formData string false "Address"
// @Param email formData string false "Email"
// @Param phone formData string false "Phone"
// @Param city formData string false "City"
// @Param state formData string false "State"
// @Param country formData string false "Country"
// @Param image formData file true "Face image"
// @Success 201 {object} handlers.RegisterResponse "User registered"
// @Success 200 {object} handlers.RegisterResponse "Existing user updated"
// @Failure 400 {object} handlers.ErrorResponse "Invalid form or no face in image"
// @Failure 503 {object} handlers.ErrorResponse "Biometric service unavailable"
// @Router /register [post]
func NewRegisterHandler(svc Enroller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		image, err := readImage(w, r)
		if err != nil {
			badRequest(w, r, err.Error())
			return
		}

		user := models.User{
			Username:  strings.TrimSpace(r.FormValue("username")),
			FirstName: r.FormValue("first_name"),
			LastName:  r.FormValue("last_name"),
			Gender:    r.FormValue("gender"),
			Address:   r.FormValue("address"),
			Email:     r.FormValue("email"),
			Phone:     r.FormValue("phone"),
			City:      r.FormValue("city"),
			State:     r.FormValue("state"),
			Country:   r.FormValue("country"),
		}
		if user.Username == "" {
			badRequest(w, r, "username is required")
			return
		}

		created, err := svc.EnrollUser(r.Context(), user, image)
		if err != nil {
			respondError(w, r, err)
			return
		}

		status, msg := http.StatusCreated, "User registered successfully"
		if !created {
			status, msg = http.StatusOK, "User updated successfully"
		}
		respond(w, r, status, "Registration", RegisterResponse{Message: msg, Created: created})
	}
}

// RegisterRegisterHandler registers the enrollment route
func RegisterRegisterHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/register", h)
}
