package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/li812/face-bank/internal/middlewares"
	"github.com/li812/face-bank/internal/models"
)

//go:generate mockgen -source=family.go -destination=mock_family_test.go -package=handlers

// FamilyEnroller defines the interface for adding a family member.
type FamilyEnroller interface {
	EnrollFamilyMember(ctx context.Context, ownerID uuid.UUID, member models.FamilyMember, image []byte) error
}

// NewFamilyRegisterHandler returns an HTTP handler that enrolls the family member of the logged-in user.
// @Summary Register a family member
// @Description Enrolls the single family member allowed per user. Only primary sessions may do this.
// @Tags family
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Family member username"
// @Param name formData string false "Full name"
// @Param email formData string false "Email"
// @Param phone formData string false "Phone"
// @Param relationship formData string false "Relationship to the user"
// @Param image formData file true "Face image"
// @Success 201 {object} handlers.MessageResponse "Family member registered"
// @Failure 400 {object} handlers.ErrorResponse "Invalid form or no face in image"
// @Failure 401 {object} handlers.ErrorResponse "No session"
// @Failure 403 {object} handlers.ErrorResponse "Family sessions cannot register members"
// @Failure 409 {object} handlers.ErrorResponse "Family member already registered or username taken"
// @Router /family/register [post]
// @Security BearerAuth
func NewFamilyRegisterHandler(svc FamilyEnroller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middlewares.SessionFromContext(r.Context())
		if !ok {
			respond(w, r, http.StatusUnauthorized, "Error", ErrorResponse{Error: "session required"})
			return
		}
		if !sess.IsPrimary {
			respond(w, r, http.StatusForbidden, "Error", ErrorResponse{Error: "only the account holder can register a family member"})
			return
		}

		image, err := readImage(w, r)
		if err != nil {
			badRequest(w, r, err.Error())
			return
		}

		member := models.FamilyMember{
			Username:     strings.TrimSpace(r.FormValue("username")),
			Name:         r.FormValue("name"),
			Email:        r.FormValue("email"),
			Phone:        r.FormValue("phone"),
			Relationship: r.FormValue("relationship"),
		}
		if member.Username == "" {
			badRequest(w, r, "username is required")
			return
		}

		if err := svc.EnrollFamilyMember(r.Context(), sess.UserID, member, image); err != nil {
			respondError(w, r, err)
			return
		}

		respond(w, r, http.StatusCreated, "Family member", MessageResponse{Message: "Family member registered successfully"})
	}
}

// RegisterFamilyRegisterHandler registers the family enrollment route
func RegisterFamilyRegisterHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/family/register", h)
}
