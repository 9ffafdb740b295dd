package handlers

import (
	"errors"
	"net/http"

	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/services"
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrNoFaceDetected),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrBranchMismatch),
		errors.Is(err, services.ErrNoPendingTransaction):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAuthenticationMismatch),
		errors.Is(err, services.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrFaceVerificationRequired):
		return http.StatusForbidden
	case errors.Is(err, services.ErrIdentityNotFound),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrReceiverNotFound),
		errors.Is(err, services.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrFamilyMemberExists),
		errors.Is(err, services.ErrTransactionClosed),
		errors.Is(err, services.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrOTPAttemptsExceeded):
		return http.StatusLocked
	case errors.Is(err, services.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the status statusFor picks. Internal errors
// are logged and hidden from the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error()}

	switch status {
	case http.StatusInternalServerError:
		logger.Log.Errorw("internal server error", "err", err)
		resp.Error = "Internal server error"
	case http.StatusServiceUnavailable:
		logger.Log.Errorw("dependency unavailable", "err", err)
		resp.Error = services.ErrDependencyUnavailable.Error()
	}

	var mismatch *services.MismatchError
	if errors.As(err, &mismatch) {
		s := mismatch.Similarity
		resp.Similarity = &s
	}

	respond(w, r, status, "Error", resp)
}

// badRequest reports malformed input.
func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	respond(w, r, http.StatusBadRequest, "Error", ErrorResponse{Error: msg})
}
