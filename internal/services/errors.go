package services

import (
	"errors"
	"fmt"

	"github.com/li812/face-bank/internal/models"
)

// Lookup errors.
var (
	ErrIdentityNotFound    = errors.New("identity not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrReceiverNotFound    = errors.New("receiver account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrSessionNotFound     = errors.New("session not found")
)

// Biometric errors.
var (
	ErrNoFaceDetected         = errors.New("failed to extract face features")
	ErrAuthenticationMismatch = errors.New("face verification failed")
)

// Workflow rejections. Transaction state is unchanged when one is returned.
var (
	ErrInsufficientFunds        = models.ErrInsufficientBalance
	ErrInvalidAmount            = models.ErrNonPositiveAmount
	ErrBranchMismatch           = errors.New("branch does not match sender account")
	ErrInvalidOTP               = errors.New("invalid otp")
	ErrNoPendingTransaction     = errors.New("no pending transaction")
	ErrTransactionClosed        = errors.New("transaction is no longer pending")
	ErrOTPAttemptsExceeded      = errors.New("too many otp attempts")
	ErrFaceVerificationRequired = errors.New("face verification required")
	ErrFamilyMemberExists       = errors.New("only one family member can be added")
	ErrUsernameTaken            = errors.New("username already exists")
)

// ErrDependencyUnavailable wraps failures of the biometric service or other
// external collaborators.
var ErrDependencyUnavailable = errors.New("dependency unavailable")

// MismatchError is returned when a face was compared but scored at or below
// the threshold.
type MismatchError struct {
	Similarity float64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: similarity %.2f", ErrAuthenticationMismatch, e.Similarity)
}

// Is makes errors.Is(err, ErrAuthenticationMismatch) match.
func (e *MismatchError) Is(target error) bool {
	return target == ErrAuthenticationMismatch
}

// asDependencyError keeps known biometric errors and wraps anything else.
func asDependencyError(err error) error {
	if errors.Is(err, ErrNoFaceDetected) || errors.Is(err, ErrDependencyUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
}
