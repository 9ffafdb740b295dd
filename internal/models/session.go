package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-login state kept in Redis between requests.
// UserID always refers to the primary user, even for a family login.
type Session struct {
	ID                   string     `json:"id"`
	UserID               uuid.UUID  `json:"user_id"`
	DisplayName          string     `json:"display_name"` // Username of whoever actually logged in
	IsPrimary            bool       `json:"is_primary"`
	PendingTransactionID *uuid.UUID `json:"pending_transaction_id,omitempty"`
	FaceVerified         bool       `json:"face_verified"` // Set by a face check after the pending transaction was created
	CreatedAt            time.Time  `json:"created_at"`
}
