package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is the single source of truth for where a transfer is in its lifecycle.
type TransactionStatus string

const (
	// TxnPending is set on creation; the OTP has not been matched yet.
	TxnPending TransactionStatus = "pending"
	// TxnVerified is terminal: the OTP matched and the balances were settled.
	TxnVerified TransactionStatus = "verified"
	// TxnLocked is terminal: too many wrong OTPs were submitted.
	TxnLocked TransactionStatus = "locked"
)

// IsTerminal reports whether no further transition is possible.
func (s TransactionStatus) IsTerminal() bool {
	return s == TxnVerified || s == TxnLocked
}

// Transaction represents a transfer between two accounts.
type Transaction struct {
	ID                    uuid.UUID         `json:"id" db:"id"`
	SenderAccountID       uuid.UUID         `json:"sender_account_id" db:"sender_account_id"`
	SenderUserID          uuid.UUID         `json:"sender_user_id" db:"sender_user_id"`
	SenderUsername        string            `json:"sender_username" db:"sender_username"`
	Branch                string            `json:"branch" db:"branch"`
	ReceiverAccountNumber int64             `json:"receiver_account_number" db:"receiver_account_number"` // Not checked until settlement
	ReceiverName          string            `json:"receiver_name" db:"receiver_name"`
	Amount                int64             `json:"amount" db:"amount"`
	OTPHash               string            `json:"-" db:"otp_hash"`
	OTPAttempts           int               `json:"otp_attempts" db:"otp_attempts"`
	Status                TransactionStatus `json:"status" db:"status"`
	CreatedAt             time.Time         `json:"created_at" db:"created_at"`
	VerifiedAt            *time.Time        `json:"verified_at,omitempty" db:"verified_at"`
}

// TransactionEvent is published to Kafka once a transaction is settled.
type TransactionEvent struct {
	TransactionID         string `json:"transaction_id"`
	Timestamp             int64  `json:"timestamp"`
	Amount                int64  `json:"amount"`
	SenderAccountID       string `json:"sender_account_id"`
	ReceiverAccountNumber int64  `json:"receiver_account_number"`
	UserID                string `json:"user_id"`
	Operation             string `json:"operation"`
}
