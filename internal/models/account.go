package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Account types offered by a branch.
const (
	AccountSavings = "Savings"
	AccountCurrent = "Current"
)

var (
	// ErrNonPositiveAmount is returned when a deposit or withdrawal amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance is returned when a withdrawal would drive the balance below zero.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Account represents a bank account row in the database
type Account struct {
	ID            uuid.UUID `json:"id" db:"id"`                         // Primary key
	AccountNumber int64     `json:"account_number" db:"account_number"` // Public account number used by senders
	Branch        string    `json:"branch" db:"branch"`                 // Owning branch name
	OwnerUserID   uuid.UUID `json:"owner_user_id" db:"owner_user_id"`   // Primary user owning the account
	Type          string    `json:"account_type" db:"account_type"`     // Savings or Current
	Balance       int64     `json:"balance" db:"balance"`               // Current balance, never negative
	IFSCCode      string    `json:"ifsc_code" db:"ifsc_code"`           // Branch IFSC code
	CreatedAt     time.Time `json:"created_at" db:"created_at"`         // Creation timestamp
}

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	a.Balance += amount
	return nil
}

// Withdraw subtracts amount from the balance. The balance is left unchanged
// when amount is not positive or exceeds it.
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	if a.Balance < amount {
		return ErrInsufficientBalance
	}
	a.Balance -= amount
	return nil
}
