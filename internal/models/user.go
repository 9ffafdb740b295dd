package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a retail customer enrolled with a face embedding.
type User struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	Username  string        `json:"username" db:"username"`
	FirstName string        `json:"first_name" db:"first_name"`
	LastName  string        `json:"last_name" db:"last_name"`
	Gender    string        `json:"gender" db:"gender"`
	Address   string        `json:"address" db:"address"`
	Email     string        `json:"email" db:"email"`
	Phone     string        `json:"phone" db:"phone"`
	City      string        `json:"city" db:"city"`
	State     string        `json:"state" db:"state"`
	Country   string        `json:"country" db:"country"`
	Embedding FeatureVector `json:"-" db:"embedding"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// FamilyMember is a secondary identity that logs in on behalf of its owner.
type FamilyMember struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	OwnerUserID  uuid.UUID     `json:"owner_user_id" db:"owner_user_id"`
	Username     string        `json:"username" db:"username"`
	Name         string        `json:"name" db:"name"`
	Email        string        `json:"email" db:"email"`
	Phone        string        `json:"phone" db:"phone"`
	Relationship string        `json:"relationship" db:"relationship"`
	Embedding    FeatureVector `json:"-" db:"embedding"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}
