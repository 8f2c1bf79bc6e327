// Package entity contains the core business objects of the service.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record created at signup. Username and email are each
// unique across all users. PasswordHash stores the bcrypt digest of the
// password; the plaintext never leaves the signup flow.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
