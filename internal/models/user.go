package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The ledger engine itself only ever
// sees user IDs; this model exists for the auth subsystem that supplies the
// trusted actor identity on every call.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name shown in chats and on debt records.
	Name string `json:"name"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix millisecond timestamp of registration.
	CreatedAt int64 `json:"createdAt"`
}

// NewUser builds a User with a fresh ID and creation timestamp.
func NewUser(email, name, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UnixMilli(),
	}
}
