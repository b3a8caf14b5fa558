package repository

import (
	"context"
	"time"
)

// User is an account record. Email is unique among non-deleted users.
// An empty PasswordHash means no local credential has ever been set
// (the account exists only through third-party identities).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	DeletedAt    *time.Time
}

// HasLocalCredential reports whether the user ever set a password.
func (u *User) HasLocalCredential() bool {
	return u.PasswordHash != ""
}

// UserRepository defines operations on user records. Reads only return
// live (non-soft-deleted) users; callers never see DeletedAt != nil rows.
type UserRepository interface {
	// GetByEmail finds a live user by email. Returns ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID finds a live user by id. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*User, error)

	// Create inserts a new user. Returns ErrConflict if a live user
	// already owns the email.
	Create(ctx context.Context, u *User) error

	// UpdatePasswordHash replaces the stored password hash.
	// Returns ErrNotFound if the user does not exist.
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
}
