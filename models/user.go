package models

import "time"

// User status codes. Accounts are never hard-deleted; they transition
// between these states instead.
const (
	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
	StatusWithdrawn = "WITHDRAWN"
)

// Lock flag values for the login lockout state machine.
const (
	LockFlagLocked   = "LOCKED"
	LockFlagUnlocked = "UNLOCKED"
)

// User represents a portal account used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// EssentialID is the immutable internal surrogate key assigned by the
	// persistence layer. It is never exposed via JSON.
	EssentialID int64 `json:"-"`

	// UserID is the unique, opaque login identifier chosen at account creation.
	UserID string `json:"user_id"`

	// PasswordHash stores the salted one-way digest of the user's password
	// in PHC string format. Never the plaintext, never serialized.
	PasswordHash string `json:"-"`

	// StatusCode is one of StatusActive, StatusSuspended, StatusWithdrawn.
	// Login is permitted only for active accounts.
	StatusCode string `json:"status_code"`

	// LockFlag is LockFlagLocked once LockCount reaches the configured
	// failure bound; a locked account refuses login until an admin unlock.
	LockFlag string `json:"lock_flag"`

	// LockCount is the number of consecutive failed login attempts.
	// Reset to zero by a successful login or an admin unlock.
	LockCount int `json:"lock_count"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	OrgID   string `json:"org_id"`
	GroupID string `json:"group_id"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

// CanLogin reports whether the account state permits a login attempt.
// It does not inspect credentials.
func (u User) CanLogin() bool {
	return u.StatusCode == StatusActive && u.LockFlag != LockFlagLocked
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
