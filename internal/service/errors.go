package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both an unknown user and a wrong password
	// so the two cases are indistinguishable at the external surface.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrUserInactive is returned when the account status is not ACTIVE.
	ErrUserInactive = errors.New("user is not active")

	// ErrUserLocked is returned when the account is locked out after too
	// many failed login attempts.
	ErrUserLocked = errors.New("user is locked")

	// ErrTokenIsExpiredOrInvalid is the uniform token validation failure.
	// The internal reason is logged but never exposed.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrPasswordPolicy is returned when a new password fails the policy.
	ErrPasswordPolicy = errors.New("password does not satisfy the policy")
)

// Menu catalog invariant violations.
var (
	// ErrSelfCopy is returned when a subtree copy targets its own source as
	// the new parent.
	ErrSelfCopy = errors.New("cannot copy a menu onto itself")

	// ErrCycleDetected is returned when a copy or move would place a node
	// under one of its own descendants.
	ErrCycleDetected = errors.New("operation would create a cycle in the menu tree")

	// ErrDepthExceeded is returned when a create, move, or copy would push
	// any node of the resulting tree past the configured depth bound.
	ErrDepthExceeded = errors.New("menu depth bound exceeded")
)
