package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrMissingSecretKey indicates that no token signing secret was supplied
	// by any configuration source. The server cannot start without one.
	ErrMissingSecretKey = errors.New("missing token signing secret")
	// ErrUnsupportedAlgorithm indicates a signing algorithm outside the
	// supported HMAC family (HS256, HS384, HS512).
	ErrUnsupportedAlgorithm = errors.New("unsupported token signing algorithm")
	// ErrInvalidAuthConfigs indicates invalid login-policy settings
	// (for example, a non-positive lockout bound).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidMenuConfigs indicates invalid menu catalog settings
	// (for example, a negative depth bound).
	ErrInvalidMenuConfigs = errors.New("invalid menu configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
