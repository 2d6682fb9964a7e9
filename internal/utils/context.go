// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, JSON response
// writing, and JWT token generation and validation.
package utils

import (
	"context"

	"github.com/avolkov/core-admin/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// CallerCtxKey is the key under which the authentication middleware stores
// the validated token claims of the caller. Downstream handlers treat the
// stored claims as trusted.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.CallerCtxKey, claims)
var CallerCtxKey = contextKey("caller")

// GetCallerFromContext retrieves the authenticated caller's token claims
// from the context.
//
// Returns the claims and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func GetCallerFromContext(ctx context.Context) (*models.TokenClaims, bool) {
	caller, ok := ctx.Value(CallerCtxKey).(*models.TokenClaims)
	return caller, ok
}
