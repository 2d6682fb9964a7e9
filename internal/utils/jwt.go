package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/avolkov/core-admin/models"
	"github.com/golang-jwt/jwt/v5"
)

// signingMethod resolves a configured algorithm tag to a jwt.SigningMethod.
// Only the symmetric HMAC family is supported; anything else falls back to
// HS256 (config validation rejects unsupported tags at startup).
func signingMethod(algorithm string) jwt.SigningMethod {
	switch algorithm {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

// GenerateJWTToken creates a signed token carrying the given identity claims.
//
// The token includes the standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user's login identifier
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// plus the portal-specific user_id, email, group_id, and type claims.
//
// Returns an error if any required parameter is empty or signing fails.
func GenerateJWTToken(issuer string, user models.User, tokenType, algorithm string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || user.UserID == "" || tokenType == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    user.UserID,
		Email:     user.Email,
		GroupID:   user.GroupID,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(signingMethod(algorithm), claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Token type tag check against expectedType
//
// Returns the decoded claims or a non-nil error when any check fails. The
// error is intended for internal logging only; the external surface must
// report a uniform "invalid or expired" failure.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer, expectedType string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Header["alg"])
		}
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("empty subject error")
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("token type %q does not match expected type %q", claims.TokenType, expectedType)
	}

	return claims, nil
}

// DecodeJWTTokenUnsafe extracts the claims of a token WITHOUT verifying the
// signature. Inspection only; never use the result for access control.
func DecodeJWTTokenUnsafe(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}

	return claims, nil
}
