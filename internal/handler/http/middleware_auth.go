package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/utils"
	"github.com/avolkov/core-admin/models"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it as an access token, and on success stores the verified claims
// in the request context under [utils.CallerCtxKey] before delegating to the
// next handler. Downstream handlers treat the stored claims as trusted.
//
// Requests are rejected with HTTP 401 when the header is absent, malformed,
// or the token fails validation for any reason. The rejection body never
// distinguishes a forged token from an expired one.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		claims, err := h.services.Token.Validate(ctx, tokenString, models.TokenTypeAccess)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx = context.WithValue(ctx, utils.CallerCtxKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin allows the request through only when the authenticated caller
// belongs to the configured admin group. Must run after auth.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		caller, ok := utils.GetCallerFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		if h.adminGroupID == "" || caller.GroupID != h.adminGroupID {
			log.Warn().Str("user_id", caller.UserID).Str("group_id", caller.GroupID).Msg("admin route denied")
			writeError(w, r, ErrInsufficientGrant)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the standard form:
//
//	Authorization: Bearer <token>
//
// It returns [ErrInvalidAuthorizationHeader] when the header has fewer than
// two space-separated parts, and [ErrEmptyToken] when the token part is an
// empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
