package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/core-admin/internal/service"
	"github.com/avolkov/core-admin/models"
)

func stubPair() models.TokenPair {
	return models.TokenPair{
		AccessToken:  "access.jwt.token",
		RefreshToken: "refresh.jwt.token",
		TokenType:    "bearer",
		ExpiresIn:    1800,
	}
}

func TestLogin_Success(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, userID, password string) (models.User, error) {
			assert.Equal(t, "admin", userID)
			assert.Equal(t, "admin123", password)
			return models.User{UserID: "admin", GroupID: adminGroupID}, nil
		},
		issueTokensFn: func(_ context.Context, user models.User) (models.TokenPair, error) {
			return stubPair(), nil
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/login", `{"user_id":"admin","password":"admin123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	assert.Equal(t, "access.jwt.token", pair.AccessToken)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.EqualValues(t, 1800, pair.ExpiresIn)
}

func TestLogin_BadCredentials(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(context.Context, string, string) (models.User, error) {
			return models.User{}, service.ErrInvalidCredentials
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/login", `{"user_id":"admin","password":"nope"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.ErrInvalidCredentials.Error(), decodeDetail(t, rec))
}

func TestLogin_UnknownUserSameBodyAsBadPassword(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(context.Context, string, string) (models.User, error) {
			return models.User{}, service.ErrInvalidCredentials
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/login", `{"user_id":"ghost","password":"nope"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	// тело не различает неизвестного пользователя и неверный пароль
	assert.Equal(t, service.ErrInvalidCredentials.Error(), decodeDetail(t, rec))
}

func TestLogin_LockedAccount(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(context.Context, string, string) (models.User, error) {
			return models.User{}, service.ErrUserLocked
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/login", `{"user_id":"admin","password":"admin123"}`, "")
	require.Equal(t, http.StatusLocked, rec.Code)
}

func TestLogin_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &service.Services{Auth: &mockAuthService{}})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/login", `{not json`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefresh_Success(t *testing.T) {
	auth := &mockAuthService{
		refreshFn: func(_ context.Context, refreshToken string) (models.TokenPair, error) {
			assert.Equal(t, "refresh.jwt.token", refreshToken)
			return stubPair(), nil
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/refresh", "", "refresh.jwt.token")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRefresh_MissingHeader(t *testing.T) {
	h := newTestHandler(t, &service.Services{Auth: &mockAuthService{}})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/refresh", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ErrEmptyAuthorizationHeader.Error(), decodeDetail(t, rec))
}

func TestRefresh_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		refreshFn: func(context.Context, string) (models.TokenPair, error) {
			return models.TokenPair{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/refresh", "", "stale.jwt.token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/logout", "", staffToken)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLogout_RequiresAuth(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/logout", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword_Success(t *testing.T) {
	auth := &mockAuthService{
		changePasswordFn: func(_ context.Context, userID, oldPassword, newPassword string) error {
			assert.Equal(t, "user1", userID)
			assert.Equal(t, "old-pass-1", oldPassword)
			assert.Equal(t, "new-pass-1", newPassword)
			return nil
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/password",
		`{"old_password":"old-pass-1","new_password":"new-pass-1"}`, staffToken)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChangePassword_PolicyViolation(t *testing.T) {
	auth := &mockAuthService{
		changePasswordFn: func(context.Context, string, string, string) error {
			return service.ErrPasswordPolicy
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/auth/password",
		`{"old_password":"old-pass-1","new_password":"x"}`, staffToken)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
