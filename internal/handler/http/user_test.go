package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/core-admin/internal/service"
	"github.com/avolkov/core-admin/internal/store"
	"github.com/avolkov/core-admin/models"
)

func TestCreateUser_Success(t *testing.T) {
	auth := &mockAuthService{
		createUserFn: func(_ context.Context, req models.CreateUserRequest, createdBy string) (models.User, error) {
			assert.Equal(t, "newbie", req.UserID)
			assert.Equal(t, "root", createdBy)
			return models.User{UserID: req.UserID, StatusCode: models.StatusActive}, nil
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/users",
		`{"user_id":"newbie","password":"newbie-pass","group_id":"G-STAFF"}`, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "newbie", created.UserID)
	// чувствительные поля не сериализуются
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestCreateUser_Duplicate(t *testing.T) {
	auth := &mockAuthService{
		createUserFn: func(context.Context, models.CreateUserRequest, string) (models.User, error) {
			return models.User{}, store.ErrUserAlreadyExists
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/users",
		`{"user_id":"newbie","password":"newbie-pass","group_id":"G-STAFF"}`, adminToken)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateUser_AdminOnly(t *testing.T) {
	h := newTestHandler(t, &service.Services{Auth: &mockAuthService{}})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/users",
		`{"user_id":"newbie","password":"newbie-pass","group_id":"G-STAFF"}`, staffToken)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUnlockUser(t *testing.T) {
	auth := &mockAuthService{
		unlockFn: func(_ context.Context, userID, updatedBy string) error {
			assert.Equal(t, "admin", userID)
			assert.Equal(t, "root", updatedBy)
			return nil
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/users/admin/unlock", "", adminToken)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUnlockUser_NotFound(t *testing.T) {
	auth := &mockAuthService{
		unlockFn: func(context.Context, string, string) error {
			return store.ErrNoUserWasFound
		},
	}
	h := newTestHandler(t, &service.Services{Auth: auth})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/users/ghost/unlock", "", adminToken)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
