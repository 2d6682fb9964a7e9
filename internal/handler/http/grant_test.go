package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/core-admin/internal/service"
	"github.com/avolkov/core-admin/internal/store"
)

func TestGetGroupMenus(t *testing.T) {
	access := &mockAccessService{
		grantedMenusFn: func(_ context.Context, groupID string) ([]string, error) {
			assert.Equal(t, "G-STAFF", groupID)
			return []string{"M1", "M1A"}, nil
		},
	}
	h := newTestHandler(t, &service.Services{Access: access})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/groups/G-STAFF/menus", "", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"menu_nos":["M1","M1A"]}`, rec.Body.String())
}

func TestGetGroupMenus_EmptySetIsJSONArray(t *testing.T) {
	access := &mockAccessService{
		grantedMenusFn: func(context.Context, string) ([]string, error) {
			return nil, nil
		},
	}
	h := newTestHandler(t, &service.Services{Access: access})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/groups/G-EMPTY/menus", "", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"menu_nos":[]}`, rec.Body.String())
}

func TestReplaceGroupMenus(t *testing.T) {
	access := &mockAccessService{
		replaceGrantsFn: func(_ context.Context, groupID string, menuNos []string, updatedBy string) error {
			assert.Equal(t, "G-STAFF", groupID)
			assert.Equal(t, []string{"M2"}, menuNos)
			assert.Equal(t, "root", updatedBy)
			return nil
		},
	}
	h := newTestHandler(t, &service.Services{Access: access})

	rec := doRequest(t, h, http.MethodPut, "/api/v1/groups/G-STAFF/menus", `{"menu_nos":["M2"]}`, adminToken)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReplaceGroupMenus_UnknownMenu(t *testing.T) {
	access := &mockAccessService{
		replaceGrantsFn: func(context.Context, string, []string, string) error {
			return store.ErrMenuNotFound
		},
	}
	h := newTestHandler(t, &service.Services{Access: access})

	rec := doRequest(t, h, http.MethodPut, "/api/v1/groups/G-STAFF/menus", `{"menu_nos":["GONE"]}`, adminToken)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReplaceGroupMenus_AdminOnly(t *testing.T) {
	h := newTestHandler(t, &service.Services{Access: &mockAccessService{}})

	rec := doRequest(t, h, http.MethodPut, "/api/v1/groups/G-STAFF/menus", `{"menu_nos":[]}`, staffToken)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
