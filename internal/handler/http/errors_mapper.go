package http

import (
	"errors"
	"net/http"

	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/service"
	"github.com/avolkov/core-admin/internal/store"
	"github.com/avolkov/core-admin/internal/utils"
	"github.com/avolkov/core-admin/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrUserInactive:            http.StatusUnauthorized,
	service.ErrUserLocked:              http.StatusLocked,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrPasswordPolicy:          http.StatusBadRequest,
	service.ErrSelfCopy:                http.StatusBadRequest,
	service.ErrCycleDetected:           http.StatusBadRequest,
	service.ErrDepthExceeded:           http.StatusBadRequest,

	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrEmptyToken:                 http.StatusUnauthorized,
	ErrInsufficientGrant:          http.StatusForbidden,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:    http.StatusNotFound,
	store.ErrMenuNotFound:      http.StatusNotFound,
	store.ErrMenuAlreadyExists: http.StatusConflict,
	store.ErrMenuHasChildren:   http.StatusConflict,
	store.ErrParentMenuMissing: http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to the error taxonomy and writes the uniform
// {"detail": "..."} body. Internal errors never leak their cause to the
// client; the full chain goes to the log instead.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	detail := http.StatusText(status)
	if status < http.StatusInternalServerError {
		for target := range errorStatusMap {
			if errors.Is(err, target) {
				detail = target.Error()
				break
			}
		}
	}

	log.Err(err).Int("status", status).Msg("request failed")
	utils.WriteJSON(w, models.ErrorResponse{Detail: detail}, status)
}
