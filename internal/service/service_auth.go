package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkov/core-admin/internal/config"
	"github.com/avolkov/core-admin/internal/crypto"
	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/store"
	"github.com/avolkov/core-admin/models"
)

// minPasswordLength is the single policy rule enforced on new passwords.
const minPasswordLength = 8

type authService struct {
	users  store.UserRepository
	hasher crypto.PasswordHasher
	tokens TokenService
	audit  AuditSink
	cfg    config.Auth
	log    *logger.Logger
}

func NewAuthService(users store.UserRepository, hasher crypto.PasswordHasher, tokens TokenService, audit AuditSink, cfg config.Auth, log *logger.Logger) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		audit:  audit,
		cfg:    cfg,
		log:    log,
	}
}

// Authenticate runs the login state machine. The caller cannot distinguish an
// unknown user from a wrong password; a locked account is reported as locked.
func (a *authService) Authenticate(ctx context.Context, userID, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if userID == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := a.users.FindUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.audit.Record(ctx, models.AuditLoginAttempt, userID, models.AuditOutcomeDenied, "unknown user")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("user_id", userID).Msg("error loading user")
		return models.User{}, err
	}

	if user.StatusCode != models.StatusActive {
		a.audit.Record(ctx, models.AuditLoginAttempt, userID, models.AuditOutcomeDenied, "account not active")
		return models.User{}, ErrUserInactive
	}

	if user.LockFlag == models.LockFlagLocked {
		a.audit.Record(ctx, models.AuditLoginAttempt, userID, models.AuditOutcomeDenied, "account locked")
		return models.User{}, ErrUserLocked
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		updated, failErr := a.users.RecordLoginFailure(ctx, userID, a.cfg.MaxLoginFails)
		if failErr != nil {
			log.Err(failErr).Str("user_id", userID).Msg("error recording login failure")
			a.audit.Record(ctx, models.AuditLoginAttempt, userID, models.AuditOutcomeError, "failed to record login failure")
			return models.User{}, failErr
		}
		if updated.LockFlag == models.LockFlagLocked {
			a.audit.Record(ctx, models.AuditLoginAttempt, userID, models.AuditOutcomeDenied,
				fmt.Sprintf("wrong password, account locked after %d failures", updated.LockCount))
		} else {
			a.audit.Record(ctx, models.AuditLoginAttempt, userID, models.AuditOutcomeDenied,
				fmt.Sprintf("wrong password, failure %d", updated.LockCount))
		}
		return models.User{}, ErrInvalidCredentials
	}

	if user.LockCount > 0 {
		if resetErr := a.users.ResetLockState(ctx, userID, userID); resetErr != nil {
			log.Err(resetErr).Str("user_id", userID).Msg("error resetting lock state")
			return models.User{}, resetErr
		}
		user.LockCount = 0
		user.LockFlag = models.LockFlagUnlocked
	}

	a.audit.Record(ctx, models.AuditLoginAttempt, userID, models.AuditOutcomeSuccess, "login ok")
	return user, nil
}

func (a *authService) IssueTokens(ctx context.Context, user models.User) (models.TokenPair, error) {
	return a.tokens.MintPair(ctx, user)
}

// Refresh re-checks the account state so a token minted before a suspension or
// lockout cannot outlive it.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokens.Validate(ctx, refreshToken, models.TokenTypeRefresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.users.FindUserByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.audit.Record(ctx, models.AuditTokenRefresh, claims.UserID, models.AuditOutcomeDenied, "user no longer exists")
			return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
		}
		log.Err(err).Str("user_id", claims.UserID).Msg("error loading user")
		return models.TokenPair{}, err
	}

	if !user.CanLogin() {
		a.audit.Record(ctx, models.AuditTokenRefresh, user.UserID, models.AuditOutcomeDenied, "account suspended or locked")
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	pair, err := a.tokens.MintPair(ctx, user)
	if err != nil {
		return models.TokenPair{}, err
	}

	a.audit.Record(ctx, models.AuditTokenRefresh, user.UserID, models.AuditOutcomeSuccess, "pair refreshed")
	return pair, nil
}

func (a *authService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("error loading user")
		return err
	}

	if !a.hasher.Verify(oldPassword, user.PasswordHash) {
		a.audit.Record(ctx, models.AuditPasswordChange, userID, models.AuditOutcomeDenied, "old password mismatch")
		return ErrInvalidCredentials
	}

	if err = checkPasswordPolicy(newPassword, oldPassword); err != nil {
		return err
	}

	digest, err := a.hasher.Hash(newPassword)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("error hashing password")
		return err
	}

	if err = a.users.UpdatePassword(ctx, userID, digest, userID); err != nil {
		log.Err(err).Str("user_id", userID).Msg("error persisting password")
		return err
	}

	a.audit.Record(ctx, models.AuditPasswordChange, userID, models.AuditOutcomeSuccess, "password changed")
	return nil
}

func (a *authService) CreateUser(ctx context.Context, req models.CreateUserRequest, createdBy string) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.UserID == "" || req.GroupID == "" {
		return models.User{}, ErrInvalidDataProvided
	}
	if err := checkPasswordPolicy(req.Password, ""); err != nil {
		return models.User{}, err
	}

	digest, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("user_id", req.UserID).Msg("error hashing password")
		return models.User{}, err
	}

	user := models.User{
		UserID:       req.UserID,
		PasswordHash: digest,
		StatusCode:   models.StatusActive,
		LockFlag:     models.LockFlagUnlocked,
		Name:         req.Name,
		Email:        req.Email,
		OrgID:        req.OrgID,
		GroupID:      req.GroupID,
		CreatedBy:    createdBy,
		UpdatedBy:    createdBy,
	}

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("user_id", req.UserID).Msg("error creating user")
		return models.User{}, err
	}

	a.audit.Record(ctx, models.AuditUserCreate, created.UserID, models.AuditOutcomeSuccess, "created by "+createdBy)
	return created, nil
}

func (a *authService) Unlock(ctx context.Context, userID, updatedBy string) error {
	log := logger.FromContext(ctx)

	if err := a.users.ResetLockState(ctx, userID, updatedBy); err != nil {
		log.Err(err).Str("user_id", userID).Msg("error unlocking user")
		return err
	}

	a.audit.Record(ctx, models.AuditUserUnlock, userID, models.AuditOutcomeSuccess, "unlocked by "+updatedBy)
	return nil
}

func checkPasswordPolicy(newPassword, oldPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: at least %d characters required", ErrPasswordPolicy, minPasswordLength)
	}
	if oldPassword != "" && newPassword == oldPassword {
		return fmt.Errorf("%w: new password must differ from the old one", ErrPasswordPolicy)
	}
	return nil
}
