package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and the lockout state machine against
// the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser reads one users row into a models.User.
func scanUser(row interface{ Scan(dest ...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.EssentialID,
		&u.UserID,
		&u.PasswordHash,
		&u.StatusCode,
		&u.LockFlag,
		&u.LockCount,
		&u.Name,
		&u.Email,
		&u.OrgID,
		&u.GroupID,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.UpdatedAt,
		&u.UpdatedBy,
	)
	return u, err
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (EssentialID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.UserID, user.PasswordHash, user.StatusCode, user.LockFlag, user.LockCount,
		user.Name, user.Email, user.OrgID, user.GroupID, user.CreatedBy)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("user_id", user.UserID).Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByUserID retrieves the account whose user_id matches the argument.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUserID(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByUserID, userID)

	found, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByUserID").Str("user_id", userID).Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// RecordLoginFailure performs the lockout read-modify-write inside one
// transaction with a row-level lock on the account, so two concurrent failed
// logins for the same user never lose an increment.
//
// Once lock_count reaches maxFails the lock flag flips to LOCKED. Returns
// the account as persisted after the update.
func (r *userRepository) RecordLoginFailure(ctx context.Context, userID string, maxFails int) (models.User, error) {
	log := logger.FromContext(ctx)

	var updated models.User
	err := r.db.withinTx(ctx, func(tx *sql.Tx) error {
		locked, err := scanUser(tx.QueryRowContext(ctx, lockUserRow, userID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNoUserWasFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		locked.LockCount++
		if locked.LockCount >= maxFails {
			locked.LockFlag = models.LockFlagLocked
		}

		if _, err := tx.ExecContext(ctx, updateLockState, userID, locked.LockCount, locked.LockFlag); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		updated = locked
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RecordLoginFailure").Str("user_id", userID).Msg("error recording login failure")
		return models.User{}, err
	}

	return updated, nil
}

// ResetLockState zeroes the lock counter and unlocks the account. Used after
// a successful login and by the admin unlock operation.
func (r *userRepository) ResetLockState(ctx context.Context, userID, updatedBy string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, resetLockState, userID, updatedBy)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ResetLockState").Str("user_id", userID).Msg("error resetting lock state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// UpdatePassword stores a new password digest and resets the lock state in
// the same statement.
func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash, updatedBy string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, updateUserPassword, userID, passwordHash, updatedBy)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Str("user_id", userID).Msg("error updating password")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
