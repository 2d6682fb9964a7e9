package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var userTestColumns = []string{
	"essential_id", "user_id", "password_hash", "status_code", "lock_flag", "lock_count",
	"name", "email", "org_id", "group_id", "created_at", "created_by", "updated_at", "updated_by",
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRow(u models.User) *sqlmock.Rows {
	return sqlmock.NewRows(userTestColumns).AddRow(
		u.EssentialID, u.UserID, u.PasswordHash, u.StatusCode, u.LockFlag, u.LockCount,
		u.Name, u.Email, u.OrgID, u.GroupID, u.CreatedAt, u.CreatedBy, u.UpdatedAt, u.UpdatedBy,
	)
}

func storedUser() models.User {
	now := time.Now()
	return models.User{
		EssentialID:  1,
		UserID:       "john",
		PasswordHash: "$argon2id$hash",
		StatusCode:   models.StatusActive,
		LockFlag:     models.LockFlagUnlocked,
		LockCount:    0,
		Name:         "John",
		Email:        "john@example.com",
		OrgID:        "ORG1",
		GroupID:      "G1",
		CreatedAt:    now,
		CreatedBy:    "admin",
		UpdatedAt:    now,
		UpdatedBy:    "admin",
	}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := storedUser()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.UserID, user.PasswordHash, user.StatusCode, user.LockFlag, user.LockCount,
			user.Name, user.Email, user.OrgID, user.GroupID, user.CreatedBy).
		WillReturnRows(userRow(user))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.EssentialID != 1 {
		t.Errorf("expected EssentialID=1, got %d", created.EssentialID)
	}
	if created.UserID != user.UserID {
		t.Errorf("expected user_id %s, got %s", user.UserID, created.UserID)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, storedUser())
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, storedUser())
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByUserID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := storedUser()

	mock.ExpectQuery("SELECT essential_id").
		WithArgs("john").
		WillReturnRows(userRow(user))

	found, err := repo.FindUserByUserID(ctx, "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != "john" {
		t.Errorf("expected user_id john, got %s", found.UserID)
	}
	if found.GroupID != "G1" {
		t.Errorf("expected group_id G1, got %s", found.GroupID)
	}
}

func TestFindUserByUserID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT essential_id").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUserID(ctx, "nobody")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByUserID_UnexpectedError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT essential_id").
		WithArgs("john").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByUserID(ctx, "john")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestRecordLoginFailure_IncrementsCount(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := storedUser()
	user.LockCount = 2

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("john").
		WillReturnRows(userRow(user))
	mock.ExpectExec("UPDATE users").
		WithArgs("john", 3, models.LockFlagUnlocked).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.RecordLoginFailure(ctx, "john", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.LockCount != 3 {
		t.Errorf("expected lock_count 3, got %d", updated.LockCount)
	}
	if updated.LockFlag != models.LockFlagUnlocked {
		t.Errorf("expected account to remain unlocked, got %s", updated.LockFlag)
	}
}

func TestRecordLoginFailure_LocksAtThreshold(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := storedUser()
	user.LockCount = 4

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("john").
		WillReturnRows(userRow(user))
	mock.ExpectExec("UPDATE users").
		WithArgs("john", 5, models.LockFlagLocked).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.RecordLoginFailure(ctx, "john", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.LockFlag != models.LockFlagLocked {
		t.Errorf("expected account to be locked, got %s", updated.LockFlag)
	}
}

func TestRecordLoginFailure_UserNotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.RecordLoginFailure(ctx, "nobody", 5)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestResetLockState_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs("john", "admin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ResetLockState(ctx, "john", "admin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResetLockState_UserNotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs("nobody", "admin").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ResetLockState(ctx, "nobody", "admin")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdatePassword_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs("john", "$argon2id$newhash", "john").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(ctx, "john", "$argon2id$newhash", "john"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdatePassword_UserNotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs("nobody", "$argon2id$newhash", "admin").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(ctx, "nobody", "$argon2id$newhash", "admin")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}
