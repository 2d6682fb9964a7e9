package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/models"
)

func newTestAuditRepo(t *testing.T) (*auditRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &auditRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestAuditInsert_Success(t *testing.T) {
	repo, mock, db := newTestAuditRepo(t)
	defer db.Close()

	ctx := context.Background()
	event := models.AuditEvent{
		ID:        "2f9qyX0v1JZkR3",
		Kind:      "auth.login",
		Subject:   "john",
		Outcome:   "denied",
		Details:   "invalid credentials",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO audit_log").
		WithArgs(event.ID, event.Kind, event.Subject, event.Outcome, event.Details, event.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Insert(ctx, event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuditInsert_ExecError(t *testing.T) {
	repo, mock, db := newTestAuditRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("INSERT INTO audit_log").
		WillReturnError(errors.New("db failure"))

	err := repo.Insert(ctx, models.AuditEvent{ID: "x"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}
