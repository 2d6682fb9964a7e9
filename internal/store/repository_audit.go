package store

import (
	"context"
	"fmt"

	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/models"
)

// auditRepository is the PostgreSQL-backed implementation of
// [AuditRepository]. The "audit_log" table is append-only: no update or
// delete statements exist in this repository.
type auditRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAuditRepository constructs an [AuditRepository] backed by the provided
// database connection and logger.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{
		db:     db,
		logger: logger,
	}
}

// Insert appends one audit event.
func (r *auditRepository) Insert(ctx context.Context, event models.AuditEvent) error {
	if _, err := r.db.ExecContext(ctx, insertAuditEvent,
		event.ID, event.Kind, event.Subject, event.Outcome, event.Details, event.CreatedAt); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
