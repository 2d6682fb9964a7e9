package service

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/store"
	"github.com/avolkov/core-admin/models"
)

// auditWriteTimeout bounds a single detached audit insert.
const auditWriteTimeout = 5 * time.Second

type auditSink struct {
	repo store.AuditRepository
	log  *logger.Logger
	wg   sync.WaitGroup
}

func NewAuditSink(repo store.AuditRepository, log *logger.Logger) AuditSink {
	return &auditSink{repo: repo, log: log}
}

// Record writes the event asynchronously. The write is detached from the
// request context so a client disconnect does not lose the record; Close
// waits for all pending writes before the process exits.
func (s *auditSink) Record(ctx context.Context, kind, subject, outcome, details string) {
	event := models.AuditEvent{
		ID:        ksuid.New().String(),
		Kind:      kind,
		Subject:   subject,
		Outcome:   outcome,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		writeCtx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()

		if err := s.repo.Insert(writeCtx, event); err != nil {
			s.log.Err(err).
				Str("func", "Record").
				Str("kind", kind).
				Str("subject", subject).
				Msg("error writing audit event")
		}
	}()
}

func (s *auditSink) Close() {
	s.wg.Wait()
}
