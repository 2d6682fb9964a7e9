package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/mock"
	"github.com/avolkov/core-admin/models"
)

func TestAuditSink_RecordWritesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockAuditRepository(ctrl)
	sink := NewAuditSink(repo, logger.Nop())

	done := make(chan models.AuditEvent, 1)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event models.AuditEvent) error {
			done <- event
			return nil
		},
	)

	sink.Record(context.Background(), models.AuditLoginAttempt, "admin", models.AuditOutcomeSuccess, "login ok")
	sink.Close()

	event := <-done
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, models.AuditLoginAttempt, event.Kind)
	assert.Equal(t, "admin", event.Subject)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestAuditSink_WriteSurvivesCancelledRequestContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockAuditRepository(ctrl)
	sink := NewAuditSink(repo, logger.Nop())

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(writeCtx context.Context, _ models.AuditEvent) error {
			// запись идёт в отсоединённом контексте
			require.NoError(t, writeCtx.Err())
			return nil
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink.Record(ctx, models.AuditUserUnlock, "admin", models.AuditOutcomeSuccess, "unlocked")
	sink.Close()
}

func TestAuditSink_InsertFailureNeverPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockAuditRepository(ctrl)
	sink := NewAuditSink(repo, logger.Nop())

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	// Record не возвращает ошибок и не паникует
	sink.Record(context.Background(), models.AuditGrantChange, "G-STAFF", models.AuditOutcomeError, "boom")
	sink.Close()
}

func TestAuditSink_CloseWaitsForPendingWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockAuditRepository(ctrl)
	sink := NewAuditSink(repo, logger.Nop())

	var written atomic.Int32
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.AuditEvent) error {
			written.Add(1)
			return nil
		},
	).Times(3)

	for range 3 {
		sink.Record(context.Background(), models.AuditMenuChange, "M1", models.AuditOutcomeSuccess, "x")
	}
	sink.Close()

	assert.EqualValues(t, 3, written.Load())
}
