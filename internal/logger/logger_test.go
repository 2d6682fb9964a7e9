package logger

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_NotNil(t *testing.T) {
	l := NewLogger("test")
	require.NotNil(t, l)
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	// должен молча проглотить запись
	l.Info().Msg("dropped")
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	parent := Nop()
	ctx := parent.WithContext(context.Background())

	got := FromContext(ctx)
	assert.NotNil(t, got)
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	parent := Nop()
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(parent.WithContext(r.Context()))

	got := FromRequest(r)
	assert.NotNil(t, got)
}

func TestGetChildLogger_IndependentOfParent(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()

	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}
