package services_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/services"
	"github.com/SscSPs/savings_ledger/internal/middleware"
)

func TestBaseService_LogErrorLevels(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"missing entity", apperrors.NewAppError(404, "not found", apperrors.ErrNotFound), "level=DEBUG"},
		{"ledger rule rejection", apperrors.NewNegativeBalanceError("acc-1", "withdrawal"), "level=DEBUG"},
		{"database failure", errors.New("connection reset"), "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			ctx := middleware.WithLogger(context.Background(), logger)

			var s services.BaseService
			s.LogError(ctx, tt.err, "Failed to load", slog.String("savings_account_id", "acc-1"))

			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, "savings_account_id=acc-1")
			assert.Contains(t, out, "error=")
		})
	}
}

func TestBaseService_GetLoggerFallsBackToDefault(t *testing.T) {
	var s services.BaseService
	assert.Same(t, slog.Default(), s.GetLogger(context.Background()))
}
