package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/middleware"
)

// BaseService gives services the request logger installed by the logging and
// auth middleware. Outside a request it falls back to slog.Default.
type BaseService struct{}

func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// accountLogger scopes the request logger to one savings account.
func (s *BaseService) accountLogger(ctx context.Context, accountID string) *slog.Logger {
	return s.GetLogger(ctx).With(slog.String("savings_account_id", accountID))
}

// LogError records a failed lookup or write. Missing entities and ledger rule
// rejections are answered to the caller and only logged at debug.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)

	var domainErr *apperrors.DomainError
	if errors.Is(err, apperrors.ErrNotFound) || errors.As(err, &domainErr) {
		s.GetLogger(ctx).Debug(msg, args...)
		return
	}
	s.GetLogger(ctx).Error(msg, args...)
}
