package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/SscSPs/monetra/internal/middleware"
)

// DefaultMaxRetries bounds the read-validate-write loop on version conflicts.
const DefaultMaxRetries = 5

// DefaultRepairSettleWindow is how recently written a wallet may be and still be repaired.
const DefaultRepairSettleWindow = time.Minute

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// retryOnConflict runs fn until it succeeds, fails with something other than
// apperrors.ErrConflict, or maxRetries attempts have been made.
func (s *BaseService) retryOnConflict(ctx context.Context, maxRetries int, op string, fn func() error) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		s.LogDebug(ctx, "Version conflict, retrying",
			slog.String("operation", op),
			slog.Int("attempt", attempt))
	}
	return err
}

// ensureWalletOwner rejects wallets that do not belong to userID.
func ensureWalletOwner(wallet *domain.Wallet, userID string) error {
	if wallet.OwnerID != userID {
		return fmt.Errorf("%w: %s", apperrors.ErrWalletOwnershipMismatch, wallet.WalletID)
	}
	return nil
}

// ensureTransactionOwner rejects transactions that do not belong to userID.
func ensureTransactionOwner(txn *domain.Transaction, userID string) error {
	if txn.OwnerID != userID {
		return fmt.Errorf("%w: transaction %s belongs to another user", apperrors.ErrForbidden, txn.TransactionID)
	}
	return nil
}
