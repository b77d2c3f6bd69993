package service

import (
	"bitwise74/shop-api/internal/store"
	"context"
	"time"

	"go.uber.org/zap"
)

// TokenCleanup periodically drops password reset tokens that expired and
// were never used. Runs until ctx is cancelled
func TokenCleanup(ctx context.Context, t time.Duration, s *store.Store) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				cleanupResetTokens(s, now)
			}
		}
	}()
}

func cleanupResetTokens(s *store.Store, now time.Time) {
	n, err := s.Users.ClearExpiredResetTokens(now)
	if err != nil {
		zap.L().Error("Failed to cleanup expired reset tokens", zap.Error(err))
		return
	}

	if n > 0 {
		zap.L().Debug("Cleaned up expired reset tokens", zap.Int("count", n))
	}
}
