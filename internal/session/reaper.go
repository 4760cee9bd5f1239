package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartReaper removes idle sessions from store every interval until ctx is done.
func StartReaper(ctx context.Context, store *Store, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := store.Sweep(); removed > 0 {
					log.Info("expired idle sessions", zap.Int("removed", removed), zap.Int("active", store.Len()))
				}
			}
		}
	}()
}
