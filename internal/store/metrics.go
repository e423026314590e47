package store

import (
	"context"
	"log"
	"time"

	"github.com/jw6ventures/calboard/internal/metrics"
)

// slowOpThreshold flags store operations that should be instant for an
// in-memory backend; crossing it usually means lock contention.
const slowOpThreshold = 100 * time.Millisecond

func observeStore(ctx context.Context, operation string) func() {
	start := time.Now()
	return func() {
		metrics.ObserveStoreLatency(ctx, operation, start)

		if elapsed := time.Since(start); elapsed > slowOpThreshold {
			if reqID := metrics.RequestIDFromContext(ctx); reqID != "" {
				log.Printf("[WARN] RequestID=%s: slow store op %s took %s", reqID, operation, elapsed)
			} else {
				log.Printf("[WARN] slow store op %s took %s", operation, elapsed)
			}
		}
	}
}
