package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues records whose cloud
// mirror push has not gone through (synced=false). A record that keeps
// failing past MaxMirrorRetries is copied to the DLQ for manual inspection;
// it remains unsynced locally, so a later manual fix still gets picked up.
// Uses the Circuit Breaker state to avoid hammering a downed mirror.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"teapos/internal/infra"
	"teapos/internal/repository"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 25

	// MaxMirrorRetries is the number of cron re-enqueues per record before
	// it is reported to the DLQ.
	MaxMirrorRetries = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	SyncRepo   repository.SyncRepository
	Dispatcher *Dispatcher
	CB         *infra.CircuitBreaker
	RDB        *redis.Client
}

// StartRetryCron launches a background goroutine that ticks every 30s and
// re-enqueues unsynced rows across every mirrored collection. It respects
// the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	attempts := &attemptTracker{seen: make(map[string]int)}

	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg, attempts)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig, attempts *attemptTracker) {
	// If CB is open, skip entirely — don't hammer a downed mirror
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	for _, collection := range cfg.SyncRepo.Collections() {
		records, err := cfg.SyncRepo.ListUnsynced(ctx, collection, retryBatchSize)
		if err != nil {
			log.Error().Err(err).Str("collection", collection).Msg("retry_cron: failed to query unsynced rows")
			continue
		}
		if len(records) == 0 {
			attempts.forgetCollection(collection)
			continue
		}

		log.Info().Int("count", len(records)).Str("collection", collection).Msg("retry_cron: re-enqueueing unsynced rows")

		for _, rec := range records {
			// Check CB state before each enqueue — it may have tripped mid-batch
			if cfg.CB.State() == infra.CBOpen {
				log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
				return
			}

			n := attempts.bump(rec.Collection, rec.ID)
			if n == MaxMirrorRetries {
				SendToDLQ(ctx, cfg.RDB, QueueMirror, "mirror", rec.Payload,
					fmt.Sprintf("record still unsynced after %d cron retries", n), n)
			}

			job := MirrorJobPayload{Collection: rec.Collection, ID: rec.ID, Payload: rec.Payload}
			if err := cfg.Dispatcher.EnqueueMirror(ctx, job); err != nil {
				log.Error().Err(err).Str("collection", rec.Collection).Str("id", rec.ID).
					Msg("retry_cron: failed to enqueue mirror job")
			}
		}
	}
}

// attemptTracker counts per-record cron re-enqueues so stuck records can be
// reported once to the DLQ. In-memory only: a restart resets the counts,
// which just delays the DLQ report, never loses data.
type attemptTracker struct {
	mu   sync.Mutex
	seen map[string]int
}

func (t *attemptTracker) bump(collection, id string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := collection + "/" + id
	t.seen[key]++
	return t.seen[key]
}

func (t *attemptTracker) forgetCollection(collection string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prefix := collection + "/"
	for key := range t.seen {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(t.seen, key)
		}
	}
}
