package worker

// mirror_worker.go
// Processes cloud mirror jobs from QueueMirror: pushes one local record to
// the cloud document store and flips its synced flag on success. The push
// goes through the circuit breaker so a downed mirror does not tie up the
// whole pool.

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"teapos/internal/infra"
	"teapos/internal/repository"
)

// MirrorJobPayload is the job envelope sent to QueueMirror.
type MirrorJobPayload struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Payload    json.RawMessage `json:"payload"`
}

// MirrorWorker pushes unsynced records to the cloud mirror.
type MirrorWorker struct {
	client   *infra.MirrorClient
	cb       *infra.CircuitBreaker
	syncRepo repository.SyncRepository
}

func NewMirrorWorker(client *infra.MirrorClient, cb *infra.CircuitBreaker, syncRepo repository.SyncRepository) *MirrorWorker {
	return &MirrorWorker{client: client, cb: cb, syncRepo: syncRepo}
}

// Process pushes one record. Failures are left unsynced; the retry cron
// picks them up again on its next tick.
func (w *MirrorWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload MirrorJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("mirror_worker: invalid payload")
		return
	}
	if payload.Collection == "" || payload.ID == "" {
		log.Warn().Msg("mirror_worker: empty collection or id — skipping")
		return
	}

	cbErr := w.cb.Execute(func() error {
		return w.client.Push(ctx, payload.Collection, payload.ID, payload.Payload)
	})
	if cbErr != nil {
		log.Warn().
			Err(cbErr).
			Str("collection", payload.Collection).
			Str("id", payload.ID).
			Msg("mirror_worker: push failed, record stays unsynced")
		return
	}

	if err := w.syncRepo.MarkSynced(ctx, payload.Collection, payload.ID); err != nil {
		// The push is idempotent, so the retry cron re-pushing this record
		// later is harmless.
		log.Error().
			Err(err).
			Str("collection", payload.Collection).
			Str("id", payload.ID).
			Msg("mirror_worker: failed to mark record synced")
		return
	}

	log.Debug().
		Str("collection", payload.Collection).
		Str("id", payload.ID).
		Msg("mirror_worker: record mirrored")
}
