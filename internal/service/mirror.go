package service

import (
	"context"
	"encoding/json"

	"teapos/internal/worker"
)

// notifyMirror enqueues a cloud mirror push for one record. Best-effort —
// the record carries synced=false until the push lands, and the retry cron
// sweeps up anything the queue misses, so a failed enqueue is never lost.
func notifyMirror(ctx context.Context, d *worker.Dispatcher, collection, id string, record interface{}) {
	if d == nil {
		return
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return
	}
	_ = d.EnqueueMirror(ctx, worker.MirrorJobPayload{
		Collection: collection,
		ID:         id,
		Payload:    payload,
	})
}
