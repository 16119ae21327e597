package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MirrorClient is an HTTP client that pushes local records to the cloud mirror
// store. The mirror is a dumb document store keyed by owner / collection / id,
// so every push is an idempotent upsert: re-sending the same record after a
// partial failure is always safe.
type MirrorClient struct {
	baseURL    string
	ownerID    string
	httpClient *http.Client
}

func NewMirrorClient(baseURL, ownerID string) *MirrorClient {
	return &MirrorClient{
		baseURL: baseURL,
		ownerID: ownerID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Push upserts one record under /owners/{owner}/{collection}/{id}.
func (c *MirrorClient) Push(ctx context.Context, collection, id string, payload json.RawMessage) error {
	url := fmt.Sprintf("%s/owners/%s/%s/%s", c.baseURL, c.ownerID, collection, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("mirror: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mirror: unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mirror: returned %d for %s/%s", resp.StatusCode, collection, id)
	}
	return nil
}
