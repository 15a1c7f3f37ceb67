package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"dreamscape/domain/graph"
	pkgerrors "dreamscape/pkg/errors"
)

// Client talks to the dreamscape backend. Both operations are fire-once
// from the viewer's perspective: no retries, no request cancellation
// beyond the caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// submitResponse is the envelope the submit endpoint returns.
type submitResponse struct {
	Status string          `json:"status"`
	Graph  *graph.Snapshot `json:"graph"`
}

// Submit posts a dream entry and returns the rebuilt snapshot from the
// response envelope.
func (c *Client) Submit(ctx context.Context, text string) (*graph.Snapshot, error) {
	body, err := json.Marshal(map[string]string{"dream": text})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "encode submit request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/submit", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "build submit request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.NewNetworkError("submit dream", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.NewNetworkError("submit dream",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var decoded submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, pkgerrors.NewNetworkError("decode submit response", err)
	}
	if decoded.Graph == nil {
		return nil, pkgerrors.NewNetworkError("submit dream",
			fmt.Errorf("response carried no graph"))
	}

	return decoded.Graph, nil
}

// LoadGraph fetches the current snapshot.
func (c *Client) LoadGraph(ctx context.Context) (*graph.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/graph", nil)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "build graph request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.NewNetworkError("load graph", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.NewNetworkError("load graph",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	snapshot := graph.Empty()
	if err := json.NewDecoder(resp.Body).Decode(snapshot); err != nil {
		return nil, pkgerrors.NewNetworkError("decode graph response", err)
	}

	return snapshot, nil
}
