package travelport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"travelfares/internal/adapters/observability"
)

// ErrNoResponse means the body decoded but carried no recognizable
// CatalogProductOfferingsResponse container.
var ErrNoResponse = errors.New("travelport: no valid offerings response")

// StatusError is a non-2xx reply, with whatever error text the service sent.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("travelport: HTTP %d", e.Status)
	}
	return fmt.Sprintf("travelport: HTTP %d: %s", e.Status, e.Body)
}

type Client struct {
	url    string
	hc     *http.Client
	branch string
	user   string
	pass   string
}

// New builds a client for the catalog search endpoint. Basic auth is attached
// only when branch, username and password are all configured.
func New(url, branch, user, pass string) *Client {
	return &Client{
		url:    url,
		hc:     &http.Client{Timeout: 30 * time.Second},
		branch: branch,
		user:   user,
		pass:   pass,
	}
}

// Search POSTs one catalog search and decodes the reply. One shot: a timeout
// or connection failure comes straight back to the caller, no retries.
func (c *Client) Search(ctx context.Context, sr SearchRequest) (*SearchResponse, error) {
	body, err := json.Marshal(sr)
	if err != nil {
		return nil, fmt.Errorf("travelport: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.branch != "" && c.user != "" && c.pass != "" {
		req.SetBasicAuth(c.user, c.pass)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("travelport", "search", 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("travelport: request failed: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("travelport", "search", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("travelport: decode response: %w", err)
	}
	return &out, nil
}
