package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	service "github.com/okian/slugger/internal/app"
	"github.com/okian/slugger/internal/domain/model"
)

// Client issues GET requests against the dashboard API.
type Client struct {
	base   string
	client *http.Client
}

// NewClient creates a client for the server at base.
func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base:   base,
		client: &http.Client{Timeout: timeout},
	}
}

// PercentileRow mirrors the /api/percentiles response.
type PercentileRow struct {
	Population model.Population `json:"population"`
	model.PercentileRow
}

// Health fetches /healthz.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.get(ctx, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

// Players fetches the player list of a population.
func (c *Client) Players(ctx context.Context, pop model.Population) (service.PlayerList, error) {
	var list service.PlayerList
	err := c.getJSON(ctx, "/api/players", url.Values{"population": {string(pop)}}, &list)
	return list, err
}

// Percentiles fetches one player's percentile row.
func (c *Client) Percentiles(ctx context.Context, pop model.Population, name string) (PercentileRow, error) {
	var row PercentileRow
	err := c.getJSON(ctx, "/api/percentiles", url.Values{"population": {string(pop)}, "player": {name}}, &row)
	return row, err
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	resp, err := c.get(ctx, path, q)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	target := c.base + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}
	return resp, nil
}
