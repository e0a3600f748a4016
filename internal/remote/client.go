package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

var (
	// ErrUnavailable indicates the external item source is unreachable.
	ErrUnavailable = errors.New("item source unavailable")

	// ErrTimeout indicates the request exceeded the configured budget. The
	// engine treats it identically to an explicit failure.
	ErrTimeout = errors.New("item source request timed out")
)

// Config holds the external source endpoint and request budget.
type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// DefaultTimeout bounds every request when the config leaves it unset.
const DefaultTimeout = 5 * time.Second

// Client talks to the external item source over HTTP.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a client for the given endpoint.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// FetchItems returns all items from the external source.
func (c *Client) FetchItems(ctx context.Context) ([]ItemRecord, error) {
	var out []ItemRecord
	if err := c.do(ctx, http.MethodGet, "/calendar/items", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateItem creates one item remotely and returns the stored record.
func (c *Client) CreateItem(ctx context.Context, rec ItemRecord) (*ItemRecord, error) {
	var out ItemRecord
	if err := c.do(ctx, http.MethodPost, "/calendar/items", rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem applies a partial update remotely. The patch uses the same wire
// shape with zero-valued fields omitted.
func (c *Client) UpdateItem(ctx context.Context, id string, patch ItemRecord) (*ItemRecord, error) {
	var out ItemRecord
	if err := c.do(ctx, http.MethodPut, "/calendar/items/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteItem removes one item remotely.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/calendar/items/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ErrTimeout
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("item source returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
