// internal/feed/client.go
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a single fetch of the schedule source.
const DefaultTimeout = 10 * time.Second

var (
	// ErrSourceUnavailable reports a transport failure, timeout, or
	// error status from the schedule source.
	ErrSourceUnavailable = errors.New("schedule source unavailable")

	// ErrMalformedSource reports a payload that could not be decoded.
	ErrMalformedSource = errors.New("schedule source payload malformed")
)

// Client fetches the schedule document from a remote source.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves and decodes the source document. It does not retry;
// the caller retries by fetching again.
func (c *Client) Fetch(ctx context.Context) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Payload{}, fmt.Errorf("%w: status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}

	log.Debug().
		Str("url", c.url).
		Int("days", len(payload.Days)).
		Int("timeslots", len(payload.Timeslots)).
		Msg("Schedule source fetched")
	return payload, nil
}
