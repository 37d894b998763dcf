package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deathrjj/member-admin-tui/models"
)

// DefaultURL is the members endpoint used when no URL is configured.
const DefaultURL = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

// DefaultTimeout bounds the single fetch.
const DefaultTimeout = 10 * time.Second

// ErrLoadFailure marks any failure of the initial fetch: transport, status or decode.
var ErrLoadFailure = errors.New("load failure")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Is makes a StatusError match ErrLoadFailure.
func (e *StatusError) Is(target error) bool {
	return target == ErrLoadFailure
}

// Client handles the members endpoint
type Client struct {
	URL    string
	client *http.Client
}

// NewClient creates a new members client. An empty url falls back to DefaultURL
// and a non-positive timeout to DefaultTimeout.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		URL: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchMembers retrieves the full member collection in one request
func (c *Client) FetchMembers(ctx context.Context) ([]models.Member, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: c.URL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrLoadFailure, err)
	}

	var members []models.Member
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, fmt.Errorf("%w: decoding members: %w", ErrLoadFailure, err)
	}
	return members, nil
}
