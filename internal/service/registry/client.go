package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/krobus00/pairsync-service/internal/entity"
)

const defaultRegistryTimeout = 10 * time.Second

// Client fetches entitlement profiles from the profile registry.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRegistryTimeout
	}

	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListProfiles returns every profile the registry currently serves. The
// caller decides whether an empty list is acceptable; here it is just data.
func (c *Client) ListProfiles(ctx context.Context) ([]entity.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &entity.NetworkError{URL: c.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &entity.NetworkError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entity.NetworkError{URL: c.url, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &entity.NetworkError{URL: c.url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var payload struct {
		Profiles json.RawMessage `json:"profiles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &entity.DataFormatError{Source: c.url, Reason: "response is not a json object"}
	}
	if len(payload.Profiles) == 0 {
		return nil, &entity.DataFormatError{Source: c.url, Reason: "missing profiles list"}
	}

	var profiles []entity.Profile
	if err := json.Unmarshal(payload.Profiles, &profiles); err != nil {
		return nil, &entity.DataFormatError{Source: c.url, Reason: "profiles is not a list"}
	}

	return profiles, nil
}
