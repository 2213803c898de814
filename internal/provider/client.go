package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Domenick1991/planepal/config"
)

// Resource names understood by the external flight data API.
const (
	ResourceAirlines = "airlines"
	ResourceAirports = "airports"
	ResourceFlights  = "flights"
)

// Client fetches raw catalog payloads from the external provider.
// Requests look like GET {baseURL}{resource}?access_key=<key>[&k=v...].
type Client struct {
	baseURL   string
	accessKey string
	http      *http.Client
}

func NewClient(cfg config.ProviderConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		accessKey: cfg.AccessKey,
		http:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) Load(ctx context.Context, resource string, params map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(resource, params), nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: provider returned status %d", resource, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", resource, err)
	}
	return body, nil
}

func (c *Client) buildURL(resource string, params map[string]string) string {
	values := url.Values{}
	values.Set("access_key", c.accessKey)
	for k, v := range params {
		values.Set(k, v)
	}
	return c.baseURL + resource + "?" + values.Encode()
}
