package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/angeloszaimis/lb-dashboard/internal/snapshot"
)

const maxBodyBytes = 1 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("metrics endpoint returned %d %s", e.Code, http.StatusText(e.Code))
}

// HTTPFetcher pulls snapshots from one endpoint.
type HTTPFetcher struct {
	endpoint *url.URL
	client   *http.Client
}

// New creates a fetcher for endpoint. Every request is bounded by timeout.
func New(endpoint string, timeout time.Duration) (*HTTPFetcher, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q: missing host", endpoint)
	}
	if timeout <= 0 {
		return nil, errors.New("fetch timeout must be > 0")
	}

	return &HTTPFetcher{
		endpoint: u,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (f *HTTPFetcher) Endpoint() string {
	return f.endpoint.String()
}

// Fetch performs one GET and decodes the snapshot.
func (f *HTTPFetcher) Fetch(ctx context.Context) (*snapshot.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		return nil, &StatusError{Code: res.StatusCode}
	}

	return snapshot.Decode(io.LimitReader(res.Body, maxBodyBytes))
}
