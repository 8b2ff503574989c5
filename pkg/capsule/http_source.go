package capsule

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dgp-systems/compliance-kernel/pkg/dgp"
)

// sharedTransport is reused across every HTTPSource so that repeated
// capsule fetches against the same registry pool TCP connections instead of
// handshaking per request.
var sharedTransport = &http.Transport{
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
}

// APIError is returned when a capsule registry responds with a non-2xx
// status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("capsule registry: HTTP %d: %s", e.StatusCode, e.Body)
}

// HTTPSource fetches a Capsule document from a centrally managed registry.
type HTTPSource struct {
	BaseURL string
	Version string
	Client  *http.Client
}

// NewHTTPSource builds an HTTPSource with a pooled client and a sane
// default timeout.
func NewHTTPSource(baseURL, version string) HTTPSource {
	return HTTPSource{
		BaseURL: baseURL,
		Version: version,
		Client:  &http.Client{Timeout: 5 * time.Second, Transport: sharedTransport},
	}
}

// Load implements Source by fetching {BaseURL}/capsules/{Version}.
func (s HTTPSource) Load() (*dgp.Capsule, error) {
	return s.LoadContext(context.Background())
}

// LoadContext is Load with an explicit context, for callers that want
// cancellation or deadline propagation on the registry round-trip.
func (s HTTPSource) LoadContext(ctx context.Context) (*dgp.Capsule, error) {
	url := fmt.Sprintf("%s/capsules/%s", s.BaseURL, s.Version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("capsule: building request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second, Transport: sharedTransport}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("capsule: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var c dgp.Capsule
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		return nil, fmt.Errorf("capsule: decoding response from %s: %w", url, err)
	}
	return &c, nil
}
