// Package mapbox implements the geocoding and trip-optimization collaborator
// contracts on top of the Mapbox HTTP APIs.
package mapbox

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"waypoints/config"
	domainerrors "waypoints/internal/domain/errors"
	"waypoints/internal/errors"
)

const (
	defaultBaseURL      = "https://api.mapbox.com"
	defaultProfile      = "driving"
	defaultTimeout      = 10 * time.Second
	defaultMaxWaypoints = 12
	defaultGeocodeLimit = 6
)

// Client is the shared transport for the Mapbox API wrappers.
// No automatic retries: a failed call surfaces immediately and the user
// decides whether to try again.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	profile     string

	maxWaypoints int
	geocodeLimit int
}

// NewClient builds a client from configuration. A missing access token is
// not an error here; calls fail fast with a configuration error instead so
// the process can still start for offline work.
func NewClient(cfg *config.MapboxConfig) *Client {
	if cfg == nil {
		cfg = &config.MapboxConfig{}
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	profile := cfg.Profile
	if profile == "" {
		profile = defaultProfile
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxWaypoints := cfg.MaxWaypoints
	if maxWaypoints <= 0 {
		maxWaypoints = defaultMaxWaypoints
	}

	geocodeLimit := cfg.GeocodeLimit
	if geocodeLimit <= 0 {
		geocodeLimit = defaultGeocodeLimit
	}

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      baseURL,
		accessToken:  strings.TrimSpace(cfg.AccessToken),
		profile:      profile,
		maxWaypoints: maxWaypoints,
		geocodeLimit: geocodeLimit,
	}
}

// HasCredential reports whether an access token is configured.
func (c *Client) HasCredential() bool {
	return c.accessToken != ""
}

// get issues a GET for path with the query values plus the access token and
// returns the response body. Errors are already mapped onto the domain
// taxonomy (network vs upstream status).
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if !c.HasCredential() {
		return nil, domainerrors.ErrMissingCredential
	}

	query.Set("access_token", c.accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create mapbox request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUpstreamNetwork, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUpstreamNetwork, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domainerrors.NewUpstreamServiceError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
