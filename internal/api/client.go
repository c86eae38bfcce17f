package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TinyKitten/trainlcd-cli/internal/cache"
	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = time.Hour
	userAgent       = "trainlcd-cli"
)

// Cache is the response cache the client reads through
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// Client is the API client for the station-data service
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      Cache
	language   string
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at another deployment of the service
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLanguage sets the Accept-Language header
func WithLanguage(lang string) ClientOption {
	return func(c *Client) {
		c.language = lang
	}
}

// WithCache enables caching with the provided cache implementation
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithDefaultCache enables an in-memory cache in front of the default file
// cache
func WithDefaultCache() ClientOption {
	return WithCacheDir(cache.DefaultCacheDir(), defaultCacheTTL)
}

// WithCacheDir enables an in-memory cache in front of a file cache in dir.
// If the directory cannot be created only the memory cache is used.
func WithCacheDir(dir string, ttl time.Duration) ClientOption {
	return func(c *Client) {
		mem := cache.NewMemoryCache(cache.DefaultMemorySize, ttl)
		fc, err := cache.NewFileCache(dir, ttl)
		if err != nil {
			c.cache = mem
			return
		}
		c.cache = cache.NewTiered(mem, fc)
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:  BaseURL,
		language: "ja,en;q=0.8",
	}

	for _, opt := range opts {
		opt(c)
	}

	if _, err := url.Parse(c.baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return c, nil
}

// BaseURL returns the service the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetLine fetches one line
func (c *Client) GetLine(ctx context.Context, id int64) (*models.Line, error) {
	if id <= 0 {
		return nil, invalidID("lineId", id)
	}

	body, err := c.GetRaw(ctx, endpointPath(EndpointLine, id))
	if err != nil {
		return nil, err
	}

	var resp models.LineResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse line response: %w", err)
	}
	if resp.ID == 0 {
		return nil, fmt.Errorf("line %d: %w", id, ErrNoResults)
	}
	return resp.ToLine(), nil
}

// GetStations fetches the stations of a line in line order. A line with no
// stations is not an error.
func (c *Client) GetStations(ctx context.Context, lineID int64) ([]models.Station, error) {
	if lineID <= 0 {
		return nil, invalidID("lineId", lineID)
	}
	return c.getStations(ctx, endpointPath(EndpointLineStations, lineID))
}

// GetTrainTypes fetches the train types that serve a station
func (c *Client) GetTrainTypes(ctx context.Context, stationID int64) ([]models.TrainType, error) {
	if stationID <= 0 {
		return nil, invalidID("stationId", stationID)
	}

	body, err := c.GetRaw(ctx, endpointPath(EndpointStationTrainTypes, stationID))
	if err != nil {
		return nil, err
	}

	var resp []models.TrainTypeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse train types response: %w", err)
	}

	types := make([]models.TrainType, 0, len(resp))
	for i := range resp {
		types = append(types, *resp[i].ToTrainType())
	}
	return types, nil
}

// GetTrainTypeStations fetches the stations of a train type, each carrying
// the stop condition for that type
func (c *Client) GetTrainTypeStations(ctx context.Context, trainTypeID int64) ([]models.Station, error) {
	if trainTypeID <= 0 {
		return nil, invalidID("trainTypeId", trainTypeID)
	}
	return c.getStations(ctx, endpointPath(EndpointTrainTypeStations, trainTypeID))
}

func (c *Client) getStations(ctx context.Context, path string) ([]models.Station, error) {
	body, err := c.GetRaw(ctx, path)
	if err != nil {
		return nil, err
	}

	var resp []models.StationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse stations response: %w", err)
	}

	stations := make([]models.Station, 0, len(resp))
	for i := range resp {
		stations = append(stations, *resp[i].ToStation())
	}
	return stations, nil
}

// GetRaw fetches an endpoint path and returns the raw JSON
func (c *Client) GetRaw(ctx context.Context, path string) (json.RawMessage, error) {
	return c.doRequest(ctx, c.baseURL+path)
}

// doRequest performs an HTTP GET request with optional caching
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	// Check cache first
	if c.cache != nil {
		if data, ok := c.cache.Get(reqURL); ok {
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", c.language)
	req.Header.Set("User-Agent", userAgent)

	// Correlation ID per request
	requestID := uuid.NewString()
	req.Header.Set("X-Correlation-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Check for context errors
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Handle non-OK status codes with proper error types
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   extractEndpoint(reqURL),
			Message:    errorMessage(resp.Body),
			RequestID:  requestID,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Store in cache
	if c.cache != nil {
		_ = c.cache.Set(reqURL, body)
	}

	return body, nil
}

// errorMessage pulls the message out of a JSON error body, if there is one
func errorMessage(r io.Reader) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}
