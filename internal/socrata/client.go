// Package socrata is a thin client for the Socrata Open Data API (SODA).
// It exposes the handful of query parameters the dashboard needs
// ($select/$where/$group/$order/$limit/$offset) and returns rows as loose
// string-keyed maps, which is how the datasets actually arrive.
package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tramites/internal/metrics"
)

// DefaultLimit is applied when a query does not set an explicit limit,
// matching the SODA server-side default.
const DefaultLimit = 1000

// Row is one dataset row. Values are JSON scalars; nested objects occur only
// on columns this application never reads.
type Row map[string]any

// QueryOptions mirror the SODA query parameters.
type QueryOptions struct {
	Select string
	Where  string
	Group  string
	Order  string
	Limit  int
	Offset int
}

// Querier executes SODA queries against one dataset. The search service
// depends on this interface so tests can substitute a fake.
type Querier interface {
	Query(ctx context.Context, opts QueryOptions) ([]Row, error)
}

// Client talks to one Socrata domain. Construct it once at startup and hand
// dataset-bound Resources to the components that query.
type Client struct {
	domain   string
	appToken string
	http     *http.Client
	cache    *Cache
	log      zerolog.Logger
}

// Config carries the client settings.
type Config struct {
	Domain   string
	AppToken string
	Timeout  time.Duration
	Cache    *Cache // optional response cache
	Logger   zerolog.Logger
}

// NewClient creates a Socrata client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		domain:   cfg.Domain,
		appToken: cfg.AppToken,
		http:     &http.Client{Timeout: timeout},
		cache:    cfg.Cache,
		log:      cfg.Logger,
	}
}

// Resource binds the client to a dataset id. Resource implements Querier.
type Resource struct {
	client    *Client
	datasetID string
}

// Resource returns a dataset-bound view of the client.
func (c *Client) Resource(datasetID string) *Resource {
	return &Resource{client: c, datasetID: datasetID}
}

// Query executes a SODA query and decodes the resulting rows.
func (r *Resource) Query(ctx context.Context, opts QueryOptions) ([]Row, error) {
	return r.client.query(ctx, r.datasetID, opts)
}

func (c *Client) query(ctx context.Context, datasetID string, opts QueryOptions) ([]Row, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	params := url.Values{}
	params.Set("$limit", strconv.Itoa(limit))
	params.Set("$offset", strconv.Itoa(opts.Offset))
	if opts.Select != "" {
		params.Set("$select", opts.Select)
	}
	if opts.Where != "" {
		params.Set("$where", opts.Where)
	}
	if opts.Group != "" {
		params.Set("$group", opts.Group)
	}
	if opts.Order != "" {
		params.Set("$order", opts.Order)
	}

	endpoint := fmt.Sprintf("%s/resource/%s.json?%s", c.baseURL(), datasetID, params.Encode())

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s response: %w", datasetID, err)
	}
	return rows, nil
}

// Metadata fetches the dataset metadata document.
func (c *Client) Metadata(ctx context.Context, datasetID string) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/api/views/%s.json", c.baseURL(), datasetID)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var meta map[string]any
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata for %s: %w", datasetID, err)
	}
	return meta, nil
}

// get fetches a URL through the response cache when one is configured.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(endpoint); ok {
			metrics.SocrataCacheHits.Inc()
			return body, nil
		}
	}

	start := time.Now()
	body, err := c.fetch(ctx, endpoint)
	metrics.ObserveSocrataQuery(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(endpoint, body)
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("socrata request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read socrata response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Str("url", endpoint).Msg("socrata query rejected")
		return nil, fmt.Errorf("socrata returned status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	return body, nil
}

// baseURL allows plain domains ("www.datos.gov.co") as well as full URLs,
// which tests use to point the client at a local server.
func (c *Client) baseURL() string {
	if strings.HasPrefix(c.domain, "http://") || strings.HasPrefix(c.domain, "https://") {
		return c.domain
	}
	return "https://" + c.domain
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
