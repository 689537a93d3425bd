// Package uploader sends validated products to the catalog API in one batch.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medisupply/product-import/internal/apperrors"
	"github.com/medisupply/product-import/internal/metrics"
	"github.com/medisupply/product-import/internal/models"
)

// BatchPath is the catalog endpoint that accepts a product batch.
const BatchPath = "/products-batch"

// maxErrorBody caps how much of a failed response body is kept for logs.
const maxErrorBody = 4 << 10

// Client posts product batches to the catalog.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithToken sets the bearer token sent with every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a catalog upload client for baseURL.
func New(baseURL string, timeout time.Duration, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "uploader").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload sends every record in one request and returns the catalog's counts
// unchanged. A network failure, a non-2xx status or an unreadable body is a
// TransportError. The request is never retried.
func (c *Client) Upload(ctx context.Context, records []models.ProductCreateRequest) (*models.ProductCreateBulkResponse, error) {
	timer := metrics.NewTimer()
	resp, err := c.upload(ctx, records)
	metrics.RecordUpload(err, timer.Duration())

	if err != nil {
		c.log.Error().Err(err).Int("records", len(records)).Msg("Batch upload failed")
		return nil, apperrors.TransportError(err)
	}

	c.log.Info().
		Int("rows_total", resp.RowsTotal).
		Int("rows_inserted", resp.RowsInserted).
		Int("errors", resp.Errors).
		Dur("duration", timer.Duration()).
		Msg("Batch upload completed")

	return resp, nil
}

func (c *Client) upload(ctx context.Context, records []models.ProductCreateRequest) (*models.ProductCreateBulkResponse, error) {
	if records == nil {
		records = []models.ProductCreateRequest{}
	}

	body, err := json.Marshal(models.ProductCreateBulkRequest{Products: records})
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+BatchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", BatchPath, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBody))
		return nil, fmt.Errorf("post %s: unexpected status %d: %s", BatchPath, httpResp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out models.ProductCreateBulkResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.ErrorsDetails == nil {
		out.ErrorsDetails = []string{}
	}

	return &out, nil
}
