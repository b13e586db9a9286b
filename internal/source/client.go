// Package source provides a client for the remote member messages API.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/raghavkonduri05/member-qa-system/internal/metrics"
	"github.com/raghavkonduri05/member-qa-system/internal/models"
)

// FetchError reports a failed retrieval from the messages API. A single
// FetchError aborts the whole FetchAll call; partial results are discarded.
type FetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client retrieves member messages from the remote paginated API.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a messages API client.
func NewClient(baseURL string, pageSize int, logger zerolog.Logger) *Client {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		baseURL:    baseURL,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// pageEnvelope mirrors the remote API response body.
type pageEnvelope struct {
	Items []models.Message `json:"items"`
	Total int              `json:"total"`
}

// FetchPage retrieves one page of messages. The continuation token is opaque
// to callers; an empty token requests the first page. The returned page
// carries the token for the next page, or an empty token on the last page.
func (c *Client) FetchPage(ctx context.Context, token string) (models.MessagePage, error) {
	page := 1
	if token != "" {
		n, err := strconv.Atoi(token)
		if err != nil || n < 1 {
			return models.MessagePage{}, &FetchError{Op: "page", Err: fmt.Errorf("invalid continuation token %q", token)}
		}
		page = n
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return models.MessagePage{}, &FetchError{Op: "page", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.FetchErrorsTotal.Inc()
		return models.MessagePage{}, &FetchError{Op: "page", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.FetchErrorsTotal.Inc()
		return models.MessagePage{}, &FetchError{Op: "page", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.FetchErrorsTotal.Inc()
		return models.MessagePage{}, &FetchError{Op: "page", Status: resp.StatusCode}
	}

	var envelope pageEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		metrics.FetchErrorsTotal.Inc()
		return models.MessagePage{}, &FetchError{Op: "page", Err: fmt.Errorf("malformed page payload: %w", err)}
	}

	metrics.FetchPagesTotal.Inc()

	next := ""
	if len(envelope.Items) > 0 && page*c.pageSize < envelope.Total {
		next = strconv.Itoa(page + 1)
	}
	return models.MessagePage{Messages: envelope.Items, NextToken: next}, nil
}

// FetchAll retrieves the complete current message set, oldest page first.
func (c *Client) FetchAll(ctx context.Context) ([]models.Message, error) {
	all, err := FetchAll(ctx, c)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Int("messages", len(all)).Msg("fetched full message set")
	return all, nil
}

// Ping probes the messages API with a minimal single-message request.
// Used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("page_size", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("messages API returned status %d", resp.StatusCode)
	}
	return nil
}
