package ctgov

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"trialintel/domain/trial"
	"trialintel/internal/errors"
	"trialintel/ports"
)

const (
	// DefaultBaseURL is the v2 studies endpoint.
	DefaultBaseURL = "https://clinicaltrials.gov/api/v2/studies"

	maxRetries       = 6
	initialBackoff   = 2 * time.Second
	maxBackoff       = 60 * time.Second
	stoppedStatuses  = "TERMINATED,SUSPENDED,WITHDRAWN"
	defaultPageSize  = 100
	defaultSleep     = 1200 * time.Millisecond
	defaultMaxTotal  = 50000
	defaultFromDate  = "2015-01-01"
	requestUserAgent = "trialintel/1.0"
)

// Config tunes the registry client. Zero values fall back to defaults.
type Config struct {
	BaseURL    string
	PageSize   int
	Sleep      time.Duration // pause between pages, politeness toward the API
	HTTPClient *http.Client
}

// Client pages through stopped studies on ClinicalTrials.gov.
type Client struct {
	baseURL  string
	pageSize int
	sleep    time.Duration
	backoff  time.Duration
	http     *http.Client
}

var _ ports.StudyRegistry = (*Client)(nil)

// NewClient creates a registry client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Sleep <= 0 {
		cfg.Sleep = defaultSleep
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		pageSize: cfg.PageSize,
		sleep:    cfg.Sleep,
		backoff:  initialBackoff,
		http:     cfg.HTTPClient,
	}
}

// FetchStopped pages through terminated, suspended and withdrawn studies
// updated on or after the query cutoff, invoking visit once per study until
// the registry is exhausted or q.MaxStudies have been seen.
func (c *Client) FetchStopped(ctx context.Context, q ports.RegistryQuery, visit func(trial.Sourced) error) error {
	from := q.LastUpdateFrom
	if from == "" {
		from = defaultFromDate
	}
	maxStudies := q.MaxStudies
	if maxStudies <= 0 {
		maxStudies = defaultMaxTotal
	}

	log.Printf("[CTGov] Fetching stopped studies updated since %s (cap %d)", from, maxStudies)

	seen := 0
	pageToken := ""
	for {
		page, err := c.fetchPage(ctx, from, pageToken)
		if err != nil {
			return err
		}
		if pageToken == "" && page.TotalCount > 0 {
			log.Printf("[CTGov] Registry reports %d matching studies", page.TotalCount)
		}

		for _, study := range page.Studies {
			sourced := Extract(study)
			if err := visit(sourced); err != nil {
				return err
			}
			seen++
			if seen >= maxStudies {
				log.Printf("[CTGov] Reached study cap at %d, stopping scan", seen)
				return nil
			}
		}

		if page.NextPageToken == "" {
			log.Printf("[CTGov] Scan complete, %d studies fetched", seen)
			return nil
		}
		pageToken = page.NextPageToken

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.sleep):
		}
	}
}

// fetchPage issues one paged request with retry on transient status codes.
func (c *Client) fetchPage(ctx context.Context, from, pageToken string) (*pagedResponse, error) {
	params := url.Values{}
	params.Set("filter.overallStatus", stoppedStatuses)
	params.Set("query.term", fmt.Sprintf("AREA[LastUpdatePostDate]RANGE[%s,MAX]", from))
	params.Set("sort", "LastUpdatePostDate:desc")
	params.Set("pageSize", fmt.Sprintf("%d", c.pageSize))
	params.Set("countTotal", "true")
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}
	reqURL := c.baseURL + "?" + params.Encode()

	backoff := c.backoff
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, errors.RegistryError("failed to build registry request", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", requestUserAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = readErr
			case resp.StatusCode == http.StatusOK:
				var page pagedResponse
				if err := json.Unmarshal(body, &page); err != nil {
					return nil, errors.RegistryError("failed to decode registry response", err)
				}
				return &page, nil
			case retryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("registry returned status %d", resp.StatusCode)
			default:
				return nil, errors.RegistryError(
					fmt.Sprintf("registry returned status %d: %.200s", resp.StatusCode, string(body)), nil)
			}
		}

		if attempt < maxRetries {
			log.Printf("[CTGov] Attempt %d/%d failed (%v), retrying in %s", attempt, maxRetries, lastErr, backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
	return nil, errors.RegistryError("registry request failed after retries", lastErr)
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
