// Package wiki provides a rate-limited client for the MediaWiki Action API.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultLanguage selects the Wikipedia edition to query.
	DefaultLanguage = "en"

	// DefaultUserAgent identifies this tool per the Wikimedia User-Agent policy.
	DefaultUserAgent = "WikiNetworkExplorer/1.0 (touseeqkhanswl@example.com)"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit keeps request volume polite for an unauthenticated client.
	RateLimit = 10.0

	// linkBatchLimit is the per-request link page size; "max" asks the API
	// for its largest allowed batch (500 for anonymous clients).
	linkBatchLimit = "max"
)

// APIURL returns the Action API endpoint for a Wikipedia language edition.
func APIURL(language string) string {
	return fmt.Sprintf("https://%s.wikipedia.org/w/api.php", language)
}

// Client is a rate-limited HTTP client for the MediaWiki Action API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom API endpoint (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithLanguage points the client at another Wikipedia language edition.
func WithLanguage(language string) ClientOption {
	return func(c *Client) {
		c.baseURL = APIURL(language)
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRateLimit overrides the default requests-per-second limit.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a new MediaWiki API client for English Wikipedia.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    APIURL(DefaultLanguage),
		userAgent:  DefaultUserAgent,
	}

	// Check for endpoint override in environment
	if u := os.Getenv("WIKINET_API_URL"); u != "" {
		c.baseURL = u
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Links fetches the titles a page links to, following continuation until
// the set is complete. Only article-namespace links are requested. A
// positive limit caps the number of titles returned; zero means no cap.
// Returns ErrNotFound if the page is missing or the title is invalid.
func (c *Client) Links(ctx context.Context, title string, limit int) ([]string, error) {
	var links []string
	var cont *continueToken

	for {
		resp, err := c.queryLinks(ctx, title, cont)
		if err != nil {
			return nil, err
		}

		if resp.Query == nil || len(resp.Query.Pages) == 0 {
			return nil, fmt.Errorf("%w: no page data for %q", ErrInvalidResponse, title)
		}

		page := resp.Query.Pages[0]
		if page.Missing || page.Invalid {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, title)
		}

		for _, l := range page.Links {
			links = append(links, l.Title)
			if limit > 0 && len(links) >= limit {
				return links[:limit], nil
			}
		}

		if resp.Continue == nil || resp.Continue.PLContinue == "" {
			return links, nil
		}
		cont = resp.Continue
	}
}

// queryLinks performs one action=query request for a page's links.
func (c *Client) queryLinks(ctx context.Context, title string, cont *continueToken) (*queryResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"redirects":     {"1"},
		"titles":        {title},
		"prop":          {"links"},
		"plnamespace":   {"0"},
		"pllimit":       {linkBatchLimit},
	}
	if cont != nil {
		params.Set("plcontinue", cont.PLContinue)
		params.Set("continue", cont.Continue)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrInvalidResponse, err)
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	// The API reports most failures inside a 200 response
	if qr.Error != nil {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       qr.Error.Code,
			Message:    qr.Error.Info,
			Title:      title,
		}
	}

	return &qr, nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode == 429 {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode == 403 {
		// Wikimedia rejects clients with a generic or missing User-Agent
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "forbidden",
			Message:    "request blocked, check the configured User-Agent",
		}
	}
	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "http_error",
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}
	return nil
}
