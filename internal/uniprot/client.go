// Package uniprot provides REST clients for the UniProt KB API and the
// EMBL-EBI Proteins API. It returns raw records only; classification and
// aggregation happen in the variant and track packages.
package uniprot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultUniProtBaseURL is the UniProt KB REST root.
	DefaultUniProtBaseURL = "https://rest.uniprot.org/uniprotkb"
	// DefaultProteinsBaseURL is the EMBL-EBI Proteins API root.
	DefaultProteinsBaseURL = "https://www.ebi.ac.uk/proteins/api"

	defaultUserAgent = "VarViz3D/0.4"
	defaultTimeout   = 25 * time.Second
)

// Options configures a Client. Zero values fall back to production defaults;
// tests point the base URLs at an httptest server.
type Options struct {
	UniProtBaseURL  string
	ProteinsBaseURL string
	UserAgent       string
	// HTTPClient is the long-lived client shared across requests for
	// connection reuse. A nil value gets a client with a 25s timeout.
	HTTPClient *http.Client
}

// Client talks to the UniProt KB and Proteins APIs.
type Client struct {
	uniprotBase  string
	proteinsBase string
	userAgent    string
	httpClient   *http.Client
}

// NewClient creates a client with the given options.
func NewClient(opts Options) *Client {
	c := &Client{
		uniprotBase:  opts.UniProtBaseURL,
		proteinsBase: opts.ProteinsBaseURL,
		userAgent:    opts.UserAgent,
		httpClient:   opts.HTTPClient,
	}
	if c.uniprotBase == "" {
		c.uniprotBase = DefaultUniProtBaseURL
	}
	if c.proteinsBase == "" {
		c.proteinsBase = DefaultProteinsBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return c
}

// get performs a GET request and returns the body for 200 responses.
// Any other status is an error carrying the response text.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error %d from %s: %s", resp.StatusCode, url, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
