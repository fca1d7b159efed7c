package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound reports that an item id does not exist in the catalog.
var ErrNotFound = errors.New("record not found")

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8640"
	defaultUserAgent = "starcat/0.1"
	defaultTimeout   = 10 * time.Second
)

// NewClient builds a Client for the provided API address. The address may be
// a bare host:port; the scheme defaults to http.
func NewClient(apiURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchPortion retrieves one fixed-width chunk of search results. The server
// pages results itself; index is the server's 1-based page number.
func (c *Client) FetchPortion(ctx context.Context, index int, term string) (Portion, error) {
	if c == nil {
		return Portion{}, fmt.Errorf("client is nil")
	}
	if index < 1 {
		return Portion{}, fmt.Errorf("portion index %d out of range", index)
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(index))
	if term != "" {
		values.Set("search", term)
	}
	rel := &url.URL{Path: "/api/planets", RawQuery: values.Encode()}
	var payload portionResponse
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return Portion{}, err
	}
	return Portion{Count: payload.Count, Records: payload.Results}, nil
}

// FetchItem retrieves the complete record for a single id.
func (c *Client) FetchItem(ctx context.Context, id string) (Record, error) {
	if c == nil {
		return Record{}, fmt.Errorf("client is nil")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return Record{}, fmt.Errorf("item id required")
	}
	rel := &url.URL{Path: "/api/planets/" + url.PathEscape(trimmed)}
	var payload Record
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return Record{}, err
	}
	return payload, nil
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("api %s: %w", rel.Path, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
