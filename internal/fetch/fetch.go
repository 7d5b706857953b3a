package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hyperifyio/goseo/internal/cache"
)

var (
	// ErrUnsupportedContentType is returned for responses that are not HTML.
	ErrUnsupportedContentType = errors.New("unsupported content type")
	// ErrDisallowedByRobots is returned when the robots gate rejects a URL.
	ErrDisallowedByRobots = errors.New("disallowed by robots.txt")
)

// RobotsChecker gates fetches on robots.txt rules.
type RobotsChecker interface {
	Allowed(ctx context.Context, pageURL string) (bool, error)
}

// Observer receives the size of every body read from the network.
type Observer func(url string, bytes int)

// Client wraps http.Client with a per-request timeout, redirect cap, HTML
// content-type gating and an optional on-disk cache. Each Get performs a
// single attempt.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// PerRequestTimeout bounds each request.
	PerRequestTimeout time.Duration
	// Optional on-disk cache for HTTP GET bodies and headers.
	Cache *cache.HTTPCache
	// If true, skip conditional headers but still save the latest response.
	BypassCache bool
	// RedirectMaxHops caps redirect following to avoid loops. Zero means default (5).
	RedirectMaxHops int
	// MaxBodyBytes caps the bytes read per page. Zero means 8 MiB.
	MaxBodyBytes int64
	// Robots, when set, is consulted before every request.
	Robots RobotsChecker
	// OnFetched, when set, is called after a body is read from the network.
	OnFetched Observer
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.PerRequestTimeout, CheckRedirect: c.checkRedirectFunc()}
}

// Get issues one GET with context and user-agent and returns the body and
// content type. Cached pages are revalidated with If-None-Match and
// If-Modified-Since when the cache holds validators.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, string, error) {
	if c.Robots != nil {
		ok, err := c.Robots.Allowed(ctx, rawURL)
		if err != nil {
			return nil, "", fmt.Errorf("robots: %w", err)
		}
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrDisallowedByRobots, rawURL)
		}
	}
	var etag, lastMod string
	if c.Cache != nil && !c.BypassCache {
		if meta, err := c.Cache.LoadMeta(ctx, rawURL); err == nil && meta != nil {
			etag = meta.ETag
			lastMod = meta.LastModified
		}
	}
	body, ct, newEtag, newLastMod, status, err := c.tryOnce(ctx, rawURL, etag, lastMod)
	if err != nil {
		return nil, "", err
	}
	if status == http.StatusNotModified && c.Cache != nil {
		cached, err := c.Cache.LoadBody(ctx, rawURL)
		if err != nil {
			return nil, "", fmt.Errorf("load cached body: %w", err)
		}
		if ct == "" {
			if meta, err := c.Cache.LoadMeta(ctx, rawURL); err == nil {
				ct = meta.ContentType
			}
		}
		return cached, ct, nil
	}
	if c.Cache != nil && status == http.StatusOK {
		_ = c.Cache.Save(ctx, rawURL, ct, newEtag, newLastMod, body)
	}
	return body, ct, nil
}

func (c *Client) tryOnce(ctx context.Context, rawURL string, etag string, lastMod string) ([]byte, string, string, string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", "", "", 0, fmt.Errorf("new request: %w", err)
	}
	// Reject non-HTTP(S) schemes early
	if !isHTTPScheme(req.URL) {
		return nil, "", "", "", 0, fmt.Errorf("unsupported URL scheme: %q", req.URL.String())
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastMod != "" {
		req.Header.Set("If-Modified-Since", lastMod)
	}

	httpClient := c.getHTTPClient()
	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(req.Context(), c.PerRequestTimeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", "", "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		// 304: no body expected
		return nil, resp.Header.Get("Content-Type"), resp.Header.Get("ETag"), resp.Header.Get("Last-Modified"), resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", "", "", resp.StatusCode, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isAllowedHTMLContentType(contentType) {
		return nil, "", "", "", resp.StatusCode, fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}
	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = 8 << 20
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, "", "", "", resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if c.OnFetched != nil {
		c.OnFetched(rawURL, len(b))
	}
	return b, contentType, resp.Header.Get("ETag"), resp.Header.Get("Last-Modified"), resp.StatusCode, nil
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// isAllowedHTMLContentType accepts text/html variants and XHTML. A missing
// header is accepted since many article hosts omit it.
func isAllowedHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ct == "" {
		return true
	}
	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}
