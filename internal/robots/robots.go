// Package robots decides whether an article URL may be fetched according to
// the target host's robots.txt. Parsing and matching are delegated to
// github.com/temoto/robotstxt; this package adds per-host memoization.
package robots

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// Manager fetches robots.txt once per scheme+host and answers Allowed queries.
type Manager struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds the robots.txt download. Zero means 5s.
	Timeout time.Duration

	mu    sync.Mutex
	hosts map[string]*robotstxt.RobotsData
}

// Allowed reports whether pageURL may be fetched. A robots.txt that cannot be
// downloaded is treated as allow-all; 4xx means allow-all and 5xx means
// disallow-all, following the robotstxt package semantics.
func (m *Manager) Allowed(ctx context.Context, pageURL string) (bool, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false, fmt.Errorf("parse url: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, fmt.Errorf("unsupported url scheme: %q", pageURL)
	}
	data := m.rulesFor(ctx, scheme, u.Host)
	if data == nil {
		return true, nil
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, m.agent()), nil
}

func (m *Manager) agent() string {
	if m.UserAgent == "" {
		return "*"
	}
	// Product token only, e.g. "goseo/1.0 (+url)" -> "goseo".
	ua := m.UserAgent
	if i := strings.IndexAny(ua, "/ "); i > 0 {
		ua = ua[:i]
	}
	return ua
}

func (m *Manager) rulesFor(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	key := scheme + "://" + host
	m.mu.Lock()
	if m.hosts == nil {
		m.hosts = make(map[string]*robotstxt.RobotsData)
	}
	if data, ok := m.hosts[key]; ok {
		m.mu.Unlock()
		return data
	}
	m.mu.Unlock()

	data := m.fetch(ctx, key+"/robots.txt")

	m.mu.Lock()
	m.hosts[key] = data
	m.mu.Unlock()
	return data
}

func (m *Manager) fetch(ctx context.Context, robotsURL string) *robotstxt.RobotsData {
	timeout := m.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	if m.UserAgent != "" {
		req.Header.Set("User-Agent", m.UserAgent)
	}
	client := m.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 512<<10))
	if err != nil {
		return nil
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil
	}
	return data
}
