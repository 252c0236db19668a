package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/ppiankov/legalparse/internal/cache"
)

const robotsTTL = time.Hour

// RobotsChecker checks robots.txt before a document is fetched
type RobotsChecker struct {
	cache      cache.Cache
	httpClient *http.Client
	userAgent  string
}

// NewRobotsChecker creates a robots.txt checker backed by c
func NewRobotsChecker(c cache.Cache, userAgent string, timeout time.Duration) *RobotsChecker {
	if c == nil {
		c = cache.Nop{}
	}
	return &RobotsChecker{
		cache:      c,
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// robotsEntry is the cached form of a robots.txt response
type robotsEntry struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// CanFetch reports whether robots.txt allows fetching rawURL. When robots.txt
// cannot be retrieved the fetch is allowed.
func (r *RobotsChecker) CanFetch(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false, fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}

	robotsURL := parsed.Scheme + "://" + parsed.Host + "/robots.txt"

	entry, err := r.load(ctx, robotsURL)
	if err != nil {
		return true, nil
	}

	data, err := robotstxt.FromStatusAndBytes(entry.Status, entry.Body)
	if err != nil {
		return true, nil
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, r.userAgent), nil
}

// load returns the robots.txt response for robotsURL, from cache when possible
func (r *RobotsChecker) load(ctx context.Context, robotsURL string) (*robotsEntry, error) {
	key := cache.Key(cache.NamespaceRobots, robotsURL)
	if raw, found := r.cache.Get(key); found {
		var entry robotsEntry
		if err := json.Unmarshal(raw, &entry); err == nil {
			return &entry, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}

	entry := &robotsEntry{Status: resp.StatusCode, Body: body}
	if raw, err := json.Marshal(entry); err == nil {
		_ = r.cache.Set(key, raw, robotsTTL)
	}

	return entry, nil
}
