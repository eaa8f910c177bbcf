// Package github fetches public repository metadata shown next to projects.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Zachkp/devfolio/internal/cache"
	xlog "github.com/Zachkp/devfolio/internal/log"
	"github.com/Zachkp/devfolio/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.github.com"

	// missTTL bounds how long a failed lookup suppresses new requests.
	missTTL = 5 * time.Minute
)

// RepoInfo is the subset of the GitHub repository resource the site renders.
type RepoInfo struct {
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Homepage    string    `json:"homepage"`
	Language    string    `json:"language"`
	Topics      []string  `json:"topics"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	OpenIssues  int       `json:"open_issues_count"`
	Archived    bool      `json:"archived"`
	PushedAt    time.Time `json:"pushed_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Token      string
	CacheTTL   time.Duration
	HTTPClient *http.Client
}

// Client is a read-only GitHub REST client with a result cache.
type Client struct {
	baseURL string
	token   string
	ttl     time.Duration
	http    *http.Client
	cache   *cache.Memory[*RepoInfo]
	group   singleflight.Group
	logger  zerolog.Logger
}

// NewClient returns a client. A zero CacheTTL disables caching.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		baseURL: base,
		token:   opts.Token,
		ttl:     opts.CacheTTL,
		http:    hc,
		cache:   cache.New[*RepoInfo](10 * time.Minute),
		logger:  xlog.WithComponent("github"),
	}
}

// Close releases the cache janitor.
func (c *Client) Close() {
	c.cache.Close()
}

// CacheStats reports the lookup cache counters.
func (c *Client) CacheStats() cache.Stats {
	return c.cache.Stats()
}

// Refresh drops every cached lookup, hits and misses alike.
func (c *Client) Refresh() {
	c.cache.Clear()
}

// Repo fetches repository metadata. Non-200 responses are errors. No retries.
func (c *Client) Repo(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "devfolio")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", owner, repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s/%s: unexpected status %d", owner, repo, resp.StatusCode)
	}

	var info RepoInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", owner, repo, err)
	}
	return &info, nil
}

// Lookup returns metadata for a GitHub repository URL, or nil when the URL
// is not a GitHub repository or the fetch fails. Failures are logged.
func (c *Client) Lookup(ctx context.Context, repoURL string) *RepoInfo {
	owner, repo, ok := ParseRepoURL(repoURL)
	if !ok {
		return nil
	}
	key := strings.ToLower(owner + "/" + repo)

	if c.ttl > 0 {
		if info, hit := c.cache.Get(key); hit {
			metrics.RecordGitHubFetch("cache_hit")
			return info
		}
	}

	// The shared fetch ignores caller cancellation; the HTTP client timeout
	// bounds it. A cancelled caller stops waiting and gets nil.
	ch := c.group.DoChan(key, func() (any, error) {
		info, err := c.Repo(context.WithoutCancel(ctx), owner, repo)
		if err != nil {
			metrics.RecordGitHubFetch("failure")
			c.logger.Warn().Err(err).Str(xlog.FieldRepo, key).Msg("repository lookup failed")
			if c.ttl > 0 && !errors.Is(err, context.Canceled) {
				c.cache.Set(key, nil, min(c.ttl, missTTL))
			}
			return (*RepoInfo)(nil), nil
		}
		metrics.RecordGitHubFetch("success")
		if c.ttl > 0 {
			c.cache.Set(key, info, c.ttl)
		}
		return info, nil
	})

	select {
	case res := <-ch:
		return res.Val.(*RepoInfo)
	case <-ctx.Done():
		return nil
	}
}

// ParseRepoURL extracts owner and repository from a github.com URL. Extra
// path segments, a trailing slash and a .git suffix are ignored.
func ParseRepoURL(raw string) (owner, repo string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", false
	}
	host := strings.ToLower(u.Host)
	if host != "github.com" && host != "www.github.com" {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	repo = strings.TrimSuffix(parts[1], ".git")
	if repo == "" {
		return "", "", false
	}
	return parts[0], repo, true
}
