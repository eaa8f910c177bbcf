package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		in          string
		owner, repo string
		ok          bool
	}{
		{"https://github.com/Zachkp/zach-dev", "Zachkp", "zach-dev", true},
		{"https://github.com/Zachkp/zach-dev/", "Zachkp", "zach-dev", true},
		{"https://github.com/Zachkp/zach-dev.git", "Zachkp", "zach-dev", true},
		{"https://www.github.com/a/b/tree/main", "a", "b", true},
		{"https://gitlab.com/a/b", "", "", false},
		{"https://github.com/only-owner", "", "", false},
		{"https://github.com/octo/.git", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			owner, repo, ok := ParseRepoURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/repos/octo/demo", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestClient_Repo(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{
		"full_name": "octo/demo",
		"language": "Go",
		"stargazers_count": 42,
		"forks_count": 3,
		"topics": ["cli", "tui"],
		"pushed_at": "2026-03-01T10:00:00Z"
	}`)
	c := NewClient(Options{BaseURL: srv.URL})
	t.Cleanup(c.Close)

	info, err := c.Repo(context.Background(), "octo", "demo")
	require.NoError(t, err)
	assert.Equal(t, "octo/demo", info.FullName)
	assert.Equal(t, 42, info.Stars)
	assert.Equal(t, []string{"cli", "tui"}, info.Topics)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), info.PushedAt.UTC())
}

func TestClient_SendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL, Token: "secret"})
	t.Cleanup(c.Close)
	_, err := c.Repo(context.Background(), "octo", "demo")
	require.NoError(t, err)
}

func TestClient_RepoNon200(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, `{"message":"Not Found"}`)
	c := NewClient(Options{BaseURL: srv.URL})
	t.Cleanup(c.Close)

	_, err := c.Repo(context.Background(), "octo", "demo")
	assert.Error(t, err)
}

func TestClient_LookupNilOnError(t *testing.T) {
	srv, calls := newServer(t, http.StatusInternalServerError, `oops`)
	c := NewClient(Options{BaseURL: srv.URL, CacheTTL: time.Hour})
	t.Cleanup(c.Close)

	assert.Nil(t, c.Lookup(context.Background(), "https://github.com/octo/demo"))
	// The miss is cached; no second request.
	assert.Nil(t, c.Lookup(context.Background(), "https://github.com/octo/demo"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_LookupCaches(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{"full_name":"octo/demo","stargazers_count":1}`)
	c := NewClient(Options{BaseURL: srv.URL, CacheTTL: time.Hour})
	t.Cleanup(c.Close)

	first := c.Lookup(context.Background(), "https://github.com/octo/demo")
	second := c.Lookup(context.Background(), "https://github.com/Octo/Demo.git")
	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_LookupWithoutCache(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{"full_name":"octo/demo"}`)
	c := NewClient(Options{BaseURL: srv.URL})
	t.Cleanup(c.Close)

	c.Lookup(context.Background(), "https://github.com/octo/demo")
	c.Lookup(context.Background(), "https://github.com/octo/demo")
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_LookupIgnoresNonGitHub(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://127.0.0.1:1"})
	t.Cleanup(c.Close)
	assert.Nil(t, c.Lookup(context.Background(), "https://example.com/app"))
}

func TestClient_LookupCancelledCallerDoesNotCacheMiss(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"full_name":"octo/demo","stargazers_count":7}`)
	c := NewClient(Options{BaseURL: srv.URL, CacheTTL: time.Hour})
	t.Cleanup(c.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Lookup(ctx, "https://github.com/octo/demo")

	info := c.Lookup(context.Background(), "https://github.com/octo/demo")
	require.NotNil(t, info)
	assert.Equal(t, 7, info.Stars)
}
