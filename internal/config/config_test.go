package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadIsolated(t *testing.T, opts Options) (Config, error) {
	t.Helper()
	dir := t.TempDir()
	if opts.EnvFile == "" {
		opts.EnvFile = filepath.Join(dir, "missing.env")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return Load(opts)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadIsolated(t, Options{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Site.URL)
	assert.Equal(t, "public/projects-data.json", cfg.Projects.File)
	assert.Equal(t, "smtp", cfg.Mail.Provider)
	assert.Equal(t, time.Hour, cfg.GitHub.CacheTTL)
	assert.True(t, cfg.Site.Effects)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SITE_URL", "https://example.dev/")
	t.Setenv("TO_EMAIL", "me@example.dev")
	t.Setenv("MAIL_PROVIDER", "Resend")
	t.Setenv("GITHUB_CACHE_TTL", "15m")

	cfg, err := loadIsolated(t, Options{})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://example.dev", cfg.Site.URL)
	assert.Equal(t, "me@example.dev", cfg.Mail.To)
	assert.Equal(t, "resend", cfg.Mail.Provider)
	assert.Equal(t, 15*time.Minute, cfg.GitHub.CacheTTL)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
site:
  name: Example
  effects: false
content:
  dir: /srv/content
`), 0o644))

	cfg, err := loadIsolated(t, Options{File: file})
	require.NoError(t, err)
	assert.Equal(t, "Example", cfg.Site.Name)
	assert.False(t, cfg.Site.Effects)
	assert.Equal(t, "/srv/content", cfg.Content.Dir)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := loadIsolated(t, Options{File: "/nonexistent/devfolio.yaml"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{Port: 8080, Site: SiteConfig{URL: "https://example.dev"}, Mail: MailConfig{Provider: "smtp"}}
	require.NoError(t, base.Validate())

	bad := base
	bad.Port = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.Site.URL = "/relative"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Mail.Provider = "pigeon"
	assert.Error(t, bad.Validate())
}
