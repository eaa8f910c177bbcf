// Package seo renders page metadata and the generated crawler files:
// sitemap.xml, robots.txt, the web manifest and the RSS feed.
package seo

import (
	"strings"

	"github.com/Zachkp/devfolio/internal/config"
)

// Site is the site-level information every generator needs.
type Site struct {
	URL         string
	Name        string
	Description string
	Author      string
	ThemeColor  string
}

// SiteFromConfig adapts the site configuration.
func SiteFromConfig(c config.SiteConfig) Site {
	return Site{
		URL:         strings.TrimRight(c.URL, "/"),
		Name:        c.Name,
		Description: c.Description,
		Author:      c.Author,
		ThemeColor:  c.ThemeColor,
	}
}

// Abs joins a site-relative path onto the site URL.
func (s Site) Abs(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.URL + path
}

// Meta is the per-page head metadata.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OGType      string // "website" or "article"
	Image       string
}

// PageMeta builds metadata for a page. An empty title means the home page,
// titled with the site name alone.
func (s Site) PageMeta(title, description, path string) Meta {
	full := s.Name
	if title != "" && title != s.Name {
		full = title + " | " + s.Name
	}
	if description == "" {
		description = s.Description
	}
	return Meta{
		Title:       full,
		Description: description,
		Canonical:   s.Abs(path),
		OGType:      "website",
	}
}

// ArticleMeta builds metadata for a blog post page.
func (s Site) ArticleMeta(title, description, path, image string) Meta {
	m := s.PageMeta(title, description, path)
	m.OGType = "article"
	if image != "" {
		m.Image = s.Abs(image)
	}
	return m
}
