package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/Zachkp/devfolio/internal/blog"
	"github.com/Zachkp/devfolio/internal/projects"
)

// Page is a static route listed in the sitemap.
type Page struct {
	Path       string
	ChangeFreq string
	Priority   float64
}

// StaticPages are the marketing and index routes.
var StaticPages = []Page{
	{Path: "/", ChangeFreq: "weekly", Priority: 1.0},
	{Path: "/about", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/skills", ChangeFreq: "monthly", Priority: 0.7},
	{Path: "/experience", ChangeFreq: "monthly", Priority: 0.7},
	{Path: "/projects", ChangeFreq: "weekly", Priority: 0.9},
	{Path: "/blog", ChangeFreq: "weekly", Priority: 0.9},
	{Path: "/contact", ChangeFreq: "yearly", Priority: 0.5},
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap renders sitemap.xml. Drafts are skipped; posts carry their last
// modification date.
func Sitemap(site Site, pages []Page, posts []*blog.Post, projs []projects.Project) ([]byte, error) {
	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        site.Abs(p.Path),
			ChangeFreq: p.ChangeFreq,
			Priority:   fmt.Sprintf("%.1f", p.Priority),
		})
	}
	for _, p := range projs {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        site.Abs("/projects/" + p.ID),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}
	for _, p := range posts {
		if p.Draft {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        site.Abs("/blog/" + p.Slug),
			LastMod:    p.LastModified().UTC().Format(time.DateOnly),
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
