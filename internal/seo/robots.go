package seo

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Robots renders robots.txt: everything is crawlable except the admin area
// and the JSON API.
func Robots(site Site) []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + site.Abs("/sitemap.xml") + "\n")
	return []byte(b.String())
}

type manifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

type manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []manifestIcon `json:"icons"`
}

// Manifest renders the web app manifest.
func Manifest(site Site) ([]byte, error) {
	theme := site.ThemeColor
	if theme == "" {
		theme = "#0d1117"
	}
	short := site.Name
	if r := []rune(short); len(r) > 12 {
		short = string(r[:12])
	}
	m := manifest{
		Name:            site.Name,
		ShortName:       short,
		Description:     site.Description,
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: theme,
		ThemeColor:      theme,
		Icons: []manifestIcon{
			{Src: "/images/icon-192.png", Sizes: "192x192", Type: "image/png"},
			{Src: "/images/icon-512.png", Sizes: "512x512", Type: "image/png", Purpose: "any maskable"},
		},
	}
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return append(out, '\n'), nil
}
