package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/Zachkp/devfolio/internal/blog"
)

// FeedSize is the number of posts in the RSS feed.
const FeedSize = 20

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description string   `xml:"description,omitempty"`
	Categories  []string `xml:"category"`
}

// Feed renders an RSS 2.0 feed of the newest published posts. posts must be
// sorted newest first.
func Feed(site Site, posts []*blog.Post) ([]byte, error) {
	ch := rssChannel{
		Title:       site.Name,
		Link:        site.Abs("/blog"),
		Description: site.Description,
		Language:    "en",
		AtomLink:    atomLink{Href: site.Abs("/feed.xml"), Rel: "self", Type: "application/rss+xml"},
	}
	for _, p := range posts {
		if p.Draft {
			continue
		}
		if len(ch.Items) == FeedSize {
			break
		}
		if ch.LastBuildDate == "" {
			ch.LastBuildDate = p.LastModified().UTC().Format(time.RFC1123Z)
		}
		link := site.Abs("/blog/" + p.Slug)
		ch.Items = append(ch.Items, rssItem{
			Title:       p.Title,
			Link:        link,
			GUID:        link,
			PubDate:     p.Date.UTC().Format(time.RFC1123Z),
			Description: p.Description,
			Categories:  p.Tags,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(rss{Version: "2.0", Atom: "http://www.w3.org/2005/Atom", Channel: ch}); err != nil {
		return nil, fmt.Errorf("encode feed: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
