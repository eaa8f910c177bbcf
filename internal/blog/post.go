// Package blog compiles markdown posts with front matter into sanitised
// HTML and serves listings, tag indexes and single posts.
package blog

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound is returned for unknown or unpublished slugs.
var ErrNotFound = errors.New("post not found")

const wordsPerMinute = 200

// Heading is one table-of-contents entry.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// Post is a compiled blog post.
type Post struct {
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Date        time.Time     `json:"date"`
	Updated     time.Time     `json:"updated,omitzero"`
	Tags        []string      `json:"tags"`
	Draft       bool          `json:"draft,omitempty"`
	Image       string        `json:"image,omitempty"`
	Body        template.HTML `json:"-"`
	TOC         []Heading     `json:"toc"`
	WordCount   int           `json:"wordCount"`
	ReadingTime int           `json:"readingMinutes"`
	SourcePath  string        `json:"-"`
}

// LastModified is Updated when set, otherwise Date.
func (p *Post) LastModified() time.Time {
	if !p.Updated.IsZero() {
		return p.Updated
	}
	return p.Date
}

// HasTag reports whether the post carries tag, ignoring case.
func (p *Post) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Updated     string   `yaml:"updated"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
	Image       string   `yaml:"image"`
}

var dateFormats = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, f := range dateFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q (use YYYY-MM-DD or RFC3339)", s)
}

// Compiler turns markdown sources into posts. It is safe for concurrent use.
type Compiler struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	title  cases.Caser
}

// NewCompiler builds the markdown pipeline: GFM, automatic heading ids and
// a UGC sanitising policy that keeps heading anchors and code languages.
func NewCompiler() *Compiler {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").Matching(regexp.MustCompile(`^[\w\-]+$`)).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+\-#]+$`)).OnElements("code")

	return &Compiler{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: policy,
		title:  cases.Title(language.English),
	}
}

// Compile parses front matter and markdown for one post.
func (c *Compiler) Compile(slug string, src []byte) (*Post, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm)
	if err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}

	if strings.TrimSpace(fm.Date) == "" {
		return nil, errors.New("front matter: date is required")
	}
	date, err := parseDate(fm.Date)
	if err != nil {
		return nil, fmt.Errorf("front matter date: %w", err)
	}
	var updated time.Time
	if strings.TrimSpace(fm.Updated) != "" {
		if updated, err = parseDate(fm.Updated); err != nil {
			return nil, fmt.Errorf("front matter updated: %w", err)
		}
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = c.title.String(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
	}

	doc := c.md.Parser().Parse(text.NewReader(body))
	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, body, doc); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	words := len(strings.Fields(string(body)))
	return &Post{
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(fm.Description),
		Date:        date,
		Updated:     updated,
		Tags:        normalizeTags(fm.Tags),
		Draft:       fm.Draft,
		Image:       fm.Image,
		Body:        template.HTML(c.policy.SanitizeBytes(buf.Bytes())),
		TOC:         tableOfContents(doc, body),
		WordCount:   words,
		ReadingTime: readingMinutes(words),
	}, nil
}

func readingMinutes(words int) int {
	return max(1, int(math.Ceil(float64(words)/wordsPerMinute)))
}

func normalizeTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// tableOfContents collects h2 and h3 headings with their generated ids.
func tableOfContents(doc ast.Node, source []byte) []Heading {
	var toc []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level < 2 || h.Level > 3 {
			return ast.WalkSkipChildren, nil
		}
		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		toc = append(toc, Heading{Level: h.Level, ID: id, Text: plainText(h, source)})
		return ast.WalkSkipChildren, nil
	})
	return toc
}

func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(plainText(c, source))
		}
	}
	return strings.TrimSpace(sb.String())
}
