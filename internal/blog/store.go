package blog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	xlog "github.com/Zachkp/devfolio/internal/log"
	"github.com/Zachkp/devfolio/internal/metrics"
)

// ListOptions filters a post listing.
type ListOptions struct {
	Tag           string
	IncludeDrafts bool
}

// TagCount is one entry of the tag cloud.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Store holds the compiled post set for a content directory. Reload swaps
// the whole set so readers never see a partial load.
type Store struct {
	dir      string
	compiler *Compiler
	logger   zerolog.Logger

	mu     sync.RWMutex
	posts  []*Post // sorted newest first
	bySlug map[string]*Post
}

// NewStore creates an empty store for the posts directory dir.
func NewStore(dir string) *Store {
	return &Store{
		dir:      dir,
		compiler: NewCompiler(),
		logger:   xlog.WithComponent("blog"),
		bySlug:   map[string]*Post{},
	}
}

// Dir is the posts directory.
func (s *Store) Dir() string { return s.dir }

// Reload compiles every post in the directory. On error the previous post
// set is kept. A missing directory yields an empty blog.
func (s *Store) Reload() error {
	posts, err := LoadDir(s.compiler, s.dir)
	if err != nil {
		metrics.RecordContentReload(false)
		return err
	}
	s.replace(posts)
	metrics.RecordContentReload(true)
	metrics.SetPostsLoaded(len(posts))
	s.logger.Info().Int("posts", len(posts)).Str(xlog.FieldPath, s.dir).Msg("blog content loaded")
	return nil
}

func (s *Store) replace(posts []*Post) {
	SortPosts(posts)
	bySlug := make(map[string]*Post, len(posts))
	for _, p := range posts {
		bySlug[p.Slug] = p
	}
	s.mu.Lock()
	s.posts = posts
	s.bySlug = bySlug
	s.mu.Unlock()
}

// LoadDir compiles every *.md file directly inside dir. The slug is the
// lowercased file name without extension.
func LoadDir(c *Compiler, dir string) ([]*Post, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read posts dir %s: %w", dir, err)
	}

	var posts []*Post
	seen := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		slug := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if prev, dup := seen[slug]; dup {
			return nil, fmt.Errorf("%s: slug %q already used by %s", path, slug, prev)
		}
		seen[slug] = path

		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		p, err := c.Compile(slug, src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		p.SourcePath = path
		posts = append(posts, p)
	}
	return posts, nil
}

// SortPosts orders posts newest first; equal dates fall back to slug order.
func SortPosts(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})
}

// List returns posts newest first, optionally filtered by tag.
func (s *Store) List(opts ListOptions) []*Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.Draft && !opts.IncludeDrafts {
			continue
		}
		if opts.Tag != "" && !p.HasTag(opts.Tag) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Len counts loaded posts, drafts included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// Get returns a post by slug. Drafts are only visible with includeDrafts.
func (s *Store) Get(slug string, includeDrafts bool) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.bySlug[strings.ToLower(slug)]
	if !ok || (p.Draft && !includeDrafts) {
		return nil, ErrNotFound
	}
	return p, nil
}

// Tags counts tags over published posts, most used first.
func (s *Store) Tags() []TagCount {
	counts := map[string]int{}
	for _, p := range s.List(ListOptions{}) {
		for _, t := range p.Tags {
			counts[t]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, TagCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Adjacent returns the published posts around slug: prev is the next older
// post, next the next newer one. Either may be nil.
func (s *Store) Adjacent(slug string) (prev, next *Post) {
	posts := s.List(ListOptions{})
	for i, p := range posts {
		if p.Slug != slug {
			continue
		}
		if i+1 < len(posts) {
			prev = posts[i+1]
		}
		if i > 0 {
			next = posts[i-1]
		}
		return prev, next
	}
	return nil, nil
}

// Related returns up to limit published posts sharing the most tags with p.
func (s *Store) Related(p *Post, limit int) []*Post {
	type scored struct {
		post  *Post
		score int
	}
	var candidates []scored
	for _, other := range s.List(ListOptions{}) {
		if other.Slug == p.Slug {
			continue
		}
		n := 0
		for _, t := range p.Tags {
			if other.HasTag(t) {
				n++
			}
		}
		if n > 0 {
			candidates = append(candidates, scored{other, n})
		}
	}
	// Stable keeps the newest-first order among equal scores.
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	out := make([]*Post, 0, min(limit, len(candidates)))
	for i := 0; i < len(candidates) && i < limit; i++ {
		out = append(out, candidates[i].post)
	}
	return out
}

// isPostFile reports whether a watcher event concerns a post source.
func isPostFile(name string) bool {
	base := filepath.Base(name)
	return strings.EqualFold(filepath.Ext(base), ".md") && !strings.HasPrefix(base, ".")
}
