package projects

import (
	"context"
	"sync"

	"github.com/Zachkp/devfolio/internal/github"
)

// RepoLookup resolves repository metadata for a URL, returning nil when
// nothing is available.
type RepoLookup interface {
	Lookup(ctx context.Context, repoURL string) *github.RepoInfo
}

// Catalog serves the loaded project list, enriched with repository metadata.
type Catalog struct {
	mu     sync.RWMutex
	list   []Project
	lookup RepoLookup
}

// NewCatalog sorts list and wraps it. lookup may be nil to skip enrichment.
func NewCatalog(list []Project, lookup RepoLookup) *Catalog {
	c := &Catalog{lookup: lookup}
	c.Replace(list)
	return c
}

// Replace swaps the project list.
func (c *Catalog) Replace(list []Project) {
	cp := make([]Project, len(list))
	copy(cp, list)
	Sort(cp)

	c.mu.Lock()
	c.list = cp
	c.mu.Unlock()
}

// Len is the number of projects.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.list)
}

// All returns the sorted projects without repository metadata.
func (c *Catalog) All() []Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Project, len(c.list))
	copy(out, c.list)
	return out
}

// List returns the sorted projects, filtered by tech when non-empty, each
// enriched with repository metadata. Lookups run one after another and a
// failed lookup leaves Repo nil.
func (c *Catalog) List(ctx context.Context, tech string) []Project {
	out := FilterByTech(c.All(), tech)
	for i := range out {
		c.enrich(ctx, &out[i])
	}
	return out
}

// Get returns one enriched project.
func (c *Catalog) Get(ctx context.Context, id string) (Project, error) {
	c.mu.RLock()
	var (
		p     Project
		found bool
	)
	for _, candidate := range c.list {
		if candidate.ID == id {
			p, found = candidate, true
			break
		}
	}
	c.mu.RUnlock()

	if !found {
		return Project{}, ErrNotFound
	}
	c.enrich(ctx, &p)
	return p, nil
}

func (c *Catalog) enrich(ctx context.Context, p *Project) {
	if c.lookup == nil || p.GitHubURL == "" {
		return
	}
	if ctx.Err() != nil {
		return
	}
	p.Repo = c.lookup.Lookup(ctx, p.GitHubURL)
}
