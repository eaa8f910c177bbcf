// Package projects loads the project showcase from its JSON data file.
package projects

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Zachkp/devfolio/internal/github"
)

// ErrNotFound is returned for an unknown project id.
var ErrNotFound = errors.New("project not found")

// Project is a single showcase entry from projects-data.json.
type Project struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription,omitempty"`
	TechStack       []string `json:"techStack"`
	GitHubURL       string   `json:"githubUrl,omitempty"`
	LiveURL         string   `json:"liveUrl,omitempty"`
	Image           string   `json:"image,omitempty"`
	Features        []string `json:"features,omitempty"`
	Featured        bool     `json:"featured"`
	Year            int      `json:"year,omitempty"`

	// Repo is filled from the GitHub API at render time; nil when the
	// project has no repository or the lookup failed.
	Repo *github.RepoInfo `json:"repo"`
}

// HasTech reports whether the project lists tech, ignoring case.
func (p Project) HasTech(tech string) bool {
	for _, t := range p.TechStack {
		if strings.EqualFold(t, tech) {
			return true
		}
	}
	return false
}

// LoadFile reads and validates a projects JSON file.
func LoadFile(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read projects file: %w", err)
	}
	list, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Parse decodes a JSON array of projects. Every project needs an id and a
// name, and ids must be unique.
func Parse(data []byte) ([]Project, error) {
	var list []Project
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	seen := make(map[string]bool, len(list))
	for i := range list {
		p := &list[i]
		p.ID = strings.TrimSpace(p.ID)
		p.Name = strings.TrimSpace(p.Name)
		if p.ID == "" {
			return nil, fmt.Errorf("project %d: missing id", i)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("project %q: missing name", p.ID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("project %q: duplicate id", p.ID)
		}
		seen[p.ID] = true
		p.Repo = nil
	}
	return list, nil
}

// Sort orders projects featured first, then newest year, then by name.
func Sort(list []Project) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// FilterByTech returns the projects using tech. An empty tech returns the
// input unchanged.
func FilterByTech(list []Project, tech string) []Project {
	tech = strings.TrimSpace(tech)
	if tech == "" {
		return list
	}
	out := make([]Project, 0, len(list))
	for _, p := range list {
		if p.HasTech(tech) {
			out = append(out, p)
		}
	}
	return out
}

// TechCount is one entry of the technology filter bar.
type TechCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Technologies counts distinct technologies, case-insensitively, keeping the
// first spelling seen. The result is sorted by count, then name.
func Technologies(list []Project) []TechCount {
	index := map[string]int{}
	var out []TechCount
	for _, p := range list {
		seen := map[string]bool{}
		for _, t := range p.TechStack {
			key := strings.ToLower(strings.TrimSpace(t))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			if i, ok := index[key]; ok {
				out[i].Count++
				continue
			}
			index[key] = len(out)
			out = append(out, TechCount{Name: strings.TrimSpace(t), Count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
